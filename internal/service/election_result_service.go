package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/election-result-api/internal/dto"
	"github.com/noah-isme/election-result-api/internal/models"
	appErrors "github.com/noah-isme/election-result-api/pkg/errors"
)

const totalsCachePrefix = "totals:"

type electionResultRepository interface {
	FindByParties(ctx context.Context, parties string) ([]models.ElectionResult, error)
	List(ctx context.Context) ([]models.ElectionResult, error)
	FindByID(ctx context.Context, id string) (*models.ElectionResult, error)
	Create(ctx context.Context, result *models.ElectionResult) error
	UpdateByID(ctx context.Context, id string, patch models.RigPatch) (*models.ElectionResult, error)
	DeleteByID(ctx context.Context, id string) (*models.ElectionResult, error)
	Ping(ctx context.Context) error
}

// ElectionResultOptions tunes error reporting.
type ElectionResultOptions struct {
	// LegacyNotFound answers 400 instead of 404 when rigging or deleting an unknown id.
	LegacyNotFound bool
}

// ElectionResultService handles election result workflows.
type ElectionResultService struct {
	repo      electionResultRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	opts      ElectionResultOptions

	// totalsGen changes on every write so a total read before the write is never cached after it.
	totalsGen atomic.Uint64
}

// NewElectionResultService creates a new election result service. cache and metrics may be nil.
func NewElectionResultService(repo electionResultRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, opts ElectionResultOptions) *ElectionResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ElectionResultService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, opts: opts}
}

func (s *ElectionResultService) observe(operation string, start time.Time, err error) {
	failed := err != nil && !errors.Is(err, mongo.ErrNoDocuments)
	s.metrics.ObserveStore(operation, time.Since(start), failed)
	if failed {
		s.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
	}
}

func (s *ElectionResultService) invalidateTotals(ctx context.Context) {
	s.totalsGen.Add(1)
	_ = s.cache.Invalidate(ctx, totalsCachePrefix+"*")
}

// Total folds every record for parties into one sum from a single read.
func (s *ElectionResultService) Total(ctx context.Context, parties string) (*models.PartyTotal, error) {
	cacheKey := totalsCachePrefix + parties
	var cached models.PartyTotal
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	gen := s.totalsGen.Load()
	start := time.Now()
	records, err := s.repo.FindByParties(ctx, parties)
	s.observe("find_by_parties", start, err)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	total := models.FoldPartyTotal(parties, records)
	s.cacheTotal(ctx, cacheKey, gen, total)
	return &total, nil
}

// cacheTotal stores total unless a write happened since gen was taken. A write that lands
// between the check and the Set is caught by the second check.
func (s *ElectionResultService) cacheTotal(ctx context.Context, key string, gen uint64, total models.PartyTotal) {
	if !s.cache.Enabled() || s.totalsGen.Load() != gen {
		return
	}
	_ = s.cache.Set(ctx, key, total, 0)
	if s.totalsGen.Load() != gen {
		_ = s.cache.Invalidate(ctx, key)
	}
}

// Create stores a new result. isRigged defaults to false when omitted.
func (s *ElectionResultService) Create(ctx context.Context, req dto.CreateElectionResultRequest) (*models.ElectionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, createFailedMessage)
	}

	record := models.NewElectionResult(req.State, req.Parties, *req.Result, req.CollationOfficer)
	if req.IsRigged != nil {
		record.IsRigged = *req.IsRigged
	}
	record.TotalLg = req.TotalLg

	start := time.Now()
	err := s.repo.Create(ctx, record)
	s.observe("create", start, err)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, createFailedMessage)
	}

	s.invalidateTotals(ctx)
	return record, nil
}

// List returns every result.
func (s *ElectionResultService) List(ctx context.Context) ([]models.ElectionResult, error) {
	start := time.Now()
	results, err := s.repo.List(ctx)
	s.observe("list", start, err)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return results, nil
}

// Get returns a result by identifier. Malformed ids are reported as internal errors.
func (s *ElectionResultService) Get(ctx context.Context, id string) (*models.ElectionResult, error) {
	start := time.Now()
	result, err := s.repo.FindByID(ctx, id)
	s.observe("find_by_id", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "No result found for this state.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return result, nil
}

// Rig marks the record as rigged and, when given, overwrites its result in the same update.
func (s *ElectionResultService) Rig(ctx context.Context, id string, req dto.RigResultRequest) (*models.ElectionResult, error) {
	start := time.Now()
	updated, err := s.repo.UpdateByID(ctx, id, models.RigPatch{Result: req.Result, IsRigged: true})
	s.observe("update_by_id", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, s.mutationNotFound(fmt.Sprintf("Unable to update election result for state with ID %s", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.invalidateTotals(ctx)
	return updated, nil
}

// Delete removes a result and returns the removed document.
func (s *ElectionResultService) Delete(ctx context.Context, id string) (*models.ElectionResult, error) {
	start := time.Now()
	deleted, err := s.repo.DeleteByID(ctx, id)
	s.observe("delete_by_id", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, s.mutationNotFound(fmt.Sprintf("Unable to delete election result for state with ID %s", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.invalidateTotals(ctx)
	return deleted, nil
}

// Ready reports whether the document store answers.
func (s *ElectionResultService) Ready(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "document store unavailable")
	}
	return nil
}

func (s *ElectionResultService) mutationNotFound(message string) error {
	err := appErrors.Clone(appErrors.ErrNotFound, message)
	if s.opts.LegacyNotFound {
		return appErrors.WithStatus(err, http.StatusBadRequest)
	}
	return err
}

const createFailedMessage = "Unable to create election result."
