package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/election-result-api/internal/models"
	"github.com/noah-isme/election-result-api/internal/service"
	"github.com/noah-isme/election-result-api/pkg/config"
)

// memoryStore keeps documents in insertion order, mirroring natural order in the store.
type memoryStore struct {
	docs    []models.ElectionResult
	pingErr error
}

func (s *memoryStore) find(match func(models.ElectionResult) bool) []models.ElectionResult {
	out := make([]models.ElectionResult, 0)
	for _, d := range s.docs {
		if match(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s *memoryStore) FindByParties(ctx context.Context, parties string) ([]models.ElectionResult, error) {
	return s.find(func(d models.ElectionResult) bool { return d.Parties == parties }), nil
}

func (s *memoryStore) List(ctx context.Context) ([]models.ElectionResult, error) {
	return s.find(func(models.ElectionResult) bool { return true }), nil
}

func (s *memoryStore) indexOf(id string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return -1, fmt.Errorf("parse id: %w", err)
	}
	for i, d := range s.docs {
		if d.ID == oid {
			return i, nil
		}
	}
	return -1, mongo.ErrNoDocuments
}

func (s *memoryStore) FindByID(ctx context.Context, id string) (*models.ElectionResult, error) {
	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	d := s.docs[i]
	return &d, nil
}

func (s *memoryStore) Create(ctx context.Context, result *models.ElectionResult) error {
	result.ID = primitive.NewObjectID()
	s.docs = append(s.docs, *result)
	return nil
}

func (s *memoryStore) UpdateByID(ctx context.Context, id string, patch models.RigPatch) (*models.ElectionResult, error) {
	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	if patch.Result != nil {
		s.docs[i].Result = *patch.Result
	}
	s.docs[i].IsRigged = patch.IsRigged
	d := s.docs[i]
	return &d, nil
}

func (s *memoryStore) DeleteByID(ctx context.Context, id string) (*models.ElectionResult, error) {
	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	d := s.docs[i]
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	return &d, nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return s.pingErr
}

func newTestRouter(store *memoryStore, legacy bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: "test"}
	metrics := service.NewMetricsService()
	results := service.NewElectionResultService(store, nil, metrics, nil, zap.NewNop(), service.ElectionResultOptions{LegacyNotFound: legacy})
	return New(Dependencies{
		Config:  cfg,
		Logger:  zap.NewNop(),
		Metrics: metrics,
		Results: results,
		Exports: service.NewExportService(results, zap.NewNop()),
	})
}

type apiResponse struct {
	Message string                `json:"message"`
	Data    models.ElectionResult `json:"data"`
	Rigged  bool                  `json:"Rigged"`
	Result  float64               `json:"result"`
	Error   string                `json:"Error"`
}

func call(t *testing.T, r http.Handler, method, path string, body interface{}) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out apiResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func TestPartyTotalScenario(t *testing.T) {
	r := newTestRouter(&memoryStore{}, true)

	status, created := call(t, r, http.MethodPost, "/post-election", map[string]interface{}{
		"state": "Lagos", "parties": "PartyA", "result": 100, "collationOfficer": "X",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.False(t, created.Data.IsRigged)

	status, _ = call(t, r, http.MethodPost, "/post-election", map[string]interface{}{
		"state": "Lagos", "parties": "PartyA", "result": 50, "isRigged": true,
	})
	require.Equal(t, http.StatusCreated, status)

	status, total := call(t, r, http.MethodGet, "/gettotal", map[string]string{"parties": "PartyA"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 150.0, total.Result)
	assert.True(t, total.Rigged)
	assert.Equal(t, "The Total Result for PartyA", total.Message)

	status, total = call(t, r, http.MethodGet, "/gettotal", map[string]string{"parties": "PartyZ"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, total.Result)
	assert.False(t, total.Rigged)
}

func TestPartyTotalRiggedRegardlessOfOrder(t *testing.T) {
	r := newTestRouter(&memoryStore{}, true)

	call(t, r, http.MethodPost, "/post-election", map[string]interface{}{"state": "Lagos", "parties": "PartyA", "result": 50, "isRigged": true})
	call(t, r, http.MethodPost, "/post-election", map[string]interface{}{"state": "Lagos", "parties": "PartyA", "result": 100, "collationOfficer": "X"})

	_, total := call(t, r, http.MethodGet, "/gettotal", map[string]string{"parties": "PartyA"})
	assert.Equal(t, 150.0, total.Result)
	assert.True(t, total.Rigged)
}

func TestPartyTotalIgnoresUnknownKeys(t *testing.T) {
	r := newTestRouter(&memoryStore{}, true)
	call(t, r, http.MethodPost, "/post-election", map[string]interface{}{"parties": "PartyA", "result": 5})

	status, total := call(t, r, http.MethodGet, "/gettotal", map[string]interface{}{"parties": "PartyA", "x": 1})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5.0, total.Result)
	assert.Equal(t, "The Total Result for PartyA", total.Message)
}

func TestCreateThenFetchRoundTrip(t *testing.T) {
	r := newTestRouter(&memoryStore{}, true)

	_, created := call(t, r, http.MethodPost, "/post-election", map[string]interface{}{
		"state": "Kano", "parties": "PartyB", "result": 70, "collationOfficer": "Y", "totalLg": 44,
	})
	status, fetched := call(t, r, http.MethodGet, "/results/"+created.Data.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.Data, fetched.Data)
	require.NotNil(t, fetched.Data.TotalLg)
	assert.Equal(t, 44.0, *fetched.Data.TotalLg)
	assert.False(t, fetched.Data.IsRigged)
}

func TestRigAndDeleteLifecycle(t *testing.T) {
	r := newTestRouter(&memoryStore{}, true)

	_, created := call(t, r, http.MethodPost, "/post-election", map[string]interface{}{"state": "Oyo", "parties": "PartyC", "result": 10})
	id := created.Data.ID.Hex()

	status, updated := call(t, r, http.MethodPut, "/rigged/"+id, map[string]interface{}{"result": 500})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, updated.Data.IsRigged)
	assert.Equal(t, 500.0, updated.Data.Result)

	status, deleted := call(t, r, http.MethodDelete, "/results/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Successfully deleted.", deleted.Message)

	status, missing := call(t, r, http.MethodGet, "/results/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No result found for this state.", missing.Error)

	// Mutations on a missing id answer 400 while the read answers 404.
	status, _ = call(t, r, http.MethodPut, "/rigged/"+id, map[string]interface{}{"result": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = call(t, r, http.MethodDelete, "/results/"+id, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestConsistentNotFoundPolicy(t *testing.T) {
	r := newTestRouter(&memoryStore{}, false)
	id := primitive.NewObjectID().Hex()

	status, _ := call(t, r, http.MethodPut, "/rigged/"+id, map[string]interface{}{"result": 1})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, r, http.MethodDelete, "/results/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMalformedIDIsInternalError(t *testing.T) {
	r := newTestRouter(&memoryStore{}, true)

	status, body := call(t, r, http.MethodGet, "/results/not-an-id", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body.Error)
}

func TestRigResolvesIDBeforeBody(t *testing.T) {
	r := newTestRouter(&memoryStore{}, true)

	status, body := call(t, r, http.MethodPut, "/rigged/not-an-id", map[string]interface{}{})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body.Error)

	_, created := call(t, r, http.MethodPost, "/post-election", map[string]interface{}{"state": "Oyo", "parties": "PartyC", "result": 10})
	status, updated := call(t, r, http.MethodPut, "/rigged/"+created.Data.ID.Hex(), map[string]interface{}{})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, updated.Data.IsRigged)
	assert.Equal(t, 10.0, updated.Data.Result)
}

func TestListAndExport(t *testing.T) {
	r := newTestRouter(&memoryStore{}, true)
	call(t, r, http.MethodPost, "/post-election", map[string]interface{}{"state": "Lagos", "parties": "PartyA", "result": 1})

	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Message string                  `json:"message"`
		Data    []models.ElectionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, "Results", list.Message)
	assert.Len(t, list.Data, 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/results/export?format=csv", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, strings.Count(w.Body.String(), "\n"))
}

func TestOperationalRoutes(t *testing.T) {
	store := &memoryStore{}
	r := newTestRouter(store, true)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	store.pingErr = errors.New("no primary")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
