package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/election-result-api/internal/models"
	appErrors "github.com/noah-isme/election-result-api/pkg/errors"
	"github.com/noah-isme/election-result-api/pkg/export"
)

var exportHeaders = []string{"id", "state", "parties", "result", "collationOfficer", "isRigged", "totalLg"}

type resultLister interface {
	List(ctx context.Context) ([]models.ElectionResult, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the stored results as downloadable tables.
type ExportService struct {
	results   resultLister
	renderers map[string]export.Renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService wires the default CSV and PDF renderers.
func NewExportService(results resultLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		results: results,
		renderers: map[string]export.Renderer{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// Export renders every result in the requested format.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	results, err := s.results.List(ctx)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(buildDataset(results))
	if err != nil {
		s.logger.Error("render export", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("election-results-%s.%s", s.now().UTC().Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func buildDataset(results []models.ElectionResult) export.Dataset {
	rows := make([]map[string]string, 0, len(results))
	for _, r := range results {
		row := map[string]string{
			"id":               r.ID.Hex(),
			"state":            r.State,
			"parties":          r.Parties,
			"result":           formatNumber(r.Result),
			"collationOfficer": r.CollationOfficer,
			"isRigged":         strconv.FormatBool(r.IsRigged),
		}
		if r.TotalLg != nil {
			row["totalLg"] = formatNumber(*r.TotalLg)
		}
		rows = append(rows, row)
	}
	return export.Dataset{Title: "Election Results", Headers: exportHeaders, Rows: rows}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
