package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/election-result-api/internal/dto"
	"github.com/noah-isme/election-result-api/internal/models"
	"github.com/noah-isme/election-result-api/internal/service"
	appErrors "github.com/noah-isme/election-result-api/pkg/errors"
	"github.com/noah-isme/election-result-api/pkg/response"
)

type electionResultService interface {
	Total(ctx context.Context, parties string) (*models.PartyTotal, error)
	Create(ctx context.Context, req dto.CreateElectionResultRequest) (*models.ElectionResult, error)
	List(ctx context.Context) ([]models.ElectionResult, error)
	Get(ctx context.Context, id string) (*models.ElectionResult, error)
	Rig(ctx context.Context, id string, req dto.RigResultRequest) (*models.ElectionResult, error)
	Delete(ctx context.Context, id string) (*models.ElectionResult, error)
}

type resultExporter interface {
	Export(ctx context.Context, format string) (*service.ExportFile, error)
}

// ElectionResultHandler handles election result endpoints.
type ElectionResultHandler struct {
	service  electionResultService
	exporter resultExporter
}

// NewElectionResultHandler constructs an election result handler. exporter may be nil.
func NewElectionResultHandler(svc electionResultService, exporter resultExporter) *ElectionResultHandler {
	return &ElectionResultHandler{service: svc, exporter: exporter}
}

// Total godoc
// @Summary Total result for a party
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.TotalRequest false "Party selector"
// @Param parties query string false "Party selector when no body is sent"
// @Success 200 {object} dto.TotalResponse
// @Failure 500 {object} response.ErrorBody
// @Router /gettotal [get]
func (h *ElectionResultHandler) Total(c *gin.Context) {
	var req dto.TotalRequest
	present, err := decodeLenient(c, &req)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if !present {
		req.Parties = c.Query("parties")
	}

	total, err := h.service.Total(c.Request.Context(), req.Parties)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalResponse{
		Message: fmt.Sprintf("The Total Result for %s", total.Parties),
		Rigged:  total.Rigged,
		Result:  total.Result,
	})
}

// Create godoc
// @Summary Record an election result
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.CreateElectionResultRequest true "Election result"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorBody
// @Router /post-election [post]
func (h *ElectionResultHandler) Create(c *gin.Context) {
	var req dto.CreateElectionResultRequest
	if present, err := decodeStrict(c, &req); err != nil || !present {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Unable to create election result."))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Created successfully.", created)
}

// List godoc
// @Summary List election results
// @Tags Results
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.ErrorBody
// @Router /results [get]
func (h *ElectionResultHandler) List(c *gin.Context) {
	results, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Results", results)
}

// Get godoc
// @Summary Get election result by id
// @Tags Results
// @Produce json
// @Param stateId path string true "Result ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /results/{stateId} [get]
func (h *ElectionResultHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("stateId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Results", result)
}

// Rig godoc
// @Summary Overwrite a result and mark it as rigged
// @Tags Results
// @Accept json
// @Produce json
// @Param stateId path string true "Result ID"
// @Param payload body dto.RigResultRequest false "Replacement result"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /rigged/{stateId} [put]
func (h *ElectionResultHandler) Rig(c *gin.Context) {
	id := c.Param("stateId")
	var req dto.RigResultRequest
	if _, err := decodeStrict(c, &req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, fmt.Sprintf("Unable to update election result for state with ID %s", id)))
		return
	}

	updated, err := h.service.Rig(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Successfully updated.", updated)
}

// Delete godoc
// @Summary Delete election result
// @Tags Results
// @Produce json
// @Param stateId path string true "Result ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /results/{stateId} [delete]
func (h *ElectionResultHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("stateId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Successfully deleted.", deleted)
}

// Export godoc
// @Summary Download all election results
// @Tags Results
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /results/export [get]
func (h *ElectionResultHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	file, err := h.exporter.Export(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
