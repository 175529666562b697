package handler

import (
	"net/http"
	"strings"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/model"
)

type UploadHandler struct {
	service UploadServiceInterface
	reports UploadReportInterface
}

func NewUploadHandler(service UploadServiceInterface, reports UploadReportInterface) *UploadHandler {
	return &UploadHandler{service: service, reports: reports}
}

// List godoc
// @Summary List uploads
// @Description Newest first
// @Tags uploads
// @Produce json
// @Param bankId query string false "Bank ID"
// @Param status query string false "pending, processing, completed or failed"
// @Param limit query int false "Page size (default 50)"
// @Success 200 {array} model.ExcelUpload
// @Failure 400 {object} ErrorResponse
// @Router /uploads [get]
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter model.UploadFilter
	var err error

	if filter.BankID, err = queryUUID(r, "bankId"); err != nil {
		respondServiceError(w, r, err, nil)
		return
	}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		s := model.UploadStatus(strings.ToLower(status))
		filter.Status = &s
	}
	if filter.Limit, _, err = queryInt(r, "limit"); err != nil {
		respondServiceError(w, r, err, nil)
		return
	}
	if filter.Limit < 0 {
		respondAppError(w, apperror.ValidationError("limit", "limit must not be negative"))
		return
	}

	uploads, err := h.service.ListUploads(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, uploads)
}

// Get godoc
// @Summary Get an upload
// @Description Status, counters and row errors of one upload
// @Tags uploads
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} model.ExcelUpload
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /uploads/{id} [get]
func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	upload, err := h.service.GetUpload(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, upload)
}

// ReportCSV godoc
// @Summary Download upload errors as CSV
// @Tags uploads
// @Produce text/csv
// @Param id path string true "Upload ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /uploads/{id}/report.csv [get]
func (h *UploadHandler) ReportCSV(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	data, filename, err := h.reports.UploadErrorsCSV(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondFile(w, contentTypeCSV, filename, data)
}

// ReportPDF godoc
// @Summary Download upload errors as PDF
// @Tags uploads
// @Produce application/pdf
// @Param id path string true "Upload ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /uploads/{id}/report.pdf [get]
func (h *UploadHandler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	data, filename, err := h.reports.UploadErrorsPDF(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondFile(w, "application/pdf", filename, data)
}
