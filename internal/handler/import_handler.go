package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"

	// Multipart boundaries and the other form fields.
	multipartOverhead = 1 << 20
)

// ImportAccepted is returned once an upload has been queued.
type ImportAccepted struct {
	UploadID uuid.UUID `json:"uploadId"`
	Status   string    `json:"status"`
}

type ImportHandler struct {
	service       ImportServiceInterface
	maxUploadSize int64
}

func NewImportHandler(service ImportServiceInterface, maxUploadSize int64) *ImportHandler {
	return &ImportHandler{service: service, maxUploadSize: maxUploadSize}
}

// Import godoc
// @Summary Bulk import FD plans
// @Description Upload an xlsx or csv file with one plan per row. The file is processed in the background;
// @Description poll the returned upload for progress and row errors.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param bank_id formData string true "Bank ID"
// @Param uploaded_by formData string false "Uploader"
// @Param file formData file true "Spreadsheet"
// @Success 202 {object} ImportAccepted
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /imports [post]
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	id, err := h.service.ImportFile(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusAccepted, ImportAccepted{UploadID: id, Status: "pending"})
}

// Validate godoc
// @Summary Dry-run a bulk import
// @Description Parse and validate every row without saving anything.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param bank_id formData string true "Bank ID"
// @Param file formData file true "Spreadsheet"
// @Success 200 {object} importer.ValidationReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /imports/validate [post]
func (h *ImportHandler) Validate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	report, err := h.service.ValidateFile(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// Template godoc
// @Summary Download the import template
// @Tags imports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param format query string false "xlsx (default) or csv"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /imports/template [get]
func (h *ImportHandler) Template(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "xlsx"
	}

	data, err := h.service.GenerateTemplate(format)
	if err != nil {
		respondServiceError(w, r, err, nil)
		return
	}

	contentType := contentTypeXLSX
	if format == "csv" {
		contentType = contentTypeCSV
	}
	respondFile(w, contentType, "fd_plans_template."+format, data)
}

// readUpload reads the multipart form shared by Import and Validate.
func (h *ImportHandler) readUpload(w http.ResponseWriter, r *http.Request) (service.ImportRequest, bool) {
	var req service.ImportRequest

	limit := h.maxUploadSize + multipartOverhead
	if r.ContentLength > limit {
		respondAppError(w, apperror.TooLarge(h.maxUploadSize))
		return req, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondAppError(w, apperror.TooLarge(h.maxUploadSize))
			return req, false
		}
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return req, false
	}

	bankID, err := uuid.Parse(strings.TrimSpace(r.FormValue("bank_id")))
	if err != nil {
		respondAppError(w, apperror.ValidationError("bank_id", "bank_id must be a valid id"))
		return req, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondAppError(w, apperror.ValidationError("file", "file is required"))
		return req, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read file")
		return req, false
	}

	req.BankID = bankID
	req.Filename = header.Filename
	req.UploadedBy = r.FormValue("uploaded_by")
	req.Data = data
	return req, true
}
