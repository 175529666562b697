package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fdonboard/backend/internal/apperror"
	"github.com/fdonboard/backend/internal/model"
)

func TestUploadHandler_List(t *testing.T) {
	t.Parallel()

	svc := new(MockUploadService)
	bankID := uuid.New()
	svc.On("ListUploads", mock.Anything, mock.MatchedBy(func(f model.UploadFilter) bool {
		return f.BankID != nil && *f.BankID == bankID &&
			f.Status != nil && *f.Status == model.UploadStatusFailed &&
			f.Limit == 5
	})).Return([]model.ExcelUpload{{ID: uuid.New(), Filename: "plans.xlsx", UploadStatus: model.UploadStatusFailed}}, nil)
	h := NewUploadHandler(svc, new(MockReportService))

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/uploads?bankId="+bankID.String()+"&status=FAILED&limit=5", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "plans.xlsx")
	svc.AssertExpectations(t)
}

func TestUploadHandler_List_UnknownStatus(t *testing.T) {
	t.Parallel()

	svc := new(MockUploadService)
	svc.On("ListUploads", mock.Anything, mock.Anything).
		Return(nil, apperror.ValidationError("status", "status must be one of pending, processing, completed, failed"))

	rr := httptest.NewRecorder()
	NewUploadHandler(svc, new(MockReportService)).List(rr, httptest.NewRequest(http.MethodGet, "/api/uploads?status=done", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"field":"status"`)
}

func TestUploadHandler_Get(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	column := "tenure_months"
	tests := []struct {
		name       string
		setupMock  func(*MockUploadService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "with row errors",
			setupMock: func(m *MockUploadService) {
				m.On("GetUpload", mock.Anything, id).Return(&model.ExcelUpload{
					ID:             id,
					UploadStatus:   model.UploadStatusCompleted,
					TotalRows:      3,
					SuccessfulRows: 2,
					FailedRows:     1,
					Errors: []model.UploadError{
						{RowNumber: 2, ColumnName: &column, ErrorMessage: "tenure months is required"},
					},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"failedRows":1`,
		},
		{
			name: "unknown upload",
			setupMock: func(m *MockUploadService) {
				m.On("GetUpload", mock.Anything, id).Return(nil, apperror.NotFound("upload"))
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "upload not found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockUploadService)
			tt.setupMock(svc)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/uploads/"+id.String(), nil), map[string]string{"id": id.String()})
			rr := httptest.NewRecorder()
			NewUploadHandler(svc, new(MockReportService)).Get(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}

func TestUploadHandler_Reports(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name            string
		method          string
		serve           func(h *UploadHandler) http.HandlerFunc
		wantContentType string
		wantFilename    string
	}{
		{
			name:            "csv",
			method:          "UploadErrorsCSV",
			serve:           func(h *UploadHandler) http.HandlerFunc { return h.ReportCSV },
			wantContentType: contentTypeCSV,
			wantFilename:    "plans-errors.csv",
		},
		{
			name:            "pdf",
			method:          "UploadErrorsPDF",
			serve:           func(h *UploadHandler) http.HandlerFunc { return h.ReportPDF },
			wantContentType: "application/pdf",
			wantFilename:    "plans-errors.pdf",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reports := new(MockReportService)
			reports.On(tt.method, mock.Anything, id).Return([]byte("report"), tt.wantFilename, nil)
			h := NewUploadHandler(new(MockUploadService), reports)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": id.String()})
			rr := httptest.NewRecorder()
			tt.serve(h)(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantContentType, rr.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="`+tt.wantFilename+`"`, rr.Header().Get("Content-Disposition"))
			assert.Equal(t, "6", rr.Header().Get("Content-Length"))
		})
	}
}

func TestUploadHandler_ReportCSV_NotFound(t *testing.T) {
	t.Parallel()

	reports := new(MockReportService)
	id := uuid.New()
	reports.On("UploadErrorsCSV", mock.Anything, id).Return(nil, "", apperror.NotFound("upload"))

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": id.String()})
	rr := httptest.NewRecorder()
	NewUploadHandler(new(MockUploadService), reports).ReportCSV(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
