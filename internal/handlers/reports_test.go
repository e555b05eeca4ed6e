package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"healthmate-server/internal/metrics"
	"healthmate-server/internal/service"
	"healthmate-server/internal/storage"
)

type failingStorage struct{}

func (failingStorage) Upload(ctx context.Context, data []byte, folder string) (*storage.UploadResult, error) {
	return nil, errors.New("provider unavailable")
}

func (failingStorage) Delete(ctx context.Context, storageID string) error {
	return errors.New("provider unavailable")
}

func newUploadService(t *testing.T, st storage.Client) *service.ReportService {
	t.Helper()
	m := metrics.NewCollectorWith("test", prometheus.NewRegistry())
	return service.NewReportService(nil, st, nil, nil, zap.NewNop(), m)
}

type uploadForm struct {
	fields map[string]string
	file   []byte
}

func newUploadContext(t *testing.T, form uploadForm, authenticated bool) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range form.fields {
		assert.NoError(t, mw.WriteField(key, value))
	}
	if form.file != nil {
		part, err := mw.CreateFormFile("file", "report.png")
		assert.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(form.file))
		assert.NoError(t, err)
	}
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/reports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if authenticated {
		c.Set("userID", "test-user")
	}
	return c, w
}

func TestUploadReport_Unauthenticated(t *testing.T) {
	handler := NewReportHandler(nil, newUploadService(t, failingStorage{}))
	c, w := newUploadContext(t, uploadForm{}, false)

	handler.UploadReport(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadReport_MissingFile(t *testing.T) {
	handler := NewReportHandler(nil, newUploadService(t, failingStorage{}))
	c, w := newUploadContext(t, uploadForm{
		fields: map[string]string{"title": "Blood work", "reportType": "Blood Test", "date": "2024-03-15"},
	}, true)

	handler.UploadReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "upload a file")
}

func TestUploadReport_BlankTitle(t *testing.T) {
	handler := NewReportHandler(nil, newUploadService(t, failingStorage{}))
	c, w := newUploadContext(t, uploadForm{
		fields: map[string]string{"title": "   ", "reportType": "Blood Test", "date": "2024-03-15"},
		file:   []byte("png-bytes"),
	}, true)

	handler.UploadReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadReport_InvalidDate(t *testing.T) {
	handler := NewReportHandler(nil, newUploadService(t, failingStorage{}))
	c, w := newUploadContext(t, uploadForm{
		fields: map[string]string{"title": "Blood work", "reportType": "Blood Test", "date": "soon"},
		file:   []byte("png-bytes"),
	}, true)

	handler.UploadReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadReport_StorageFailure(t *testing.T) {
	handler := NewReportHandler(nil, newUploadService(t, failingStorage{}))
	c, w := newUploadContext(t, uploadForm{
		fields: map[string]string{"title": "Blood work", "reportType": "Blood Test", "date": "2024-03-15"},
		file:   []byte("png-bytes"),
	}, true)

	handler.UploadReport(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to upload report")
}
