package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"healthmate-server/internal/ai"
	"healthmate-server/internal/analysis"
	"healthmate-server/internal/metrics"
	"healthmate-server/internal/models"
	"healthmate-server/internal/storage"
)

// reportFolder is the fixed logical namespace for stored report files.
const reportFolder = "healthmate-reports"

// ReportStore is the persistence boundary the service needs. Implemented
// by repo.ReportRepository.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	ByID(ctx context.Context, id string) (*models.Report, error)
	Delete(ctx context.Context, id string) error
}

// Fetcher downloads a stored object's public URL into memory.
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// IngestInput is the caller-supplied part of a report upload.
type IngestInput struct {
	Title      string
	ReportType string
	Date       string
	FileName   string
	Data       []byte
}

// ReportService orchestrates the report ingestion pipeline: upload to
// object storage, AI analysis with a deterministic fallback, and persisting
// the resulting record. It also owns ownership-gated deletion.
type ReportService struct {
	store   ReportStore
	storage storage.Client
	ai      ai.Client
	fetch   Fetcher
	log     *zap.Logger
	metrics *metrics.Collector
}

// NewReportService wires the pipeline's collaborators. A nil fetch falls
// back to a plain HTTP GET with a 120s timeout.
func NewReportService(store ReportStore, st storage.Client, aiClient ai.Client, fetch Fetcher, log *zap.Logger, m *metrics.Collector) *ReportService {
	if fetch == nil {
		fetch = httpFetch(&http.Client{Timeout: 120 * time.Second})
	}
	return &ReportService{
		store:   store,
		storage: st,
		ai:      aiClient,
		fetch:   fetch,
		log:     log,
		metrics: m,
	}
}

// httpFetch adapts an http.Client into a Fetcher.
func httpFetch(client *http.Client) Fetcher {
	return func(ctx context.Context, url string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
}

// parseDate accepts the calendar date formats clients send: a bare date or
// full RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Ingest runs the full pipeline and returns the persisted report. Once the
// upload succeeds, ingestion always succeeds: analysis failures of any kind
// are absorbed into the fallback summary and never surfaced to the caller.
func (s *ReportService) Ingest(ctx context.Context, ownerID string, in IngestInput) (*models.Report, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(in.Data) == 0 {
		return nil, &ValidationError{Field: "file", Message: "file is required"}
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: "date must be a calendar date"}
	}
	reportType := models.NormalizeReportType(in.ReportType)

	uploaded, err := s.storage.Upload(ctx, in.Data, reportFolder)
	if err != nil {
		s.metrics.StorageUploadFailures.Inc()
		s.log.Error("report upload failed", zap.String("owner", ownerID), zap.Error(err))
		return nil, &StorageError{Op: "upload", Err: err}
	}

	summary := s.analyze(ctx, uploaded.URL, reportType)

	report := &models.Report{
		UserID:     ownerID,
		Title:      title,
		ReportType: reportType,
		ReportDate: date,
		FileURL:    uploaded.URL,
		StorageID:  uploaded.StorageID,
		AISummary:  summary,
	}
	if err := s.store.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("persisting report: %w", err)
	}

	s.metrics.ReportsIngestedTotal.WithLabelValues(string(reportType)).Inc()
	return report, nil
}

// analyze fetches the stored file back, runs the model, and parses the
// response. Every failure path degrades to the fixed fallback summary.
func (s *ReportService) analyze(ctx context.Context, fileURL string, reportType models.ReportType) *models.AISummary {
	mimeType := analysis.MIMEType(fileURL)

	fileData, err := s.fetch(ctx, fileURL)
	if err != nil {
		return s.fallback("fetching stored file", err)
	}

	raw, err := s.ai.AnalyzeDocument(ctx, fileData, mimeType, analysis.BuildPrompt(reportType))
	if err != nil {
		return s.fallback("model call", err)
	}

	summary, err := analysis.ParseSummary(raw)
	if err != nil {
		return s.fallback("parsing model response", err)
	}
	return summary
}

func (s *ReportService) fallback(stage string, err error) *models.AISummary {
	s.metrics.AnalysisFallbacksTotal.Inc()
	s.log.Warn("report analysis degraded, using fallback summary",
		zap.String("stage", stage), zap.Error(err))
	return analysis.FallbackSummary()
}

// Get returns a report after verifying ownership.
func (s *ReportService) Get(ctx context.Context, ownerID, reportID string) (*models.Report, error) {
	report, err := s.store.ByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return report, nil
}

// Delete removes a report's stored object first and its database record
// second, so a failure never leaves a record pointing at a deleted object.
// If the storage delete fails the record stays intact and the caller can
// retry.
func (s *ReportService) Delete(ctx context.Context, ownerID, reportID string) error {
	report, err := s.store.ByID(ctx, reportID)
	if err != nil {
		return err
	}
	if report.UserID != ownerID {
		return ErrNotOwner
	}

	if err := s.storage.Delete(ctx, report.StorageID); err != nil {
		s.log.Error("storage delete failed, keeping record",
			zap.String("report", reportID), zap.Error(err))
		return &StorageError{Op: "delete", Err: err}
	}

	if err := s.store.Delete(ctx, reportID); err != nil {
		return fmt.Errorf("deleting report record: %w", err)
	}

	s.metrics.ReportsDeletedTotal.Inc()
	return nil
}
