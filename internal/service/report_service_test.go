package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"healthmate-server/internal/analysis"
	"healthmate-server/internal/metrics"
	"healthmate-server/internal/models"
	"healthmate-server/internal/storage"
)

type fakeStore struct {
	reports   map[string]*models.Report
	created   []*models.Report
	deleted   []string
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{reports: map[string]*models.Report{}}
}

func (f *fakeStore) Create(ctx context.Context, report *models.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	report.ID = "report-1"
	f.created = append(f.created, report)
	f.reports[report.ID] = report
	return nil
}

func (f *fakeStore) ByID(ctx context.Context, id string) (*models.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	return report, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.reports, id)
	return nil
}

type fakeStorage struct {
	uploadResult *storage.UploadResult
	uploadErr    error
	uploads      int
	deleted      []string
	deleteErr    error
}

func (f *fakeStorage) Upload(ctx context.Context, data []byte, folder string) (*storage.UploadResult, error) {
	f.uploads++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadResult, nil
}

func (f *fakeStorage) Delete(ctx context.Context, storageID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, storageID)
	return nil
}

type fakeAI struct {
	response string
	err      error
	called   bool
	gotMime  string
}

func (f *fakeAI) AnalyzeDocument(ctx context.Context, fileData []byte, mimeType, prompt string) (string, error) {
	f.called = true
	f.gotMime = mimeType
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func okFetch(ctx context.Context, url string) ([]byte, error) {
	return []byte("stored-bytes"), nil
}

func newTestService(store ReportStore, st storage.Client, aiClient *fakeAI, fetch Fetcher) *ReportService {
	if fetch == nil {
		fetch = okFetch
	}
	m := metrics.NewCollectorWith("test", prometheus.NewRegistry())
	return NewReportService(store, st, aiClient, fetch, zap.NewNop(), m)
}

func validInput() IngestInput {
	return IngestInput{
		Title:      "Annual blood work",
		ReportType: "Blood Test",
		Date:       "2024-03-15",
		FileName:   "bp_2024.png",
		Data:       []byte("png-bytes"),
	}
}

func TestIngestSuccessWithProseWrappedResponse(t *testing.T) {
	store := newFakeStore()
	st := &fakeStorage{uploadResult: &storage.UploadResult{
		URL:       "https://cdn.example.com/healthmate-reports/bp_2024.png",
		StorageID: "healthmate-reports/bp_2024",
	}}
	aiClient := &fakeAI{
		response: `Sure! {"english":"Normal.","urdu":"Theek hai.","abnormalValues":[],"questionsForDoctor":["Q1"],"foodsToAvoid":[],"foodsToEat":[],"homeRemedies":[]}`,
	}
	svc := newTestService(store, st, aiClient, nil)

	report, err := svc.Ingest(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}

	if report.UserID != "user-1" {
		t.Errorf("owner = %q, want user-1", report.UserID)
	}
	if report.FileURL != st.uploadResult.URL || report.StorageID != st.uploadResult.StorageID {
		t.Errorf("storage references not carried onto the report: %+v", report)
	}
	if report.ReportType != models.ReportTypeBloodTest {
		t.Errorf("reportType = %q, want Blood Test", report.ReportType)
	}
	if report.AISummary == nil || report.AISummary.English != "Normal." {
		t.Errorf("summary not parsed from prose-wrapped response: %+v", report.AISummary)
	}
	if report.AISummary.Disclaimer != analysis.Disclaimer {
		t.Errorf("disclaimer = %q, want the fixed disclaimer", report.AISummary.Disclaimer)
	}
	if aiClient.gotMime != "image/png" {
		t.Errorf("mime passed to model = %q, want image/png", aiClient.gotMime)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected exactly one persisted report, got %d", len(store.created))
	}
}

func TestIngestModelFailureUsesFallback(t *testing.T) {
	store := newFakeStore()
	st := &fakeStorage{uploadResult: &storage.UploadResult{URL: "https://cdn.example.com/r/x.jpg", StorageID: "r/x"}}
	aiClient := &fakeAI{err: errors.New("rate limited")}
	svc := newTestService(store, st, aiClient, nil)

	report, err := svc.Ingest(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("analysis failure must not fail ingestion, got: %v", err)
	}
	if !reflect.DeepEqual(report.AISummary, analysis.FallbackSummary()) {
		t.Errorf("summary = %+v, want the exact fallback object", report.AISummary)
	}
}

func TestIngestUnparseableResponseUsesFallback(t *testing.T) {
	store := newFakeStore()
	st := &fakeStorage{uploadResult: &storage.UploadResult{URL: "https://cdn.example.com/r/x.jpg", StorageID: "r/x"}}
	aiClient := &fakeAI{response: "I cannot help with that."}
	svc := newTestService(store, st, aiClient, nil)

	report, err := svc.Ingest(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("unparseable response must not fail ingestion, got: %v", err)
	}
	if !reflect.DeepEqual(report.AISummary, analysis.FallbackSummary()) {
		t.Errorf("summary = %+v, want the exact fallback object", report.AISummary)
	}
}

func TestIngestFetchFailureUsesFallback(t *testing.T) {
	store := newFakeStore()
	st := &fakeStorage{uploadResult: &storage.UploadResult{URL: "https://cdn.example.com/r/x.jpg", StorageID: "r/x"}}
	aiClient := &fakeAI{response: "{}"}
	failFetch := func(ctx context.Context, url string) ([]byte, error) {
		return nil, errors.New("connection reset")
	}
	svc := newTestService(store, st, aiClient, failFetch)

	report, err := svc.Ingest(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("fetch failure must not fail ingestion, got: %v", err)
	}
	if aiClient.called {
		t.Error("model must not be called when the stored file cannot be fetched")
	}
	if !reflect.DeepEqual(report.AISummary, analysis.FallbackSummary()) {
		t.Errorf("summary = %+v, want the exact fallback object", report.AISummary)
	}
}

func TestIngestUploadFailureIsFatal(t *testing.T) {
	store := newFakeStore()
	st := &fakeStorage{uploadErr: errors.New("quota exceeded")}
	aiClient := &fakeAI{response: "{}"}
	svc := newTestService(store, st, aiClient, nil)

	_, err := svc.Ingest(context.Background(), "user-1", validInput())

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if aiClient.called {
		t.Error("model must not be called after a failed upload")
	}
	if len(store.created) != 0 {
		t.Error("nothing may be persisted after a failed upload")
	}
}

func TestIngestValidationRejectsBeforeAnyNetworkCall(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*IngestInput)
	}{
		{"blank title", func(in *IngestInput) { in.Title = "   " }},
		{"empty file", func(in *IngestInput) { in.Data = nil }},
		{"bad date", func(in *IngestInput) { in.Date = "next tuesday" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			st := &fakeStorage{uploadResult: &storage.UploadResult{URL: "u", StorageID: "s"}}
			svc := newTestService(store, st, &fakeAI{response: "{}"}, nil)

			in := validInput()
			tt.mutate(&in)

			_, err := svc.Ingest(context.Background(), "user-1", in)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if st.uploads != 0 {
				t.Error("validation must reject before the storage upload")
			}
		})
	}
}

func TestIngestCoercesUnknownReportType(t *testing.T) {
	store := newFakeStore()
	st := &fakeStorage{uploadResult: &storage.UploadResult{URL: "https://cdn.example.com/r/x.jpg", StorageID: "r/x"}}
	svc := newTestService(store, st, &fakeAI{err: errors.New("down")}, nil)

	in := validInput()
	in.ReportType = "Homeopathy Consultation"

	report, err := svc.Ingest(context.Background(), "user-1", in)
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if report.ReportType != models.ReportTypeOther {
		t.Errorf("reportType = %q, want Other", report.ReportType)
	}
}

func seedReport(store *fakeStore, owner string) *models.Report {
	report := &models.Report{
		BaseModel: models.BaseModel{ID: "report-1"},
		UserID:    owner,
		StorageID: "healthmate-reports/abc",
	}
	store.reports[report.ID] = report
	return report
}

func TestDeleteRemovesStorageBeforeRecord(t *testing.T) {
	store := newFakeStore()
	seedReport(store, "user-1")
	st := &fakeStorage{}
	svc := newTestService(store, st, &fakeAI{}, nil)

	if err := svc.Delete(context.Background(), "user-1", "report-1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if len(st.deleted) != 1 || st.deleted[0] != "healthmate-reports/abc" {
		t.Errorf("stored object not deleted by storage id: %v", st.deleted)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "report-1" {
		t.Errorf("record not deleted: %v", store.deleted)
	}
}

func TestDeleteKeepsRecordWhenStorageFails(t *testing.T) {
	store := newFakeStore()
	seedReport(store, "user-1")
	st := &fakeStorage{deleteErr: errors.New("provider unavailable")}
	svc := newTestService(store, st, &fakeAI{}, nil)

	err := svc.Delete(context.Background(), "user-1", "report-1")

	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Error("record must stay intact when the storage delete fails")
	}
	if _, err := store.ByID(context.Background(), "report-1"); err != nil {
		t.Error("report must still be retrievable after a failed storage delete")
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	store := newFakeStore()
	seedReport(store, "user-1")
	st := &fakeStorage{}
	svc := newTestService(store, st, &fakeAI{}, nil)

	if err := svc.Delete(context.Background(), "user-2", "report-1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if len(st.deleted) != 0 {
		t.Error("no storage call may happen for a non-owner")
	}
}

func TestDeleteUnknownReport(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeStorage{}, &fakeAI{}, nil)

	if err := svc.Delete(context.Background(), "user-1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetRejectsNonOwner(t *testing.T) {
	store := newFakeStore()
	seedReport(store, "user-1")
	svc := newTestService(store, &fakeStorage{}, &fakeAI{}, nil)

	if _, err := svc.Get(context.Background(), "user-2", "report-1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if report, err := svc.Get(context.Background(), "user-1", "report-1"); err != nil || report.ID != "report-1" {
		t.Fatalf("owner must be able to read the report, got %v, %v", report, err)
	}
}
