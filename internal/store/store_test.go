package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"resumeiq/internal/config"
	apperrors "resumeiq/internal/errors"
	"resumeiq/internal/types"
)

var testLogger = apperrors.NewLogger(slog.LevelError)

func disabledService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(&config.StoreConfig{Enabled: false}, testLogger)
	if err != nil {
		t.Fatalf("NewService with disabled config: %v", err)
	}
	return svc
}

func TestDisabledServiceIsNoOp(t *testing.T) {
	svc := disabledService(t)

	if svc.Enabled() {
		t.Error("Disabled store should report Enabled() == false")
	}

	ctx := context.Background()
	if err := svc.SaveAnalysis(ctx, types.AnalysisRecord{AnalysisID: "abc"}); err != nil {
		t.Errorf("SaveAnalysis on disabled store should be a no-op, got %v", err)
	}
	if err := svc.UpdateEnhancement(ctx, "abc", "text"); err != nil {
		t.Errorf("UpdateEnhancement on disabled store should be a no-op, got %v", err)
	}
}

func TestDisabledServiceGetAnalysisFails(t *testing.T) {
	svc := disabledService(t)

	_, err := svc.GetAnalysis(context.Background(), "abc")
	if err == nil {
		t.Fatal("GetAnalysis on disabled store should fail")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected *apperrors.AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeStoreFailed {
		t.Errorf("Expected code %s, got %s", apperrors.ErrCodeStoreFailed, appErr.Code)
	}
}

func TestBuildAnalysisRow(t *testing.T) {
	record := types.AnalysisRecord{
		AnalysisID:     "id-123",
		ResumeText:     "JOHN DOE\njohn@example.com",
		JobDescription: "Backend engineer role",
		Analysis: types.AnalyzeResumeOutput{
			ATSScore: 68,
			Summary:  "Solid but keyword-light.",
		},
		CreatedAt: "2026-01-02T03:04:05Z",
	}

	row, err := buildAnalysisRow(record)
	if err != nil {
		t.Fatalf("buildAnalysisRow: %v", err)
	}

	if row["analysis_id"] != "id-123" {
		t.Errorf("analysis_id = %v", row["analysis_id"])
	}
	if row["job_description"] != "Backend engineer role" {
		t.Errorf("job_description = %v", row["job_description"])
	}

	raw, ok := row["analysis"].(json.RawMessage)
	if !ok {
		t.Fatalf("analysis column should be json.RawMessage, got %T", row["analysis"])
	}
	var decoded types.AnalyzeResumeOutput
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("analysis column does not round-trip: %v", err)
	}
	if decoded.ATSScore != 68 {
		t.Errorf("ATSScore = %d, want 68", decoded.ATSScore)
	}
}

func TestBuildAnalysisRowOmitsEmptyJobDescription(t *testing.T) {
	row, err := buildAnalysisRow(types.AnalysisRecord{AnalysisID: "id"})
	if err != nil {
		t.Fatalf("buildAnalysisRow: %v", err)
	}
	if _, present := row["job_description"]; present {
		t.Error("Empty job description should not be written to the row")
	}
}

func TestMapRowToRecord(t *testing.T) {
	row := map[string]json.RawMessage{
		"analysis_id": json.RawMessage(`"id-9"`),
		"resume_text": json.RawMessage(`"JANE DOE"`),
		"analysis":    json.RawMessage(`{"ats_score":72,"summary":"ok"}`),
		"created_at":  json.RawMessage(`"2026-01-02T03:04:05Z"`),
	}

	record, err := mapRowToRecord(row)
	if err != nil {
		t.Fatalf("mapRowToRecord: %v", err)
	}
	if record.AnalysisID != "id-9" {
		t.Errorf("AnalysisID = %q", record.AnalysisID)
	}
	if record.Analysis.ATSScore != 72 {
		t.Errorf("ATSScore = %d, want 72", record.Analysis.ATSScore)
	}
	if record.JobDescription != "" {
		t.Errorf("JobDescription should be empty, got %q", record.JobDescription)
	}
}
