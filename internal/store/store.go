// Package store persists completed analyses to Supabase so enhancement
// requests can reference them later. Persistence is optional: when the
// store is disabled in configuration every operation is a no-op.
package store

import (
	"context"
	"encoding/json"
	"time"

	"resumeiq/internal/config"
	"resumeiq/internal/errors"
	"resumeiq/internal/types"

	"github.com/supabase-community/supabase-go"
)

// Service wraps the Supabase client for analysis persistence
type Service struct {
	client *supabase.Client
	config *config.StoreConfig
	logger *errors.Logger
}

// NewService creates a new store service. A disabled configuration yields a
// service whose operations all succeed without touching the network.
func NewService(cfg *config.StoreConfig, logger *errors.Logger) (*Service, error) {
	if !cfg.Enabled {
		logger.Debug("Analysis store disabled")
		return &Service{config: cfg, logger: logger}, nil
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeStoreFailed,
			"Failed to create Supabase client", err)
	}

	logger.Info("Analysis store initialized",
		"url", cfg.URL,
		"table", cfg.Table)

	return &Service{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

// Enabled reports whether the store is backed by a live client
func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

// SaveAnalysis inserts a completed analysis row. Callers typically run this
// in a goroutine; a storage failure must never fail the analysis itself.
func (s *Service) SaveAnalysis(ctx context.Context, record types.AnalysisRecord) error {
	if !s.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	row, err := buildAnalysisRow(record)
	if err != nil {
		return errors.NewStoreError(errors.ErrCodeStoreFailed,
			"Failed to encode analysis record", err)
	}

	_, _, err = s.client.From(s.config.Table).Insert(row, false, "", "", "").Execute()
	if err != nil {
		s.logger.LogError(err, "Failed to insert analysis",
			"analysis_id", record.AnalysisID,
			"table", s.config.Table)
		return errors.NewStoreError(errors.ErrCodeStoreFailed,
			"Failed to insert analysis", err)
	}

	s.logger.Info("Analysis stored",
		"analysis_id", record.AnalysisID,
		"ats_score", record.Analysis.ATSScore)
	return nil
}

// UpdateEnhancement attaches the rewritten resume text to an existing analysis row
func (s *Service) UpdateEnhancement(ctx context.Context, analysisID, enhancedText string) error {
	if !s.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	row := map[string]any{
		"enhanced_text": enhancedText,
		"enhanced_at":   time.Now().UTC().Format(time.RFC3339),
	}

	_, _, err := s.client.From(s.config.Table).
		Update(row, "", "").
		Eq("analysis_id", analysisID).
		Execute()
	if err != nil {
		s.logger.LogError(err, "Failed to update enhancement",
			"analysis_id", analysisID,
			"table", s.config.Table)
		return errors.NewStoreError(errors.ErrCodeStoreFailed,
			"Failed to update enhancement", err)
	}

	s.logger.Info("Enhancement stored", "analysis_id", analysisID)
	return nil
}

// GetAnalysis loads a previously stored analysis by id
func (s *Service) GetAnalysis(ctx context.Context, analysisID string) (*types.AnalysisRecord, error) {
	if !s.Enabled() {
		return nil, errors.NewStoreError(errors.ErrCodeStoreFailed,
			"Analysis store is disabled", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, _, err := s.client.From(s.config.Table).
		Select("*", "", false).
		Eq("analysis_id", analysisID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeStoreFailed,
			"Failed to query analysis", err)
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeStoreFailed,
			"Failed to decode analysis rows", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewStoreError(errors.ErrCodeStoreFailed,
			"Analysis not found: "+analysisID, nil)
	}

	record, err := mapRowToRecord(rows[0])
	if err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeStoreFailed,
			"Failed to decode analysis record", err)
	}
	return record, nil
}

// buildAnalysisRow flattens an AnalysisRecord into a Supabase row map. The
// analysis payload is stored as a JSONB column.
func buildAnalysisRow(record types.AnalysisRecord) (map[string]any, error) {
	analysisJSON, err := json.Marshal(record.Analysis)
	if err != nil {
		return nil, err
	}

	row := map[string]any{
		"analysis_id": record.AnalysisID,
		"resume_text": record.ResumeText,
		"analysis":    json.RawMessage(analysisJSON),
		"created_at":  record.CreatedAt,
	}
	if record.JobDescription != "" {
		row["job_description"] = record.JobDescription
	}
	return row, nil
}

// mapRowToRecord rebuilds an AnalysisRecord from a Supabase row
func mapRowToRecord(row map[string]json.RawMessage) (*types.AnalysisRecord, error) {
	record := &types.AnalysisRecord{}

	if raw, ok := row["analysis_id"]; ok {
		if err := json.Unmarshal(raw, &record.AnalysisID); err != nil {
			return nil, err
		}
	}
	if raw, ok := row["resume_text"]; ok {
		if err := json.Unmarshal(raw, &record.ResumeText); err != nil {
			return nil, err
		}
	}
	if raw, ok := row["job_description"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &record.JobDescription); err != nil {
			return nil, err
		}
	}
	if raw, ok := row["analysis"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &record.Analysis); err != nil {
			return nil, err
		}
	}
	if raw, ok := row["created_at"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &record.CreatedAt); err != nil {
			return nil, err
		}
	}

	return record, nil
}
