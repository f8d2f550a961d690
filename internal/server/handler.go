package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resumeiq/internal/ai"
	"resumeiq/internal/extract"
	"resumeiq/internal/layout"
	"resumeiq/internal/observability"
	"resumeiq/internal/types"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// storeTimeout bounds the fire-and-forget persistence goroutines
const storeTimeout = 15 * time.Second

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeiq.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		// Parse multipart form; the memory threshold only controls spill-to-disk
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid multipart form", err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("resume_file")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume file", "resume_file form field is required", http.StatusBadRequest)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.Warn("Failed to close uploaded file", "error", err)
			}
		}()

		if s.MaxRequestSize > 0 && header.Size > s.MaxRequestSize {
			err := fmt.Errorf("resume file too large: %d bytes", header.Size)
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume file too large",
				fmt.Sprintf("resume_file exceeds size limit of %d bytes", s.MaxRequestSize),
				http.StatusRequestEntityTooLarge)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to read resume file", err.Error(), http.StatusBadRequest)
			return
		}

		metrics := om.GetMetrics()

		resumeText, err := extract.Extract(header.Filename, data)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			metrics.RecordBusinessMetric(ctx, "extraction_failed", false, om,
				attribute.String("filename", header.Filename))
			writeErrorResponse(w, "Failed to extract resume text", err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if strings.TrimSpace(resumeText) == "" {
			err := fmt.Errorf("empty resume text after extraction")
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "extraction_failed", false, om,
				attribute.String("filename", header.Filename))
			writeErrorResponse(w, "Empty resume", "no text could be extracted from the uploaded file", http.StatusUnprocessableEntity)
			return
		}

		jobDescription := r.FormValue("job_description")

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.Int("request.job_length", len(jobDescription)),
			attribute.Bool("request.has_job_description", jobDescription != ""),
			attribute.String("operation", "analyze"),
		)

		input := types.AnalyzeResumeInput{
			ResumeText:     resumeText,
			JobDescription: jobDescription,
		}

		// Create AI service for analyze operation
		analyzeConfig := s.AppConfig.GetAnalyzeConfig()
		aiService, err := ai.NewService(&analyzeConfig, "analyze", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		// Track AI operation with observability and token usage
		var result types.AnalyzeResumeOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "analyze", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.Provider.AnalyzeResume(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
			return
		}

		analysisID := uuid.NewString()
		s.persistAnalysis(types.AnalysisRecord{
			AnalysisID:     analysisID,
			ResumeText:     resumeText,
			JobDescription: jobDescription,
			Analysis:       result,
			CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		})

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true, om,
			attribute.Int("ats.score", result.ATSScore),
			attribute.Int("suggestions_count", len(result.Suggestions)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("analysis.id", analysisID),
			attribute.Int("ats.score", result.ATSScore),
			attribute.Int("suggestions_count", len(result.Suggestions)),
		)

		response := AnalyzeResponse{
			AnalysisID: analysisID,
			ResumeText: resumeText,
			Analysis:   result,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createEnhanceHandler wraps the enhance handler with observability
func (s *Server) createEnhanceHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeiq.api")
		ctx, span := tracer.Start(ctx, "api.enhance")
		defer span.End()

		var req EnhanceRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// A request may carry just an analysisId and have the stored
		// analysis fill in the rest.
		if strings.TrimSpace(req.ResumeText) == "" && req.AnalysisID != "" && s.Store.Enabled() {
			record, lookupErr := s.Store.GetAnalysis(ctx, req.AnalysisID)
			if lookupErr != nil {
				span.RecordError(lookupErr)
				writeErrorResponse(w, "Analysis not found", lookupErr.Error(), http.StatusNotFound)
				return
			}
			req.ResumeText = record.ResumeText
			if req.JobDescription == "" {
				req.JobDescription = record.JobDescription
			}
			if len(req.Suggestions) == 0 {
				req.Suggestions = record.Analysis.Suggestions
			}
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if len(req.Suggestions) == 0 {
			err := fmt.Errorf("missing suggestions")
			span.RecordError(err)
			writeErrorResponse(w, "Missing suggestions", "suggestions field must contain at least one improvement", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.suggestions_count", len(req.Suggestions)),
			attribute.String("operation", "enhance"),
		)

		input := types.EnhanceResumeInput{
			ResumeText:     req.ResumeText,
			JobDescription: req.JobDescription,
			Suggestions:    req.Suggestions,
		}

		// Create AI service for enhance operation
		enhanceConfig := s.AppConfig.GetEnhanceConfig()
		aiService, err := ai.NewService(&enhanceConfig, "enhance", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.EnhanceResumeOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "enhance", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.Provider.EnhanceResume(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "resume_enhanced", false, om)
			writeErrorResponse(w, "Failed to enhance resume", err.Error(), http.StatusInternalServerError)
			return
		}

		if req.AnalysisID != "" {
			s.persistEnhancement(req.AnalysisID, result.EnhancedText)
		}

		metrics.RecordBusinessMetric(ctx, "resume_enhanced", true, om,
			attribute.Int("output.enhanced_length", len(result.EnhancedText)),
			attribute.Int("output.applied_count", len(result.AppliedIDs)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.enhanced_length", len(result.EnhancedText)),
			attribute.Int("response.applied_count", len(result.AppliedIDs)),
		)

		response := EnhanceResponse{
			AnalysisID:   req.AnalysisID,
			EnhancedText: result.EnhancedText,
			AppliedIDs:   result.AppliedIDs,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRenderHandler wraps the render handler with observability
func (s *Server) createRenderHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeiq.api")
		ctx, span := tracer.Start(ctx, "api.render")
		defer span.End()

		var req RenderRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "text field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.text_length", len(req.Text)),
			attribute.String("operation", "render"),
		)

		metrics := om.GetMetrics()

		start := time.Now()
		pdfBytes, err := layout.Render(req.Text)
		duration := time.Since(start)
		metrics.RecordRenderDuration(ctx, duration.Seconds(), err == nil)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "render"))
			metrics.RecordBusinessMetric(ctx, "resume_rendered", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to render resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_rendered", true, om,
			attribute.Int("output.pdf_bytes", len(pdfBytes)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.pdf_bytes", len(pdfBytes)),
			attribute.Float64("render.duration_seconds", duration.Seconds()),
		)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, renderFilename(req.AnalysisID)))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
		if _, err := w.Write(pdfBytes); err != nil {
			span.RecordError(err)
			s.Logger.Warn("Failed to write PDF response", "error", err)
		}
	}
}

// renderFilename derives the download filename from an analysis id
func renderFilename(analysisID string) string {
	if len(analysisID) >= 8 {
		return fmt.Sprintf("enhanced_resume_%s.pdf", analysisID[:8])
	}
	return "enhanced_resume.pdf"
}

// persistAnalysis saves an analysis in the background. Storage failures are
// logged and never surfaced to the request.
func (s *Server) persistAnalysis(record types.AnalysisRecord) {
	if !s.Store.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.Store.SaveAnalysis(ctx, record); err != nil {
			s.Logger.LogError(err, "Failed to persist analysis",
				"analysis_id", record.AnalysisID)
		}
	}()
}

// persistEnhancement updates a stored analysis with its enhanced text
func (s *Server) persistEnhancement(analysisID, enhancedText string) {
	if !s.Store.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.Store.UpdateEnhancement(ctx, analysisID, enhancedText); err != nil {
			s.Logger.LogError(err, "Failed to persist enhancement",
				"analysis_id", analysisID)
		}
	}()
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
