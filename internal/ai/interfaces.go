package ai

import (
	"context"

	"resumeiq/internal/types"
)

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	AnalyzeResume(ctx context.Context, input types.AnalyzeResumeInput) (types.AnalyzeResumeOutput, *TokenUsage, error)
	EnhanceResume(ctx context.Context, input types.EnhanceResumeInput) (types.EnhanceResumeOutput, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// SchemaBuilder interface for building AI request schemas
type SchemaBuilder interface {
	BuildAnalyzeSchema() any
	BuildEnhanceSchema() any
}

// PromptBuilder interface for building AI prompts
type PromptBuilder interface {
	BuildAnalyzePrompt(resumeText, jobDescription string) string
	BuildEnhancePrompt(resumeText, jobDescription string, suggestions []types.Suggestion) string
}
