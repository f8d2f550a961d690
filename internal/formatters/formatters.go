package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeiq/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalyzeResumeOutput", &AnalyzeTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalyzeResumeOutput", &AnalyzeMarkdownFormatter{})
	registry.RegisterFormatter("text", "EnhanceResumeOutput", &EnhanceTextFormatter{})
	registry.RegisterFormatter("markdown", "EnhanceResumeOutput", &EnhanceMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalyzeResumeOutput:
		return "AnalyzeResumeOutput"
	case types.EnhanceResumeOutput:
		return "EnhanceResumeOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalyzeTextFormatter handles text formatting for analysis results
type AnalyzeTextFormatter struct{}

func (atf *AnalyzeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n\n", result.ATSScore))
	output.WriteString("Summary:\n")
	output.WriteString(result.Summary)
	output.WriteString("\n\n")

	if len(result.ScoreBreakdown) > 0 {
		output.WriteString("=== SCORE BREAKDOWN ===\n")
		for _, category := range result.ScoreBreakdown {
			output.WriteString(fmt.Sprintf("%s: %d/100\n", category.Category, category.Score))
			if category.Comments != "" {
				output.WriteString("  ")
				output.WriteString(category.Comments)
				output.WriteString("\n")
			}
		}
		output.WriteString("\n")
	}

	if len(result.Strengths) > 0 {
		output.WriteString("Strengths:\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}
	if len(result.Weaknesses) > 0 {
		output.WriteString("Weaknesses:\n")
		for _, weakness := range result.Weaknesses {
			output.WriteString(fmt.Sprintf("- %s\n", weakness))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== KEYWORD ANALYSIS ===\n")
	if len(result.KeywordAnalysis.MatchedKeywords) > 0 {
		output.WriteString("Matched: ")
		output.WriteString(strings.Join(result.KeywordAnalysis.MatchedKeywords, ", "))
		output.WriteString("\n")
	}
	if len(result.KeywordAnalysis.MissingKeywords) > 0 {
		output.WriteString("Missing: ")
		output.WriteString(strings.Join(result.KeywordAnalysis.MissingKeywords, ", "))
		output.WriteString("\n")
	}
	output.WriteString(fmt.Sprintf("Keyword Density: %.1f%%\n", result.KeywordAnalysis.DensityPct))
	if result.KeywordAnalysis.Notes != "" {
		output.WriteString("Notes: ")
		output.WriteString(result.KeywordAnalysis.Notes)
		output.WriteString("\n")
	}
	output.WriteString("\n")

	if len(result.Suggestions) > 0 {
		output.WriteString("=== SUGGESTIONS ===\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. [%s/%s] %s\n", i+1, suggestion.Category, suggestion.Priority, suggestion.Issue))
			output.WriteString("   Fix: ")
			output.WriteString(suggestion.Fix)
			output.WriteString("\n")
			if suggestion.Example != "" {
				output.WriteString("   Example: ")
				output.WriteString(suggestion.Example)
				output.WriteString("\n")
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (atf *AnalyzeTextFormatter) SupportedType() string {
	return "AnalyzeResumeOutput"
}

// AnalyzeMarkdownFormatter handles markdown formatting for analysis results
type AnalyzeMarkdownFormatter struct{}

func (amf *AnalyzeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalyzeResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalyzeResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.ATSScore))
	output.WriteString("## Summary\n\n")
	output.WriteString(result.Summary)
	output.WriteString("\n\n")

	if len(result.ScoreBreakdown) > 0 {
		output.WriteString("## Score Breakdown\n\n")
		output.WriteString("| Category | Score | Comments |\n")
		output.WriteString("|----------|-------|----------|\n")
		for _, category := range result.ScoreBreakdown {
			output.WriteString(fmt.Sprintf("| %s | %d/100 | %s |\n", category.Category, category.Score, category.Comments))
		}
		output.WriteString("\n")
	}

	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}
	if len(result.Weaknesses) > 0 {
		output.WriteString("## Weaknesses\n\n")
		for _, weakness := range result.Weaknesses {
			output.WriteString(fmt.Sprintf("- %s\n", weakness))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Keyword Analysis\n\n")
	if len(result.KeywordAnalysis.MatchedKeywords) > 0 {
		output.WriteString("**Matched:** ")
		output.WriteString(strings.Join(result.KeywordAnalysis.MatchedKeywords, ", "))
		output.WriteString("\n\n")
	}
	if len(result.KeywordAnalysis.MissingKeywords) > 0 {
		output.WriteString("**Missing:** ")
		output.WriteString(strings.Join(result.KeywordAnalysis.MissingKeywords, ", "))
		output.WriteString("\n\n")
	}
	output.WriteString(fmt.Sprintf("**Keyword Density:** %.1f%%\n\n", result.KeywordAnalysis.DensityPct))
	if result.KeywordAnalysis.Notes != "" {
		output.WriteString(result.KeywordAnalysis.Notes)
		output.WriteString("\n\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("### %d. %s (%s, %s priority)\n\n", i+1, suggestion.Issue, suggestion.Category, suggestion.Priority))
			output.WriteString("**Fix:** ")
			output.WriteString(suggestion.Fix)
			output.WriteString("\n\n")
			if suggestion.Example != "" {
				output.WriteString("**Example:** ")
				output.WriteString(suggestion.Example)
				output.WriteString("\n\n")
			}
		}
	}

	return output.String(), nil
}

func (amf *AnalyzeMarkdownFormatter) SupportedType() string {
	return "AnalyzeResumeOutput"
}

// EnhanceTextFormatter handles text formatting for enhancement results
type EnhanceTextFormatter struct{}

func (etf *EnhanceTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EnhanceResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected EnhanceResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ENHANCED RESUME ===\n\n")
	output.WriteString(result.EnhancedText)
	output.WriteString("\n")

	if len(result.AppliedIDs) > 0 {
		output.WriteString("\n=== APPLIED IMPROVEMENTS ===\n")
		output.WriteString(strings.Join(result.AppliedIDs, ", "))
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (etf *EnhanceTextFormatter) SupportedType() string {
	return "EnhanceResumeOutput"
}

// EnhanceMarkdownFormatter handles markdown formatting for enhancement results
type EnhanceMarkdownFormatter struct{}

func (emf *EnhanceMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.EnhanceResumeOutput)
	if !ok {
		return "", fmt.Errorf("expected EnhanceResumeOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Enhanced Resume\n\n")
	output.WriteString("```\n")
	output.WriteString(result.EnhancedText)
	output.WriteString("\n```\n")

	if len(result.AppliedIDs) > 0 {
		output.WriteString("\n## Applied Improvements\n\n")
		for _, id := range result.AppliedIDs {
			output.WriteString(fmt.Sprintf("- %s\n", id))
		}
	}

	return output.String(), nil
}

func (emf *EnhanceMarkdownFormatter) SupportedType() string {
	return "EnhanceResumeOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
