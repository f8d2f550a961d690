package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumeiq/internal/types"
)

func sampleAnalysis() types.AnalyzeResumeOutput {
	return types.AnalyzeResumeOutput{
		ATSScore: 64,
		Summary:  "Readable resume with weak keyword coverage.",
		ScoreBreakdown: []types.CategoryScore{
			{Category: "Keywords & Terms", Score: 50, MaxScore: 100, Comments: "Few role-specific terms."},
			{Category: "Formatting & Structure", Score: 80, MaxScore: 100, Comments: "Clean single column."},
		},
		Strengths:  []string{"Clear section headers", "Quantified achievements", "Consistent dates"},
		Weaknesses: []string{"Missing skills section", "Generic summary", "No certifications listed"},
		KeywordAnalysis: types.KeywordAnalysis{
			MatchedKeywords: []string{"Go", "PostgreSQL"},
			MissingKeywords: []string{"Kubernetes"},
			DensityPct:      3.2,
			Notes:           "Low density for a senior role.",
		},
		Suggestions: []types.Suggestion{
			{ID: "1", Category: "Keywords", Priority: "high", Issue: "Missing Kubernetes experience keywords", Fix: "Mention the EKS migration project", Example: "Migrated 40 services to EKS"},
		},
	}
}

func TestAnalyzeTextFormatter(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleAnalysis(), "text")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	for _, want := range []string{
		"Overall Score: 64/100",
		"Keywords & Terms: 50/100",
		"Matched: Go, PostgreSQL",
		"Keyword Density: 3.2%",
		"[Keywords/high] Missing Kubernetes experience keywords",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeMarkdownFormatter(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleAnalysis(), "markdown")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	if !strings.Contains(out, "# ATS Analysis") {
		t.Errorf("Markdown output missing title:\n%s", out)
	}
	if !strings.Contains(out, "| Keywords & Terms | 50/100 |") {
		t.Errorf("Markdown output missing breakdown row:\n%s", out)
	}
}

func TestEnhanceFormatters(t *testing.T) {
	result := types.EnhanceResumeOutput{
		EnhancedText: "JANE DOE\njane@example.com  |  555-0100",
		AppliedIDs:   []string{"1", "3"},
	}

	text, err := GlobalRegistry.Format(result, "text")
	if err != nil {
		t.Fatalf("Format text: %v", err)
	}
	if !strings.Contains(text, "=== ENHANCED RESUME ===") || !strings.Contains(text, "1, 3") {
		t.Errorf("Unexpected text output:\n%s", text)
	}

	md, err := GlobalRegistry.Format(result, "markdown")
	if err != nil {
		t.Fatalf("Format markdown: %v", err)
	}
	if !strings.Contains(md, "# Enhanced Resume") || !strings.Contains(md, "- 3") {
		t.Errorf("Unexpected markdown output:\n%s", md)
	}
}

func TestJSONFormatterFallback(t *testing.T) {
	out, err := GlobalRegistry.Format(sampleAnalysis(), "json")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	var decoded types.AnalyzeResumeOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("JSON output does not parse: %v", err)
	}
	if decoded.ATSScore != 64 {
		t.Errorf("ATSScore = %d, want 64", decoded.ATSScore)
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleAnalysis(), "yaml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
