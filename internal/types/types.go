package types

// AnalyzeResumeInput represents the input for analyzing a resume
type AnalyzeResumeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// CategoryScore represents one scored category of the ATS breakdown
type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"` // 0-100
	MaxScore int    `json:"max_score"`
	Comments string `json:"comments"`
}

// KeywordAnalysis compares resume keywords against the job description
type KeywordAnalysis struct {
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	DensityPct      float64  `json:"density_pct"`
	Notes           string   `json:"notes"`
}

// Suggestion represents one actionable improvement for the resume
type Suggestion struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Priority string `json:"priority"` // "high", "medium", or "low"
	Issue    string `json:"issue"`
	Fix      string `json:"fix"`
	Example  string `json:"example"`
}

// AnalyzeResumeOutput represents the full ATS analysis of a resume
type AnalyzeResumeOutput struct {
	ATSScore        int             `json:"ats_score"` // Overall score 0-100
	Summary         string          `json:"summary"`
	ScoreBreakdown  []CategoryScore `json:"score_breakdown"`
	Strengths       []string        `json:"strengths"`
	Weaknesses      []string        `json:"weaknesses"`
	KeywordAnalysis KeywordAnalysis `json:"keyword_analysis"`
	Suggestions     []Suggestion    `json:"suggestions"`
}

// ScoreCategories is the fixed set of breakdown categories, in report order.
var ScoreCategories = []string{
	"Keywords & Terms",
	"Formatting & Structure",
	"Work Experience",
	"Skills Alignment",
	"Achievements & Impact",
	"Education & Certifications",
}

// EnhanceResumeInput represents the input for rewriting a resume
type EnhanceResumeInput struct {
	ResumeText     string       `json:"resumeText"`
	JobDescription string       `json:"jobDescription,omitempty"`
	Suggestions    []Suggestion `json:"suggestions"`
}

// EnhanceResumeOutput represents the rewritten resume text
type EnhanceResumeOutput struct {
	EnhancedText string   `json:"enhanced_text"`
	AppliedIDs   []string `json:"applied_ids,omitempty"`
}

// AnalysisRecord is the persisted form of a completed analysis
type AnalysisRecord struct {
	AnalysisID     string              `json:"analysis_id"`
	ResumeText     string              `json:"resume_text"`
	JobDescription string              `json:"job_description,omitempty"`
	Analysis       AnalyzeResumeOutput `json:"analysis"`
	CreatedAt      string              `json:"created_at"`
}
