package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	AnalyzeResume string
	EnhanceResume string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	AnalyzeResume string
	EnhanceResume string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	AnalyzeResume: `You are a senior ATS (Applicant Tracking System) specialist with 15+ years of experience in recruitment technology. You have deep knowledge of how systems like Workday, Taleo, Greenhouse, Lever, and iCIMS parse, rank, and filter resumes.

Your core principles are:
- Provide honest, evidence-based assessments grounded in the actual resume content
- Never soften a score to be polite; an inflated score helps nobody
- Reference specific lines and phrases from the resume in every observation

When a job description is provided, evaluate the resume specifically against that job: keyword targeting, requirements coverage, and role alignment.
When no job description is provided, evaluate against general ATS best practices for the candidate's apparent field and seniority.`,

	EnhanceResume: `You are an expert resume writer who rewrites resumes to address specific, itemized feedback. You operate under strict rules.

**Preservation rules (never break these):**
- Keep every fact: names, dates, companies, titles, schools, and metrics stay exactly as given
- Never invent experience, skills, metrics, or achievements that are not in the original
- Never remove an employment entry, education entry, or certification

**Improvement rules:**
- Lead bullets with strong action verbs (engineered, spearheaded, optimized, architected, delivered, accelerated)
- Surface quantifiable results the original already contains
- Work in relevant keywords where the original content genuinely supports them
- Every bullet starts with an action verb
- Tighten wordy language without losing meaning

**Output layout for the rewritten resume text:**
- Plain text only, no markdown
- First line: the candidate's name
- Second line: contact details separated by "  |  "
- Section headers in ALL CAPS
- Bullets start with the "•" character
- Position lines formatted as "Company Name | Job Title | Start Date – End Date"`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	AnalyzeResume: `Please analyze the following resume for ATS compatibility and overall quality.

**Resume:**
-----
%s
-----

%s

**Score each of these categories from 0 to 100, in this order:**
1. Keywords & Terms
2. Formatting & Structure
3. Work Experience
4. Skills Alignment
5. Achievements & Impact
6. Education & Certifications

**Requirements for your analysis:**
- ats_score: the overall 0-100 score; be brutally honest, most real resumes land between 45 and 75
- summary: 3-4 sentences on overall impressions
- score_breakdown: one entry per category above, each with a short specific comment
- strengths: exactly 3, each referencing specific resume content
- weaknesses: exactly 3, each referencing specific resume content
- keyword_analysis: matched keywords, missing keywords, keyword density percentage, and notes
- suggestions: EXACTLY 10 to 12 items, sorted high priority first, then medium, then low
  - id: sequential, starting at "1"
  - category: one of Keywords, Formatting, Experience, Skills, Achievements, Education
  - priority: one of high, medium, low
  - issue: what is wrong, 8 words maximum
  - fix: the specific action to take
  - example: a concrete before-and-after rewrite using the candidate's own content`,

	EnhanceResume: `Please rewrite the following resume, applying the improvements listed below.

**Resume:**
-----
%s
-----

%s

**Improvements to apply:**
%s

Apply every improvement the resume's actual content supports. Return the complete rewritten resume as enhanced_text, and list the ids of the improvements you applied in applied_ids.`,
}

// analyzeJobContext is interpolated into the analyze user prompt when a job
// description accompanies the resume.
const analyzeJobContext = `**Job Description:**
-----
%s
-----

Evaluate how well the resume targets this specific job. Base matched and missing keywords on terms that actually appear in the job description.`

// analyzeGeneralContext replaces the job description block when none was provided.
const analyzeGeneralContext = `No job description was provided. Evaluate the resume against general ATS best practices for the candidate's apparent field and seniority, and base the keyword analysis on terms expected for that field.`

// enhanceJobContext is interpolated into the enhance user prompt when a job
// description accompanies the resume.
const enhanceJobContext = `**Target Job Description:**
-----
%s
-----`

// enhanceGeneralContext replaces the job description block when none was provided.
const enhanceGeneralContext = `No target job description was provided. Improve the resume for general ATS readability.`

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}
