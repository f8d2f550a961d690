package cli

import (
	"fmt"
	"os"

	"resumeiq/internal/ai"
	"resumeiq/internal/common"
	"resumeiq/internal/extract"
	"resumeiq/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume for ATS compatibility",
	Long: `Analyze a resume for ATS (Applicant Tracking System) compatibility and
overall quality. The resume can be a PDF, DOCX, DOC, or plain text file;
text is extracted automatically before analysis.

The analysis includes:
- Overall ATS score with a category breakdown
- Strengths and weaknesses grounded in the resume content
- Keyword analysis, optionally against a target job description
- Prioritized, actionable improvement suggestions`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var (
	analyzeConfig  common.CommandConfig
	analyzeJobFile string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job-description", "j", "", "Path to a job description file to analyze against")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for analyze operation
	analyzeAIConfig := cfg.GetAnalyzeConfig()
	aiService, err := ai.NewService(&analyzeAIConfig, "analyze", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	// Resume files may be binary documents, so extraction replaces a plain read
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	resumeText, err := extract.Extract(args[0], data)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	input := types.AnalyzeResumeInput{ResumeText: resumeText}
	if analyzeJobFile != "" {
		fileProcessor := common.NewFileProcessor(logger)
		jobDescription, err := fileProcessor.ReadFile(analyzeJobFile)
		if err != nil {
			return err
		}
		input.JobDescription = jobDescription
	}

	logger.Info("Starting resume analysis",
		"resume_chars", len(input.ResumeText),
		"has_job_description", input.JobDescription != "",
		"output_format", analyzeConfig.OutputFormat)

	result, tokenUsage, err := aiService.Provider.AnalyzeResume(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	if tokenUsage != nil {
		logger.Info("AI token usage",
			"input_tokens", tokenUsage.InputTokens,
			"output_tokens", tokenUsage.OutputTokens,
			"total_tokens", tokenUsage.TotalTokens)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(result, analyzeConfig); err != nil {
		return err
	}

	logger.Info("Resume analysis completed successfully", "ats_score", result.ATSScore)
	return nil
}
