package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"resumeiq/internal/ai"
	"resumeiq/internal/common"
	"resumeiq/internal/types"

	"github.com/spf13/cobra"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [resume-file] [analysis-file]",
	Short: "Rewrite a resume using analysis suggestions",
	Long: `Rewrite a resume by applying the suggestions from a previous analysis.
The command takes two arguments: the path to the plain-text resume file and
the path to an analysis file produced by 'analyze --format json'. All facts,
dates, and names in the original resume are preserved.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if enhanceConfig.OutputFormat == "" {
			enhanceConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(enhanceConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runEnhance,
}

var (
	enhanceConfig  common.CommandConfig
	enhanceJobFile string
)

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	enhanceCmd.Flags().StringVar(&enhanceConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	enhanceCmd.Flags().StringVarP(&enhanceJobFile, "job-description", "j", "", "Path to a target job description file")

	// Add completion for format flag
	_ = enhanceCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runEnhance(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for enhance operation
	enhanceAIConfig := cfg.GetEnhanceConfig()
	aiService, err := ai.NewService(&enhanceAIConfig, "enhance", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	// Read the optional job description up front so createInput can close over it
	var jobDescription string
	if enhanceJobFile != "" {
		fileProcessor := common.NewFileProcessor(logger)
		jobDescription, err = fileProcessor.ReadFile(enhanceJobFile)
		if err != nil {
			return err
		}
	}

	createInput := func(contents []string) (types.EnhanceResumeInput, error) {
		if len(contents) != 2 {
			return types.EnhanceResumeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}

		var analysis types.AnalyzeResumeOutput
		if err := json.Unmarshal([]byte(contents[1]), &analysis); err != nil {
			return types.EnhanceResumeInput{}, fmt.Errorf("analysis file is not valid analyze JSON output: %w", err)
		}

		return types.EnhanceResumeInput{
			ResumeText:     contents[0],
			JobDescription: jobDescription,
			Suggestions:    analysis.Suggestions,
		}, nil
	}

	logDetails := func(input types.EnhanceResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume enhancement",
			"resume_chars", len(input.ResumeText),
			"suggestions", len(input.Suggestions),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	enhanceOperation := func(ctx context.Context, input types.EnhanceResumeInput) (types.EnhanceResumeOutput, *ai.TokenUsage, error) {
		return aiService.Provider.EnhanceResume(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		enhanceConfig,
		args,
		createInput,
		enhanceOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to enhance resume: %w", err)
	}
	logger.Info("Resume enhancement completed successfully")
	return nil
}
