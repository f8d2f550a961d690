package cli

import (
	"fmt"
	"os"
	"strings"

	"resumeiq/internal/common"
	"resumeiq/internal/extract"
	"resumeiq/internal/layout"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [resume-file]",
	Short: "Render a resume as a styled PDF",
	Long: `Render a resume as a professionally styled PDF document.
The input may be a plain-text file or a previously enhanced resume. Lines are
classified into name, contact, section headers, entries, and bullets, then laid
out on US Letter pages with consistent typography.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var renderOutputFile string

func init() {
	renderCmd.Flags().StringVarP(&renderOutputFile, "output", "o", "", "Output PDF path (default: input name with .pdf extension)")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	inputFile := args[0]
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	text, err := extract.Extract(inputFile, data)
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	logger.Info("Starting resume rendering",
		"input_file", inputFile,
		"resume_chars", len(text))

	pdfBytes, err := layout.Render(text)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}

	outputFile := renderOutputFile
	if outputFile == "" {
		base := strings.TrimSuffix(inputFile, ".txt")
		base = strings.TrimSuffix(base, ".docx")
		base = strings.TrimSuffix(base, ".doc")
		outputFile = base + ".pdf"
	}
	if outputFile == inputFile {
		return fmt.Errorf("output file would overwrite input file: %s", outputFile)
	}

	fileProcessor := common.NewFileProcessor(logger)
	if err := fileProcessor.WriteFile(outputFile, string(pdfBytes)); err != nil {
		return err
	}

	logger.Info("Resume rendering completed successfully",
		"output_file", outputFile,
		"pdf_bytes", len(pdfBytes))
	return nil
}
