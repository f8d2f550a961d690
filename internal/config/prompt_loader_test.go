package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create test prompt files
	systemPromptContent := "Test system prompt for resume analysis"
	userPromptContent := "Test user prompt template: %s and %s"

	systemPromptFile := filepath.Join(tempDir, "system.analyze.md")
	userPromptFile := filepath.Join(tempDir, "user.analyze.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}

	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	// Create test config
	config := &Config{
		AI: AIConfig{
			Analyze: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						AnalyzeResumeFile: systemPromptFile,
					},
					UserPrompts: UserPrompts{
						AnalyzeResumeFile: userPromptFile,
					},
				},
			},
		},
	}

	// Test file loading
	err := config.loadPromptsFromFiles()
	if err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify content was loaded into global loadedPrompts
	loadedOps := GetPromptsForOperation("analyze")

	if loadedOps.SystemPrompts.AnalyzeResume != systemPromptContent {
		t.Errorf("Expected loaded system prompt content '%s', got '%s'",
			systemPromptContent, loadedOps.SystemPrompts.AnalyzeResume)
	}

	if loadedOps.UserPrompts.AnalyzeResume != userPromptContent {
		t.Errorf("Expected loaded user prompt content '%s', got '%s'",
			userPromptContent, loadedOps.UserPrompts.AnalyzeResume)
	}

	// Verify file paths are preserved (immutable design)
	if config.AI.Analyze.CustomPrompts.SystemPrompts.AnalyzeResumeFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}

	if config.AI.Analyze.CustomPrompts.UserPrompts.AnalyzeResumeFile != userPromptFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}

func TestValidatePromptFiles(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create a valid test file
	validFile := filepath.Join(tempDir, "valid.md")
	if err := os.WriteFile(validFile, []byte("Valid content"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	// Test with valid file
	config := &Config{
		AI: AIConfig{
			Enhance: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						EnhanceResumeFile: validFile,
					},
				},
			},
		},
	}

	err := config.validatePromptFiles()
	if err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	// Test with non-existent file
	config.AI.Enhance.CustomPrompts.SystemPrompts.EnhanceResumeFile = filepath.Join(tempDir, "nonexistent.md")

	err = config.validatePromptFiles()
	if err == nil {
		t.Error("Expected validation to fail for non-existent file")
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Test with valid file
	content := "Test prompt content"
	testFile := filepath.Join(tempDir, "test.md")
	if err := os.WriteFile(testFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	config := &Config{}

	loaded, err := config.loadPromptFromFile(testFile, "system", "analyzeResume")
	if err != nil {
		t.Fatalf("Failed to load prompt from file: %v", err)
	}
	if loaded != content {
		t.Errorf("Expected content '%s', got '%s'", content, loaded)
	}

	// Test with surrounding whitespace
	paddedFile := filepath.Join(tempDir, "padded.md")
	if err := os.WriteFile(paddedFile, []byte("\n  "+content+"  \n"), 0600); err != nil {
		t.Fatalf("Failed to create padded test file: %v", err)
	}

	loaded, err = config.loadPromptFromFile(paddedFile, "user", "enhanceResume")
	if err != nil {
		t.Fatalf("Failed to load padded prompt: %v", err)
	}
	if loaded != content {
		t.Errorf("Expected trimmed content '%s', got '%s'", content, loaded)
	}

	// Test with empty file
	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte("   \n  "), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}

	if _, err := config.loadPromptFromFile(emptyFile, "system", "analyzeResume"); err == nil {
		t.Error("Expected error for empty prompt file")
	}

	// Test with missing file
	if _, err := config.loadPromptFromFile(filepath.Join(tempDir, "missing.md"), "system", "analyzeResume"); err == nil {
		t.Error("Expected error for missing prompt file")
	}
}
