package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/treeline/internal/config"
	"github.com/temirov/treeline/internal/utils"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestParseIgnoreFileFiltersCommentsAndBlanks verifies comment and blank line filtering.
func TestParseIgnoreFileFiltersCommentsAndBlanks(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	ignoreFilePath := filepath.Join(rootDirectory, utils.IgnoreFileName)
	writeTestFile(testingHandle, ignoreFilePath, "# comment\n\n*.log\n  build/  \n!keep.log\n")

	patternList, parseError := config.ParseIgnoreFile(ignoreFilePath, "#")
	if parseError != nil {
		testingHandle.Fatalf("ParseIgnoreFile failed: %v", parseError)
	}
	expectedPatterns := []string{"*.log", "build/", "!keep.log"}
	if !reflect.DeepEqual(patternList, expectedPatterns) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", patternList, expectedPatterns)
	}
}

// TestParseIgnoreFileCustomCommentMarker verifies a non-default comment marker.
func TestParseIgnoreFileCustomCommentMarker(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	ignoreFilePath := filepath.Join(rootDirectory, "patterns.txt")
	writeTestFile(testingHandle, ignoreFilePath, "; skipped\n#kept\n*.tmp\n")

	patternList, parseError := config.ParseIgnoreFile(ignoreFilePath, ";")
	if parseError != nil {
		testingHandle.Fatalf("ParseIgnoreFile failed: %v", parseError)
	}
	expectedPatterns := []string{"#kept", "*.tmp"}
	if !reflect.DeepEqual(patternList, expectedPatterns) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", patternList, expectedPatterns)
	}
}

// TestParseIgnoreFileMissingFileFails verifies that an absent ignore file is an error.
func TestParseIgnoreFileMissingFileFails(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	missingPath := filepath.Join(rootDirectory, "absent.ignore")

	if _, parseError := config.ParseIgnoreFile(missingPath, "#"); parseError == nil {
		testingHandle.Fatal("expected error for missing ignore file")
	}
}

// TestParseIgnoreFileDirectoryFails verifies that a directory path is rejected.
func TestParseIgnoreFileDirectoryFails(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()

	if _, parseError := config.ParseIgnoreFile(rootDirectory, "#"); parseError == nil {
		testingHandle.Fatal("expected error for non-regular ignore file")
	}
}

// TestLoadCombinedIgnorePatterns verifies aggregation of .ignore, .gitignore, and exclusions.
func TestLoadCombinedIgnorePatterns(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.IgnoreFileName), "*.log\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.GitIgnoreFileName), "dist/\n*.log\n")

	patternList, loadError := config.LoadCombinedIgnorePatterns(rootDirectory, []string{"vendor", ""}, true, true, false)
	if loadError != nil {
		testingHandle.Fatalf("LoadCombinedIgnorePatterns failed: %v", loadError)
	}
	expectedPatterns := []string{"*.log", "dist/", utils.GitDirectoryName + "/", "vendor"}
	if !reflect.DeepEqual(patternList, expectedPatterns) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", patternList, expectedPatterns)
	}
}

// TestLoadCombinedIgnorePatternsMissingFilesTolerated verifies that absent ignore files load as empty.
func TestLoadCombinedIgnorePatternsMissingFilesTolerated(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()

	patternList, loadError := config.LoadCombinedIgnorePatterns(rootDirectory, nil, true, true, true)
	if loadError != nil {
		testingHandle.Fatalf("LoadCombinedIgnorePatterns failed: %v", loadError)
	}
	if len(patternList) != 0 {
		testingHandle.Fatalf("expected no patterns, got %v", patternList)
	}
}
