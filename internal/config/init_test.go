package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/treeline/internal/config"
	"github.com/temirov/treeline/internal/utils"
)

// TestInitializeConfigurationLocal verifies that a local configuration file is written.
func TestInitializeConfigurationLocal(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()

	writtenPath, initializeError := config.InitializeConfiguration(config.InitOptions{
		Target:           config.InitTargetLocal,
		WorkingDirectory: workingDirectory,
	})
	if initializeError != nil {
		testingHandle.Fatalf("InitializeConfiguration failed: %v", initializeError)
	}
	expectedPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if writtenPath != expectedPath {
		testingHandle.Fatalf("unexpected path: got %s want %s", writtenPath, expectedPath)
	}
	content, readError := os.ReadFile(writtenPath)
	if readError != nil {
		testingHandle.Fatalf("failed to read configuration: %v", readError)
	}
	if !strings.Contains(string(content), "tree:") {
		testingHandle.Error("expected template to contain tree section")
	}
}

// TestInitializeConfigurationRefusesOverwrite verifies that an existing file is preserved without force.
func TestInitializeConfigurationRefusesOverwrite(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()
	existingPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	writeTestFile(testingHandle, existingPath, "tree: {}\n")

	if _, initializeError := config.InitializeConfiguration(config.InitOptions{
		Target:           config.InitTargetLocal,
		WorkingDirectory: workingDirectory,
	}); initializeError == nil {
		testingHandle.Fatal("expected error when configuration already exists")
	}

	if _, initializeError := config.InitializeConfiguration(config.InitOptions{
		Target:           config.InitTargetLocal,
		Force:            true,
		WorkingDirectory: workingDirectory,
	}); initializeError != nil {
		testingHandle.Fatalf("expected forced initialization to succeed: %v", initializeError)
	}
}
