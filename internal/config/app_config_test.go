package config_test

import (
	"path/filepath"
	"testing"

	"github.com/temirov/treeline/internal/config"
)

// TestLoadApplicationConfigurationExplicitFile verifies decoding of an explicit configuration file.
func TestLoadApplicationConfigurationExplicitFile(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()
	configurationPath := filepath.Join(workingDirectory, "custom.yaml")
	writeTestFile(testingHandle, configurationPath, `tree:
  folders: 2
  files: 3
  clipboard: true
  tokens:
    enabled: true
    model: gpt-4o
  paths:
    exclude:
      - vendor
      - vendor
    use_gitignore: false
`)

	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configurationPath,
	})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration failed: %v", loadError)
	}

	if configuration.Tree.Folders == nil || *configuration.Tree.Folders != 2 {
		testingHandle.Errorf("unexpected folders cap: %v", configuration.Tree.Folders)
	}
	if configuration.Tree.Files == nil || *configuration.Tree.Files != 3 {
		testingHandle.Errorf("unexpected files cap: %v", configuration.Tree.Files)
	}
	if configuration.Tree.Clipboard == nil || !*configuration.Tree.Clipboard {
		testingHandle.Error("expected clipboard default to be enabled")
	}
	if configuration.Tree.Tokens.Enabled == nil || !*configuration.Tree.Tokens.Enabled {
		testingHandle.Error("expected tokens default to be enabled")
	}
	if configuration.Tree.Tokens.Model != "gpt-4o" {
		testingHandle.Errorf("unexpected tokenizer model: %q", configuration.Tree.Tokens.Model)
	}
	if len(configuration.Tree.Paths.Exclude) != 1 || configuration.Tree.Paths.Exclude[0] != "vendor" {
		testingHandle.Errorf("expected deduplicated exclude list, got %v", configuration.Tree.Paths.Exclude)
	}
	if configuration.Tree.Paths.UseGitignore == nil || *configuration.Tree.Paths.UseGitignore {
		testingHandle.Error("expected use_gitignore to be disabled")
	}
}

// TestApplicationConfigurationMerge verifies that overrides replace base values per field.
func TestApplicationConfigurationMerge(testingHandle *testing.T) {
	baseFolders := 1
	overrideFolders := 4
	baseClipboard := false
	overrideTokens := true

	base := config.ApplicationConfiguration{
		Tree: config.SnapshotCommandConfiguration{
			Folders:   &baseFolders,
			Clipboard: &baseClipboard,
			Paths:     config.PathConfiguration{Exclude: []string{"vendor"}},
		},
	}
	override := config.ApplicationConfiguration{
		Tree: config.SnapshotCommandConfiguration{
			Folders: &overrideFolders,
			Tokens:  config.TokenConfiguration{Enabled: &overrideTokens, Model: "gpt-4o"},
			Paths:   config.PathConfiguration{Exclude: []string{"dist"}},
		},
	}

	merged := base.Merge(override)
	if merged.Tree.Folders == nil || *merged.Tree.Folders != overrideFolders {
		testingHandle.Errorf("expected folders override, got %v", merged.Tree.Folders)
	}
	if merged.Tree.Clipboard == nil || *merged.Tree.Clipboard {
		testingHandle.Error("expected base clipboard value to survive")
	}
	if merged.Tree.Tokens.Enabled == nil || !*merged.Tree.Tokens.Enabled {
		testingHandle.Error("expected tokens override to apply")
	}
	expectedExcludes := []string{"vendor", "dist"}
	if len(merged.Tree.Paths.Exclude) != len(expectedExcludes) {
		testingHandle.Fatalf("unexpected exclude list: %v", merged.Tree.Paths.Exclude)
	}
	for position, pattern := range expectedExcludes {
		if merged.Tree.Paths.Exclude[position] != pattern {
			testingHandle.Errorf("expected %q at position %d, got %q", pattern, position, merged.Tree.Paths.Exclude[position])
		}
	}
}
