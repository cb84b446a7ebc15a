// Package config loads ignore files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/treeline/internal/utils"
)

const (
	// gitDirectoryPattern represents the pattern that matches the Git directory.
	gitDirectoryPattern = utils.GitDirectoryName + "/"

	// errorIgnoreFileMissingFormat reports an absent ignore file.
	errorIgnoreFileMissingFormat = "ignore file %s does not exist"
	// errorIgnoreFileIrregularFormat reports an ignore path that is not a regular file.
	errorIgnoreFileIrregularFormat = "ignore file %s is not a regular file"
)

// ParseIgnoreFile reads the file at ignoreFilePath and returns its non-blank,
// non-comment lines as an ordered pattern list. Lines starting with the
// comment marker are skipped; an empty marker falls back to the default "#".
// The file must exist and be a regular file.
//
// #nosec G304
func ParseIgnoreFile(ignoreFilePath string, commentMarker string) ([]string, error) {
	if commentMarker == "" {
		commentMarker = utils.DefaultCommentMarker
	}

	fileInformation, statError := os.Stat(ignoreFilePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return nil, fmt.Errorf(errorIgnoreFileMissingFormat, ignoreFilePath)
		}
		return nil, statError
	}
	if !fileInformation.Mode().IsRegular() {
		return nil, fmt.Errorf(errorIgnoreFileIrregularFormat, ignoreFilePath)
	}

	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentMarker) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// loadOptionalIgnoreFile parses an ignore file, treating an absent file as empty.
func loadOptionalIgnoreFile(ignoreFilePath string) ([]string, error) {
	patterns, parseError := ParseIgnoreFile(ignoreFilePath, utils.DefaultCommentMarker)
	if parseError != nil {
		if _, statError := os.Stat(ignoreFilePath); os.IsNotExist(statError) {
			return nil, nil
		}
		return nil, parseError
	}
	return patterns, nil
}

// LoadCombinedIgnorePatterns aggregates patterns from .ignore and/or .gitignore files within a directory.
// The .git directory is excluded by default unless includeGit is true.
// The provided exclusionPatterns are appended to the result.
func LoadCombinedIgnorePatterns(absoluteDirectoryPath string, exclusionPatterns []string, useGitignore bool, useIgnoreFile bool, includeGit bool) ([]string, error) {
	var combinedPatterns []string

	if useIgnoreFile {
		ignoreFilePath := filepath.Join(absoluteDirectoryPath, utils.IgnoreFileName)
		ignoreFilePatterns, loadError := loadOptionalIgnoreFile(ignoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", utils.IgnoreFileName, absoluteDirectoryPath, loadError)
		}
		combinedPatterns = append(combinedPatterns, ignoreFilePatterns...)
	}

	if useGitignore {
		gitIgnoreFilePath := filepath.Join(absoluteDirectoryPath, utils.GitIgnoreFileName)
		gitIgnoreFilePatterns, loadError := loadOptionalIgnoreFile(gitIgnoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", utils.GitIgnoreFileName, absoluteDirectoryPath, loadError)
		}
		combinedPatterns = append(combinedPatterns, gitIgnoreFilePatterns...)
	}

	if !includeGit {
		combinedPatterns = append(combinedPatterns, gitDirectoryPattern)
	}

	deduplicatedFilePatterns := utils.DeduplicatePatterns(combinedPatterns)

	for _, pattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if !utils.ContainsString(deduplicatedFilePatterns, trimmedPattern) {
			deduplicatedFilePatterns = append(deduplicatedFilePatterns, trimmedPattern)
		}
	}

	return deduplicatedFilePatterns, nil
}
