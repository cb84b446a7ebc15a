package utils

// Ignore file constants used across the project.
const (
	// IgnoreFileName is the name of the project's ignore file.
	IgnoreFileName = ".ignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// DefaultCommentMarker introduces comment lines in ignore files.
	DefaultCommentMarker = "#"
)

// Configuration file constants.
const (
	// ConfigFileName is the name of the treeline configuration file.
	ConfigFileName = ".treeline.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".treeline"
)

// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage reports a fatal application error.
const ApplicationExecutionFailedMessage = "application execution failed"
