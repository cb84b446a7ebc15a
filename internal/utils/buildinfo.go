package utils

import (
	"runtime/debug"
)

const unknownVersion = "unknown"

// GetApplicationVersion determines the application version from Go build info.
// Module-aware builds embed the version of the main module; development
// builds report it as unknown.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
