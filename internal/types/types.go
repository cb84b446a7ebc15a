// Package types defines every cross-package data structure used by the treeline tool.
package types

import "fmt"

const (
	// NodeTypeFile marks a leaf node backed by a regular file.
	NodeTypeFile = "file"
	// NodeTypeDirectory marks a node that owns an ordered child sequence.
	NodeTypeDirectory = "directory"

	// DirectorySuffix is the marker appended to directory names in textual encodings.
	DirectorySuffix = "/"
)

// errorNegativeDepthFormat reports a depth cap below zero.
const errorNegativeDepthFormat = "depth values must not be negative, got (%d, %d)"

// DepthPair bounds how deep directories and files are included.
// A value of zero means unlimited for that cap; the caps apply independently.
type DepthPair struct {
	Folders int
	Files   int
}

// UnlimitedDepth is the depth pair that applies no truncation.
var UnlimitedDepth = DepthPair{}

// Validate rejects depth pairs containing a negative value.
func (depth DepthPair) Validate() error {
	if depth.Folders < 0 || depth.Files < 0 {
		return fmt.Errorf(errorNegativeDepthFormat, depth.Folders, depth.Files)
	}
	return nil
}

// IsUnlimited reports whether both caps are zero.
func (depth DepthPair) IsUnlimited() bool {
	return depth.Folders == 0 && depth.Files == 0
}

// AllowsDirectory reports whether a directory at the given level may appear
// in encoded output. The root sits at level zero and is never filtered.
func (depth DepthPair) AllowsDirectory(level int) bool {
	return depth.Folders == 0 || level <= depth.Folders
}

// AllowsFile reports whether a leaf at the given level may appear in encoded output.
func (depth DepthPair) AllowsFile(level int) bool {
	return depth.Files == 0 || level < depth.Files
}
