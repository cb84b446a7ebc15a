// Package commands contains the core snapshot construction logic.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/treeline/internal/match"
	"github.com/temirov/treeline/internal/types"
	"github.com/temirov/treeline/internal/utils"
)

const (
	// warningSkipSubdirMessage is logged when a subdirectory cannot be enumerated.
	warningSkipSubdirMessage = "skipping unreadable subdirectory"
	// warningSkipCycleMessage is logged when a directory resolves to an already-expanded location.
	warningSkipCycleMessage = "skipping already-visited directory"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorRootMissingFormat is used when the snapshot root does not exist.
	errorRootMissingFormat = "path %s does not exist"
	// errorRootNotDirectoryFormat is used when the snapshot root is not a directory.
	errorRootNotDirectoryFormat = "path %s is not a directory"
	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// walkFrame is one pending directory expansion on the explicit work stack.
type walkFrame struct {
	node        *types.Node
	path        string
	folderDepth int
}

// Build walks the directory at rootDirectoryPath and returns the snapshot
// root node. The walk uses an explicit work stack rather than native
// recursion, so arbitrarily deep directory trees cannot overflow the call
// stack. Entries matched by the ignore patterns are skipped; a directory
// that cannot be enumerated due to permissions is skipped with a diagnostic
// while the walk continues elsewhere. Any other enumeration failure aborts
// the build. Symbolic links to directories are followed; a directory whose
// resolved path was already expanded is skipped, so link cycles terminate.
// A broken symlink stays a leaf.
func (snapshotBuilder *SnapshotBuilder) Build(rootDirectoryPath string) (*types.Node, error) {
	if validationError := snapshotBuilder.Depth.Validate(); validationError != nil {
		return nil, validationError
	}

	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	rootInformation, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		if os.IsNotExist(rootStatError) {
			return nil, fmt.Errorf(errorRootMissingFormat, rootDirectoryPath)
		}
		return nil, rootStatError
	}
	if !rootInformation.IsDir() {
		return nil, fmt.Errorf(errorRootNotDirectoryFormat, rootDirectoryPath)
	}

	rootNode := types.NewDirectoryNode(filepath.Base(absoluteRootPath))
	visitedDirectories := map[string]struct{}{}
	if resolvedRoot, resolveError := filepath.EvalSymlinks(absoluteRootPath); resolveError == nil {
		visitedDirectories[resolvedRoot] = struct{}{}
	}

	workStack := []walkFrame{{node: rootNode, path: absoluteRootPath, folderDepth: 0}}
	for len(workStack) > 0 {
		currentFrame := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		directoryEntries, readDirectoryError := os.ReadDir(currentFrame.path)
		if readDirectoryError != nil {
			if errors.Is(readDirectoryError, fs.ErrPermission) {
				snapshotBuilder.logger().Warn(warningSkipSubdirMessage,
					zap.String("path", currentFrame.path),
					zap.Error(readDirectoryError))
				continue
			}
			return nil, fmt.Errorf(errorReadDirectoryFormat, currentFrame.path, readDirectoryError)
		}

		for _, directoryEntry := range directoryEntries {
			childPath := filepath.Join(currentFrame.path, directoryEntry.Name())
			relativeChildPath := utils.RelativePathOrSelf(childPath, absoluteRootPath)
			isDirectory := directoryEntry.IsDir()
			if !isDirectory && directoryEntry.Type()&fs.ModeSymlink != 0 {
				// A symlink to a directory walks like a directory; the visited
				// set below keeps link cycles from being expanded twice.
				if targetInformation, targetStatError := os.Stat(childPath); targetStatError == nil {
					isDirectory = targetInformation.IsDir()
				}
			}
			if match.ShouldIgnore(relativeChildPath, isDirectory, snapshotBuilder.IgnorePatterns) {
				continue
			}

			if isDirectory {
				childDepth := currentFrame.folderDepth + 1
				if snapshotBuilder.Depth.Folders > 0 && childDepth >= snapshotBuilder.Depth.Folders {
					continue
				}
				resolvedChildPath, resolveError := filepath.EvalSymlinks(childPath)
				if resolveError == nil {
					if _, alreadyVisited := visitedDirectories[resolvedChildPath]; alreadyVisited {
						snapshotBuilder.logger().Warn(warningSkipCycleMessage,
							zap.String("path", childPath))
						continue
					}
					visitedDirectories[resolvedChildPath] = struct{}{}
				}
				childNode := types.NewDirectoryNode(directoryEntry.Name())
				currentFrame.node.AttachChild(childNode)
				workStack = append(workStack, walkFrame{node: childNode, path: childPath, folderDepth: childDepth})
			} else {
				if snapshotBuilder.Depth.Files > 0 && currentFrame.folderDepth >= snapshotBuilder.Depth.Files {
					continue
				}
				currentFrame.node.AttachChild(types.NewFileNode(directoryEntry.Name()))
			}
		}
		currentFrame.node.SortChildren()
	}

	return rootNode, nil
}
