// Package snapshot exposes the externally visible file tree aggregate:
// a root path label plus an exclusively owned node subtree, with name
// lookup, subtree extraction, and whole-tree dump/load operations.
package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/treeline/internal/commands"
	"github.com/temirov/treeline/internal/types"
)

const (
	pathSegmentSeparator  = "/"
	currentDirectoryToken = "."
	parentDirectoryToken  = ".."

	// errorAscendPastRootFormat reports a ".." with no previously resolved component to pop.
	errorAscendPastRootFormat = "cannot ascend above the subtree root: %q"
	// errorMissingComponentFormat reports an unresolvable path component.
	errorMissingComponentFormat = "path component %q not found"
	// errorDescendIntoLeafFormat reports descent through a non-directory component.
	errorDescendIntoLeafFormat = "path component %q is not a directory"
)

// FileTree is the façade over one snapshot: the root path names the
// originating location for reporting and reconstruction and is not
// re-validated after construction. The tree is built once by a walk or
// wholesale-replaced by a decode; it is never mutated incrementally.
type FileTree struct {
	RootPath string
	Root     *types.Node
}

// Build walks rootPath without depth limits and returns the snapshot façade.
func Build(rootPath string, ignorePatterns []string, logger *zap.Logger) (*FileTree, error) {
	return BuildWithDepth(rootPath, ignorePatterns, types.UnlimitedDepth, logger)
}

// BuildWithDepth walks rootPath applying the depth caps during construction.
func BuildWithDepth(rootPath string, ignorePatterns []string, depth types.DepthPair, logger *zap.Logger) (*FileTree, error) {
	snapshotBuilder := commands.SnapshotBuilder{
		IgnorePatterns: ignorePatterns,
		Depth:          depth,
		Logger:         logger,
	}
	rootNode, buildError := snapshotBuilder.Build(rootPath)
	if buildError != nil {
		return nil, buildError
	}
	return &FileTree{RootPath: rootPath, Root: rootNode}, nil
}

// searchFrame is one pending node of the iterative lookup traversal.
type searchFrame struct {
	node *types.Node
	path string
}

// Where returns the first full path at which target appears as an exact
// leaf or directory name, searching depth-first. Each level is probed with
// a binary search across all children; descent then follows the directory
// children in sorted alphabetical order regardless of the stored child
// order, so the search order is deterministic-alphabetical however the
// tree was built.
func (fileTree *FileTree) Where(target string) (string, bool) {
	workStack := []searchFrame{{node: fileTree.Root, path: fileTree.RootPath}}
	for len(workStack) > 0 {
		currentFrame := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		if _, found := currentFrame.node.FindChild(target); found {
			return filepath.Join(currentFrame.path, target), true
		}

		directoryNames := currentFrame.node.DirectoryChildNames()
		for nameIndex := len(directoryNames) - 1; nameIndex >= 0; nameIndex-- {
			directoryName := directoryNames[nameIndex]
			directoryNode, found := currentFrame.node.FindChild(directoryName)
			if !found {
				continue
			}
			workStack = append(workStack, searchFrame{
				node: directoryNode,
				path: filepath.Join(currentFrame.path, directoryName),
			})
		}
	}
	return "", false
}

// Subtree resolves relativePath against the tree and returns a façade whose
// root node is the same object as the resolved descendant: the result
// borrows the node subgraph rather than copying it. A "." component is a
// no-op; ".." pops one previously resolved component and fails when nothing
// remains to pop, so the extraction cannot ascend above the handed-in root.
// Landing exactly on the root is valid. A missing component fails with the
// offending segment named.
func (fileTree *FileTree) Subtree(relativePath string) (*FileTree, error) {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
	resolvedNodes := []*types.Node{fileTree.Root}

	for _, pathComponent := range strings.Split(normalizedPath, pathSegmentSeparator) {
		switch pathComponent {
		case "", currentDirectoryToken:
			continue
		case parentDirectoryToken:
			if len(resolvedNodes) == 1 {
				return nil, fmt.Errorf(errorAscendPastRootFormat, relativePath)
			}
			resolvedNodes = resolvedNodes[:len(resolvedNodes)-1]
		default:
			currentNode := resolvedNodes[len(resolvedNodes)-1]
			if !currentNode.IsDirectory() {
				return nil, fmt.Errorf(errorDescendIntoLeafFormat, currentNode.Name)
			}
			childNode, found := currentNode.FindChild(pathComponent)
			if !found {
				return nil, fmt.Errorf(errorMissingComponentFormat, pathComponent)
			}
			resolvedNodes = append(resolvedNodes, childNode)
		}
	}

	return &FileTree{
		RootPath: filepath.Join(fileTree.RootPath, filepath.FromSlash(normalizedPath)),
		Root:     resolvedNodes[len(resolvedNodes)-1],
	}, nil
}
