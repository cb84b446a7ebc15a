// Package codec implements the four bidirectional snapshot representations:
// the plain indented listing, the box-drawing diagram, the nested mapping,
// and the whole-tree document wrappers built on top of them. All encoders
// and decoders traverse iteratively with explicit stacks and agree on one
// semantic model: a directory renders with a trailing path separator, a
// leaf does not.
package codec

import (
	"fmt"
	"strings"

	"github.com/temirov/treeline/internal/types"
)

const (
	// listConnector prefixes every non-root listing line.
	listConnector = "|-- "
	// indentUnit is one level of listing indentation.
	indentUnit = "    "
	// indentWidth is the quantization unit shared by the listing and diagram decoders.
	indentWidth = 4

	// errorEmptyDocument reports decode input without a root line.
	errorEmptyDocument = "document contains no root line"
	// errorMalformedLineFormat reports a line that does not follow the listing grammar.
	errorMalformedLineFormat = "line %d: missing %q connector: %q"
	// errorIndentJumpFormat reports a child line deeper than any open ancestor.
	errorIndentJumpFormat = "line %d: indentation level %d has no open ancestor"
	// errorLeafParentFormat reports an attempt to attach a child to a leaf line.
	errorLeafParentFormat = "line %d: parent of %q is not a directory"
)

// listFrame is one pending node of the iterative listing traversal.
type listFrame struct {
	node  *types.Node
	level int
}

// displayName renders a node name with the directory suffix where applicable.
func displayName(treeNode *types.Node) string {
	if treeNode.IsDirectory() {
		return treeNode.Name + types.DirectorySuffix
	}
	return treeNode.Name
}

// EncodeList renders the subtree as a plain indented listing. The root
// renders as a bare name; every other line is indented four spaces per
// level below the root's children and prefixed with the listing connector.
// Children are emitted in their stored order. A node filtered out by the
// depth caps is skipped together with its entire subtree while siblings
// continue to render.
func EncodeList(rootNode *types.Node, depth types.DepthPair) (string, error) {
	if validationError := depth.Validate(); validationError != nil {
		return "", validationError
	}

	var builder strings.Builder
	builder.WriteString(displayName(rootNode))

	workStack := make([]listFrame, 0, len(rootNode.Children))
	for childIndex := len(rootNode.Children) - 1; childIndex >= 0; childIndex-- {
		workStack = append(workStack, listFrame{node: rootNode.Children[childIndex], level: 1})
	}
	for len(workStack) > 0 {
		currentFrame := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		if !nodeVisible(currentFrame.node, currentFrame.level, depth) {
			continue
		}

		builder.WriteString("\n")
		builder.WriteString(strings.Repeat(indentUnit, currentFrame.level-1))
		builder.WriteString(listConnector)
		builder.WriteString(displayName(currentFrame.node))

		for childIndex := len(currentFrame.node.Children) - 1; childIndex >= 0; childIndex-- {
			workStack = append(workStack, listFrame{node: currentFrame.node.Children[childIndex], level: currentFrame.level + 1})
		}
	}
	return builder.String(), nil
}

// nodeVisible applies the depth caps to a node at the given level below the root.
func nodeVisible(treeNode *types.Node, level int, depth types.DepthPair) bool {
	if treeNode.IsDirectory() {
		return depth.AllowsDirectory(level)
	}
	return depth.AllowsFile(level)
}

// parseNodeLine splits a trimmed listing or diagram payload into name and kind.
func parseNodeLine(payload string) *types.Node {
	if strings.HasSuffix(payload, types.DirectorySuffix) {
		return types.NewDirectoryNode(strings.TrimSuffix(payload, types.DirectorySuffix))
	}
	return types.NewFileNode(payload)
}

// DecodeList reconstructs a subtree from a plain indented listing. The first
// line names the root; each subsequent line's level is its leading-space
// count divided by four. An ancestor stack is truncated to level+1 entries
// before the new node attaches to its top; directories are pushed onto the
// stack, leaves are not.
func DecodeList(listingText string) (*types.Node, error) {
	lines := strings.Split(listingText, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf(errorEmptyDocument)
	}

	rootNode := parseNodeLine(strings.TrimSpace(lines[0]))
	ancestorStack := []*types.Node{rootNode}

	for lineIndex := 1; lineIndex < len(lines); lineIndex++ {
		lineText := lines[lineIndex]
		if strings.TrimSpace(lineText) == "" {
			continue
		}

		trimmedLine := strings.TrimLeft(lineText, " ")
		leadingSpaces := len(lineText) - len(trimmedLine)
		lineLevel := leadingSpaces / indentWidth
		if !strings.HasPrefix(trimmedLine, listConnector) {
			return nil, fmt.Errorf(errorMalformedLineFormat, lineIndex+1, listConnector, lineText)
		}
		childNode := parseNodeLine(strings.TrimSpace(strings.TrimPrefix(trimmedLine, listConnector)))

		if lineLevel+1 > len(ancestorStack) {
			return nil, fmt.Errorf(errorIndentJumpFormat, lineIndex+1, lineLevel)
		}
		ancestorStack = ancestorStack[:lineLevel+1]
		parentNode := ancestorStack[len(ancestorStack)-1]
		if !parentNode.IsDirectory() {
			return nil, fmt.Errorf(errorLeafParentFormat, lineIndex+1, childNode.Name)
		}
		parentNode.AttachChild(childNode)
		if childNode.IsDirectory() {
			ancestorStack = append(ancestorStack, childNode)
		}
	}
	return rootNode, nil
}
