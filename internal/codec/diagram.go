package codec

import (
	"fmt"
	"strings"

	"github.com/temirov/treeline/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	// errorMissingConnectorFormat reports a diagram line without a branch glyph.
	errorMissingConnectorFormat = "line %d: missing branch connector: %q"
)

// diagramFrame is one pending node of the iterative diagram traversal.
type diagramFrame struct {
	node        *types.Node
	accumulated string
	isLast      bool
	level       int
}

// visibleChildren filters a child sequence against the depth caps. When both
// caps are zero the stored sequence is returned as-is; otherwise the
// last-sibling designation downstream is computed against this filtered set.
func visibleChildren(directoryNode *types.Node, childLevel int, depth types.DepthPair) []*types.Node {
	if depth.IsUnlimited() {
		return directoryNode.Children
	}
	filtered := make([]*types.Node, 0, len(directoryNode.Children))
	for _, childNode := range directoryNode.Children {
		if nodeVisible(childNode, childLevel, depth) {
			filtered = append(filtered, childNode)
		}
	}
	return filtered
}

// EncodeDiagram renders the subtree as a box-drawing diagram. Non-last
// siblings use the branch connector, the last sibling the corner connector,
// and continuation padding accumulates per ancestor depending on whether
// that ancestor was itself a last sibling. The external prefix is prepended
// uniformly to every line so the diagram can be embedded under surrounding
// text.
func EncodeDiagram(rootNode *types.Node, depth types.DepthPair, prefix string) (string, error) {
	if validationError := depth.Validate(); validationError != nil {
		return "", validationError
	}

	var builder strings.Builder
	builder.WriteString(prefix)
	builder.WriteString(displayName(rootNode))

	workStack := pushDiagramChildren(nil, rootNode, "", 1, depth)
	for len(workStack) > 0 {
		currentFrame := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		connector := treeBranchConnector
		childPadding := treeBranchPadding
		if currentFrame.isLast {
			connector = treeLastConnector
			childPadding = treeLastPadding
		}
		builder.WriteString("\n")
		builder.WriteString(prefix)
		builder.WriteString(currentFrame.accumulated)
		builder.WriteString(connector)
		builder.WriteString(displayName(currentFrame.node))

		if currentFrame.node.IsDirectory() {
			workStack = pushDiagramChildren(workStack, currentFrame.node,
				currentFrame.accumulated+childPadding, currentFrame.level+1, depth)
		}
	}
	return builder.String(), nil
}

// pushDiagramChildren queues the filtered children of a directory in reverse
// order so the earliest-stored child is emitted first. The last-sibling flag
// is assigned relative to the filtered child set, not the raw one.
func pushDiagramChildren(workStack []diagramFrame, directoryNode *types.Node, accumulated string, childLevel int, depth types.DepthPair) []diagramFrame {
	childNodes := visibleChildren(directoryNode, childLevel, depth)
	for childIndex := len(childNodes) - 1; childIndex >= 0; childIndex-- {
		workStack = append(workStack, diagramFrame{
			node:        childNodes[childIndex],
			accumulated: accumulated,
			isLast:      childIndex == len(childNodes)-1,
			level:       childLevel,
		})
	}
	return workStack
}

// diagramLineLevel measures a line's depth from the glyph prefix preceding
// the branch connector, quantized in the shared four-column unit.
func diagramLineLevel(glyphPrefix string) int {
	flattened := glyphPrefix
	for _, glyph := range []string{"│", "└", "├", "─", "|"} {
		flattened = strings.ReplaceAll(flattened, glyph, " ")
	}
	return len(flattened) / indentWidth
}

// DecodeDiagram reconstructs a subtree from a box-drawing diagram. Connector
// glyphs and continuation characters are stripped before indentation is
// measured in the same four-column quantization as the listing codec; a
// trailing separator classifies the node as a directory. A uniform leading
// prefix taken from the root line is removed from every subsequent line.
func DecodeDiagram(diagramText string) (*types.Node, error) {
	lines := strings.Split(diagramText, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, fmt.Errorf(errorEmptyDocument)
	}

	rootLine := lines[0]
	trimmedRootLine := strings.TrimLeft(rootLine, " \t")
	externalPrefix := rootLine[:len(rootLine)-len(trimmedRootLine)]
	rootNode := parseNodeLine(strings.TrimSpace(trimmedRootLine))
	ancestorStack := []*types.Node{rootNode}

	for lineIndex := 1; lineIndex < len(lines); lineIndex++ {
		lineText := lines[lineIndex]
		if strings.TrimSpace(lineText) == "" {
			continue
		}
		lineText = strings.TrimPrefix(lineText, externalPrefix)

		connectorIndex, connectorLength := findBranchConnector(lineText)
		if connectorIndex < 0 {
			return nil, fmt.Errorf(errorMissingConnectorFormat, lineIndex+1, lineText)
		}
		lineLevel := diagramLineLevel(lineText[:connectorIndex])
		childNode := parseNodeLine(strings.TrimSpace(lineText[connectorIndex+connectorLength:]))

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

// findBranchConnector locates the earliest branch or corner connector in a line.
func findBranchConnector(lineText string) (int, int) {
	connectorIndex := -1
	connectorLength := 0
	for _, connector := range []string{treeBranchConnector, treeLastConnector} {
		if position := strings.Index(lineText, connector); position >= 0 {
			if connectorIndex < 0 || position < connectorIndex {
				connectorIndex = position
				connectorLength = len(connector)
			}
		}
	}
	return connectorIndex, connectorLength
}
