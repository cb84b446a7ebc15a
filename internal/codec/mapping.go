package codec

import (
	"fmt"
	"sort"

	"github.com/temirov/treeline/internal/types"
)

const (
	// errorMappingRootFormat reports a mapping without exactly one root entry.
	errorMappingRootFormat = "mapping must contain exactly one root entry, got %d"
	// errorMappingValueFormat reports a mapping value that is neither null nor a nested mapping.
	errorMappingValueFormat = "mapping entry %q must be null or a nested mapping, got %T"
)

// mapFrame pairs a directory node with the mapping that holds its children.
type mapFrame struct {
	node      *types.Node
	container map[string]any
}

// EncodeMap renders the subtree as a nested mapping: a directory maps its
// name to the mapping of its children, a leaf maps its name to null. This
// codec applies no depth filtering and is the only complete representation.
// The intermediate store is unordered, so child order is not carried by the
// mapping itself; names, kinds, and logical child sets are.
func EncodeMap(rootNode *types.Node) map[string]any {
	if !rootNode.IsDirectory() {
		return map[string]any{rootNode.Name: nil}
	}

	rootContainer := map[string]any{}
	result := map[string]any{rootNode.Name: rootContainer}
	workStack := []mapFrame{{node: rootNode, container: rootContainer}}
	for len(workStack) > 0 {
		currentFrame := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		for _, childNode := range currentFrame.node.Children {
			if childNode.IsDirectory() {
				childContainer := map[string]any{}
				currentFrame.container[childNode.Name] = childContainer
				workStack = append(workStack, mapFrame{node: childNode, container: childContainer})
			} else {
				currentFrame.container[childNode.Name] = nil
			}
		}
	}
	return result
}

// DecodeMap reconstructs a subtree from a nested mapping. The mapping must
// contain exactly one root entry; a null value decodes to a leaf and a
// nested mapping to a directory. Children attach in sorted key order, which
// coincides with the sibling order invariant the rest of the system keeps.
func DecodeMap(mapping map[string]any) (*types.Node, error) {
	if len(mapping) != 1 {
		return nil, fmt.Errorf(errorMappingRootFormat, len(mapping))
	}

	var rootNode *types.Node
	var workStack []mapFrame
	for rootName, rootValue := range mapping {
		childMapping, decodeError := mappingValue(rootName, rootValue)
		if decodeError != nil {
			return nil, decodeError
		}
		if childMapping == nil {
			return types.NewFileNode(rootName), nil
		}
		rootNode = types.NewDirectoryNode(rootName)
		workStack = append(workStack, mapFrame{node: rootNode, container: childMapping})
	}

	for len(workStack) > 0 {
		currentFrame := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]

		childNames := make([]string, 0, len(currentFrame.container))
		for childName := range currentFrame.container {
			childNames = append(childNames, childName)
		}
		sort.Strings(childNames)

		for _, childName := range childNames {
			childMapping, decodeError := mappingValue(childName, currentFrame.container[childName])
			if decodeError != nil {
				return nil, decodeError
			}
			if childMapping == nil {
				currentFrame.node.AttachChild(types.NewFileNode(childName))
				continue
			}
			childNode := types.NewDirectoryNode(childName)
			currentFrame.node.AttachChild(childNode)
			workStack = append(workStack, mapFrame{node: childNode, container: childMapping})
		}
	}
	return rootNode, nil
}

// mappingValue validates one mapping entry and returns its child mapping,
// or nil for a leaf marker.
func mappingValue(entryName string, entryValue any) (map[string]any, error) {
	if entryValue == nil {
		return nil, nil
	}
	childMapping, isMapping := entryValue.(map[string]any)
	if !isMapping {
		return nil, fmt.Errorf(errorMappingValueFormat, entryName, entryValue)
	}
	return childMapping, nil
}
