package types

import "sort"

// Node is a single entry in a directory snapshot. A node is identified by
// its name alone; names are unique among siblings by construction. Directory
// nodes own their children exclusively and additionally track the set of
// child names that are themselves directories to qualify descent targets
// during search without rescanning the child sequence.
//
// Siblings are kept sorted by name: builders and facade constructors invoke
// SortChildren/SortSubtree after attaching children, which makes the binary
// search used by lookup and subtree resolution sound.
type Node struct {
	Name     string
	Kind     string
	Children []*Node

	directoryChildNames map[string]struct{}
}

// NewFileNode constructs a leaf node.
func NewFileNode(nodeName string) *Node {
	return &Node{Name: nodeName, Kind: NodeTypeFile}
}

// NewDirectoryNode constructs an empty directory node.
func NewDirectoryNode(nodeName string) *Node {
	return &Node{Name: nodeName, Kind: NodeTypeDirectory}
}

// IsDirectory reports whether the node carries children.
func (treeNode *Node) IsDirectory() bool {
	return treeNode.Kind == NodeTypeDirectory
}

// AttachChild appends a child in declaration order and records directory
// children in the derived name set. Attachment alone does not re-sort.
func (treeNode *Node) AttachChild(childNode *Node) {
	treeNode.Children = append(treeNode.Children, childNode)
	if childNode.IsDirectory() {
		if treeNode.directoryChildNames == nil {
			treeNode.directoryChildNames = make(map[string]struct{})
		}
		treeNode.directoryChildNames[childNode.Name] = struct{}{}
	}
}

// SortChildren orders the immediate children lexicographically by name.
func (treeNode *Node) SortChildren() {
	sort.Slice(treeNode.Children, func(firstIndex, secondIndex int) bool {
		return treeNode.Children[firstIndex].Name < treeNode.Children[secondIndex].Name
	})
}

// SortSubtree restores the sibling order invariant for the whole subtree
// using an explicit work stack instead of native recursion.
func (treeNode *Node) SortSubtree() {
	workStack := []*Node{treeNode}
	for len(workStack) > 0 {
		currentNode := workStack[len(workStack)-1]
		workStack = workStack[:len(workStack)-1]
		currentNode.SortChildren()
		for _, childNode := range currentNode.Children {
			if childNode.IsDirectory() {
				workStack = append(workStack, childNode)
			}
		}
	}
}

// FindChild performs a binary search for an exact child name. It relies on
// the sibling order invariant maintained by SortChildren.
func (treeNode *Node) FindChild(childName string) (*Node, bool) {
	childCount := len(treeNode.Children)
	position := sort.Search(childCount, func(candidateIndex int) bool {
		return treeNode.Children[candidateIndex].Name >= childName
	})
	if position < childCount && treeNode.Children[position].Name == childName {
		return treeNode.Children[position], true
	}
	return nil, false
}

// DirectoryChildNames returns the names of directory children in sorted
// alphabetical order, regardless of the stored child order.
func (treeNode *Node) DirectoryChildNames() []string {
	directoryNames := make([]string, 0, len(treeNode.directoryChildNames))
	for directoryName := range treeNode.directoryChildNames {
		directoryNames = append(directoryNames, directoryName)
	}
	sort.Strings(directoryNames)
	return directoryNames
}

// nodePair tracks one comparison step of the iterative equality walk.
type nodePair struct {
	first  *Node
	second *Node
}

// EqualNodes reports whether two subtrees agree on names, kinds, child
// order, and structure. The comparison is iterative.
func EqualNodes(firstRoot *Node, secondRoot *Node) bool {
	pairStack := []nodePair{{first: firstRoot, second: secondRoot}}
	for len(pairStack) > 0 {
		currentPair := pairStack[len(pairStack)-1]
		pairStack = pairStack[:len(pairStack)-1]

		if (currentPair.first == nil) != (currentPair.second == nil) {
			return false
		}
		if currentPair.first == nil {
			continue
		}
		if currentPair.first.Name != currentPair.second.Name ||
			currentPair.first.Kind != currentPair.second.Kind ||
			len(currentPair.first.Children) != len(currentPair.second.Children) {
			return false
		}
		for childIndex := range currentPair.first.Children {
			pairStack = append(pairStack, nodePair{
				first:  currentPair.first.Children[childIndex],
				second: currentPair.second.Children[childIndex],
			})
		}
	}
	return true
}
