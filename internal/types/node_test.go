package types_test

import (
	"reflect"
	"testing"

	"github.com/temirov/treeline/internal/types"
)

// buildSampleDirectory constructs a directory with children attached in the given order.
func buildSampleDirectory(directoryName string, childNodes ...*types.Node) *types.Node {
	directoryNode := types.NewDirectoryNode(directoryName)
	for _, childNode := range childNodes {
		directoryNode.AttachChild(childNode)
	}
	return directoryNode
}

// TestSortChildrenOrdersByName verifies that SortChildren restores lexicographic sibling order.
func TestSortChildrenOrdersByName(testingInstance *testing.T) {
	directoryNode := buildSampleDirectory("root",
		types.NewFileNode("zeta.txt"),
		types.NewDirectoryNode("alpha"),
		types.NewFileNode("midway.md"),
	)
	directoryNode.SortChildren()

	var childNames []string
	for _, childNode := range directoryNode.Children {
		childNames = append(childNames, childNode.Name)
	}
	expectedNames := []string{"alpha", "midway.md", "zeta.txt"}
	if !reflect.DeepEqual(childNames, expectedNames) {
		testingInstance.Errorf("unexpected child order: got %v want %v", childNames, expectedNames)
	}
}

// TestFindChildUsesExactNameMatch verifies binary search over sorted children.
func TestFindChildUsesExactNameMatch(testingInstance *testing.T) {
	directoryNode := buildSampleDirectory("root",
		types.NewFileNode("beta.txt"),
		types.NewDirectoryNode("alpha"),
		types.NewFileNode("gamma.txt"),
	)
	directoryNode.SortChildren()

	foundNode, found := directoryNode.FindChild("beta.txt")
	if !found || foundNode.Name != "beta.txt" {
		testingInstance.Fatalf("expected to find beta.txt, got %v (found=%v)", foundNode, found)
	}
	if _, foundMissing := directoryNode.FindChild("missing"); foundMissing {
		testingInstance.Error("expected missing child to be absent")
	}
}

// TestDirectoryChildNamesSortedAlphabetically verifies the derived directory name set.
func TestDirectoryChildNamesSortedAlphabetically(testingInstance *testing.T) {
	directoryNode := buildSampleDirectory("root",
		types.NewDirectoryNode("zoo"),
		types.NewFileNode("a.txt"),
		types.NewDirectoryNode("bar"),
	)

	directoryNames := directoryNode.DirectoryChildNames()
	expectedNames := []string{"bar", "zoo"}
	if !reflect.DeepEqual(directoryNames, expectedNames) {
		testingInstance.Errorf("unexpected directory names: got %v want %v", directoryNames, expectedNames)
	}
}

// TestEqualNodesComparesStructure verifies iterative structural equality.
func TestEqualNodesComparesStructure(testingInstance *testing.T) {
	firstTree := buildSampleDirectory("root",
		buildSampleDirectory("a", types.NewFileNode("b.txt")),
		types.NewFileNode("c.txt"),
	)
	secondTree := buildSampleDirectory("root",
		buildSampleDirectory("a", types.NewFileNode("b.txt")),
		types.NewFileNode("c.txt"),
	)
	differentTree := buildSampleDirectory("root",
		buildSampleDirectory("a", types.NewFileNode("other.txt")),
		types.NewFileNode("c.txt"),
	)

	if !types.EqualNodes(firstTree, secondTree) {
		testingInstance.Error("expected identical trees to compare equal")
	}
	if types.EqualNodes(firstTree, differentTree) {
		testingInstance.Error("expected differing trees to compare unequal")
	}
}

// TestDepthPairValidateRejectsNegative verifies negative caps are rejected.
func TestDepthPairValidateRejectsNegative(testingInstance *testing.T) {
	testCases := []struct {
		testName    string
		depth       types.DepthPair
		expectError bool
	}{
		{testName: "unlimited", depth: types.DepthPair{}, expectError: false},
		{testName: "positive caps", depth: types.DepthPair{Folders: 2, Files: 3}, expectError: false},
		{testName: "negative folders", depth: types.DepthPair{Folders: -1}, expectError: true},
		{testName: "negative files", depth: types.DepthPair{Files: -2}, expectError: true},
	}
	for index, testCase := range testCases {
		validationError := testCase.depth.Validate()
		if (validationError != nil) != testCase.expectError {
			testingInstance.Errorf("case %d (%s): expected error=%v, got %v", index, testCase.testName, testCase.expectError, validationError)
		}
	}
}
