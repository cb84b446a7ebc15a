package codec_test

import (
	"testing"

	"github.com/temirov/treeline/internal/codec"
	"github.com/temirov/treeline/internal/types"
)

// TestEncodeMapShape verifies the nested mapping form.
func TestEncodeMapShape(testingInstance *testing.T) {
	mapping := codec.EncodeMap(buildSampleTree())

	rootValue, hasRoot := mapping["root"]
	if !hasRoot || len(mapping) != 1 {
		testingInstance.Fatalf("expected single root entry, got %v", mapping)
	}
	rootChildren, isMapping := rootValue.(map[string]any)
	if !isMapping {
		testingInstance.Fatalf("expected nested mapping for directory, got %T", rootValue)
	}
	if leafValue, hasLeaf := rootChildren["c.txt"]; !hasLeaf || leafValue != nil {
		testingInstance.Errorf("expected null marker for leaf, got %v", leafValue)
	}
	nestedChildren, isNestedMapping := rootChildren["a"].(map[string]any)
	if !isNestedMapping {
		testingInstance.Fatalf("expected nested mapping for directory a, got %T", rootChildren["a"])
	}
	if _, hasDeepLeaf := nestedChildren["b.txt"]; !hasDeepLeaf {
		testingInstance.Error("expected leaf b.txt under directory a")
	}
}

// TestEncodeMapLeafRoot verifies the leaf-root mapping form.
func TestEncodeMapLeafRoot(testingInstance *testing.T) {
	mapping := codec.EncodeMap(types.NewFileNode("single.txt"))
	leafValue, hasLeaf := mapping["single.txt"]
	if !hasLeaf || leafValue != nil || len(mapping) != 1 {
		testingInstance.Fatalf("unexpected leaf-root mapping: %v", mapping)
	}
}

// TestMapRoundTrip verifies that names, kinds, and child sets survive the mapping form.
func TestMapRoundTrip(testingInstance *testing.T) {
	originalTree := buildSampleTree()
	decodedTree, decodeError := codec.DecodeMap(codec.EncodeMap(originalTree))
	if decodeError != nil {
		testingInstance.Fatalf("DecodeMap failed: %v", decodeError)
	}
	if !types.EqualNodes(originalTree, decodedTree) {
		testingInstance.Error("expected mapping round trip to reproduce the sorted tree")
	}
}

// TestDecodeMapRejectsMalformedInput verifies mapping validation.
func TestDecodeMapRejectsMalformedInput(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		mapping  map[string]any
	}{
		{testName: "empty mapping", mapping: map[string]any{}},
		{testName: "two roots", mapping: map[string]any{"a": nil, "b": nil}},
		{testName: "scalar value", mapping: map[string]any{"root": map[string]any{"bad": 7}}},
	}
	for index, testCase := range testCases {
		if _, decodeError := codec.DecodeMap(testCase.mapping); decodeError == nil {
			testingInstance.Errorf("case %d (%s): expected decode error", index, testCase.testName)
		}
	}
}
