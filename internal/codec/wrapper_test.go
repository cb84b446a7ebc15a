package codec_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/treeline/internal/codec"
	"github.com/temirov/treeline/internal/types"
)

// TestListingDocumentRoundTrip verifies the Root Dir header wrapper.
func TestListingDocumentRoundTrip(testingInstance *testing.T) {
	originalTree := buildSampleTree()
	documentText, encodeError := codec.EncodeListingDocument("/srv/project", originalTree, types.UnlimitedDepth)
	if encodeError != nil {
		testingInstance.Fatalf("EncodeListingDocument failed: %v", encodeError)
	}
	if !strings.HasPrefix(documentText, codec.RootDirHeaderPrefix+"/srv/project\n") {
		testingInstance.Fatalf("expected root header, got:\n%s", documentText)
	}

	rootPath, decodedTree, decodeError := codec.DecodeListingDocument(documentText)
	if decodeError != nil {
		testingInstance.Fatalf("DecodeListingDocument failed: %v", decodeError)
	}
	if rootPath != "/srv/project" {
		testingInstance.Errorf("unexpected root path: %q", rootPath)
	}
	if !types.EqualNodes(originalTree, decodedTree) {
		testingInstance.Error("expected listing document round trip to reproduce the tree")
	}
}

// TestDecodeListingDocumentMissingHeader verifies header validation.
func TestDecodeListingDocumentMissingHeader(testingInstance *testing.T) {
	if _, _, decodeError := codec.DecodeListingDocument("root/\n|-- c.txt"); decodeError == nil {
		testingInstance.Fatal("expected error for missing root header")
	}
}

// TestFencedDocumentRoundTrip verifies the fence wrapper inside surrounding text.
func TestFencedDocumentRoundTrip(testingInstance *testing.T) {
	originalTree := buildSampleTree()
	fencedBlock, encodeError := codec.EncodeFencedDocument(originalTree, types.UnlimitedDepth, "  ")
	if encodeError != nil {
		testingInstance.Fatalf("EncodeFencedDocument failed: %v", encodeError)
	}
	surroundingDocument := "# Layout\n\n" + fencedBlock + "\n\ntrailing prose\n"

	decodedTree, decodeError := codec.DecodeFencedDocument(surroundingDocument)
	if decodeError != nil {
		testingInstance.Fatalf("DecodeFencedDocument failed: %v", decodeError)
	}
	if !types.EqualNodes(originalTree, decodedTree) {
		testingInstance.Error("expected fenced document round trip to reproduce the tree")
	}
}

// TestDecodeFencedDocumentIndentationMismatch verifies that fence indentation must match exactly.
func TestDecodeFencedDocumentIndentationMismatch(testingInstance *testing.T) {
	malformedDocument := "  ```\n  root/\n  └── c.txt\n    ```\n"
	if _, decodeError := codec.DecodeFencedDocument(malformedDocument); decodeError == nil {
		testingInstance.Fatal("expected error for mismatched fence indentation")
	}
}

// TestDecodeFencedDocumentMissingFence verifies that an unterminated fence is rejected.
func TestDecodeFencedDocumentMissingFence(testingInstance *testing.T) {
	if _, decodeError := codec.DecodeFencedDocument("```\nroot/\n"); decodeError == nil {
		testingInstance.Fatal("expected error for missing closing fence")
	}
	if _, decodeError := codec.DecodeFencedDocument("no fences here\n"); decodeError == nil {
		testingInstance.Fatal("expected error for document without fences")
	}
}

// TestMapFileRoundTrip verifies JSON persistence of the mapping form.
func TestMapFileRoundTrip(testingInstance *testing.T) {
	originalTree := buildSampleTree()
	filePath := filepath.Join(testingInstance.TempDir(), "snapshot.json")

	if writeError := codec.WriteMapFile(filePath, originalTree); writeError != nil {
		testingInstance.Fatalf("WriteMapFile failed: %v", writeError)
	}
	decodedTree, readError := codec.ReadMapFile(filePath)
	if readError != nil {
		testingInstance.Fatalf("ReadMapFile failed: %v", readError)
	}
	if !types.EqualNodes(originalTree, decodedTree) {
		testingInstance.Error("expected JSON file round trip to reproduce the tree")
	}
}

// TestEncodeMapJSONStableKeyOrder verifies that serialized keys are sorted.
func TestEncodeMapJSONStableKeyOrder(testingInstance *testing.T) {
	jsonData, encodeError := codec.EncodeMapJSON(buildDirectory("root",
		types.NewFileNode("zz.txt"),
		types.NewFileNode("aa.txt"),
	))
	if encodeError != nil {
		testingInstance.Fatalf("EncodeMapJSON failed: %v", encodeError)
	}
	jsonText := string(jsonData)
	if strings.Index(jsonText, "aa.txt") > strings.Index(jsonText, "zz.txt") {
		testingInstance.Errorf("expected sorted keys in JSON output:\n%s", jsonText)
	}
}
