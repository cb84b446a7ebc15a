package codec

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/treeline/internal/types"
)

const (
	// RootDirHeaderPrefix is the literal header line prefix of a listing document.
	RootDirHeaderPrefix = "Root Dir: "
	// fenceMarker delimits an embedded diagram block.
	fenceMarker = "```"

	jsonIndentPrefix = ""
	jsonIndentSpacer = "  "

	// errorMissingHeaderFormat reports a listing document without the root header.
	errorMissingHeaderFormat = "listing document must start with %q"
	// errorMissingFence reports a document without a complete fence pair.
	errorMissingFence = "no matching fence pair found"
	// errorFenceIndentFormat reports fences whose indentation differs.
	errorFenceIndentFormat = "fence indentation mismatch: opening %q vs closing %q"
)

// EncodeListingDocument renders a whole-tree listing document: the literal
// root header line followed by the node-level listing.
func EncodeListingDocument(rootPath string, rootNode *types.Node, depth types.DepthPair) (string, error) {
	listingText, encodeError := EncodeList(rootNode, depth)
	if encodeError != nil {
		return "", encodeError
	}
	return RootDirHeaderPrefix + rootPath + "\n" + listingText, nil
}

// DecodeListingDocument parses a whole-tree listing document and returns the
// declared root path together with the reconstructed subtree.
func DecodeListingDocument(documentText string) (string, *types.Node, error) {
	headerLine, listingText, hasBody := strings.Cut(documentText, "\n")
	if !strings.HasPrefix(headerLine, RootDirHeaderPrefix) {
		return "", nil, fmt.Errorf(errorMissingHeaderFormat, RootDirHeaderPrefix)
	}
	if !hasBody {
		return "", nil, fmt.Errorf(errorEmptyDocument)
	}
	rootNode, decodeError := DecodeList(listingText)
	if decodeError != nil {
		return "", nil, decodeError
	}
	return strings.TrimSpace(strings.TrimPrefix(headerLine, RootDirHeaderPrefix)), rootNode, nil
}

// EncodeFencedDocument renders the diagram inside a fence pair sharing the
// given indentation, suitable for embedding in a larger document.
func EncodeFencedDocument(rootNode *types.Node, depth types.DepthPair, indentation string) (string, error) {
	diagramText, encodeError := EncodeDiagram(rootNode, depth, indentation)
	if encodeError != nil {
		return "", encodeError
	}
	return indentation + fenceMarker + "\n" + diagramText + "\n" + indentation + fenceMarker, nil
}

// DecodeFencedDocument locates the first matching pair of fence lines in a
// larger document and decodes the diagram between them. The opening and
// closing fence lines must share identical leading indentation; otherwise
// the input is rejected as malformed.
func DecodeFencedDocument(documentText string) (*types.Node, error) {
	lines := strings.Split(documentText, "\n")
	openingIndex := -1
	closingIndex := -1
	var openingIndentation string
	var closingIndentation string

	for lineIndex, lineText := range lines {
		trimmedLine := strings.TrimLeft(lineText, " \t")
		if !strings.HasPrefix(trimmedLine, fenceMarker) {
			continue
		}
		if openingIndex < 0 {
			openingIndex = lineIndex
			openingIndentation = lineText[:len(lineText)-len(trimmedLine)]
			continue
		}
		closingIndex = lineIndex
		closingIndentation = lineText[:len(lineText)-len(trimmedLine)]
		break
	}
	if openingIndex < 0 || closingIndex < 0 {
		return nil, fmt.Errorf(errorMissingFence)
	}
	if openingIndentation != closingIndentation {
		return nil, fmt.Errorf(errorFenceIndentFormat, openingIndentation, closingIndentation)
	}

	diagramText := strings.Join(lines[openingIndex+1:closingIndex], "\n")
	return DecodeDiagram(diagramText)
}

// EncodeMapJSON serializes the nested mapping form with stable key ordering.
func EncodeMapJSON(rootNode *types.Node) ([]byte, error) {
	return json.MarshalIndent(EncodeMap(rootNode), jsonIndentPrefix, jsonIndentSpacer)
}

// DecodeMapJSON reconstructs a subtree from the serialized mapping form.
func DecodeMapJSON(jsonData []byte) (*types.Node, error) {
	var mapping map[string]any
	if unmarshalError := json.Unmarshal(jsonData, &mapping); unmarshalError != nil {
		return nil, unmarshalError
	}
	return DecodeMap(mapping)
}

// WriteMapFile persists the mapping form of the subtree as a JSON file.
func WriteMapFile(filePath string, rootNode *types.Node) error {
	jsonData, encodeError := EncodeMapJSON(rootNode)
	if encodeError != nil {
		return encodeError
	}
	return os.WriteFile(filePath, append(jsonData, '\n'), 0o644)
}

// ReadMapFile loads a subtree from a JSON mapping file.
//
// #nosec G304
func ReadMapFile(filePath string) (*types.Node, error) {
	jsonData, readError := os.ReadFile(filePath)
	if readError != nil {
		return nil, readError
	}
	return DecodeMapJSON(jsonData)
}
