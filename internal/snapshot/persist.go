package snapshot

import (
	"github.com/temirov/treeline/internal/codec"
	"github.com/temirov/treeline/internal/types"
)

// DumpListing renders the whole-tree listing document with the root header.
func (fileTree *FileTree) DumpListing(depth types.DepthPair) (string, error) {
	return codec.EncodeListingDocument(fileTree.RootPath, fileTree.Root, depth)
}

// FromListingDocument replaces a tree wholesale from a listing document.
func FromListingDocument(documentText string) (*FileTree, error) {
	rootPath, rootNode, decodeError := codec.DecodeListingDocument(documentText)
	if decodeError != nil {
		return nil, decodeError
	}
	rootNode.SortSubtree()
	return &FileTree{RootPath: rootPath, Root: rootNode}, nil
}

// DumpFenced renders the diagram inside a fence pair with the given indentation.
func (fileTree *FileTree) DumpFenced(depth types.DepthPair, indentation string) (string, error) {
	return codec.EncodeFencedDocument(fileTree.Root, depth, indentation)
}

// FromFencedDocument replaces a tree wholesale from the first fenced diagram
// block of a larger document. The reconstructed tree is labeled with its
// root node name since the fenced form carries no path header.
func FromFencedDocument(documentText string) (*FileTree, error) {
	rootNode, decodeError := codec.DecodeFencedDocument(documentText)
	if decodeError != nil {
		return nil, decodeError
	}
	rootNode.SortSubtree()
	return &FileTree{RootPath: rootNode.Name, Root: rootNode}, nil
}

// Map renders the complete nested-mapping form of the tree.
func (fileTree *FileTree) Map() map[string]any {
	return codec.EncodeMap(fileTree.Root)
}

// FromMap replaces a tree wholesale from the nested-mapping form.
func FromMap(mapping map[string]any) (*FileTree, error) {
	rootNode, decodeError := codec.DecodeMap(mapping)
	if decodeError != nil {
		return nil, decodeError
	}
	return &FileTree{RootPath: rootNode.Name, Root: rootNode}, nil
}

// SaveJSON persists the mapping form as a JSON file with stable key order.
func (fileTree *FileTree) SaveJSON(filePath string) error {
	return codec.WriteMapFile(filePath, fileTree.Root)
}

// LoadJSON replaces a tree wholesale from a JSON mapping file.
func LoadJSON(filePath string) (*FileTree, error) {
	rootNode, readError := codec.ReadMapFile(filePath)
	if readError != nil {
		return nil, readError
	}
	return &FileTree{RootPath: rootNode.Name, Root: rootNode}, nil
}
