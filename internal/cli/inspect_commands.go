package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/treeline/internal/codec"
	"github.com/temirov/treeline/internal/config"
	"github.com/temirov/treeline/internal/snapshot"
	"github.com/temirov/treeline/internal/types"
)

const (
	loadUse              = "load <file>"
	loadAlias            = "ld"
	loadShortDescription = "reload a saved snapshot and re-render it (" + loadAlias + ")"
	// loadLongDescription provides detailed help for the load command.
	loadLongDescription = `Reload a snapshot saved as a listing document, a fenced diagram,
a bare diagram, or a JSON map, and re-render it in the requested form.
The input form is detected from the file content.`
	// loadUsageExample demonstrates load command usage.
	loadUsageExample = `  # Reload an exported JSON snapshot as a diagram
  treeline load snapshot.json

  # Reload a listing document as a JSON map
  treeline load --as map listing.txt`

	findUse              = "find <name> [path]"
	findShortDescription = "locate a file or directory name inside a snapshot"
	// findLongDescription provides detailed help for the find command.
	findLongDescription = `Search a snapshot depth-first for an exact file or directory name
and print the first full path at which it appears.`
	// findUsageExample demonstrates find command usage.
	findUsageExample = `  # Locate main.go under the current directory
  treeline find main.go

  # Locate a directory inside another root
  treeline find internal /srv/project`

	subtreeUse              = "sub <relative-path> [path]"
	subtreeShortDescription = "extract a subtree and render it as a diagram"
	// subtreeLongDescription provides detailed help for the sub command.
	subtreeLongDescription = `Resolve a relative path inside a snapshot and render the subtree
rooted there. "." components are skipped and ".." steps back toward the
snapshot root without ever ascending above it.`
	// subtreeUsageExample demonstrates sub command usage.
	subtreeUsageExample = `  # Render only the internal/config subtree
  treeline sub internal/config .

  # Step back up from a nested component
  treeline sub internal/.. .`

	loadFormFlagName        = "as"
	loadFormFlagDescription = "output form: diagram, listing, or map"
	loadFormDiagram         = "diagram"
	loadFormListing         = "listing"
	loadFormMap             = "map"

	// errorReadSnapshotFormat reports a failure to read the saved snapshot file.
	errorReadSnapshotFormat = "read snapshot '%s': %w"
	// errorUnknownLoadFormFormat rejects an unrecognized --as value.
	errorUnknownLoadFormFormat = "unknown output form '%s'"
	// errorNameNotFoundFormat reports a name absent from the snapshot.
	errorNameNotFoundFormat = "'%s' not found under '%s'"
)

// createLoadCommand returns the load subcommand.
func createLoadCommand() *cobra.Command {
	var outputForm string

	loadCommand := &cobra.Command{
		Use:     loadUse,
		Aliases: []string{loadAlias},
		Short:   loadShortDescription,
		Long:    loadLongDescription,
		Example: loadUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runLoadCommand(arguments[0], outputForm)
		},
	}

	loadCommand.Flags().StringVar(&outputForm, loadFormFlagName, loadFormDiagram, loadFormFlagDescription)
	return loadCommand
}

// runLoadCommand detects the saved form, decodes it, and re-renders the tree.
func runLoadCommand(snapshotFilePath string, outputForm string) error {
	fileTree, decodeError := decodeSavedSnapshot(snapshotFilePath)
	if decodeError != nil {
		return decodeError
	}

	switch outputForm {
	case loadFormDiagram:
		renderedDiagram, renderError := codec.EncodeDiagram(fileTree.Root, types.UnlimitedDepth, "")
		if renderError != nil {
			return renderError
		}
		fmt.Println(renderedDiagram)
	case loadFormListing:
		renderedListing, renderError := fileTree.DumpListing(types.UnlimitedDepth)
		if renderError != nil {
			return renderError
		}
		fmt.Println(renderedListing)
	case loadFormMap:
		jsonData, renderError := codec.EncodeMapJSON(fileTree.Root)
		if renderError != nil {
			return renderError
		}
		fmt.Println(string(jsonData))
	default:
		return fmt.Errorf(errorUnknownLoadFormFormat, outputForm)
	}
	return nil
}

// decodeSavedSnapshot sniffs the saved form from the file content. JSON maps
// start with a brace, listing documents with the root header, fenced
// diagrams contain a fence pair, and anything else is read as a bare diagram.
func decodeSavedSnapshot(snapshotFilePath string) (*snapshot.FileTree, error) {
	documentData, readError := os.ReadFile(snapshotFilePath)
	if readError != nil {
		return nil, fmt.Errorf(errorReadSnapshotFormat, snapshotFilePath, readError)
	}
	documentText := string(documentData)
	trimmedDocument := strings.TrimSpace(documentText)

	switch {
	case strings.HasPrefix(trimmedDocument, "{"):
		return snapshot.LoadJSON(snapshotFilePath)
	case strings.HasPrefix(documentText, codec.RootDirHeaderPrefix):
		return snapshot.FromListingDocument(documentText)
	case strings.Contains(documentText, "```"):
		return snapshot.FromFencedDocument(documentText)
	default:
		rootNode, diagramError := codec.DecodeDiagram(trimmedDocument)
		if diagramError != nil {
			return nil, diagramError
		}
		rootNode.SortSubtree()
		return &snapshot.FileTree{RootPath: rootNode.Name, Root: rootNode}, nil
	}
}

// createFindCommand returns the find subcommand.
func createFindCommand() *cobra.Command {
	var pathConfiguration pathOptions

	findCommand := &cobra.Command{
		Use:     findUse,
		Short:   findShortDescription,
		Long:    findLongDescription,
		Example: findUsageExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootArgument := defaultPath
			if len(arguments) == 2 {
				rootArgument = arguments[1]
			}
			fileTree, buildError := buildInspectionSnapshot(rootArgument, pathConfiguration)
			if buildError != nil {
				return buildError
			}
			foundPath, found := fileTree.Where(arguments[0])
			if !found {
				return fmt.Errorf(errorNameNotFoundFormat, arguments[0], fileTree.RootPath)
			}
			fmt.Println(foundPath)
			return nil
		},
	}

	addPathFlags(findCommand, &pathConfiguration)
	return findCommand
}

// createSubtreeCommand returns the sub subcommand.
func createSubtreeCommand() *cobra.Command {
	var pathConfiguration pathOptions
	var linePrefix string

	subtreeCommand := &cobra.Command{
		Use:     subtreeUse,
		Short:   subtreeShortDescription,
		Long:    subtreeLongDescription,
		Example: subtreeUsageExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootArgument := defaultPath
			if len(arguments) == 2 {
				rootArgument = arguments[1]
			}
			fileTree, buildError := buildInspectionSnapshot(rootArgument, pathConfiguration)
			if buildError != nil {
				return buildError
			}
			extractedSubtree, subtreeError := fileTree.Subtree(arguments[0])
			if subtreeError != nil {
				return subtreeError
			}
			renderedDiagram, renderError := codec.EncodeDiagram(extractedSubtree.Root, types.UnlimitedDepth, linePrefix)
			if renderError != nil {
				return renderError
			}
			fmt.Println(renderedDiagram)
			return nil
		},
	}

	addPathFlags(subtreeCommand, &pathConfiguration)
	subtreeCommand.Flags().StringVar(&linePrefix, prefixFlagName, "", prefixFlagDescription)
	return subtreeCommand
}

// buildInspectionSnapshot builds an unbounded snapshot for find and sub.
func buildInspectionSnapshot(rootArgument string, pathConfiguration pathOptions) (*snapshot.FileTree, error) {
	validatedPaths, validationError := resolveAndValidatePaths([]string{rootArgument})
	if validationError != nil {
		return nil, validationError
	}
	pathInformation := validatedPaths[0]

	var ignorePatterns []string
	if pathInformation.isDirectory {
		loadedPatterns, loadError := config.LoadCombinedIgnorePatterns(
			pathInformation.absolutePath,
			pathConfiguration.exclusionPatterns,
			!pathConfiguration.disableGitignore,
			!pathConfiguration.disableIgnoreFile,
			pathConfiguration.includeGit,
		)
		if loadError != nil {
			return nil, loadError
		}
		ignorePatterns = loadedPatterns
	}
	return snapshot.Build(pathInformation.absolutePath, ignorePatterns, applicationLogger)
}
