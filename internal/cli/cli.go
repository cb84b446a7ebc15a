// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/treeline/internal/codec"
	"github.com/temirov/treeline/internal/config"
	"github.com/temirov/treeline/internal/services/clipboard"
	"github.com/temirov/treeline/internal/snapshot"
	"github.com/temirov/treeline/internal/tokenizer"
	"github.com/temirov/treeline/internal/types"
	"github.com/temirov/treeline/internal/utils"
)

const (
	exclusionFlagName    = "e"
	noGitignoreFlagName  = "no-gitignore"
	noIgnoreFlagName     = "no-ignore"
	includeGitFlagName   = "git"
	foldersFlagName      = "folders"
	filesFlagName        = "files"
	prefixFlagName       = "prefix"
	copyFlagName         = "copy"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	outputFlagName       = "output"
	versionFlagName      = "version"
	versionTemplate      = "treeline version: %s\n"
	defaultPath          = "."
	rootUse              = "treeline"
	rootShortDescription = "treeline command line interface"
	rootLongDescription  = `treeline captures directory structure as a tree snapshot.
It renders box-drawing diagrams, indented listings, and nested JSON maps,
reloads any saved form, and locates names or extracts subtrees inside a snapshot.
Use --folders and --files to cap depth, and --version to print the application version.`
	versionFlagDescription = "display application version"

	treeUse              = "tree [paths...]"
	listUse              = "list [paths...]"
	exportUse            = "export [paths...]"
	treeAlias            = "t"
	listAlias            = "l"
	exportAlias          = "x"
	treeShortDescription = "render box-drawing tree diagram (" + treeAlias + ")"
	listShortDescription = "render indented listing with root header (" + listAlias + ")"
	exportShortDescr     = "render nested JSON map (" + exportAlias + ")"

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Render one or more paths as box-drawing tree diagrams.
Use --folders and --files to cap directory and file depth, and --prefix to indent every line.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Render the current directory capped at two directory levels
  treeline tree --folders 2 .

  # Exclude vendor and copy the diagram to the clipboard
  treeline tree -e vendor --copy .`

	// listLongDescription provides detailed help for the list command.
	listLongDescription = `Render one or more paths as indented listings prefixed by a root header.
The listing round-trips through the load command.`
	// listUsageExample demonstrates list command usage.
	listUsageExample = `  # List the repository without gitignore filtering
  treeline list --no-gitignore .

  # Cap files at three levels and count tokens of the output
  treeline list --files 3 --tokens .`

	// exportLongDescription provides detailed help for the export command.
	exportLongDescription = `Render one or more paths as nested JSON maps with sorted keys.
Use --output to persist a single snapshot to a file for later reloading.`
	// exportUsageExample demonstrates export command usage.
	exportUsageExample = `  # Print the snapshot as JSON
  treeline export .

  # Persist the snapshot for later use with load
  treeline export --output snapshot.json .`

	exclusionFlagDescription        = "exclude path pattern"
	disableGitignoreFlagDescription = "do not use .gitignore"
	disableIgnoreFlagDescription    = "do not use .ignore"
	includeGitFlagDescription       = "include git directory"
	foldersFlagDescription          = "maximum directory depth, 0 for unlimited"
	filesFlagDescription            = "maximum file depth, 0 for unlimited"
	prefixFlagDescription           = "string prepended to every rendered line"
	copyFlagDescription             = "copy rendered output to the clipboard"
	tokensFlagDescription           = "report token count of the rendered output"
	modelFlagDescription            = "tokenizer model to use for token counting"
	defaultTokenizerModelName       = "gpt-4o"
	outputFlagDescription           = "write rendered output to a file instead of stdout"

	tokenCountMessageFormat     = "Estimated tokens (%s): %d\n"
	warningClipboardFormat      = "Warning: failed to copy output to clipboard: %v\n"
	warningConfigurationFormat  = "Warning: failed to load configuration: %v\n"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNoValidPaths indicates that all paths are invalid.
	errorNoValidPaths = "no valid paths"
	// errorOutputRequiresSinglePath rejects --output with more than one snapshot.
	errorOutputRequiresSinglePath = "--output supports exactly one path"
	// errorWriteOutputFormat reports failure to persist rendered output.
	errorWriteOutputFormat = "write output to '%s': %w"
)

// renderKind selects the textual form produced by a snapshot command.
type renderKind int

const (
	renderDiagram renderKind = iota
	renderListing
	renderMap
)

// applicationLogger carries the process-wide logger into the snapshot builder.
var applicationLogger *zap.Logger

// Execute runs the treeline application with the provided logger.
func Execute(logger *zap.Logger) error {
	applicationLogger = logger
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(),
		createListCommand(),
		createExportCommand(),
		createLoadCommand(),
		createFindCommand(),
		createSubtreeCommand(),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// pathOptions stores configuration for path-related flags.
type pathOptions struct {
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
	includeGit        bool
}

// tokenOptions stores token-counting flag values.
type tokenOptions struct {
	enabled bool
	model   string
}

// snapshotOptions aggregates every flag shared by the snapshot-rendering commands.
type snapshotOptions struct {
	paths       pathOptions
	folders     int
	files       int
	prefix      string
	copyEnabled bool
	tokens      tokenOptions
	outputPath  string
}

// addPathFlags registers path-related flags on the command.
func addPathFlags(command *cobra.Command, options *pathOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	command.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	command.Flags().BoolVar(&options.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
	command.Flags().BoolVar(&options.includeGit, includeGitFlagName, false, includeGitFlagDescription)
}

// addSnapshotFlags registers the flags shared by tree, list, and export.
func addSnapshotFlags(command *cobra.Command, options *snapshotOptions) {
	addPathFlags(command, &options.paths)
	command.Flags().IntVar(&options.folders, foldersFlagName, 0, foldersFlagDescription)
	command.Flags().IntVar(&options.files, filesFlagName, 0, filesFlagDescription)
	command.Flags().BoolVar(&options.copyEnabled, copyFlagName, false, copyFlagDescription)
	command.Flags().BoolVar(&options.tokens.enabled, tokensFlagName, false, tokensFlagDescription)
	command.Flags().StringVar(&options.tokens.model, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	command.Flags().StringVar(&options.outputPath, outputFlagName, "", outputFlagDescription)
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand() *cobra.Command {
	var options snapshotOptions
	options.tokens.model = defaultTokenizerModelName

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applyConfigurationDefaults(command, configurationSectionTree, &options)
			return runSnapshotCommand(renderDiagram, arguments, options)
		},
	}

	addSnapshotFlags(treeCommand, &options)
	treeCommand.Flags().StringVar(&options.prefix, prefixFlagName, "", prefixFlagDescription)
	return treeCommand
}

// createListCommand returns the list subcommand.
func createListCommand() *cobra.Command {
	var options snapshotOptions
	options.tokens.model = defaultTokenizerModelName

	listCommand := &cobra.Command{
		Use:     listUse,
		Aliases: []string{listAlias},
		Short:   listShortDescription,
		Long:    listLongDescription,
		Example: listUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applyConfigurationDefaults(command, configurationSectionList, &options)
			return runSnapshotCommand(renderListing, arguments, options)
		},
	}

	addSnapshotFlags(listCommand, &options)
	return listCommand
}

// createExportCommand returns the export subcommand.
func createExportCommand() *cobra.Command {
	var options snapshotOptions
	options.tokens.model = defaultTokenizerModelName

	exportCommand := &cobra.Command{
		Use:     exportUse,
		Aliases: []string{exportAlias},
		Short:   exportShortDescr,
		Long:    exportLongDescription,
		Example: exportUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applyConfigurationDefaults(command, configurationSectionExport, &options)
			return runSnapshotCommand(renderMap, arguments, options)
		},
	}

	addSnapshotFlags(exportCommand, &options)
	return exportCommand
}

// configurationSection names one block of the application configuration file.
type configurationSection int

const (
	configurationSectionTree configurationSection = iota
	configurationSectionList
	configurationSectionExport
)

// applyConfigurationDefaults overlays file-based defaults onto flags the user
// did not set explicitly. Configuration load failures degrade to flag
// defaults with a warning rather than aborting the command.
func applyConfigurationDefaults(command *cobra.Command, section configurationSection, options *snapshotOptions) {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{})
	if loadError != nil {
		fmt.Fprintf(os.Stderr, warningConfigurationFormat, loadError)
		return
	}

	var commandConfiguration config.SnapshotCommandConfiguration
	switch section {
	case configurationSectionTree:
		commandConfiguration = applicationConfiguration.Tree
	case configurationSectionList:
		commandConfiguration = applicationConfiguration.List
	case configurationSectionExport:
		commandConfiguration = applicationConfiguration.Export
	}

	flagSet := command.Flags()
	if !flagSet.Changed(foldersFlagName) && commandConfiguration.Folders != nil {
		options.folders = *commandConfiguration.Folders
	}
	if !flagSet.Changed(filesFlagName) && commandConfiguration.Files != nil {
		options.files = *commandConfiguration.Files
	}
	if !flagSet.Changed(copyFlagName) && commandConfiguration.Clipboard != nil {
		options.copyEnabled = *commandConfiguration.Clipboard
	}
	if !flagSet.Changed(tokensFlagName) && commandConfiguration.Tokens.Enabled != nil {
		options.tokens.enabled = *commandConfiguration.Tokens.Enabled
	}
	if !flagSet.Changed(modelFlagName) && commandConfiguration.Tokens.Model != "" {
		options.tokens.model = commandConfiguration.Tokens.Model
	}
	if !flagSet.Changed(noGitignoreFlagName) && commandConfiguration.Paths.UseGitignore != nil {
		options.paths.disableGitignore = !*commandConfiguration.Paths.UseGitignore
	}
	if !flagSet.Changed(noIgnoreFlagName) && commandConfiguration.Paths.UseIgnoreFile != nil {
		options.paths.disableIgnoreFile = !*commandConfiguration.Paths.UseIgnoreFile
	}
	if !flagSet.Changed(includeGitFlagName) && commandConfiguration.Paths.IncludeGit != nil {
		options.paths.includeGit = *commandConfiguration.Paths.IncludeGit
	}
	options.paths.exclusionPatterns = utils.DeduplicatePatterns(
		append(append([]string{}, commandConfiguration.Paths.Exclude...), options.paths.exclusionPatterns...),
	)
}

// validatedPath is one deduplicated, absolute, existing input path.
type validatedPath struct {
	absolutePath string
	isDirectory  bool
}

// runSnapshotCommand builds a snapshot per input path concurrently and
// renders the results in input order.
func runSnapshotCommand(kind renderKind, arguments []string, options snapshotOptions) error {
	if len(arguments) == 0 {
		arguments = []string{defaultPath}
	}
	validatedPaths, pathValidationError := resolveAndValidatePaths(arguments)
	if pathValidationError != nil {
		return pathValidationError
	}
	if options.outputPath != "" && len(validatedPaths) != 1 {
		return fmt.Errorf(errorOutputRequiresSinglePath)
	}

	depth := types.DepthPair{Folders: options.folders, Files: options.files}
	if depthValidationError := depth.Validate(); depthValidationError != nil {
		return depthValidationError
	}

	renderedOutputs := make([]string, len(validatedPaths))
	var workGroup errgroup.Group
	for pathIndex, pathInformation := range validatedPaths {
		pathIndex, pathInformation := pathIndex, pathInformation
		workGroup.Go(func() error {
			renderedOutput, renderError := buildAndRender(kind, pathInformation, depth, options)
			if renderError != nil {
				return renderError
			}
			renderedOutputs[pathIndex] = renderedOutput
			return nil
		})
	}
	if groupError := workGroup.Wait(); groupError != nil {
		return groupError
	}

	combinedOutput := strings.Join(renderedOutputs, "\n")
	return emitRenderedOutput(combinedOutput, options)
}

// buildAndRender walks one validated path and renders it in the requested form.
func buildAndRender(kind renderKind, pathInformation validatedPath, depth types.DepthPair, options snapshotOptions) (string, error) {
	var ignorePatterns []string
	if pathInformation.isDirectory {
		loadedPatterns, loadError := config.LoadCombinedIgnorePatterns(
			pathInformation.absolutePath,
			options.paths.exclusionPatterns,
			!options.paths.disableGitignore,
			!options.paths.disableIgnoreFile,
			options.paths.includeGit,
		)
		if loadError != nil {
			return "", loadError
		}
		ignorePatterns = loadedPatterns
	}

	fileTree, buildError := snapshot.BuildWithDepth(pathInformation.absolutePath, ignorePatterns, depth, applicationLogger)
	if buildError != nil {
		return "", buildError
	}

	switch kind {
	case renderListing:
		return fileTree.DumpListing(depth)
	case renderMap:
		jsonData, encodeError := codec.EncodeMapJSON(fileTree.Root)
		if encodeError != nil {
			return "", encodeError
		}
		return string(jsonData), nil
	default:
		return codec.EncodeDiagram(fileTree.Root, depth, options.prefix)
	}
}

// emitRenderedOutput routes combined output to stdout or a file and applies
// the clipboard and token-count side effects.
func emitRenderedOutput(combinedOutput string, options snapshotOptions) error {
	if options.outputPath != "" {
		if writeError := os.WriteFile(options.outputPath, []byte(combinedOutput+"\n"), 0o644); writeError != nil {
			return fmt.Errorf(errorWriteOutputFormat, options.outputPath, writeError)
		}
	} else {
		fmt.Println(combinedOutput)
	}

	if options.copyEnabled {
		if copyError := clipboard.NewService().Copy(combinedOutput); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		}
	}

	if options.tokens.enabled {
		tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.tokens.model})
		if counterError != nil {
			return counterError
		}
		tokenCount, countError := tokenizer.CountText(tokenCounter, combinedOutput)
		if countError != nil {
			return countError
		}
		fmt.Fprintf(os.Stderr, tokenCountMessageFormat, resolvedModel, tokenCount)
	}
	return nil
}

// resolveAndValidatePaths converts input paths to absolute form and validates their existence.
func resolveAndValidatePaths(inputs []string) ([]validatedPath, error) {
	seen := make(map[string]struct{})
	var result []validatedPath
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, alreadySeen := seen[cleanPath]; alreadySeen {
			continue
		}
		pathInformation, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, validatedPath{absolutePath: cleanPath, isDirectory: pathInformation.IsDir()})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf(errorNoValidPaths)
	}
	return result, nil
}
