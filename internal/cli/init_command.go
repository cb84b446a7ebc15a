package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/treeline/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	// initLongDescription provides detailed help for the init command.
	initLongDescription = `Write a default configuration file with commented defaults for the
tree, list, and export commands. By default the file is created in the
working directory; --global writes it under the home directory instead.`
	// initUsageExample demonstrates init command usage.
	initUsageExample = `  # Create .treeline.yaml in the current directory
  treeline init

  # Replace the global configuration
  treeline init --global --force`

	globalFlagName           = "global"
	globalFlagDescription    = "write the configuration under the home directory"
	forceFlagName            = "force"
	forceFlagDescription     = "overwrite an existing configuration file"
	initSuccessMessageFormat = "Configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var globalTarget bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:     initUse,
		Short:   initShortDescription,
		Long:    initLongDescription,
		Example: initUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			writtenPath, initializationError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initializationError != nil {
				return initializationError
			}
			fmt.Printf(initSuccessMessageFormat, writtenPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&globalTarget, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}
