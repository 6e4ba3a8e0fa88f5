package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for salvage
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salvage",
		Short: "Find deleted and undeleted files for recovery",
		Long: `Salvage resolves shell-style patterns against the filesystem and lists
the entries that match, telling apart entries that were deleted (renamed
with a marker prefix, ".#" by default) from those that were not.

Matched directories can be expanded into their contents, following
symbolic links and crossing mountpoints only when asked to.

Configuration is loaded from .salvage/config.yaml in the current
directory, or from $SALVAGE_HOME/config.yaml (default ~/.salvage).
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the returned error once
		SilenceErrors: true,
	}

	cmd.AddCommand(NewFindCommand())
	cmd.AddCommand(NewLsdelCommand())

	return cmd
}
