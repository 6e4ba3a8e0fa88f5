package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/salvage/internal/match"
)

// NewLsdelCommand creates the lsdel command
func NewLsdelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsdel [pattern]...",
		Short: "List deleted entries",
		Long: `List deleted entries matching the given patterns and every deleted entry
below matched directories. Without a pattern the current directory is
searched.

Examples:
  salvage lsdel
  salvage lsdel -r '/home/*/src'`,
		Args: cobra.ArbitraryArgs,
		RunE: lsdelCommand,
	}

	cmd.Flags().BoolP("recursive", "r", false, "List the contents of deleted directories as well")
	addSearchFlags(cmd)

	return cmd
}

func lsdelCommand(cmd *cobra.Command, args []string) error {
	env, err := newSearchEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	opts := match.FindDeleted | match.RecursFindDeleted
	if recursive, _ := cmd.Flags().GetBool("recursive"); recursive {
		opts |= match.RecursDeleted
	}

	return env.run(cmd, "lsdel", patterns, opts|env.traversalOptions())
}
