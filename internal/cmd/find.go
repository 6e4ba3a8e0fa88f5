package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/salvage/internal/glob"
	"github.com/harrison/salvage/internal/match"
)

// selectionFlags maps find's selection flags to match options.
var selectionFlags = []struct {
	name string
	opt  match.Options
}{
	{"undeleted", match.FindUndeleted},
	{"deleted", match.FindDeleted},
	{"contents", match.FindContents},
	{"recurs-find-deleted", match.RecursFindDeleted},
	{"recurs-find-undeleted", match.RecursFindUndeleted},
	{"recurs-deleted", match.RecursDeleted},
}

// NewFindCommand creates the find command
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <pattern>...",
		Short: "List entries matching patterns",
		Long: `List every filesystem entry matching the given shell-style patterns.

Patterns support *, ?, [...] and [!...] in each path component; a leading /
searches from the root, otherwise from the current directory. Quote
patterns so the shell does not expand them first.

Unless -u or -d is given, undeleted entries are listed.

Examples:
  # Deleted and undeleted entries directly under /srv/data
  salvage find -u -d '/srv/data/*'

  # Everything deleted anywhere below the project
  salvage find -d --recurs-find-deleted project

  # Contents of matched directories, one per line
  salvage find -c -1 'build/*'

  # Treat names literally and record the results
  salvage find --literal --manifest run.yaml 'odd[name]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: findCommand,
	}

	cmd.Flags().BoolP("undeleted", "u", false, "List undeleted entries")
	cmd.Flags().BoolP("deleted", "d", false, "List deleted entries")
	cmd.Flags().BoolP("contents", "c", false, "List the immediate contents of matched directories")
	cmd.Flags().Bool("recurs-find-deleted", false, "Search undeleted subdirectories of matches for deleted entries")
	cmd.Flags().Bool("recurs-find-undeleted", false, "Search undeleted subdirectories of matches for undeleted entries")
	cmd.Flags().Bool("recurs-deleted", false, "List the contents of deleted directories as well")
	cmd.Flags().Bool("literal", false, "Treat patterns as literal paths")
	addSearchFlags(cmd)

	return cmd
}

// findOptions builds the option set from the selection flags. Undeleted
// entries are listed unless -u or -d was given explicitly.
func findOptions(cmd *cobra.Command) match.Options {
	var opts match.Options
	for _, f := range selectionFlags {
		if v, _ := cmd.Flags().GetBool(f.name); v {
			opts |= f.opt
		}
	}
	if !cmd.Flags().Changed("undeleted") && !cmd.Flags().Changed("deleted") {
		opts |= match.FindUndeleted
	}
	return opts
}

func findCommand(cmd *cobra.Command, args []string) error {
	env, err := newSearchEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	patterns := args
	if literal, _ := cmd.Flags().GetBool("literal"); literal {
		patterns = make([]string, len(args))
		for i, arg := range args {
			patterns[i] = glob.Escape(arg)
		}
	}

	return env.run(cmd, "find", patterns, findOptions(cmd)|env.traversalOptions())
}
