package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/aepx/diff"
	"github.com/tsawler/aepx/internal/ui"
)

var diffCmd = &cobra.Command{
	Use:   "diff <previous.aepx> <current.aepx>",
	Short: "Compare the assets of two project versions",
	Long: `Scan two revisions of a project and print a JSON comparison: which assets
are still present, which are new, which were removed, and which the current
revision references but cannot find on disk.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runDiff(args[0], args[1]))
	},
}

func runDiff(previousPath, currentPath string) int {
	for _, path := range []string{previousPath, currentPath} {
		if err := checkProjectPath(path); err != nil {
			fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
			return 1
		}
	}

	previous, err := scanProject(previousPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}
	current, err := scanProject(currentPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	res := diff.Compare(previous, current)
	if err := res.Encode(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	if current.HasMissing() {
		return 2
	}
	return 0
}
