package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/aepx/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info <project.aepx>",
	Short: "Show a human-readable summary of a project's assets",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runInfo(args[0]))
	},
}

func runInfo(path string) int {
	if err := checkProjectPath(path); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	rep, err := scanProject(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	fmt.Println(ui.Header(filepath.Base(rep.ProjectFile)))

	if info, err := os.Stat(path); err == nil {
		fmt.Printf("%s %s\n", ui.Info("Project file:"), ui.Size(info.Size()))
	}
	fmt.Printf("%s %d\n", ui.Info("Assets found:"), rep.AssetCount())
	fmt.Printf("%s %s\n", ui.Info("Assets size: "), ui.Size(rep.TotalSize))

	if rep.HasMissing() {
		fmt.Printf("%s %d\n", ui.Warning("Missing:     "), len(rep.MissingAssets))
		for _, path := range rep.MissingAssets {
			fmt.Printf("  %s\n", ui.Dim(path))
		}
		return 2
	}

	fmt.Println(ui.Success("All referenced assets are present"))
	return 0
}
