package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/tsawler/aepx/collect"
	"github.com/tsawler/aepx/internal/ui"
)

var collectCmd = &cobra.Command{
	Use:   "collect <project.aepx> <dest-dir>",
	Short: "Copy a project and its assets into a portable directory",
	Long: `Scan a project and copy it, together with every asset that exists on
disk, into the destination directory. Assets are pooled under assets/ by
filename, so collecting related projects into the same destination shares
footage between them.

Missing assets cannot be collected; when any are missing the collection is
partial and the exit code is 2.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCollect(args[0], args[1]))
	},
}

func runCollect(projectPath, destDir string) int {
	if err := checkProjectPath(projectPath); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	rep, err := scanProject(projectPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " collecting assets..."
	s.Start()

	res, err := collect.Run(rep, destDir, collect.Options{
		Progress: func(ev collect.Event) {
			s.Suffix = fmt.Sprintf(" %s %s", ev.Action, ev.Filename)
		},
	})
	s.Stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	fmt.Println(ui.Success(fmt.Sprintf("Collected %d files (%s) into %s", res.Copied, ui.Size(res.Bytes), res.Dest)))
	if res.Reused > 0 {
		fmt.Println(ui.Info(fmt.Sprintf("Reused %d pooled assets", res.Reused)))
	}
	if rep.HasMissing() {
		fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("%d referenced assets are missing; the collection is partial", len(rep.MissingAssets))))
		return 2
	}
	return 0
}
