// aepxscan scans After Effects XML project files (.aepx) for referenced
// assets and reports which ones exist on disk.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tsawler/aepx"
	"github.com/tsawler/aepx/internal/ui"
	"github.com/tsawler/aepx/model"
)

var rootCmd = &cobra.Command{
	Use:   "aepxscan <project.aepx>",
	Short: "Report the asset references of an After Effects project",
	Long: `aepxscan parses an .aepx project file, resolves every asset it references
against the project directory, and prints a JSON report of the assets that
exist and the ones that are missing.

The report goes to standard output; diagnostics go to standard error. The
exit code is 0 when every referenced asset exists, 2 when one or more are
missing, and 1 when the invocation itself is wrong.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runScan(args[0], os.Stdout))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ui.Header(versionBanner(version)))
		if commit != "none" && commit != "" {
			fmt.Printf("Commit: %s\n", commit)
		}
		if date != "unknown" && date != "" {
			fmt.Printf("Built:  %s\n", date)
		}
	},
}

func versionBanner(v string) string {
	if v == "dev" {
		return "aepxscan (dev)"
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return "aepxscan " + v
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command and maps the result to a process exit code.
// Commands that finish their work call os.Exit themselves; an error here
// means cobra rejected the invocation.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// checkProjectPath enforces the invocation preconditions: the path must
// exist and must end in .aepx.
func checkProjectPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file '%s' does not exist", path)
		}
		return fmt.Errorf("cannot access '%s': %v", path, err)
	}
	if !strings.HasSuffix(path, ".aepx") {
		return fmt.Errorf("file must have .aepx extension (re-save binary projects as XML)")
	}
	return nil
}

// scanProject runs the scan and logs any warnings to stderr.
func scanProject(path string) (*model.Report, error) {
	rep, warnings, err := aepx.Open(path).Report()
	if err != nil {
		return nil, err
	}
	for _, warn := range warnings {
		log.Warn(warn.Message, "code", warn.Code)
	}
	return rep, nil
}

// runScan implements the root invocation: validate, scan, emit the JSON
// report, and choose the exit code.
func runScan(path string, out io.Writer) int {
	if err := checkProjectPath(path); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	rep, err := scanProject(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	if err := rep.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return 1
	}

	return scanExitCode(rep)
}

// scanExitCode is 2 when assets are missing, 0 otherwise.
func scanExitCode(rep *model.Report) int {
	if rep.HasMissing() {
		return 2
	}
	return 0
}
