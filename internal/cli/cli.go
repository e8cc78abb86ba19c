// Package cli implements the command-line interface of csvseek.
package cli

import (
	"fmt"
	"os"

	"github.com/csvseek/csvseek/internal/config"
	"github.com/csvseek/csvseek/internal/trace"
	"github.com/csvseek/csvseek/internal/util"
	"github.com/spf13/cobra"
)

// parseOutputFormat takes "table" or "json" and returns an
// outputFormat enum value.
func parseOutputFormat(formatStr string) outputFormat {
	switch formatStr {
	case "table":
		return outputFormatTable
	case "json":
		return outputFormatJSON
	default:
		util.Die(`Error: invalid format %#v (must be "table" or "json")`, formatStr)
		return 0
	}
}

// version is set at build time to a Git tag or the string
// "development version" when not tagging a release.
var version = "unknown version"

// getVersion returns a string that can be printed when calling
// 'csvseek --version'.
func getVersion() string {
	return "csvseek " + version
}

// cfg holds the configuration file contents, loaded once in DoCLI.
// Command-line flags take precedence over it.
var cfg config.File

// DoCLI reads the command-line arguments and runs the appropriate
// code, then exits the process (or returns to indicate normal exit).
func DoCLI() {
	if trace.MaybeTrace(version) {
		defer trace.Stop()
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		util.Die("%s", err)
	}

	var formatStr string
	var delimiterStr string
	var useRegex bool
	var sourceName string
	var sourceURL string
	var outputDir string
	var limit int

	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:     "csvseek",
		Version: getVersion(),
	}
	rootCmd.SetVersionTemplate(`{{.Version}}` + "\n")
	rootCmd.PersistentFlags().BoolVarP(
		&config.Quiet, "quiet", "q", false, "don't show progress messages",
	)
	rootCmd.PersistentFlags().BoolP(
		"help", "h", false, "display command-line usage",
	)
	rootCmd.PersistentFlags().BoolP(
		"version", "v", false, "display command version",
	)

	cmdLookup := &cobra.Command{
		Use:   "lookup TERM",
		Short: "Fetch a source and show rows whose first column matches",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runLookup(args[0], lookupOptions{
				source:    sourceName,
				url:       sourceURL,
				outputDir: outputDir,
				regex:     useRegex,
				delimiter: delimiterStr,
			})
		},
	}
	cmdLookup.Flags().SortFlags = false
	cmdLookup.Flags().StringVarP(
		&sourceName, "source", "s", "", "name of a manifest source to search",
	)
	cmdLookup.Flags().StringVarP(
		&sourceURL, "url", "u", "", "fetch the dataset from this URL instead",
	)
	cmdLookup.Flags().StringVarP(
		&outputDir, "output-dir", "o", "", "directory for result files",
	)
	cmdLookup.Flags().BoolVarP(
		&useRegex, "regex", "r", false, "treat TERM as a regular expression",
	)
	cmdLookup.Flags().StringVarP(
		&delimiterStr, "delimiter", "d", "", "single-character column delimiter for rendering",
	)
	rootCmd.AddCommand(cmdLookup)

	cmdFilter := &cobra.Command{
		Use:   "filter INPUT TERM OUTPUT",
		Short: "Write rows whose first column matches into a new file",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			runFilter(args[0], args[1], args[2], useRegex)
		},
	}
	cmdFilter.Flags().SortFlags = false
	cmdFilter.Flags().BoolVarP(
		&useRegex, "regex", "r", false, "treat TERM as a regular expression",
	)
	rootCmd.AddCommand(cmdFilter)

	cmdRender := &cobra.Command{
		Use:   "render FILE",
		Short: "Pretty-print a delimited text file as an aligned table",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runRender(args[0], delimiterStr)
		},
	}
	cmdRender.Flags().SortFlags = false
	cmdRender.Flags().StringVarP(
		&delimiterStr, "delimiter", "d", "", "single-character column delimiter",
	)
	rootCmd.AddCommand(cmdRender)

	cmdSources := &cobra.Command{
		Use:   "sources",
		Short: "List the sources defined in the manifest",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runSources(parseOutputFormat(formatStr))
		},
	}
	cmdSources.Flags().SortFlags = false
	cmdSources.Flags().StringVarP(
		&formatStr, "format", "f", "table", `output format ("table" or "json")`,
	)
	rootCmd.AddCommand(cmdSources)

	cmdHistory := &cobra.Command{
		Use:   "history",
		Short: "List recent lookups",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runHistory(limit, parseOutputFormat(formatStr))
		},
	}
	cmdHistory.Flags().SortFlags = false
	cmdHistory.Flags().IntVarP(
		&limit, "limit", "n", 20, "number of lookups to show",
	)
	cmdHistory.Flags().StringVarP(
		&formatStr, "format", "f", "table", `output format ("table" or "json")`,
	)
	rootCmd.AddCommand(cmdHistory)

	specialArgs := map[string](func()){}
	for _, helpFlag := range []string{"-help", "-?"} {
		specialArgs[helpFlag] = func() {
			rootCmd.Usage()
			os.Exit(0)
		}
	}
	for _, versionFlag := range []string{"-version", "-V"} {
		specialArgs[versionFlag] = func() {
			fmt.Println(getVersion())
			os.Exit(0)
		}
	}

	if len(os.Args) >= 2 {
		fn, ok := specialArgs[os.Args[1]]
		if ok {
			fn()
		}
	}

	rootCmd.Execute()
}
