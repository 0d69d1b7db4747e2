package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/buildprobe/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "buildprobe",
	Short:        "Inspect compiler invocations and build results",
	Long:         `Parse csc compiler invocations and derive source files, references and packages from build events.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("fragment", "", "Text identifying the compiler token (default \"csc.\")")
	rootCmd.PersistentFlags().String("store-dir", "", "Snapshot store directory")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(storeCmd)
}

// newLogger creates the stderr logger shared by a command run
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "buildprobe",
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}
