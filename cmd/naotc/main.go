package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"naotc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "naotc",
	Short: "Whole-program native-image compiler driver",
	Long:  `naotc loads a module group, scans it for reachable code, compiles exactly what the scan proved live, and hands the resulting symbols to an object writer.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "trace output path in stream or both mode (- or empty means stderr); ring mode keeps events in memory only")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace buffering mode (ring|stream)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "trace ring buffer capacity in events")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat trace event at this interval (0 disables)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
