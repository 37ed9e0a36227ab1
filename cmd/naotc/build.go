package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"naotc/internal/cache"
	"naotc/internal/config"
	"naotc/internal/diag"
	"naotc/internal/driver"
	"naotc/internal/trace"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] <manifest>",
	Short: "Build a project manifest",
	Long:  "Build a project manifest: load its module group, scan it for reachable code, compile what the scan proved live, and hand the resulting symbols to the object writer (the built-in writer keeps them in memory and writes no file).",
	Args:  cobra.ExactArgs(1),
	RunE:  buildExecution,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "a.out", "output object file path")
	buildCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	buildCmd.Flags().Bool("findings-cache", false, "persist/reuse the scan pass's findings across runs under XDG_CACHE_HOME")
	buildCmd.Flags().Int("jobs", 0, "module load concurrency (0 means GOMAXPROCS)")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("findings-cache")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanupTrace()

	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	moduleNames := make([]string, 0, len(manifest.Modules))
	for _, entry := range manifest.Modules {
		moduleNames = append(moduleNames, entry.Name)
	}

	var store *cache.Store
	if useCache {
		store, err = cache.Open("naotc")
		if err != nil {
			return fmt.Errorf("opening findings cache: %w", err)
		}
	}

	bag := diag.NewBag(maxDiagnostics)
	req := &driver.Request{
		ManifestPath: manifestPath,
		OutputPath:   outputPath,
		Flags:        config.FlagsFromEnv(),
		Cache:        store,
		Reporter:     diag.BagReporter{Bag: bag},
		Tracer:       trace.FromContext(cmd.Context()),
		Jobs:         jobs,
	}

	useTUI := shouldUseTUI(uiModeValue)
	var result *driver.Result
	if useTUI && len(moduleNames) > 0 {
		result, err = runWithUI(cmd.Context(), "naotc build", moduleNames, req)
	} else {
		result, err = driver.Run(cmd.Context(), req)
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	if bag.Len() > 0 {
		printDiagnostics(os.Stderr, bag, useColor)
	}
	if err != nil {
		return err
	}

	if showTimings && result != nil {
		printTimings(os.Stdout, result.Timings)
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "built %s\n", outputPath)
	}
	if bag.HasErrors() {
		return fmt.Errorf("build failed with diagnostics")
	}
	return nil
}
