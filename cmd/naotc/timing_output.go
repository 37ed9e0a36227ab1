package main

import (
	"fmt"
	"io"

	"naotc/internal/observ"
)

// printTimings renders a Report as one line per phase plus a total, in
// the name/milliseconds/note shape of observ.Timer.Summary but without
// its header line or indent and with a narrower name column.
func printTimings(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	for _, p := range report.Phases {
		line := fmt.Sprintf("%-10s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  // " + p.Note
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "%-10s %7.2f ms\n", "total", report.TotalMS)
}
