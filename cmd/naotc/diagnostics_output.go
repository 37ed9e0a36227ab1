package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"naotc/internal/diag"
)

// printDiagnostics renders every diagnostic in bag as one
// "SEVERITY CODE module!entity message" line, in Bag.Sort order,
// colorizing the severity token when useColor asks for it.
func printDiagnostics(out io.Writer, bag *diag.Bag, useColor bool) {
	items := bag.Items()
	if len(items) == 0 {
		return
	}
	sevColor := map[diag.Severity]*color.Color{
		diag.SevInfo:    color.New(color.FgCyan),
		diag.SevWarning: color.New(color.FgYellow),
		diag.SevError:   color.New(color.FgRed, color.Bold),
	}
	bag.Sort()
	for _, d := range bag.Items() {
		sev := d.Severity.String()
		if useColor {
			if c, ok := sevColor[d.Severity]; ok {
				sev = c.Sprint(sev)
			}
		}
		fmt.Fprintf(out, "%s %s %s %s\n", sev, d.Code, d.Primary, d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(out, "  note: %s: %s\n", n.At, n.Msg)
		}
	}
	if len(items) >= int(bag.Cap()) {
		fmt.Fprintf(out, "(diagnostics truncated at %d; pass --max-diagnostics to see more)\n", bag.Cap())
	}
}
