package diag

import (
	"fmt"
	"sort"
	"strings"
)

// FormatDiagnostics renders diagnostics into a stable, single-line-per-
// entry representation suitable for golden files and CLI short output:
// "SEVERITY CODE module!entity message".
func FormatDiagnostics(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	rendered := make([]Diagnostic, len(diags))
	copy(rendered, diags)
	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Primary.String() != dj.Primary.String() {
			return di.Primary.String() < dj.Primary.String()
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code.String() < dj.Code.String()
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code, d.Primary, sanitizeMessage(d.Message))
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\n  note: %s: %s", n.At, sanitizeMessage(n.Msg))
		}
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
