// Package cli provides table helpers for human-readable output.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.StripEscape)
	for _, line := range append([][]string{headers}, rows...) {
		if len(line) == 0 {
			continue
		}
		fmt.Fprintln(writer, strings.Join(line, "\t"))
	}
	return writer.Flush()
}
