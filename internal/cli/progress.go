// Package cli provides progress output helpers for long-running commands.
package cli

import (
	"fmt"
	"os"
	"time"
)

// progressStep is a single "Doing thing... done" line on stderr. A nil
// step is a no-op, so callers never need to branch on whether progress
// output is active.
type progressStep struct {
	started time.Time
}

func startProgress(label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(os.Stderr, "%s... ", label)
	return &progressStep{started: time.Now()}
}

func (p *progressStep) Done() {
	if p == nil {
		return
	}
	elapsed := time.Since(p.started)
	switch {
	case elapsed < time.Millisecond:
		// keep sub-millisecond noise out of the line
		fmt.Fprintln(os.Stderr, "done")
	case elapsed < time.Second:
		fmt.Fprintf(os.Stderr, "done (%s)\n", elapsed.Round(10*time.Millisecond))
	default:
		fmt.Fprintf(os.Stderr, "done (%s)\n", elapsed.Round(100*time.Millisecond))
	}
}

func (p *progressStep) Fail(err error) {
	if p == nil {
		return
	}
	if err == nil {
		fmt.Fprintln(os.Stderr, "failed")
		return
	}
	fmt.Fprintf(os.Stderr, "failed: %v\n", err)
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() || noProgress {
		return false
	}
	for _, name := range []string{"IGNOREHUB_NO_PROGRESS", "NO_PROGRESS"} {
		if _, ok := os.LookupEnv(name); ok {
			return false
		}
	}
	return true
}
