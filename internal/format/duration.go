// Package format renders durations, sizes and ratios for display.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatMillis renders d as a whole number of milliseconds, the unit the
// benchmark reports its results in.
func FormatMillis(d time.Duration) string {
	return fmt.Sprintf("%d ms", d.Milliseconds())
}

// FormatSpeedup renders how many times faster candidate is than baseline,
// e.g. "1.25x". A zero candidate yields "n/a".
func FormatSpeedup(baseline, candidate time.Duration) string {
	if candidate <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", float64(baseline)/float64(candidate))
}
