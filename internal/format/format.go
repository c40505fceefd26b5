// Package format renders file details for display: byte sizes and server
// timestamps.
package format

import (
	"fmt"
	"time"
)

const timestampLayout = "Jan 2, 2006 15:04:05"

// Size renders a byte count with a binary unit, one decimal place above KiB.
func Size(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Timestamp renders a server timestamp in local time for display.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timestampLayout)
}
