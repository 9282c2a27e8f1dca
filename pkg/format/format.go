// Package format renders sizes and timestamps for listing display.
package format

import (
	"fmt"
	"math"
	"time"
)

// Empty is shown where a value is absent.
const Empty = "—"

// Bytes renders a size in 1024-based units, one decimal above bytes.
func Bytes(n int64) string {
	if n == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	v := float64(n) / math.Pow(1024, float64(i))
	if i == 0 {
		return fmt.Sprintf("%.0f %s", v, units[i])
	}
	return fmt.Sprintf("%.1f %s", v, units[i])
}

// SizePtr renders an optional size, Empty when unknown.
func SizePtr(n *int64) string {
	if n == nil {
		return Empty
	}
	return Bytes(*n)
}

// Date renders a timestamp in local time, Empty when absent.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Empty
	}
	return t.Local().Format("2006-01-02 15:04")
}
