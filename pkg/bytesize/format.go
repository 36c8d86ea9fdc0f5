// Package bytesize provides human-friendly byte size formatting.
package bytesize

import "fmt"

// unit boundaries, 1024-based
const (
	kb = 1 << 10
	mb = 1 << 20
	gb = 1 << 30
	tb = 1 << 40
)

// Format renders n as a human-friendly size with one decimal, picking the
// largest unit that keeps the value at or above 1. Sizes below 1 KB are
// plain byte counts.
//
// Examples:
//
//	Format(512)        // "512B"
//	Format(1536)       // "1.5KB"
//	Format(536870912)  // "512.0MB"
func Format(n int64) string {
	switch {
	case n >= tb:
		return fmt.Sprintf("%.1fTB", float64(n)/tb)
	case n >= gb:
		return fmt.Sprintf("%.1fGB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.1fMB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1fKB", float64(n)/kb)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
