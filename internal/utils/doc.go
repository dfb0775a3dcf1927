// Package utils provides small shared helpers: safe numeric conversions,
// randomized pauses for human-like timing, content-type inspection,
// and browser fingerprint selection.
package utils
