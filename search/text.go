package search

import "strings"

// Words splits a raw query on runs of whitespace.
// Leading, trailing and repeated whitespace produce no empty words.
func Words(raw string) []string {
	return strings.Fields(raw)
}
