package transform

import "strings"

// SplitLines splits s on \r\n, \n and \r, keeping empty lines.
// The result always has at least one element.
func SplitLines(s string) []string {
	if !strings.ContainsAny(s, "\r\n") {
		return []string{s}
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
