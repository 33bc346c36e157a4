package tui

import "strconv"

// itoaNonZero formats n, or returns "" for zero so empty rows are hidden.
func itoaNonZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
