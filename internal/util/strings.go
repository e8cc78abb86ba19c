package util

import "strings"

// StripField normalizes a raw field: it removes a trailing carriage
// return left over from CRLF line endings, then strips one layer of
// surrounding double quotes if present. Inner quotes are untouched.
func StripField(field string) string {
	field = strings.TrimSuffix(field, "\r")
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		field = field[1 : len(field)-1]
	}
	return field
}

// FirstField extracts the first delimiter-separated field from a raw
// row, quote-stripped. The split is naive: a comma inside a quoted
// field is not protected.
func FirstField(row string, delimiter rune) string {
	if i := strings.IndexRune(row, delimiter); i >= 0 {
		row = row[:i]
	}
	return StripField(row)
}
