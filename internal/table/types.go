package table

// Table represents a set of simple tabular data: a header row naming
// the columns, and zero or more data rows. Rows may be ragged; short
// rows are rendered as if padded with empty fields. Construct a table
// with New or ReadFile, then use AddRow, Render, and Print.
type Table struct {
	headers []string
	rows    [][]string
}
