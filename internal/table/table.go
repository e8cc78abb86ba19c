// Package table renders delimited text files as aligned fixed-width
// tables on stdout. Fields are quote-stripped before measurement and
// rendering; the header row is uppercased and followed by a dash
// rule.
package table

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/csvseek/csvseek/internal/util"
	"golang.org/x/term"
)

// ErrInputUnavailable indicates a missing, unreadable, or empty
// table file.
var ErrInputUnavailable = errors.New("input unavailable")

// Each column is padded to its widest stripped field plus this many
// trailing spaces.
const columnPad = 2

// New creates a table with the given headers and no rows. The
// headers should all be unique.
func New(headers ...string) Table {
	seen := map[string]bool{}
	for _, header := range headers {
		if seen[header] {
			util.Panicf("duplicate table header: %s", header)
		}
		seen[header] = true
	}
	return Table{headers: headers}
}

// AddRow appends a data row. The row need not have the same length
// as the header; missing columns render as empty fields.
func (t *Table) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

// ReadFile parses the file at path into a Table. Every line is split
// on the delimiter; this split is naive, so a delimiter inside a
// quoted field is not protected. Each field then has one layer of
// surrounding double quotes and any carriage return stripped. Blank
// lines are skipped.
func ReadFile(path string, delimiter rune) (Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %s", ErrInputUnavailable, err)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return Table{}, fmt.Errorf("%w: %s is not a non-empty regular file", ErrInputUnavailable, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %s", ErrInputUnavailable, err)
	}
	defer f.Close()

	var t Table
	first := true
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSuffix(line, "\r") == "" {
			continue
		}
		fields := strings.Split(line, string(delimiter))
		for i := range fields {
			fields[i] = util.StripField(fields[i])
		}
		if first {
			t.headers = fields
			first = false
		} else {
			t.rows = append(t.rows, fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return Table{}, fmt.Errorf("%w: %s", ErrInputUnavailable, err)
	}
	if first {
		return Table{}, fmt.Errorf("%w: %s has no rows", ErrInputUnavailable, path)
	}
	return t, nil
}

// columnWidths returns the widest field per column over the header
// and all rows, measured in runes. Columns absent from a row count
// as empty.
func (t *Table) columnWidths() []int {
	n := len(t.headers)
	for i := range t.rows {
		if len(t.rows[i]) > n {
			n = len(t.rows[i])
		}
	}
	widths := make([]int, n)
	for j := range t.headers {
		if w := len([]rune(t.headers[j])); w > widths[j] {
			widths[j] = w
		}
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if w := len([]rune(t.rows[i][j])); w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}

// pad left-justifies s in a field of the given width.
func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

// Render formats the table as text: the uppercased header, a dash
// rule, then one line per data row. Every field is left-justified
// and padded to the column width plus two, columns are joined with a
// single space, and every line is newline-terminated. Render never
// mutates the table.
func (t *Table) Render() string {
	widths := t.columnWidths()

	var b strings.Builder
	fields := make([]string, len(widths))
	for j := range widths {
		var header string
		if j < len(t.headers) {
			header = t.headers[j]
		}
		fields[j] = pad(strings.ToUpper(header), widths[j]+columnPad)
	}
	b.WriteString(strings.Join(fields, " "))
	b.WriteByte('\n')

	for j := range widths {
		fields[j] = strings.Repeat("-", widths[j]+columnPad)
	}
	b.WriteString(strings.Join(fields, " "))
	b.WriteByte('\n')

	for i := range t.rows {
		for j := range widths {
			var field string
			if j < len(t.rows[i]) {
				field = t.rows[i][j]
			}
			fields[j] = pad(field, widths[j]+columnPad)
		}
		b.WriteString(strings.Join(fields, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// printOrPage either prints text to stdout or invokes the 'less'
// utility to display it. 'less' is invoked if stdout is connected to
// a tty, the provided width is too wide for the tty, and 'less' is
// actually installed.
func printOrPage(text string, width int) error {
	termWidth, _, err := term.GetSize(1)
	if err != nil || width < termWidth {
		fmt.Print(text)
		return nil
	}

	less, err := exec.LookPath("less")
	if err != nil {
		fmt.Print(text)
		return nil
	}

	util.ProgressCmd([]string{"less", "-S"})

	cmd := exec.Cmd{
		Path: less,
		Args: []string{"less", "-S"},
		// Normally, LANG or equivalent environment variables
		// will be set, so less will use the right charset out
		// of the box. Unfortunately this doesn't happen in
		// Docker, so we have to configure less manually
		// (otherwise it will display some non-ASCII
		// characters as escape sequences). See the man page
		// for less.
		Env: append(os.Environ(), "LESSCHARSET=utf-8"),
		// Letting Run feed stdin avoids filling the pipe
		// buffer before the pager has started reading.
		Stdin:  strings.NewReader(text),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running pager: %w", err)
	}
	return nil
}

// Print writes the rendered table to stdout. If the table is too
// wide for the current terminal, and the 'less' utility is
// installed, Print invokes it with the -S option to truncate long
// lines and allow horizontal scrolling.
func (t *Table) Print() error {
	text := t.Render()
	width := 0
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		width = len([]rune(text[:i]))
	}
	return printOrPage(text, width)
}
