// Package filter implements the row filter: it copies the header of
// a delimited text file and every data row whose first column matches
// a search term into a new file, preserving row order and original
// quoting. Zero matches is a success that leaves no output file.
package filter

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/csvseek/csvseek/internal/util"
)

var (
	// ErrInvalidArgument indicates an empty search term or path.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInputUnavailable indicates a missing, unreadable, or
	// empty input file.
	ErrInputUnavailable = errors.New("input unavailable")

	// ErrOutputWriteFailure indicates the output directory or
	// file could not be created or written.
	ErrOutputWriteFailure = errors.New("output write failure")
)

// Matching always extracts the first comma-separated field,
// regardless of the delimiter used for rendering.
const delimiter = ','

// File filters inputPath into outputPath, keeping the header row and
// the data rows whose quote-stripped first column satisfies m. It
// returns the number of matching data rows. On zero matches the
// output path is removed (stale files from earlier runs included)
// and no error is returned. The output is written in one atomic
// step, so a failed run never leaves a header with truncated rows.
func File(inputPath, term, outputPath string, m Matcher) (int, error) {
	if inputPath == "" || term == "" || outputPath == "" {
		return 0, fmt.Errorf("%w: input path, search term, and output path must be non-empty", ErrInvalidArgument)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInputUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInputUnavailable, err)
		}
		return 0, fmt.Errorf("%w: %s is empty", ErrInputUnavailable, inputPath)
	}

	// The header is copied verbatim and never tested against the
	// search term.
	var out strings.Builder
	out.WriteString(scanner.Text())
	out.WriteByte('\n')

	count := 0
	for scanner.Scan() {
		row := scanner.Text()
		if strings.TrimSuffix(row, "\r") == "" {
			continue
		}
		if m.Matches(util.FirstField(row, delimiter)) {
			out.WriteString(row)
			out.WriteByte('\n')
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInputUnavailable, err)
	}

	if count == 0 {
		if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrOutputWriteFailure, err)
		}
		return 0, nil
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := util.EnsureDir(dir); err != nil {
			return 0, fmt.Errorf("%w: %s", ErrOutputWriteFailure, err)
		}
	}
	if err := util.TryWriteAtomic(outputPath, []byte(out.String())); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrOutputWriteFailure, err)
	}
	return count, nil
}
