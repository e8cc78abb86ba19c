package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/csvseek/csvseek/internal/fetch"
	"github.com/csvseek/csvseek/internal/filter"
	"github.com/csvseek/csvseek/internal/store"
	"github.com/csvseek/csvseek/internal/table"
	"github.com/csvseek/csvseek/internal/trace"
	"github.com/csvseek/csvseek/internal/util"
)

// newMatcher builds the matching backend for a term, honoring
// --regex and the portable-match config toggle.
func newMatcher(term string, useRegex bool) filter.Matcher {
	if useRegex {
		m, err := filter.NewRegexpMatcher(term)
		if err != nil {
			util.Die("%s", err)
		}
		return m
	}
	probe := filter.DefaultProbe
	if cfg.PortableMatch {
		probe = func() bool { return false }
	}
	m, err := filter.NewMatcher(term, probe)
	if err != nil {
		util.Die("%s", err)
	}
	return m
}

// parseDelimiter validates a --delimiter value, falling back to the
// config file and then to a comma.
func parseDelimiter(delimiterStr string) rune {
	if delimiterStr == "" {
		delimiterStr = cfg.Delimiter
	}
	if delimiterStr == "" {
		delimiterStr = ","
	}
	runes := []rune(delimiterStr)
	if len(runes) != 1 {
		util.Die("Error: delimiter must be a single character, got %#v", delimiterStr)
	}
	return runes[0]
}

// runFilter implements 'csvseek filter'.
func runFilter(input, term, output string, useRegex bool) {
	span, _ := trace.StartSpan("cmd.filter")
	defer span.Finish()

	if !util.FileExists(input) {
		util.Die("no such file: %s", input)
	}
	count, err := filter.File(input, term, output, newMatcher(term, useRegex))
	if err != nil {
		util.Die("%s", err)
	}
	if count == 0 {
		util.Log("no matches")
		return
	}
	util.ProgressMsg(fmt.Sprintf("wrote %d matching rows to %s", count, output))
}

// runRender implements 'csvseek render'.
func runRender(path, delimiterStr string) {
	if !util.IsRegularFile(path) || util.IsEmptyFile(path) {
		util.Die("%s: not a non-empty regular file", path)
	}
	t, err := table.ReadFile(path, parseDelimiter(delimiterStr))
	if err != nil {
		util.Die("%s", err)
	}
	if err := t.Print(); err != nil {
		util.Die("%s", err)
	}
}

type lookupOptions struct {
	source    string
	url       string
	outputDir string
	regex     bool
	delimiter string
}

// slug reduces a search term to a filesystem-safe token for result
// filenames.
func slug(term string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(term) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// outputPath namespaces each lookup's result file with a UTC
// timestamp, so concurrent invocations never write the same path.
func outputPath(dir, source, term string) string {
	stamp := time.Now().UTC().Format("20060102T150405Z")
	name := fmt.Sprintf("%s-%s-%s.csv", source, slug(term), stamp)
	return filepath.Join(dir, name)
}

// runLookup implements 'csvseek lookup': fetch, filter, render,
// record.
func runLookup(term string, opts lookupOptions) {
	span, _ := trace.StartSpan("cmd.lookup")
	defer span.Finish()

	sourceName := opts.source
	sourceURL := opts.url
	if sourceURL == "" {
		if sourceName == "" {
			sourceName = cfg.DefaultSource
		}
		if sourceName == "" {
			util.Die("Error: no source given (use --source or --url, or set default_source in the config file)")
		}
		manifest, err := fetch.LoadManifest(fetch.ManifestPath(cfg.Sources))
		if err != nil {
			util.Die("%s", err)
		}
		src, err := manifest.Resolve(sourceName)
		if err != nil {
			util.Die("%s", err)
		}
		sourceURL = src.URL
	} else if sourceName == "" {
		sourceName = "url"
	}

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			util.Die("%s", err)
		}
		outputDir = filepath.Join(cache, "csvseek", "results")
	}

	util.ProgressMsg("fetching " + sourceURL)
	local, err := fetch.Fetch(sourceURL, filepath.Join(outputDir, "downloads"))
	if err != nil {
		util.Die("%s", err)
	}

	output := outputPath(outputDir, sourceName, term)
	count, err := filter.File(local, term, output, newMatcher(term, opts.regex))
	if err != nil {
		util.Die("%s", err)
	}

	recorded := store.Lookup{
		Source:  sourceName,
		Term:    term,
		Matches: count,
	}
	if count > 0 {
		recorded.Output = output
	}
	if s, err := store.Open(); err != nil {
		util.Log("history not recorded:", err)
	} else {
		if err := s.Record(recorded); err != nil {
			util.Log("history not recorded:", err)
		}
		s.Close()
	}

	if count == 0 {
		util.Log("no matches")
		return
	}
	util.ProgressMsg(fmt.Sprintf("wrote %d matching rows to %s", count, output))

	t, err := table.ReadFile(output, parseDelimiter(opts.delimiter))
	if err != nil {
		util.Die("%s", err)
	}
	if err := t.Print(); err != nil {
		util.Die("%s", err)
	}
}

// sourceLine represents one line in the table emitted by 'csvseek
// sources'.
type sourceLine struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`
}

// runSources implements 'csvseek sources'.
func runSources(format outputFormat) {
	manifest, err := fetch.LoadManifest(fetch.ManifestPath(cfg.Sources))
	if err != nil {
		util.Die("%s", err)
	}

	lines := []sourceLine{}
	for _, name := range manifest.Names() {
		src := manifest.Sources[name]
		lines = append(lines, sourceLine{
			Name:        name,
			URL:         src.URL,
			Description: src.Description,
			Format:      src.Format,
		})
	}

	switch format {
	case outputFormatTable:
		if len(lines) == 0 {
			util.Log("no sources defined")
			return
		}
		t := table.New("name", "url", "description", "format")
		for _, line := range lines {
			t.AddRow(line.Name, line.URL, line.Description, line.Format)
		}
		if err := t.Print(); err != nil {
			util.Die("%s", err)
		}

	case outputFormatJSON:
		outputB, err := json.Marshal(lines)
		if err != nil {
			panic(err)
		}
		fmt.Println(string(outputB))
	}
}

// runHistory implements 'csvseek history'.
func runHistory(limit int, format outputFormat) {
	s, err := store.Open()
	if err != nil {
		util.Die("%s", err)
	}
	defer s.Close()

	lookups, err := s.Recent(limit)
	if err != nil {
		util.Die("%s", err)
	}

	switch format {
	case outputFormatTable:
		if len(lookups) == 0 {
			util.Log("no lookups recorded")
			return
		}
		t := table.New("when", "source", "term", "matches", "output")
		for _, l := range lookups {
			t.AddRow(
				l.RecordedAt.Format(time.RFC3339),
				l.Source,
				l.Term,
				strconv.Itoa(l.Matches),
				l.Output,
			)
		}
		if err := t.Print(); err != nil {
			util.Die("%s", err)
		}

	case outputFormatJSON:
		outputB, err := json.Marshal(lookups)
		if err != nil {
			panic(err)
		}
		fmt.Println(string(outputB))
	}
}
