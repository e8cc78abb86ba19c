package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	goversion "github.com/hashicorp/go-version"
	yaml "gopkg.in/yaml.v2"
)

// Source is one entry of the source manifest.
type Source struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`

	// Format is the dataset schema version the source publishes.
	// Entries outside the supported range are rejected at resolve
	// time rather than producing garbage matches.
	Format string `yaml:"format,omitempty"`
}

// Manifest maps source names to their definitions.
type Manifest struct {
	Sources map[string]Source `yaml:"sources"`
}

// supportedFormats is the range of dataset schema versions this
// build understands.
var supportedFormats = goversion.MustConstraints(goversion.NewConstraint(">= 1.0, < 2.0"))

// ManifestPath returns the manifest location: the explicit override
// if non-empty, else CSVSEEK_SOURCES, else
// ~/.config/csvseek/sources.yaml.
func ManifestPath(override string) string {
	if override != "" {
		return override
	}
	if loc, ok := os.LookupEnv("CSVSEEK_SOURCES"); ok {
		return loc
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "csvseek", "sources.yaml")
}

// LoadManifest reads the manifest at path. A missing file yields an
// empty manifest; any named source then fails to resolve.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	if path == "" {
		return m, nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, fmt.Errorf("%s: %s", path, err)
	}
	if err := yaml.Unmarshal(contents, &m); err != nil {
		return Manifest{}, fmt.Errorf("%s: %s", path, err)
	}
	return m, nil
}

// Resolve looks up a source by name and checks that its declared
// format version is one this build supports. An empty format means
// "1.0".
func (m Manifest) Resolve(name string) (Source, error) {
	src, ok := m.Sources[name]
	if !ok {
		return Source{}, fmt.Errorf("no such source: %s", name)
	}
	formatStr := src.Format
	if formatStr == "" {
		formatStr = "1.0"
	}
	format, err := goversion.NewVersion(formatStr)
	if err != nil {
		return Source{}, fmt.Errorf("source %s: bad format version %q: %s", name, src.Format, err)
	}
	if !supportedFormats.Check(format) {
		return Source{}, fmt.Errorf("source %s: format %s is outside the supported range %s", name, format, supportedFormats)
	}
	return src, nil
}

// Names returns the manifest's source names, sorted.
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m.Sources))
	for name := range m.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
