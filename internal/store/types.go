package store

import "time"

// Lookup is one recorded invocation of 'csvseek lookup'.
type Lookup struct {
	RecordedAt time.Time `json:"recordedAt"`
	Source     string    `json:"source"`
	Term       string    `json:"term"`
	Matches    int       `json:"matches"`

	// Output is the path of the result file, or empty when the
	// lookup matched nothing and therefore produced no file.
	Output string `json:"output,omitempty"`
}
