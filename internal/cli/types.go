package cli

// outputFormat enumerates the values of the --format flag.
type outputFormat int

const (
	outputFormatTable outputFormat = iota
	outputFormatJSON
)
