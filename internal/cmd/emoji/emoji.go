// Package emoji provides symbol constants for CLI output.
// These symbols give the progress lines of every command the same shape.
package emoji

const (
	// Success marks an article that was edited (or would be, in a dry run).
	Success = "✓"

	// Error marks an article that could not be fetched or saved.
	Error = "✗"

	// Optional marks an article that was skipped.
	Optional = "-"
)
