// Package emoji provides the status symbols printed by commands.
package emoji

const (
	// Success marks a confirmed operation.
	Success = "✓"

	// Error marks an operation the store or the client rejected.
	Error = "✗"

	// Warning marks a non-fatal problem, such as a failed background reload.
	Warning = "!"
)
