package discover

import "fmt"

// LoadError wraps a hook file that failed to load.
type LoadError struct {
	// Path is the file that failed.
	Path string

	// Err is the underlying load error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load hook file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
