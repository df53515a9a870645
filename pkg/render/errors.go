package render

import (
	"errors"
	"fmt"
)

// ErrNilInstance is returned when Render or Save receives a nil instance.
var ErrNilInstance = errors.New("render: instance is required")

// FilesystemError reports a destination path that could not be written. The
// underlying os error is wrapped and reachable through errors.Unwrap.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("render: write %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
