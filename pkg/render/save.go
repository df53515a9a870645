package render

import (
	"context"
	"os"

	"github.com/goliatone/go-phractal/pkg/component"
)

// Save renders the instance and writes the result as the entire contents of
// path, creating or truncating the file. Parent directories are not created
// and the write is not atomic. Write failures surface as *FilesystemError.
func (r *Renderer) Save(ctx context.Context, inst *component.Instance, path string) error {
	rendered, err := r.Render(ctx, inst)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return &FilesystemError{Path: path, Err: err}
	}
	return nil
}
