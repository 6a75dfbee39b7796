// Package workdir manages the process-lifetime scratch directory used for
// intermediate image encoding. The directory is created once, reused across
// artifacts, and removed on Close. It is a single shared mutable resource;
// callers own exactly one per report run.
package workdir

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Dir is a scratch directory handle.
type Dir struct {
	path string
}

// New creates a fresh scratch directory under the system temp root, named
// with a uuid so concurrent report runs never collide.
func New() (*Dir, error) {
	path := filepath.Join(os.TempDir(), "neuroreport-"+uuid.NewString())
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

// Path returns the scratch directory path.
func (d *Dir) Path() string { return d.path }

// File returns the path for a named scratch file inside the directory.
func (d *Dir) File(name string) string {
	return filepath.Join(d.path, name)
}

// Close removes the scratch directory and everything in it.
func (d *Dir) Close() error {
	return os.RemoveAll(d.path)
}
