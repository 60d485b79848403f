// Package static resolves request paths to asset files under a fixed root.
package static

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// ErrNotFound marks a path that did not resolve to a readable asset.
var ErrNotFound = errors.New("asset not found")

// Resolver reads assets rooted at a fixed directory. Paths are cleaned
// before joining so a request cannot escape the root.
type Resolver struct {
	root string
}

// NewResolver returns a resolver rooted at dir.
func NewResolver(dir string) *Resolver {
	return &Resolver{root: dir}
}

// Root returns the configured asset root.
func (r *Resolver) Root() string { return r.root }

// Resolve reads the full contents of the asset at p. The file handle is
// scoped to this call and closed on every exit path.
func (r *Resolver) Resolve(p string) ([]byte, error) {
	clean := path.Clean("/" + p)
	full := filepath.Join(r.root, filepath.FromSlash(clean))

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
		}
		return nil, fmt.Errorf("open asset %s: %w", clean, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat asset %s: %w", clean, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, clean)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", clean, err)
	}
	return data, nil
}
