// Package state owns the canonical runtime folder layout under the data
// path: state/{access,crash,tmp}.
package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the resolved runtime directories.
type Paths struct {
	State  string
	Access string
	Crash  string
	Tmp    string
}

// PathsVar is populated by Init during startup.
var PathsVar Paths

// Init computes and creates the runtime layout under dataPath. It rejects
// symlinked or group/other-writable directories.
func Init(dataPath string) error {
	statePath := filepath.Join(dataPath, "state")
	p := Paths{
		State:  statePath,
		Access: filepath.Join(statePath, "access"),
		Crash:  filepath.Join(statePath, "crash"),
		Tmp:    filepath.Join(statePath, "tmp"),
	}

	for _, dir := range []string{p.Access, p.Crash, p.Tmp} {
		if err := ensureDir(dir); err != nil {
			return err
		}
	}
	PathsVar = p
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(filepath.Dir(dir), 0o700); err != nil {
		return fmt.Errorf("cannot create parent for %s: %w", dir, err)
	}

	// if the path exists, reject symlinks and non-directories
	if fi, err := os.Lstat(dir); err == nil {
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("path is a symlink: %s", dir)
		}
		if !fi.IsDir() {
			return fmt.Errorf("path exists and is not a directory: %s", dir)
		}
		if fi.Mode().Perm()&0o022 != 0 {
			return fmt.Errorf("path has permissive mode (group/other write): %s", dir)
		}
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("cannot create path %s: %w", dir, err)
	}

	// writability check: create and remove a temp file
	tmp, err := os.CreateTemp(dir, ".validate-*")
	if err != nil {
		return fmt.Errorf("path not writable: %s: %w", dir, err)
	}
	name := tmp.Name()
	_ = tmp.Close()
	_ = os.Remove(name)
	return nil
}
