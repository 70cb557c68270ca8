package utils

import (
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold file p.
func EnsureParentDir(p string) error {
	return os.MkdirAll(filepath.Dir(p), 0o755)
}

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a half written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
