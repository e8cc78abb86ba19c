package util

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// TryWriteAtomic writes contents to filename atomically if possible,
// and non-atomically if not.
func TryWriteAtomic(filename string, contents []byte) error {
	if err1 := atomic.WriteFile(filename, bytes.NewReader(contents)); err1 != nil {
		if err2 := os.WriteFile(filename, contents, 0666); err2 != nil {
			return err2
		}
	}
	return nil
}

// FileExists returns true if the named file exists, and false if it
// does not or cannot be stat'd.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// IsRegularFile returns true if the named path exists and is a
// regular file (not a directory, symlink target aside).
func IsRegularFile(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && info.Mode().IsRegular()
}

// IsEmptyFile returns true if the named path is missing, unreadable,
// or has zero length.
func IsEmptyFile(filename string) bool {
	info, err := os.Stat(filename)
	return err != nil || info.Size() == 0
}

// EnsureDir creates the named directory and any parents if they do
// not already exist. It is idempotent.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0777)
}

// EnsureFile creates the named file (and its parent directories) if
// it does not already exist, leaving existing contents alone. It is
// idempotent.
func EnsureFile(filename string) error {
	if err := EnsureDir(filepath.Dir(filename)); err != nil {
		return err
	}
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	return f.Close()
}
