package embednet

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// AtomicFile is an output file that only appears at its destination once
// it is committed. Writes go to a temporary file in the same directory.
type AtomicFile struct {
	path   string
	f      *os.File
	w      *bufio.Writer
	closed bool
}

// CreateAtomic creates the temporary file for an output at path.
func CreateAtomic(path string) (*AtomicFile, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}

	return &AtomicFile{
		path: path,
		f:    f,
		w:    bufio.NewWriter(f),
	}, nil
}

func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.w.Write(p)
}

// Name returns the path of the temporary file.
func (a *AtomicFile) Name() string {
	return a.f.Name()
}

// Commit flushes the output and renames it to its destination.
func (a *AtomicFile) Commit() error {
	if a.closed {
		return fmt.Errorf("output %s already closed", a.path)
	}

	if err := a.w.Flush(); err != nil {
		a.Abort()
		return fmt.Errorf("writing output: %w", err)
	}

	if err := a.f.Sync(); err != nil {
		a.Abort()
		return fmt.Errorf("writing output: %w", err)
	}

	if err := a.f.Chmod(0644); err != nil {
		a.Abort()
		return fmt.Errorf("writing output: %w", err)
	}

	a.closed = true
	if err := a.f.Close(); err != nil {
		os.Remove(a.f.Name())
		return fmt.Errorf("writing output: %w", err)
	}

	if err := os.Rename(a.f.Name(), a.path); err != nil {
		os.Remove(a.f.Name())
		return fmt.Errorf("renaming output: %w", err)
	}

	return nil
}

// Abort removes the temporary file. Aborting a committed file is a no-op,
// so Abort can be deferred right after CreateAtomic.
func (a *AtomicFile) Abort() error {
	if a.closed {
		return nil
	}

	a.closed = true
	a.f.Close()

	if err := os.Remove(a.f.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing temporary output: %w", err)
	}

	return nil
}
