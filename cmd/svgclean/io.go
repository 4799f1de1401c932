package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matryer/try"
)

// maxAttempts is the number of times a file operation is tried.
const maxAttempts = 5

// retry runs fn until it succeeds or maxAttempts is reached.
func retry(fn func() error) error {
	return try.Do(func(attempt int) (bool, error) {
		return attempt < maxAttempts, fn()
	})
}

// IsDir returns true if the passed string looks like it specifies a directory, false otherwise.
func IsDir(dir string) bool {
	if 0 < len(dir) && dir[len(dir)-1] == os.PathSeparator {
		return true
	}
	info, err := os.Lstat(dir)
	return err == nil && info.Mode().IsDir() && info.Mode()&os.ModeSymlink == 0
}

// SameFile returns true if both paths point to the same file. Windows is case-insensitive so comparing strings is not enough.
func SameFile(filename1 string, filename2 string) (bool, error) {
	fi1, err := os.Stat(filename1)
	if err != nil {
		return false, err
	}
	fi2, err := os.Stat(filename2)
	if err != nil {
		return false, err
	}
	return os.SameFile(fi1, fi2), nil
}

// NewFS returns the file system relative to the working directory. Stat follows symbolic links.
func NewFS() fs.FS {
	return dirFS("")
}

type dirFS string

func (dir dirFS) Open(name string) (fs.File, error) {
	return os.Open(filepath.Join(string(dir), name))
}

func (dir dirFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(filepath.Join(string(dir), name))
}

// openInputFile opens input for reading, or stdin when input is empty.
func openInputFile(input string) (io.ReadCloser, error) {
	if input == "" {
		return os.Stdin, nil
	}

	var r *os.File
	if err := retry(func() (err error) {
		r, err = os.Open(input)
		return err
	}); err != nil {
		return nil, fmt.Errorf("open input file %q: %w", input, err)
	}
	return r, nil
}

// openOutputFile creates or truncates output and its directory, or returns stdout when output is empty.
func openOutputFile(output string) (io.WriteCloser, error) {
	if output == "" {
		return os.Stdout, nil
	}

	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, fmt.Errorf("creating directory %q: %w", dir, err)
	}

	var w *os.File
	if err := retry(func() (err error) {
		w, err = os.OpenFile(output, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0666)
		return err
	}); err != nil {
		return nil, fmt.Errorf("open output file %q: %w", output, err)
	}
	return w, nil
}

// backup moves filename out of the way so it can be overwritten, and returns the name of the backup.
func backup(filename string) (string, error) {
	bak := filename + ".bak"
	if err := retry(func() error {
		return os.Rename(filename, bak)
	}); err != nil {
		return "", err
	}
	return bak, nil
}
