package io

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileModeURWX is the bitmask for the Unix permission flags
// `u=rwx,g=,o=`.
var FileModeURWX os.FileMode = 0700

// FileModeURWXGRXORX is the bitmask for the Unix permission flags
// `u=rwx,g=rx,o=rx`.
var FileModeURWXGRXORX os.FileMode = 0755

// DirExists returns if a directory exists at the given path, following symlinks.
func DirExists(name string) (bool, error) {
	stat, err := os.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return stat.IsDir(), nil
}

// FileExists returns if a file exists at the given path, following symlinks.
func FileExists(name string) (bool, error) {
	stat, err := os.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !stat.IsDir(), nil
}

// ExpandPath expands environment variables and a leading tilde in a
// path. Unlike filepath.EvalSymlinks it does not require the path to
// exist.
func ExpandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}

// CopyDir copies all files in the `src` directroy into `dst`,
// preserving permissions.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dstPath := strings.TrimPrefix(path, src)
		dstPath = strings.TrimPrefix(dstPath, "/")
		dstPath = filepath.Join(dst, dstPath)
		fileInfo, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := os.MkdirAll(dstPath, fileInfo.Mode()); err != nil {
				return err
			}
		} else if err := copyDirFile(path, dstPath, fileInfo); err != nil {
			return err
		}
		return nil
	})
}

func copyDirFile(path, dst string, fileInfo fs.FileInfo) error {
	srcFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer srcFile.Close()
	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	return nil
}
