package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	uerror "stnb.cc/smam/util/error"
	uio "stnb.cc/smam/util/io"
)

// maxNameLength bounds account names so that the derived directory
// and launcher file names stay comfortably below filesystem limits.
const maxNameLength = 64

// Store manages the profile directories below a single root. A
// directory below the root IS an account, there is no registry file
// next to it. The root may be missing until the first Create.
type Store struct {
	Root string
}

func NewStore(root string) Store {
	return Store{Root: root}
}

// Dir returns the profile directory of an account. The name must have
// passed ValidateName; Dir does not check.
func (store Store) Dir(name string) string {
	return filepath.Join(store.Root, name)
}

// Profiles returns the account names in lexical order. A missing root
// means no accounts, not an error. Symlinked directories count as
// accounts, stray files below the root are ignored.
func (store Store) Profiles() ([]string, error) {
	dirEntries, err := os.ReadDir(store.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, uerror.StackTracef("%w: %w", ErrStoreAccess, err)
	}
	names := []string{}
	for _, dirEntry := range dirEntries {
		isProfile, err := store.entryIsProfile(dirEntry)
		if err != nil {
			return nil, uerror.StackTracef("%w: %w", ErrStoreAccess, err)
		}
		if isProfile {
			names = append(names, dirEntry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (store Store) entryIsProfile(dirEntry fs.DirEntry) (bool, error) {
	if dirEntry.IsDir() {
		return true, nil
	}
	if dirEntry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	// The adopted default profile is a symlink. A dangling one (the
	// target was deleted behind our back) is not an account.
	return uio.DirExists(store.Dir(dirEntry.Name()))
}

// Exists reports whether an account with the given name exists. Names
// that fail validation cannot exist and report false without touching
// the filesystem.
func (store Store) Exists(name string) (bool, error) {
	if ValidateName(name) != nil {
		return false, nil
	}
	exists, err := uio.DirExists(store.Dir(name))
	if err != nil {
		return false, uerror.StackTracef("%w: %w", ErrStoreAccess, err)
	}
	return exists, nil
}

// Create makes the profile directory for a new account, creating the
// store root on first use.
func (store Store) Create(name string) error {
	if err := ValidateName(name); err != nil {
		return uerror.WithStackTrace(err)
	}
	exists, err := store.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return uerror.StackTracef("%w: %s", ErrAccountExists, name)
	}
	if err := os.MkdirAll(store.Root, uio.FileModeURWX); err != nil {
		return uerror.StackTracef("%w: %w", ErrStoreAccess, err)
	}
	if err := os.Mkdir(store.Dir(name), uio.FileModeURWX); err != nil {
		if errors.Is(err, fs.ErrExist) {
			// A non-directory entry is squatting on the name.
			return uerror.StackTracef("%w: %s", ErrAccountExists, name)
		}
		return uerror.StackTracef("%w: %w", ErrStoreAccess, err)
	}
	return nil
}

// Delete removes an account's profile directory and everything in it.
// An adopted (symlinked) profile is unlinked from the store only, the
// directory it points to is left alone.
func (store Store) Delete(name string) error {
	exists, err := store.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return uerror.StackTracef("%w: %s", ErrAccountNotFound, name)
	}
	dir := store.Dir(name)
	if fileInfo, err := os.Lstat(dir); err == nil && fileInfo.Mode()&fs.ModeSymlink != 0 {
		if err := os.Remove(dir); err != nil {
			return uerror.StackTracef("%w: %w", ErrStoreAccess, err)
		}
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return uerror.StackTracef("%w: %w", ErrStoreAccess, err)
	}
	return nil
}

// ValidateName checks that a string can safely serve as both account
// name and profile directory name. It doubles as the validation
// callback of the interactive prompts.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidName, name, maxNameLength)
	}
	if name[0] == '.' {
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	}
	for _, r := range name {
		if !isNameRune(r) {
			return fmt.Errorf("%w: %q may only contain letters, digits, '.', '-' and '_'", ErrInvalidName, name)
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '.' || r == '-' || r == '_'
}
