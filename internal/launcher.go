package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"

	uerror "stnb.cc/smam/util/error"
	uio "stnb.cc/smam/util/io"
)

func init() {
	// Desktop entries are conventionally written as Key=Value without
	// the aligned "Key = Value" form go-ini produces by default.
	ini.PrettyFormat = false
}

const desktopEntrySection = "Desktop Entry"

// Registry manages the freedesktop launcher files, one optional
// .desktop file per account in the applications directory, usually
// ~/.local/share/applications.
type Registry struct {
	Dir     string
	Command string
}

func NewRegistry(dir string, command string) Registry {
	return Registry{Dir: dir, Command: command}
}

func (registry Registry) Path(name string) string {
	return filepath.Join(registry.Dir, "Signal-"+name+".desktop")
}

func (registry Registry) Exists(name string) (bool, error) {
	exists, err := uio.FileExists(registry.Path(name))
	if err != nil {
		return false, uerror.StackTracef("%w: %w", ErrLauncher, err)
	}
	return exists, nil
}

// Create writes the launcher file for an account, replacing any
// previous one. The profile directory is quoted in the Exec line so
// launchers keep working if the store root contains spaces.
func (registry Registry) Create(name string, profileDir string) error {
	if err := os.MkdirAll(registry.Dir, uio.FileModeURWXGRXORX); err != nil {
		return uerror.StackTracef("%w: %w", ErrLauncher, err)
	}

	// Inline comment handling must stay off: with it on, go-ini would
	// wrap the semicolon-separated Categories value in backticks.
	entry := ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
	section, err := entry.NewSection(desktopEntrySection)
	if err != nil {
		return uerror.StackTracef("%w: %w", ErrLauncher, err)
	}
	for _, key := range []struct {
		name  string
		value string
	}{
		{"Name", "Signal - " + name},
		{"Comment", fmt.Sprintf("Launch Signal Desktop with the '%s' profile", name)},
		{"Exec", fmt.Sprintf("%s --user-data-dir=\"%s\"", registry.Command, profileDir)},
		{"Terminal", "false"},
		{"Type", "Application"},
		{"Icon", "signal-desktop"},
		{"Categories", "Network;InstantMessaging;"},
	} {
		if _, err := section.NewKey(key.name, key.value); err != nil {
			return uerror.StackTracef("%w: %w", ErrLauncher, err)
		}
	}

	path := registry.Path(name)
	if err := entry.SaveTo(path); err != nil {
		return uerror.StackTracef("%w: %w", ErrLauncher, err)
	}
	// Some desktop environments only trust launchers that are marked
	// executable.
	if err := os.Chmod(path, uio.FileModeURWXGRXORX); err != nil {
		return uerror.StackTracef("%w: %w", ErrLauncher, err)
	}
	return nil
}

// Remove deletes an account's launcher file. A missing launcher is
// not an error.
func (registry Registry) Remove(name string) error {
	err := os.Remove(registry.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return uerror.StackTracef("%w: %w", ErrLauncher, err)
	}
	return nil
}
