package internal

import (
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	uerror "stnb.cc/smam/util/error"
	uio "stnb.cc/smam/util/io"
	ulog "stnb.cc/smam/util/logging"
)

// DefaultAccountName is the account an adopted stock Signal directory
// appears under.
const DefaultAccountName = "Default"

type Account struct {
	Name        string
	Dir         string
	HasLauncher bool

	// LastUsed is the profile directory's mtime. Signal writes to its
	// profile while running, so this tracks the last launch closely.
	LastUsed time.Time
}

type Manager struct {
	Config   Configuration
	Store    Store
	Registry Registry

	log *log.Logger
}

func NewManager(config Configuration) *Manager {
	return &Manager{
		Config:   config,
		Store:    NewStore(config.ProfileRoot),
		Registry: NewRegistry(config.ApplicationsDir, config.SignalCommand),
		log:      ulog.GetLogger("manager"),
	}
}

// ListAccounts returns all accounts in lexical order. A launcher
// check failure degrades to "no launcher" instead of failing the
// listing.
func (manager *Manager) ListAccounts() ([]Account, error) {
	names, err := manager.Store.Profiles()
	if err != nil {
		return nil, err
	}
	accounts := make([]Account, 0, len(names))
	for _, name := range names {
		account := Account{Name: name, Dir: manager.Store.Dir(name)}
		hasLauncher, err := manager.Registry.Exists(name)
		if err != nil {
			manager.log.Warn("Could not check launcher", "account", name, "error", uerror.Message(err))
		}
		account.HasLauncher = hasLauncher
		if fileInfo, err := os.Stat(account.Dir); err == nil {
			account.LastUsed = fileInfo.ModTime()
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// AddAccount creates the profile directory for a new account and,
// when requested, its launcher. On a launcher failure the created
// account is returned together with the ErrLauncher.
func (manager *Manager) AddAccount(name string, withLauncher bool) (Account, error) {
	if err := ValidateName(name); err != nil {
		return Account{}, uerror.WithStackTrace(err)
	}
	existing, err := manager.Store.Profiles()
	if err != nil {
		return Account{}, err
	}
	for _, other := range existing {
		// Profile directories land on case-insensitive filesystems
		// often enough that near-duplicate names are a trap.
		if other != name && strings.EqualFold(other, name) {
			return Account{}, uerror.StackTracef("%w: %q differs only by case from %q", ErrInvalidName, name, other)
		}
	}
	if err := manager.Store.Create(name); err != nil {
		return Account{}, err
	}
	account := Account{
		Name:     name,
		Dir:      manager.Store.Dir(name),
		LastUsed: time.Now(),
	}
	if withLauncher {
		if err := manager.Registry.Create(name, account.Dir); err != nil {
			// The profile directory is the account. It stays.
			return account, err
		}
		account.HasLauncher = true
	}
	return account, nil
}

func (manager *Manager) SelectAccount(name string) (SpawnDirective, error) {
	exists, err := manager.Store.Exists(name)
	if err != nil {
		return SpawnDirective{}, err
	}
	if !exists {
		return SpawnDirective{}, uerror.StackTracef("%w: %s", ErrAccountNotFound, name)
	}
	return directiveFor(manager.Config.SignalCommand, manager.Store.Dir(name)), nil
}

// DeleteAccount removes an account's launcher and profile directory,
// launcher first. A launcher failure is only logged, the directory
// decides the outcome. Unless forced, deletion is refused while a
// running process still uses the profile.
func (manager *Manager) DeleteAccount(name string, force bool) error {
	exists, err := manager.Store.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return uerror.StackTracef("%w: %s", ErrAccountNotFound, name)
	}
	if !force {
		if busy, pid := profileInUse(manager.Store.Dir(name)); busy {
			return uerror.StackTracef("%w: %s (PID %d)", ErrProfileBusy, name, pid)
		}
	}
	if err := manager.Registry.Remove(name); err != nil {
		manager.log.Warn("Could not remove launcher", "account", name, "error", uerror.Message(err))
	}
	return manager.Store.Delete(name)
}

// AdoptDefaultProfile links a stock Signal directory into the store
// as the "Default" account. The link is recreated on the next run if
// the account is deleted; set adopt_default = false to opt out.
// Reports whether an adoption happened.
func (manager *Manager) AdoptDefaultProfile() (bool, error) {
	if !manager.Config.AdoptDefault || manager.Config.SignalConfigDir == "" {
		return false, nil
	}
	signalDirExists, err := uio.DirExists(manager.Config.SignalConfigDir)
	if err != nil {
		return false, uerror.StackTracef("%w: %w", ErrStoreAccess, err)
	}
	if !signalDirExists {
		return false, nil
	}
	adopted, err := manager.Store.Exists(DefaultAccountName)
	if err != nil {
		return false, err
	}
	if adopted {
		return false, nil
	}
	if err := os.MkdirAll(manager.Store.Root, uio.FileModeURWX); err != nil {
		return false, uerror.StackTracef("%w: %w", ErrStoreAccess, err)
	}
	link := manager.Store.Dir(DefaultAccountName)
	if fileInfo, err := os.Lstat(link); err == nil && fileInfo.Mode()&fs.ModeSymlink != 0 {
		// A dangling link from an earlier adoption. Replace it.
		if err := os.Remove(link); err != nil {
			return false, uerror.StackTracef("%w: %w", ErrStoreAccess, err)
		}
	}
	if err := os.Symlink(manager.Config.SignalConfigDir, link); err != nil {
		return false, uerror.StackTracef("%w: %w", ErrStoreAccess, err)
	}
	manager.log.Info("Adopted existing Signal directory", "account", DefaultAccountName, "dir", manager.Config.SignalConfigDir)
	return true, nil
}

// CheckInstalled verifies that the configured Signal command resolves
// to an executable. The returned error carries exit code 127.
func (manager *Manager) CheckInstalled() error {
	if _, err := exec.LookPath(manager.Config.SignalCommand); err != nil {
		return uerror.WithExitCode(
			notInstalledExitCode,
			uerror.StackTracef("%w: %s was not found in PATH", ErrNotInstalled, manager.Config.SignalCommand),
		)
	}
	return nil
}
