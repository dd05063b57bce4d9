package internal_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stnb.cc/smam/internal"
	uerror "stnb.cc/smam/util/error"
	uio "stnb.cc/smam/util/io"
)

func setUpManager(t *testing.T) (*internal.Manager, func()) {
	tmpDir, err := os.MkdirTemp(os.TempDir(), "smam-test-*")
	assert.NoError(t, err)

	manager := internal.NewManager(internal.Configuration{
		ProfileRoot:     filepath.Join(tmpDir, "profiles"),
		ApplicationsDir: filepath.Join(tmpDir, "applications"),
		SignalCommand:   "signal-desktop",
		SignalConfigDir: filepath.Join(tmpDir, "Signal"),
		AdoptDefault:    true,
	})
	return manager, func() {
		assert.NoError(t, os.RemoveAll(tmpDir))
	}
}

func TestAccountLifecycle(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	accounts, err := manager.ListAccounts()
	assert.NoError(t, err)
	assert.Empty(t, accounts)

	added, err := manager.AddAccount("work", true)
	assert.NoError(t, err)
	assert.Equal(t, "work", added.Name)
	assert.Equal(t, manager.Store.Dir("work"), added.Dir)
	assert.True(t, added.HasLauncher)
	assert.DirExists(t, added.Dir)
	assert.FileExists(t, manager.Registry.Path("work"))

	accounts, err = manager.ListAccounts()
	assert.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, "work", accounts[0].Name)
	assert.Equal(t, added.Dir, accounts[0].Dir)
	assert.True(t, accounts[0].HasLauncher)
	assert.True(t, time.Now().Add(-10*time.Second).Before(accounts[0].LastUsed))

	directive, err := manager.SelectAccount("work")
	assert.NoError(t, err)
	assert.Equal(t, "signal-desktop", directive.Command)
	assert.Equal(t, []string{"--user-data-dir=" + added.Dir}, directive.Args)
	assert.Equal(t, added.Dir, directive.ProfileDir)

	assert.NoError(t, manager.DeleteAccount("work", false))
	assert.NoDirExists(t, added.Dir)
	assert.NoFileExists(t, manager.Registry.Path("work"))

	accounts, err = manager.ListAccounts()
	assert.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAddAccountDuplicate(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	_, err := manager.AddAccount("work", false)
	assert.NoError(t, err)

	_, err = manager.AddAccount("work", false)
	assert.ErrorIs(t, err, internal.ErrAccountExists)

	accounts, err := manager.ListAccounts()
	assert.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestAddAccountCaseCollision(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	_, err := manager.AddAccount("Work", false)
	assert.NoError(t, err)

	_, err = manager.AddAccount("work", false)
	assert.ErrorIs(t, err, internal.ErrInvalidName)

	accounts, err := manager.ListAccounts()
	assert.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, "Work", accounts[0].Name)
}

func TestAddAccountInvalidName(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	_, err := manager.AddAccount("a/b", false)
	assert.ErrorIs(t, err, internal.ErrInvalidName)

	accounts, err := manager.ListAccounts()
	assert.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAddAccountWithoutLauncher(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	added, err := manager.AddAccount("personal", false)
	assert.NoError(t, err)
	assert.False(t, added.HasLauncher)
	assert.NoFileExists(t, manager.Registry.Path("personal"))
}

func TestAddAccountLauncherFailure(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	// A file squatting on the applications directory makes every
	// launcher operation fail.
	assert.NoError(t, os.WriteFile(manager.Registry.Dir, []byte{}, 0600))

	added, err := manager.AddAccount("work", true)
	assert.ErrorIs(t, err, internal.ErrLauncher)

	// The profile directory survives the launcher failure.
	assert.Equal(t, "work", added.Name)
	assert.False(t, added.HasLauncher)
	assert.DirExists(t, manager.Store.Dir("work"))

	accounts, listErr := manager.ListAccounts()
	assert.NoError(t, listErr)
	assert.Len(t, accounts, 1)
	assert.False(t, accounts[0].HasLauncher)
}

func TestSelectAccountNonexistent(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	_, err := manager.SelectAccount("ghost")
	assert.ErrorIs(t, err, internal.ErrAccountNotFound)
}

func TestDeleteAccountNonexistent(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	err := manager.DeleteAccount("ghost", false)
	assert.ErrorIs(t, err, internal.ErrAccountNotFound)
}

func TestDeleteAccountBusy(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	added, err := manager.AddAccount("work", false)
	assert.NoError(t, err)

	holder := exec.Command("sh", "-c", "sleep 30; true", added.Dir)
	assert.NoError(t, holder.Start())
	defer func() {
		assert.NoError(t, holder.Process.Kill())
		_ = holder.Wait()
	}()

	err = manager.DeleteAccount("work", false)
	assert.ErrorIs(t, err, internal.ErrProfileBusy)
	assert.DirExists(t, added.Dir)

	// Forcing skips the in-use check.
	assert.NoError(t, manager.DeleteAccount("work", true))
	assert.NoDirExists(t, added.Dir)
}

func TestAdoptDefaultProfile(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	// Simulate a Signal installation that predates smam.
	assert.NoError(t, uio.CopyDir("testdata/stock-signal", manager.Config.SignalConfigDir))
	stockFile := filepath.Join(manager.Config.SignalConfigDir, "config.json")
	assert.FileExists(t, stockFile)

	adopted, err := manager.AdoptDefaultProfile()
	assert.NoError(t, err)
	assert.True(t, adopted)

	accounts, err := manager.ListAccounts()
	assert.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, internal.DefaultAccountName, accounts[0].Name)

	// A second run must not adopt again.
	adopted, err = manager.AdoptDefaultProfile()
	assert.NoError(t, err)
	assert.False(t, adopted)

	// Deleting the adopted account unlinks it from the store but
	// leaves the stock directory alone.
	assert.NoError(t, manager.DeleteAccount(internal.DefaultAccountName, false))
	assert.DirExists(t, manager.Config.SignalConfigDir)
	assert.FileExists(t, stockFile)

	// The next run adopts it again.
	adopted, err = manager.AdoptDefaultProfile()
	assert.NoError(t, err)
	assert.True(t, adopted)
}

func TestAdoptDefaultProfileDisabled(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	assert.NoError(t, os.MkdirAll(manager.Config.SignalConfigDir, uio.FileModeURWX))
	manager.Config.AdoptDefault = false

	adopted, err := manager.AdoptDefaultProfile()
	assert.NoError(t, err)
	assert.False(t, adopted)

	accounts, err := manager.ListAccounts()
	assert.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAdoptDefaultProfileWithoutStockDirectory(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	adopted, err := manager.AdoptDefaultProfile()
	assert.NoError(t, err)
	assert.False(t, adopted)
}

func TestAdoptDefaultProfileReplacesDanglingLink(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	assert.NoError(t, os.MkdirAll(manager.Store.Root, uio.FileModeURWX))
	assert.NoError(t, os.Symlink(filepath.Join(manager.Config.SignalConfigDir, "moved-away"), manager.Store.Dir(internal.DefaultAccountName)))
	assert.NoError(t, os.MkdirAll(manager.Config.SignalConfigDir, uio.FileModeURWX))

	adopted, err := manager.AdoptDefaultProfile()
	assert.NoError(t, err)
	assert.True(t, adopted)

	resolved, err := filepath.EvalSymlinks(manager.Store.Dir(internal.DefaultAccountName))
	assert.NoError(t, err)
	expected, err := filepath.EvalSymlinks(manager.Config.SignalConfigDir)
	assert.NoError(t, err)
	assert.Equal(t, expected, resolved)
}

func TestCheckInstalled(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	// Any command that is guaranteed to be in PATH will do.
	manager.Config.SignalCommand = "sh"
	assert.NoError(t, manager.CheckInstalled())
}

func TestCheckInstalledMissing(t *testing.T) {
	manager, cleanUpManager := setUpManager(t)
	defer cleanUpManager()

	manager.Config.SignalCommand = "smam-test-missing-binary"
	err := manager.CheckInstalled()
	assert.ErrorIs(t, err, internal.ErrNotInstalled)

	exitCode, hasExitCode := uerror.GetExitCode(err)
	assert.True(t, hasExitCode)
	assert.Equal(t, uint(127), exitCode)
}
