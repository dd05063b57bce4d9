package internal

import "errors"

// Error kinds for the account operations. They are wrapped with
// context at the point of failure and matched with errors.Is at the
// front-end boundary.
var (
	ErrInvalidName     = errors.New("Invalid account name")
	ErrAccountExists   = errors.New("Account already exists")
	ErrAccountNotFound = errors.New("Account does not exist")
	ErrProfileBusy     = errors.New("Profile is currently in use")
	ErrNotInstalled    = errors.New("Signal Desktop is not installed")

	// ErrStoreAccess reports filesystem failures on the profile store,
	// distinct from logical absence.
	ErrStoreAccess = errors.New("Cannot access the profile store")

	// ErrLauncher is never fatal to a profile directory operation that
	// already succeeded.
	ErrLauncher = errors.New("Launcher error")
)
