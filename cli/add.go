package cli

import (
	"errors"
	"fmt"

	"stnb.cc/smam/internal"
	"stnb.cc/smam/tui"
	uerror "stnb.cc/smam/util/error"
)

type AddCmd struct {
	Launcher bool   `help:"Also create a desktop launcher for the account" short:"l"`
	Name     string `arg:"" help:"Name for the new account" optional:""`
}

func (cmd *AddCmd) Run(common CommandContext) error {
	if cmd.Name == "" {
		if !common.Interactive {
			return uerror.WithStackTrace(errors.New("An account name is required when not running interactively"))
		}
		name, err := tui.Input(common.Context, "Name for the new account", "work", internal.ValidateName)
		if err != nil {
			return err
		}
		if name == nil {
			return uerror.WithStackTrace(errors.New("No account name entered"))
		}
		cmd.Name = *name
	}

	withLauncher := cmd.Launcher
	if !withLauncher && common.Interactive {
		confirmed, err := tui.Confirm(common.Context, "Create a desktop launcher icon for this account?", false)
		if err != nil {
			return err
		}
		withLauncher = confirmed != nil && *confirmed
	}

	account, err := common.Manager.AddAccount(cmd.Name, withLauncher)
	if errors.Is(err, internal.ErrLauncher) {
		// The account exists, only the cosmetics failed.
		fmt.Printf("Account '%s' added, but its desktop launcher could not be created.\n", account.Name)
		log.Warn("Launcher creation failed", "account", account.Name, "error", uerror.Message(err))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Account '%s' added. When you first launch it, link it with your phone.\n", account.Name)
	if account.HasLauncher {
		fmt.Printf("Desktop launcher created at %s\n", common.Manager.Registry.Path(account.Name))
	}
	return nil
}
