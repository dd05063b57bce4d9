package cli

import (
	"errors"
	"fmt"

	"stnb.cc/smam/tui"
	uerror "stnb.cc/smam/util/error"
)

type RmCmd struct {
	Force bool   `help:"Skip the confirmation and the in-use check" short:"f"`
	Name  string `arg:"" help:"The account to delete" optional:""`
}

func (cmd *RmCmd) Run(common CommandContext) error {
	if cmd.Name == "" {
		name, err := pickAccount(common, "Select the account to delete")
		if err != nil {
			return err
		}
		if name == nil {
			return uerror.WithStackTrace(errors.New("No account selected"))
		}
		cmd.Name = *name
	}

	if !cmd.Force && common.Interactive {
		confirmed, err := tui.Confirm(common.Context, fmt.Sprintf("Delete account '%s' and everything in its profile directory?", cmd.Name), false)
		if err != nil {
			return err
		}
		if confirmed == nil || !*confirmed {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := common.Manager.DeleteAccount(cmd.Name, cmd.Force); err != nil {
		return err
	}
	fmt.Printf("Account '%s' removed.\n", cmd.Name)
	return nil
}
