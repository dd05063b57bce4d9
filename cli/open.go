package cli

import (
	"errors"
	"fmt"

	"stnb.cc/smam/internal"
	uerror "stnb.cc/smam/util/error"
)

type OpenCmd struct {
	Name string `arg:"" help:"The account to launch" optional:""`
}

func (cmd *OpenCmd) Run(common CommandContext) error {
	if err := common.Manager.CheckInstalled(); err != nil {
		return err
	}

	if cmd.Name == "" {
		name, err := pickAccount(common, "Select the account to launch")
		if err != nil {
			return err
		}
		if name == nil {
			return uerror.WithStackTrace(errors.New("No account selected"))
		}
		cmd.Name = *name
	}

	directive, err := common.Manager.SelectAccount(cmd.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Launching Signal for account '%s' using profile directory %s\n", cmd.Name, directive.ProfileDir)
	log.Debug("Spawning detached", "command", directive.String())
	if err := internal.Spawn(directive); err != nil {
		return err
	}
	return nil
}
