package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	uerror "stnb.cc/smam/util/error"
	ustring "stnb.cc/smam/util/string"
)

// menuAction enumerates what the menu can do. The zero value is
// deliberately unused so an unset selection cannot dispatch.
type menuAction int

const (
	actionList menuAction = iota + 1
	actionAdd
	actionSelect
	actionDelete
	actionExit
)

var menuOptions = []huh.Option[menuAction]{
	huh.NewOption("List existing accounts", actionList),
	huh.NewOption("Add a new account", actionAdd),
	huh.NewOption("Select (launch) an account", actionSelect),
	huh.NewOption("Delete an account", actionDelete),
	huh.NewOption("Exit", actionExit),
}

// menuHandlers maps every action except exit onto the command that
// implements it. The menu is a loop over the same handlers the
// non-interactive commands use.
var menuHandlers = map[menuAction]func(CommandContext) error{
	actionList:   func(common CommandContext) error { return (&LsCmd{}).Run(common) },
	actionAdd:    func(common CommandContext) error { return (&AddCmd{}).Run(common) },
	actionSelect: func(common CommandContext) error { return (&OpenCmd{}).Run(common) },
	actionDelete: func(common CommandContext) error { return (&RmCmd{}).Run(common) },
}

var menuErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))

type MenuCmd struct{}

func (cmd *MenuCmd) Run(common CommandContext) error {
	if !common.Interactive {
		return uerror.WithStackTrace(errors.New("The menu needs a terminal; use the ls, add, open and rm commands instead"))
	}

	if err := common.Manager.CheckInstalled(); err != nil {
		fmt.Println(ustring.Dedent(fmt.Sprintf(`
			Signal Desktop was not found on this system (%s is not in PATH).
			Install Signal Desktop first, then run smam again.
		`, common.Config.SignalCommand)))
		return err
	}

	if _, err := common.Manager.AdoptDefaultProfile(); err != nil {
		// Adoption is a convenience, the menu works without it.
		log.Warn("Could not adopt the existing Signal directory", "error", uerror.Message(err))
	}

	for {
		var action menuAction
		err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[menuAction]().
				Title("Signal Multi Account Manager").
				Options(menuOptions...).
				Value(&action),
		)).RunWithContext(common.Context)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return uerror.WithStackTrace(err)
		}
		if action == actionExit {
			return nil
		}

		if err := menuHandlers[action](common); err != nil {
			// The menu survives failed operations. Only the message
			// is shown, stack traces stay out of the loop.
			fmt.Println(menuErrorStyle.Render(uerror.Message(err)))
		}
		fmt.Println()
	}
}
