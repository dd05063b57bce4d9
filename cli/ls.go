package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hako/durafmt"

	"stnb.cc/smam/internal"
)

var (
	accountNameStyle = lipgloss.NewStyle().Bold(true)
	launcherTagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	detailStyle      = lipgloss.NewStyle().Faint(true)
)

type LsCmd struct{}

func (cmd *LsCmd) Run(common CommandContext) error {
	accounts, err := common.Manager.ListAccounts()
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts found.")
		return nil
	}

	fmt.Println(renderAccounts(accounts))
	return nil
}

func renderAccounts(accounts []internal.Account) string {
	sb := strings.Builder{}
	for i, account := range accounts {
		sb.WriteString(accountNameStyle.Render(account.Name))
		if account.HasLauncher {
			sb.WriteString(" ")
			sb.WriteString(launcherTagStyle.Render("[launcher]"))
		}

		sb.WriteString("\n    ")
		sb.WriteString(detailStyle.Render(account.Dir))
		if !account.LastUsed.IsZero() {
			sb.WriteString(detailStyle.Render("  ·  last used " + formatAgo(account.LastUsed)))
		}

		if i < len(accounts)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatAgo(t time.Time) string {
	since := time.Since(t)
	if since < time.Minute {
		return "just now"
	}
	return durafmt.ParseShort(since).String() + " ago"
}
