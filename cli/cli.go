package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"stnb.cc/smam/internal"
	"stnb.cc/smam/tui"
	uerror "stnb.cc/smam/util/error"
	uio "stnb.cc/smam/util/io"
	ulog "stnb.cc/smam/util/logging"
)

var log = ulog.GetLogger("cli")

var CLI struct {
	ConfigPath string `help:"Path of the configuration file to use (default: ~/.config/smam/config.toml, then /etc/smam/config.toml)" name:"config" optional:"" type:"path"`

	Menu MenuCmd `cmd:"" default:"1" help:"Interactive account menu (default if no command is given)"`

	Ls   LsCmd   `cmd:"" help:"List accounts"`
	Add  AddCmd  `cmd:"" help:"Add a new account"`
	Open OpenCmd `cmd:"" help:"Launch Signal Desktop with an account's profile"`
	Rm   RmCmd   `cmd:"" help:"Delete an account, its profile directory and its launcher"`
}

type CommandContext struct {
	Config  internal.Configuration
	Manager *internal.Manager

	// Interactive is set when both stdin and stdout are terminals.
	// Prompts are only shown then, scripted callers pass arguments.
	Interactive bool
	Context     context.Context
}

func Run(args []string) error {
	kctx, err := kong.Must(&CLI).Parse(args[1:])
	if err != nil {
		return uerror.WithStackTrace(err)
	}

	config, err := loadConfig(CLI.ConfigPath)
	if err != nil {
		return uerror.WithStackTrace(err)
	}

	return kctx.Run(CommandContext{
		Config:      config,
		Manager:     internal.NewManager(config),
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()),
		Context:     context.Background(),
	})
}

// loadConfig resolves the configuration file in order: the --config
// flag, the user's config directory, /etc. smam works without any
// config file, so the last stop is the built-in defaults.
func loadConfig(cliPath string) (internal.Configuration, error) {
	if cliPath != "" {
		config, _, err := internal.ReadConfiguration(cliPath)
		return config, err
	}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return internal.Configuration{}, uerror.WithStackTrace(err)
	}
	userConfigFile := filepath.Join(userConfigDir, "smam", "config.toml")
	userConfigFileExists, err := uio.FileExists(userConfigFile)
	if err != nil {
		return internal.Configuration{}, uerror.WithStackTrace(err)
	}
	if userConfigFileExists {
		config, _, err := internal.ReadConfiguration(userConfigFile)
		return config, err
	}

	etcConfigFile := "/etc/smam/config.toml"
	etcConfigFileExists, err := uio.FileExists(etcConfigFile)
	if err != nil {
		return internal.Configuration{}, uerror.WithStackTrace(err)
	}
	if etcConfigFileExists {
		config, _, err := internal.ReadConfiguration(etcConfigFile)
		return config, err
	}

	return internal.DefaultConfiguration()
}

// pickAccount prompts for one of the existing accounts. Without a
// terminal there is nothing to prompt on and the caller has to pass
// the name as an argument instead.
func pickAccount(common CommandContext, title string) (*string, error) {
	if !common.Interactive {
		return nil, uerror.WithStackTrace(errors.New("An account name is required when not running interactively"))
	}
	accounts, err := common.Manager.ListAccounts()
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, uerror.WithStackTrace(errors.New("No accounts found"))
	}
	names := make([]string, 0, len(accounts))
	for _, account := range accounts {
		names = append(names, account.Name)
	}
	return tui.Select(common.Context, title, names)
}
