package internal

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	uerror "stnb.cc/smam/util/error"
	uio "stnb.cc/smam/util/io"
)

// notInstalledExitCode follows the shell convention for "command not
// found".
const notInstalledExitCode = 127

const DefaultSignalCommand = "signal-desktop"

// Configuration is the resolved smam configuration. All path fields
// are absolute after ReadConfiguration or DefaultConfiguration.
type Configuration struct {
	ProfileRoot     string `toml:"profile_root"`
	ApplicationsDir string `toml:"applications_dir"`

	// SignalCommand is the executable to spawn. A bare name is
	// resolved through PATH, anything with a separator is treated as
	// a path.
	SignalCommand string `toml:"signal_command"`

	// SignalConfigDir is Signal's stock per-user directory. When it
	// exists it is adopted into the store as the "Default" account.
	SignalConfigDir string `toml:"signal_config_dir"`

	AdoptDefault bool `toml:"adopt_default"`
}

// DefaultConfiguration returns the configuration used when no config
// file exists.
func DefaultConfiguration() (Configuration, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return Configuration{}, uerror.WithStackTrace(err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Configuration{}, uerror.WithStackTrace(err)
	}
	return Configuration{
		ProfileRoot:     filepath.Join(userConfigDir, "smam", "profiles"),
		ApplicationsDir: filepath.Join(home, ".local", "share", "applications"),
		SignalCommand:   DefaultSignalCommand,
		SignalConfigDir: filepath.Join(userConfigDir, "Signal"),
		AdoptDefault:    true,
	}, nil
}

// ReadConfiguration reads a TOML configuration file. Omitted fields
// keep their defaults, "~" expands to the user's home and relative
// paths are resolved against the directory of the config file.
func ReadConfiguration(configFile string) (Configuration, string, error) {
	defaults, err := DefaultConfiguration()
	if err != nil {
		return Configuration{}, "", err
	}
	config := defaults
	configBytes, err := os.ReadFile(configFile)
	if err != nil {
		return Configuration{}, "", uerror.WithStackTrace(err)
	}
	if err := toml.Unmarshal(configBytes, &config); err != nil {
		return Configuration{}, "", uerror.StackTracef("Failed to parse %s: %w", configFile, err)
	}
	if config.ProfileRoot == "" {
		config.ProfileRoot = defaults.ProfileRoot
	}
	if config.ApplicationsDir == "" {
		config.ApplicationsDir = defaults.ApplicationsDir
	}
	configDir := filepath.Dir(configFile)
	if err := config.resolvePaths(configDir); err != nil {
		return Configuration{}, "", err
	}
	return config, configDir, nil
}

func (config *Configuration) resolvePaths(configDir string) error {
	for _, path := range []*string{
		&config.ProfileRoot,
		&config.ApplicationsDir,
		&config.SignalConfigDir,
	} {
		// An empty SignalConfigDir means "no stock directory to
		// adopt" and stays empty.
		if *path == "" {
			continue
		}
		expanded, err := uio.ExpandPath(*path)
		if err != nil {
			return uerror.WithStackTrace(err)
		}
		if !filepath.IsAbs(expanded) {
			expanded = filepath.Join(configDir, expanded)
		}
		*path = expanded
	}
	if config.SignalCommand == "" {
		config.SignalCommand = DefaultSignalCommand
	}
	return nil
}
