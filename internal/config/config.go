package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inkframe-labs/inkframe/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys recognized in the config file and environment.
const (
	KeyDataDir        = "data_dir"
	KeyListenAddr     = "listen_addr"
	KeyLogLevel       = "log_level"
	KeyRestartCommand = "restart_command"
)

// Dir returns the path to the InkFrame config directory (~/.inkframe/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.inkframe/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyDataDir, Dir())
	viper.SetDefault(KeyListenAddr, ":8587")
	viper.SetDefault(KeyLogLevel, "info")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// DataDir returns the directory that holds the extension registry, the
// extensions root, and the staging area.
func DataDir() string {
	return viper.GetString(KeyDataDir)
}

// ListenAddr returns the HTTP listen address for the host.
func ListenAddr() string {
	return viper.GetString(KeyListenAddr)
}

// LogLevel returns the configured log level ("debug", "info", ...).
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// RestartCommand returns the command run to restart the host after a
// mutating lifecycle operation. Empty means no supervisor is configured.
func RestartCommand() string {
	return viper.GetString(KeyRestartCommand)
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
