package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the user's tagboard configuration, read from config.toml.
type Config struct {
	// BoardFile is the board used when neither --board nor TAGBOARD_BOARD is set.
	BoardFile string `toml:"board_file,omitempty"`

	// EditorCommand overrides $VISUAL/$EDITOR for editing card text in the TUI.
	EditorCommand string `toml:"editor_command,omitempty"`

	// Addr is the listen address for `tagboard serve`.
	Addr string `toml:"addr,omitempty"`

	// Journal enables the per-board action journal. Missing means enabled.
	Journal *bool `toml:"journal,omitempty"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `toml:"log_level,omitempty"`
}

const (
	DefaultAddr     = "127.0.0.1:3333"
	DefaultLogLevel = "info"
)

func (c *Config) JournalEnabled() bool {
	return c.Journal == nil || *c.Journal
}

func ConfigDir() (string, error) {
	// Keeps tests from touching ~/.tagboard.
	if v := strings.TrimSpace(os.Getenv("TAGBOARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tagboard"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config at path, or at ConfigPath when path is empty. A missing file
// yields defaults.
func LoadConfig(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.withDefaults(), nil
		}
		return nil, err
	}
	return cfg.withDefaults(), nil
}

func (c *Config) withDefaults() *Config {
	if strings.TrimSpace(c.Addr) == "" {
		c.Addr = DefaultAddr
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c
}

// SaveConfig writes cfg to path (ConfigPath when empty), keeping a .bak of the previous file.
func SaveConfig(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = WriteFileAtomic(path+".bak", prev, 0o644)
	}
	return WriteFileAtomic(path, b, 0o600)
}

// DefaultBoardPath is the board used when nothing else names one.
func DefaultBoardPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "board.json"), nil
}
