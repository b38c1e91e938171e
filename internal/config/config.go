package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all chatscope configuration.
type Config struct {
	VaultPath string `toml:"vault_path"` // report output root
	InboxPath string `toml:"inbox_path"` // drop directory for `chatscope watch`

	Archive ArchiveConfig `toml:"archive"`
	Report  ReportConfig  `toml:"report"`
}

type ArchiveConfig struct {
	Compress bool `toml:"compress"`
}

type ReportConfig struct {
	TopWords int `toml:"top_words"` // word-frequency rows shown per sender
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		VaultPath: "~/chatscope",
		InboxPath: "~/chatscope/inbox",
		Archive: ArchiveConfig{
			Compress: true,
		},
		Report: ReportConfig{
			TopWords: 10,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	// Expand ~ in paths
	cfg.VaultPath = expandHome(cfg.VaultPath)
	cfg.InboxPath = expandHome(cfg.InboxPath)

	if cfg.Report.TopWords <= 0 {
		cfg.Report.TopWords = 10
	}

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "chatscope", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "chatscope", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// ReportsDir returns the vault's Reports directory.
func (c Config) ReportsDir() string {
	return filepath.Join(c.VaultPath, "Reports")
}

// StateDir returns the .chatscope state directory inside the vault.
func (c Config) StateDir() string {
	return filepath.Join(c.VaultPath, ".chatscope")
}

// ArchiveDir returns the directory processed exports are archived to.
func (c Config) ArchiveDir() string {
	return filepath.Join(c.StateDir(), "archive")
}
