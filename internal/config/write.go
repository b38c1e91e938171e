package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ConfigDir returns the chatscope config directory path.
// Uses $XDG_CONFIG_HOME/chatscope if set, otherwise ~/.config/chatscope.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatscope")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "chatscope")
}

var vaultPathLine = regexp.MustCompile(`(?m)^vault_path\s*=.*$`)

// WriteDefault ensures a config.toml exists pointing to vaultPath.
// A missing file is created with defaults; an existing file has only
// its vault_path line rewritten so user customizations survive.
// Returns the config path and one of "created", "updated", "unchanged".
func WriteDefault(vaultPath string) (string, string, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")
	portable := CompressHome(vaultPath)

	existing, err := os.ReadFile(path)
	if err == nil {
		content := string(existing)
		newLine := fmt.Sprintf("vault_path = %q", portable)

		var updated string
		if vaultPathLine.MatchString(content) {
			updated = vaultPathLine.ReplaceAllString(content, newLine)
		} else {
			updated = newLine + "\n\n" + content
		}

		if updated == content {
			return path, "unchanged", nil
		}
		if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
			return "", "", fmt.Errorf("update config: %w", err)
		}
		return path, "updated", nil
	}
	if !os.IsNotExist(err) {
		return "", "", fmt.Errorf("read config: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create config dir: %w", err)
	}

	content := fmt.Sprintf(`vault_path = %q
inbox_path = %q

[archive]
compress = true

[report]
top_words = 10
`, portable, portable+"/inbox")

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", "", fmt.Errorf("write config: %w", err)
	}

	return path, "created", nil
}

// CompressHome replaces the $HOME prefix with ~/ for portable config values.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
