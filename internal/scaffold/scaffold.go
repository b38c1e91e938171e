// Package scaffold creates the vault skeleton for a fresh chatscope
// install.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const readmeTemplate = `# {{VAULT_NAME}}

Chat analysis vault managed by chatscope.

- ` + "`Reports/`" + ` — one markdown report per analyzed chat
- ` + "`inbox/`" + ` — drop chat exports (.txt or .txt.zst) here for ` + "`chatscope watch`" + `
- ` + "`.chatscope/`" + ` — index database and archived exports

Run ` + "`chatscope process <file>`" + ` to analyze a single export, or
` + "`chatscope scan`" + ` to sweep the inbox.
`

// Init creates a new chatscope vault at targetPath.
func Init(targetPath string) error {
	targetPath, err := filepath.Abs(targetPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	// Refuse if target already contains chatscope state.
	if dirExists(filepath.Join(targetPath, ".chatscope")) {
		return fmt.Errorf("%s already contains .chatscope/ — refusing to overwrite", targetPath)
	}

	for _, dir := range []string{
		targetPath,
		filepath.Join(targetPath, "Reports"),
		filepath.Join(targetPath, "inbox"),
		filepath.Join(targetPath, ".chatscope"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("scaffold vault: %w", err)
		}
	}

	vaultName := filepath.Base(targetPath)
	readme := strings.ReplaceAll(readmeTemplate, "{{VAULT_NAME}}", vaultName)
	readmePath := filepath.Join(targetPath, "README.md")
	if _, err := os.Stat(readmePath); os.IsNotExist(err) {
		if err := os.WriteFile(readmePath, []byte(readme), 0o644); err != nil {
			return fmt.Errorf("write README: %w", err)
		}
	}

	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
