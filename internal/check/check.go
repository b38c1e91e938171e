// Package check implements the `chatscope check` doctor command.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johns/chatscope/internal/config"
	"github.com/johns/chatscope/internal/index"
)

// Status represents the outcome of a single check.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Fail:
		return "FAIL"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string
}

// Report aggregates all check results.
type Report struct {
	Results []Result
}

// HasFailures returns true if any result has Fail status.
func (r Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == Fail {
			return true
		}
	}
	return false
}

// Format returns the human-readable report string.
func (r Report) Format() string {
	if len(r.Results) == 0 {
		return "chatscope check\n\n  no checks ran\n"
	}

	// Find max name length for alignment.
	maxName := 0
	for _, res := range r.Results {
		if len(res.Name) > maxName {
			maxName = len(res.Name)
		}
	}

	var b strings.Builder
	b.WriteString("chatscope check\n\n")

	var passed, warnings, failures int
	for _, res := range r.Results {
		switch res.Status {
		case Pass:
			passed++
		case Warn:
			warnings++
		case Fail:
			failures++
		}
		fmt.Fprintf(&b, "  %-4s  %-*s  %s\n", res.Status, maxName, res.Name, res.Detail)
	}

	fmt.Fprintf(&b, "\n%d passed, %d warning, %d failure\n", passed, warnings, failures)
	return b.String()
}

// CheckConfig reports the resolved config path. Always passes — broken TOML
// is caught by config.Load before we get here.
func CheckConfig() Result {
	cfgPath := filepath.Join(config.ConfigDir(), "config.toml")
	return Result{
		Name:   "config",
		Status: Pass,
		Detail: config.CompressHome(cfgPath),
	}
}

// CheckVaultPath checks whether the vault directory exists.
func CheckVaultPath(path string) Result {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Result{Name: "vault", Status: Pass, Detail: config.CompressHome(path)}
	}
	return Result{Name: "vault", Status: Fail, Detail: path + " not found (run `chatscope init`)"}
}

// CheckInbox checks whether the inbox drop directory exists.
func CheckInbox(path string) Result {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Result{Name: "inbox", Status: Pass, Detail: config.CompressHome(path)}
	}
	return Result{Name: "inbox", Status: Warn, Detail: path + " not found (created on first watch)"}
}

// CheckReports checks whether the Reports directory exists and reports note count.
func CheckReports(reportsDir string) Result {
	if _, err := os.ReadDir(reportsDir); err != nil {
		return Result{Name: "reports", Status: Warn, Detail: "Reports/ not found (fresh vault)"}
	}
	return Result{Name: "reports", Status: Pass, Detail: fmt.Sprintf("Reports/ (%d reports)", countMD(reportsDir))}
}

func countMD(dir string) int {
	count := 0
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ".md") {
			count++
		}
		return nil
	})
	return count
}

// CheckStateDir checks whether the .chatscope state directory exists.
func CheckStateDir(stateDir string) Result {
	if info, err := os.Stat(stateDir); err == nil && info.IsDir() {
		return Result{Name: "state", Status: Pass, Detail: ".chatscope/ found"}
	}
	return Result{Name: "state", Status: Warn, Detail: ".chatscope/ not found (fresh vault)"}
}

// CheckIndex validates the chatscope.db index database.
func CheckIndex(stateDir string) Result {
	path := filepath.Join(stateDir, "chatscope.db")
	if _, err := os.Stat(path); err != nil {
		return Result{Name: "index", Status: Warn, Detail: "chatscope.db not found yet"}
	}

	idx, err := index.Open(stateDir)
	if err != nil {
		return Result{Name: "index", Status: Fail, Detail: "chatscope.db unreadable: " + err.Error()}
	}
	defer idx.Close()

	entries, err := idx.List()
	if err != nil {
		return Result{Name: "index", Status: Fail, Detail: "chatscope.db query failed: " + err.Error()}
	}

	return Result{Name: "index", Status: Pass, Detail: fmt.Sprintf("chatscope.db (%d chats)", len(entries))}
}

// CheckArchive checks the archive directory and reports archived export count.
func CheckArchive(archiveDir string) Result {
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		return Result{Name: "archive", Status: Warn, Detail: "archive/ not found (nothing archived yet)"}
	}
	count := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".zst") {
			count++
		}
	}
	return Result{Name: "archive", Status: Pass, Detail: fmt.Sprintf("archive/ (%d exports)", count)}
}

// Run executes all checks against the given config and returns a report.
func Run(cfg config.Config) Report {
	var results []Result

	results = append(results, CheckConfig())
	results = append(results, CheckVaultPath(cfg.VaultPath))
	results = append(results, CheckInbox(cfg.InboxPath))
	results = append(results, CheckReports(cfg.ReportsDir()))
	results = append(results, CheckStateDir(cfg.StateDir()))
	results = append(results, CheckIndex(cfg.StateDir()))
	results = append(results, CheckArchive(cfg.ArchiveDir()))

	return Report{Results: results}
}
