package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/johns/chatscope/internal/analyze"
	"github.com/johns/chatscope/internal/check"
	"github.com/johns/chatscope/internal/config"
	"github.com/johns/chatscope/internal/discover"
	"github.com/johns/chatscope/internal/index"
	"github.com/johns/chatscope/internal/scaffold"
	"github.com/johns/chatscope/internal/vault"
	"github.com/johns/chatscope/internal/watch"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}

	switch os.Args[1] {
	case "process":
		if len(os.Args) < 3 {
			fatal("usage: chatscope process <export.txt>")
		}
		processOne(os.Args[2], cfg)

	case "scan":
		dir := cfg.InboxPath
		if len(os.Args) >= 3 {
			dir = os.Args[2]
		}
		exports, err := discover.Discover(dir)
		if err != nil {
			fatal("scan %s: %v", dir, err)
		}
		if len(exports) == 0 {
			fmt.Printf("no exports found in %s\n", dir)
			return
		}
		for _, e := range exports {
			processOne(e.Path, cfg)
		}

	case "stats":
		idx, err := index.Open(cfg.StateDir())
		if err != nil {
			fatal("open index: %v", err)
		}
		defer idx.Close()
		entries, err := idx.List()
		if err != nil {
			fatal("list chats: %v", err)
		}
		fmt.Print(vault.Format(vault.Compute(entries)))

	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := watch.Run(ctx, cfg); err != nil && err != context.Canceled {
			fatal("watch: %v", err)
		}

	case "init":
		vaultPath := cfg.VaultPath
		if len(os.Args) >= 3 {
			vaultPath = os.Args[2]
		}
		if err := scaffold.Init(vaultPath); err != nil {
			fatal("init: %v", err)
		}
		path, action, err := config.WriteDefault(vaultPath)
		if err != nil {
			fatal("init: %v", err)
		}
		fmt.Printf("vault ready: %s\nconfig %s: %s\n", vaultPath, action, path)

	case "rebuild":
		idx, err := index.Open(cfg.StateDir())
		if err != nil {
			fatal("open index: %v", err)
		}
		defer idx.Close()
		n, err := idx.Rebuild(cfg.VaultPath, cfg.ReportsDir())
		if err != nil {
			fatal("rebuild: %v", err)
		}
		fmt.Printf("indexed %d chats\n", n)

	case "check":
		report := check.Run(cfg)
		fmt.Print(report.Format())
		if report.HasFailures() {
			os.Exit(1)
		}

	case "version":
		fmt.Printf("chatscope v%s\n", version)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func processOne(path string, cfg config.Config) {
	result, err := analyze.Run(path, cfg)
	if err != nil {
		fatal("process %s: %v", path, err)
	}
	if result.Skipped {
		fmt.Printf("skipped %s: %s\n", path, result.Reason)
	} else {
		fmt.Printf("created: %s (%s, %d messages)\n", result.ReportPath, result.Title, result.Messages)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `chatscope v%s — chat export analyzer

Usage:
  chatscope process <file>    Analyze a single export (.txt or .txt.zst)
  chatscope scan [dir]        Analyze every export under a directory (default: inbox)
  chatscope watch             Watch the inbox and analyze exports as they arrive
  chatscope stats             Aggregate stats across all analyzed chats
  chatscope init [vault]      Scaffold the vault and write config.toml
  chatscope rebuild           Rebuild the index from report notes on disk
  chatscope check             Verify config, vault, and index health
  chatscope version           Print version
  chatscope help              Show this help

Configuration: ~/.config/chatscope/config.toml
`, version)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "chatscope: "+format+"\n", args...)
	os.Exit(1)
}
