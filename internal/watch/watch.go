// Package watch runs the analyze pipeline automatically as chat
// exports land in the inbox directory.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/johns/chatscope/internal/analyze"
	"github.com/johns/chatscope/internal/config"
)

// settleDelay is how long a file must stay quiet after its last write
// event before it is considered fully copied.
const settleDelay = 500 * time.Millisecond

// Run watches cfg.InboxPath and analyzes every export dropped into it.
// It blocks until ctx is cancelled. Per-file failures are logged and
// absorbed so one bad export never stops the watcher.
func Run(ctx context.Context, cfg config.Config) error {
	if err := os.MkdirAll(cfg.InboxPath, 0o755); err != nil {
		return fmt.Errorf("create inbox: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.InboxPath); err != nil {
		return fmt.Errorf("watch inbox %s: %w", cfg.InboxPath, err)
	}

	log.Printf("watching %s", cfg.InboxPath)

	// Pending files and the time of their last event. A timer sweep
	// picks up files once they have settled.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if wantEvent(event) {
				pending[event.Name] = time.Now()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < settleDelay {
					continue
				}
				delete(pending, path)
				process(path, cfg)
			}
		}
	}
}

// wantEvent reports whether an fsnotify event refers to a chat export
// being created or written.
func wantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return strings.HasSuffix(event.Name, ".txt") || strings.HasSuffix(event.Name, ".txt.zst")
}

func process(path string, cfg config.Config) {
	result, err := analyze.Run(path, cfg)
	if err != nil {
		log.Printf("analyze %s: %v", path, err)
		return
	}
	if result.Skipped {
		log.Printf("skipped %s: %s", path, result.Reason)
		return
	}
	log.Printf("analyzed %s → %s (%d messages)", path, result.ReportPath, result.Messages)
}
