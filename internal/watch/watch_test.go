package watch

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestWantEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"txt create", fsnotify.Event{Name: "/inbox/chat.txt", Op: fsnotify.Create}, true},
		{"txt write", fsnotify.Event{Name: "/inbox/chat.txt", Op: fsnotify.Write}, true},
		{"zst create", fsnotify.Event{Name: "/inbox/chat.txt.zst", Op: fsnotify.Create}, true},
		{"txt remove", fsnotify.Event{Name: "/inbox/chat.txt", Op: fsnotify.Remove}, false},
		{"txt chmod", fsnotify.Event{Name: "/inbox/chat.txt", Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: "/inbox/notes.md", Op: fsnotify.Create}, false},
		{"bare zst", fsnotify.Event{Name: "/inbox/blob.zst", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wantEvent(tt.event); got != tt.want {
				t.Errorf("wantEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
