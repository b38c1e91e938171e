package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExportFile represents a discovered chat export on disk.
type ExportFile struct {
	Path       string
	Compressed bool  // true for .txt.zst archives
	ModTime    int64 // unix timestamp for sorting
}

// Discover walks basePath recursively and returns all chat export
// files (.txt and .txt.zst), sorted by modification time (oldest first).
func Discover(basePath string) ([]ExportFile, error) {
	var results []ExportFile

	err := filepath.Walk(basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if info.IsDir() {
			return nil
		}

		name := filepath.Base(path)
		compressed := strings.HasSuffix(name, ".txt.zst")
		if !compressed && !strings.HasSuffix(name, ".txt") {
			return nil
		}

		results = append(results, ExportFile{
			Path:       path,
			Compressed: compressed,
			ModTime:    info.ModTime().Unix(),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ModTime < results[j].ModTime
	})

	return results, nil
}
