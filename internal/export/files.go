package export

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

var invalidFilenameChars = "<>:\"/\\|?*"

// SanitizeFilename replaces characters that are unsafe in filenames and trims
// leading and trailing spaces and dots. An empty result becomes "untitled".
func SanitizeFilename(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return '_'
		}
		return r
	}, name)

	sanitized = strings.Trim(sanitized, " .")
	if sanitized == "" {
		return "untitled"
	}
	return sanitized
}

// Cleanup removes the oldest files in dir beyond maxFiles, by modification
// time. A missing directory is not an error.
func Cleanup(dir string, maxFiles int, log zerolog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("dir", dir).Msg("cleanup skipped")
		}
		return
	}

	type fileAge struct {
		path    string
		modTime int64
	}

	var files []fileAge
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileAge{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime > files[j].modTime
	})

	if maxFiles < 0 {
		maxFiles = 0
	}
	for _, f := range files[min(maxFiles, len(files)):] {
		if err := os.Remove(f.path); err != nil {
			log.Warn().Err(err).Str("path", f.path).Msg("failed to remove old export")
		} else {
			log.Debug().Str("path", f.path).Msg("removed old export")
		}
	}
}
