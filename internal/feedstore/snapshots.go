package feedstore

import (
	"os"
	"path/filepath"
	"strings"
)

// LatestSnapshot returns the path of the newest dated artifact with
// the given prefix, by modification time. ok is false when no
// generation exists.
func (s *Store) LatestSnapshot(prefix string) (path string, ok bool) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", false
	}

	var newest string
	var newestMod int64

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if newest == "" || info.ModTime().UnixNano() > newestMod {
			newest = filepath.Join(s.dir, name)
			newestMod = info.ModTime().UnixNano()
		}
	}

	return newest, newest != ""
}
