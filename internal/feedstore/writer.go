package feedstore

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SnapshotName builds the dated artifact name for a prefix, one per
// calendar day.
func SnapshotName(prefix string, t time.Time) string {
	return prefix + t.Format("2006-01-02") + ".json"
}

// WriteArtifact serializes v into the named artifact atomically:
// a temp file in the same directory, then rename. A failed run never
// leaves a half-written artifact behind; the previous generation
// stays authoritative.
func (s *Store) WriteArtifact(name string, v interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit %s: %w", name, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"artifact": name,
		"bytes":    len(data),
	}).Debug("Artifact written")

	return nil
}
