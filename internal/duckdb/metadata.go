package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// TranscriptSource returns the fingerprint of the transcript file the stored
// results were computed from. ok is false when none was recorded.
func (s *Store) TranscriptSource() (fp FileFingerprint, ok bool, err error) {
	row := s.db.QueryRow(`SELECT path, size, mod_time FROM transcript_source LIMIT 1`)
	if err := row.Scan(&fp.Path, &fp.Size, &fp.ModTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FileFingerprint{}, false, nil
		}
		return FileFingerprint{}, false, fmt.Errorf("read transcript source: %w", err)
	}
	return fp, true, nil
}

// SyncTranscriptSource records the transcript file fingerprint. Stored
// results are cleared when it differs from the recorded one, since they
// were computed against other transcript models. It reports whether
// results were cleared.
func (s *Store) SyncTranscriptSource(fp FileFingerprint) (bool, error) {
	old, ok, err := s.TranscriptSource()
	if err != nil {
		return false, err
	}
	// TIMESTAMP keeps microseconds.
	mod := fp.ModTime.UTC().Truncate(time.Microsecond)
	if ok && old.Size == fp.Size && old.ModTime.Equal(mod) {
		return false, nil
	}

	cleared := false
	if ok {
		if err := s.ClearVariantResults(); err != nil {
			return false, fmt.Errorf("clear stale results: %w", err)
		}
		cleared = true
	}
	if _, err := s.db.Exec(`DELETE FROM transcript_source`); err != nil {
		return cleared, fmt.Errorf("reset transcript source: %w", err)
	}
	if _, err := s.db.Exec(`INSERT INTO transcript_source VALUES (?, ?, ?)`,
		fp.Path, fp.Size, mod); err != nil {
		return cleared, fmt.Errorf("record transcript source: %w", err)
	}
	return cleared, nil
}
