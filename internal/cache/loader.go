package cache

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader loads transcript models from a file or a directory of files.
// YAML (.yaml, .yml) and JSON (.json) files are accepted, optionally
// gzip-compressed (.gz).
type Loader struct {
	path string
}

// NewLoader creates a new transcript loader for path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load adds every transcript found at the loader path to the cache and
// indexes it. Directory entries with other extensions are ignored.
func (l *Loader) Load(c *Cache) error {
	info, err := os.Stat(l.path)
	if err != nil {
		return fmt.Errorf("transcript source: %w", err)
	}

	files := []string{l.path}
	if info.IsDir() {
		files, err = transcriptFiles(l.path)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no transcript files in %s", l.path)
		}
	}

	seen := make(map[string]string)
	for _, f := range files {
		transcripts, err := loadFile(f)
		if err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
		for _, t := range transcripts {
			if prev, ok := seen[t.ID]; ok {
				return fmt.Errorf("transcript %s defined in both %s and %s", t.ID, prev, f)
			}
			seen[t.ID] = f
			c.AddTranscript(t)
		}
	}
	c.Build()
	return nil
}

// transcriptFiles lists the loadable files of dir in name order.
func transcriptFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read transcript directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || formatOf(entry.Name()) == "" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// formatOf returns "yaml", "json" or "" for an unsupported file name.
func formatOf(name string) string {
	name = strings.TrimSuffix(strings.ToLower(name), ".gz")
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}
	return ""
}

func loadFile(path string) ([]*Transcript, error) {
	format := formatOf(path)
	if format == "" {
		return nil, fmt.Errorf("unsupported transcript file extension")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	if format == "json" {
		return ParseTranscriptsJSON(r)
	}
	return ParseTranscripts(r)
}

// ParseTranscriptsJSON decodes JSON transcript records. The layout matches
// the YAML one: {"transcripts": [{"id": ..., "exons": [[s, e], ...]}]}.
func ParseTranscriptsJSON(r io.Reader) ([]*Transcript, error) {
	var file transcriptFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return convertRecords(file.Transcripts)
}
