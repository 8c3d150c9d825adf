package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Tiliavir/togglpie/internal/model"
)

// LoadEntries reads a JSON array of time entries, as returned by the Toggl
// time_entries endpoint, from path.
func LoadEntries(path string) ([]model.TimeEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	var entries []model.TimeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corrupt JSON in %s: %w", path, err)
	}
	return entries, nil
}

// FileSource serves time entries from an exported JSON file instead of the API.
type FileSource struct {
	Path string
}

// ListTimeEntries returns the entries of the file that started in
// [since, until]. Entries without a start time are always included.
func (f FileSource) ListTimeEntries(_ context.Context, since, until time.Time) ([]model.TimeEntry, error) {
	all, err := LoadEntries(f.Path)
	if err != nil {
		return nil, err
	}
	entries := make([]model.TimeEntry, 0, len(all))
	for _, e := range all {
		if !e.Start.IsZero() && (e.Start.Before(since) || e.Start.After(until)) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
