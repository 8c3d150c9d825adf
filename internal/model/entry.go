package model

import (
	"encoding/json"
	"time"
)

// TimeEntry is a single Toggl time entry as returned by the API.
type TimeEntry struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Start       time.Time `json:"start"`
	// Duration is in seconds. Running entries carry a negative value.
	Duration int64 `json:"duration"`
}

// UnmarshalJSON decodes an entry and normalizes a null or missing tag list
// to an empty slice.
func (e *TimeEntry) UnmarshalJSON(data []byte) error {
	type raw TimeEntry
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	*e = TimeEntry(r)
	return nil
}
