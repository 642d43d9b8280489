// Package model defines the core data structures for thingsexport.
package model

import (
	"time"
)

// Task status constants, as reported by Things.
const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// List names understood by Things.
const (
	ListLogbook = "Logbook"
	ListToday   = "Today"
)

// Task is a read-only snapshot of a single to-do. Project and area are
// references to be resolved separately.
type Task struct {
	ID             string
	Title          string
	Notes          string
	Status         string
	CompletionDate *time.Time
	ProjectID      string
	AreaID         string
	Tags           []string
}

// Project is a read-only snapshot of a Things project.
type Project struct {
	ID     string
	Title  string
	Status string
	Notes  string
	AreaID string
	Tags   []string
}

// Area is a read-only snapshot of a Things area.
type Area struct {
	ID    string
	Title string
}

// Record is the denormalized, self-contained export shape of a task.
// Field order is the serialization order.
type Record struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Notes          *string        `json:"notes"`
	Status         string         `json:"status"`
	CompletionDate *Timestamp     `json:"completion_date"`
	Project        *RecordProject `json:"project"`
	Area           *RecordArea    `json:"area"`
	Tags           []string       `json:"tags"`
}

// RecordProject is the embedded copy of a task's project.
type RecordProject struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Status string   `json:"status"`
	Notes  string   `json:"notes"`
	Tags   []string `json:"tags"`
}

// RecordArea is the embedded copy of a task's effective area.
type RecordArea struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// HasTag reports whether the record carries the given tag.
func (r *Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// timestampLayout matches what JavaScript's Date.prototype.toJSON emits.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a completion date serialized in UTC with millisecond precision.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns nil for a nil time so that absent dates serialize as null.
func NewTimestamp(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	return &Timestamp{Time: *t}
}

// MarshalJSON implements the json.Marshaler interface for Timestamp.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.Time.UTC().Format(timestampLayout) + `"`), nil
}
