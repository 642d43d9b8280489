// Package things provides TaskSource adapters for the Things application.
//
// Adapters read a whole list up front into a Snapshot. The Snapshot then
// serves as the resolver for project and area references. Splitting of
// Things' ", "-joined tag strings happens here and nowhere else.
package things

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bryan-cox/thingsexport/internal/model"
)

// ErrSourceUnavailable is returned when Things cannot be reached.
var ErrSourceUnavailable = errors.New("task source unavailable")

// tagSeparator is how Things joins tag names.
const tagSeparator = ", "

// Source is the TaskSource boundary: it returns a point-in-time snapshot of
// a named list.
type Source interface {
	Fetch(list string) (*Snapshot, error)
}

// Snapshot is a read-only copy of one list and the entities it references.
type Snapshot struct {
	List  string
	Tasks []model.Task

	// Sorted is true when the source guarantees Tasks are ordered by
	// completion date, most recent first.
	Sorted bool

	projects map[string]model.Project
	areas    map[string]model.Area
}

// Project implements denorm.Resolver.
func (s *Snapshot) Project(id string) (model.Project, bool) {
	p, ok := s.projects[id]
	return p, ok
}

// Area implements denorm.Resolver.
func (s *Snapshot) Area(id string) (model.Area, bool) {
	a, ok := s.areas[id]
	return a, ok
}

// SplitTags splits a Things tag string. An empty string yields a single
// empty name, which downstream code discards.
func SplitTags(raw string) []string {
	return strings.Split(raw, tagSeparator)
}

// --- Raw wire shapes shared by the osascript and file sources ---

type rawTask struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Notes          string  `json:"notes" yaml:"notes"`
	Status         string  `json:"status" yaml:"status"`
	CompletionDate *string `json:"completion_date" yaml:"completion_date"`
	Project        *string `json:"project" yaml:"project"`
	Area           *string `json:"area" yaml:"area"`
	TagNames       string  `json:"tag_names" yaml:"tag_names"`
}

type rawProject struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Status   string  `json:"status" yaml:"status"`
	Notes    string  `json:"notes" yaml:"notes"`
	Area     *string `json:"area" yaml:"area"`
	TagNames string  `json:"tag_names" yaml:"tag_names"`
}

type rawArea struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func newSnapshot(list string, sorted bool, tasks []rawTask, projects map[string]rawProject, areas map[string]rawArea) (*Snapshot, error) {
	snap := &Snapshot{
		List:     list,
		Sorted:   sorted,
		Tasks:    make([]model.Task, 0, len(tasks)),
		projects: make(map[string]model.Project, len(projects)),
		areas:    make(map[string]model.Area, len(areas)),
	}

	for i, rt := range tasks {
		task := model.Task{
			ID:        rt.ID,
			Title:     rt.Name,
			Notes:     rt.Notes,
			Status:    rt.Status,
			ProjectID: deref(rt.Project),
			AreaID:    deref(rt.Area),
			Tags:      SplitTags(rt.TagNames),
		}
		if rt.CompletionDate != nil && *rt.CompletionDate != "" {
			t, err := time.Parse(time.RFC3339Nano, *rt.CompletionDate)
			if err != nil {
				return nil, fmt.Errorf("task %d (%s): invalid completion_date: %w", i, rt.ID, err)
			}
			task.CompletionDate = &t
		}
		snap.Tasks = append(snap.Tasks, task)
	}

	for key, rp := range projects {
		id := rp.ID
		if id == "" {
			id = key
		}
		snap.projects[id] = model.Project{
			ID:     id,
			Title:  rp.Name,
			Status: rp.Status,
			Notes:  rp.Notes,
			AreaID: deref(rp.Area),
			Tags:   SplitTags(rp.TagNames),
		}
	}

	for key, ra := range areas {
		id := ra.ID
		if id == "" {
			id = key
		}
		snap.areas[id] = model.Area{ID: id, Title: ra.Name}
	}

	return snap, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
