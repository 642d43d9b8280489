// Package export runs one point-in-time export: fetch, filter, denormalize.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/bryan-cox/thingsexport/internal/denorm"
	"github.com/bryan-cox/thingsexport/internal/model"
	"github.com/bryan-cox/thingsexport/internal/things"
	"github.com/bryan-cox/thingsexport/internal/traverse"
	"github.com/bryan-cox/thingsexport/internal/window"
)

// Request describes a single export.
type Request struct {
	List     string
	Window   window.Window
	Strategy traverse.Strategy
	// Tags, when set, keeps only records carrying every listed tag.
	Tags []string
}

// Run fetches the requested list and returns its denormalized records in
// source order. Any error aborts the whole export.
func Run(src things.Source, req Request) ([]model.Record, error) {
	snap, err := src.Fetch(req.List)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", req.List, err)
	}

	tasks, used := traverse.Select(snap.Tasks, req.Window, req.Strategy, snap.Sorted)
	records := denorm.New(snap).Records(tasks)
	records = FilterTags(records, req.Tags)

	slog.Debug("export complete",
		"list", req.List,
		"window", req.Window.String(),
		"scan", used.String(),
		"fetched", len(snap.Tasks),
		"exported", len(records))
	return records, nil
}

// FilterTags keeps records that carry every tag in tags. Project tags count.
func FilterTags(records []model.Record, tags []string) []model.Record {
	if len(tags) == 0 {
		return records
	}
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if hasAll(&r, tags) {
			out = append(out, r)
		}
	}
	return out
}

func hasAll(r *model.Record, tags []string) bool {
	for _, tag := range tags {
		if !r.HasTag(tag) {
			return false
		}
	}
	return true
}

// WriteJSON writes records as a 2-space indented JSON array. An empty export
// is written as [].
func WriteJSON(w io.Writer, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}
