// Package traverse decides which tasks of a source list enter an export.
package traverse

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bryan-cox/thingsexport/internal/model"
	"github.com/bryan-cox/thingsexport/internal/window"
)

// Strategy selects how a task sequence is walked.
type Strategy int

const (
	// FullScan evaluates the window against every task.
	FullScan Strategy = iota
	// EarlyTermination stops at the first task outside the window.
	//
	// Precondition: the sequence is sorted by completion date, most recent
	// first, so every qualifying task is contiguous at the front. Select
	// falls back to FullScan when the caller cannot vouch for that order.
	EarlyTermination
)

func (s Strategy) String() string {
	switch s {
	case EarlyTermination:
		return "early"
	default:
		return "full"
	}
}

// ParseStrategy maps a flag value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "early":
		return EarlyTermination, nil
	case "full":
		return FullScan, nil
	default:
		return FullScan, fmt.Errorf("unknown scan strategy %q (want early or full)", s)
	}
}

// Select returns the tasks that pass the window, preserving source order.
// sorted reports whether the source guarantees completion-date-descending
// order. The strategy actually used is returned alongside the tasks.
func Select(tasks []model.Task, w window.Window, s Strategy, sorted bool) ([]model.Task, Strategy) {
	if w.Unbounded {
		out := make([]model.Task, len(tasks))
		copy(out, tasks)
		return out, s
	}

	if s == EarlyTermination && !sorted {
		slog.Warn("source order is not guaranteed, falling back to full scan", "window", w.String())
		s = FullScan
	}

	var out []model.Task
	for _, task := range tasks {
		if w.Contains(task.CompletionDate) {
			out = append(out, task)
			continue
		}
		if s == EarlyTermination {
			break
		}
	}
	return out, s
}
