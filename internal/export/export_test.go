package export

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/bryan-cox/thingsexport/internal/model"
	"github.com/bryan-cox/thingsexport/internal/things"
	"github.com/bryan-cox/thingsexport/internal/traverse"
	"github.com/bryan-cox/thingsexport/internal/window"
)

type failingSource struct{}

func (failingSource) Fetch(string) (*things.Snapshot, error) {
	return nil, fmt.Errorf("%w: Things is not running", things.ErrSourceUnavailable)
}

func fixtureSource() things.Source {
	return things.NewFileSource("../things/testdata/snapshot.yaml")
}

func marchWindow(t *testing.T) window.Window {
	t.Helper()
	w, err := window.Explicit("2024-03-01", "2024-03-08", time.UTC)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	return w
}

func TestRun(t *testing.T) {
	records, err := Run(fixtureSource(), Request{
		List:     model.ListLogbook,
		Window:   marchWindow(t),
		Strategy: traverse.EarlyTermination,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Area == nil || first.Area.Title != "Home" {
		t.Errorf("first record should inherit the project area, got %+v", first.Area)
	}
	if !reflect.DeepEqual(first.Tags, []string{"Work", "Urgent"}) {
		t.Errorf("first record tags = %q", first.Tags)
	}

	second := records[1]
	if second.Project != nil {
		t.Errorf("second record has no project, got %+v", second.Project)
	}
	if second.Notes != nil {
		t.Errorf("empty notes should be null, got %q", *second.Notes)
	}
	if second.Area == nil || second.Area.ID != "a2" {
		t.Errorf("second record area = %+v", second.Area)
	}
}

func TestRunWindowExcludesEverything(t *testing.T) {
	w, _ := window.Explicit("2025-01-01", "2025-02-01", time.UTC)
	records, err := Run(fixtureSource(), Request{List: model.ListLogbook, Window: w, Strategy: traverse.FullScan})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestRunSourceUnavailable(t *testing.T) {
	records, err := Run(failingSource{}, Request{List: model.ListToday, Window: window.Unfiltered()})
	if !errors.Is(err, things.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
	if records != nil {
		t.Errorf("expected no partial output, got %d records", len(records))
	}
}

func TestRunTagFilter(t *testing.T) {
	records, err := Run(fixtureSource(), Request{
		List:   model.ListLogbook,
		Window: marchWindow(t),
		Tags:   []string{"Report"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "t2" {
		t.Errorf("expected only t2, got %+v", records)
	}

	// Project tags participate in filtering.
	records, _ = Run(fixtureSource(), Request{List: model.ListLogbook, Window: marchWindow(t), Tags: []string{"Work", "Urgent"}})
	if len(records) != 1 || records[0].ID != "t1" {
		t.Errorf("expected only t1, got %+v", records)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Run("empty export is an empty array", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteJSON(&buf, nil); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "[]\n" {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("field order and null handling", func(t *testing.T) {
		done := time.Date(2024, 3, 7, 18, 0, 0, 0, time.UTC)
		records := []model.Record{{
			ID:             "t1",
			Title:          "Fish & chips",
			Status:         model.StatusCompleted,
			CompletionDate: model.NewTimestamp(&done),
			Tags:           []string{},
		}}

		var buf bytes.Buffer
		if err := WriteJSON(&buf, records); err != nil {
			t.Fatal(err)
		}
		want := `[
  {
    "id": "t1",
    "title": "Fish & chips",
    "notes": null,
    "status": "completed",
    "completion_date": "2024-03-07T18:00:00.000Z",
    "project": null,
    "area": null,
    "tags": []
  }
]
`
		if buf.String() != want {
			t.Errorf("unexpected JSON:\n%s\nwant:\n%s", buf.String(), want)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		render := func() string {
			records, err := Run(fixtureSource(), Request{List: model.ListLogbook, Window: marchWindow(t)})
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := WriteJSON(&buf, records); err != nil {
				t.Fatal(err)
			}
			return buf.String()
		}
		first, second := render(), render()
		if first != second {
			t.Error("two exports of the same snapshot differ")
		}
		if !strings.Contains(first, `"title": "Kitchen"`) {
			t.Errorf("embedded project missing:\n%s", first)
		}
	})
}
