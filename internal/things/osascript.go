package things

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/bryan-cox/thingsexport/internal/model"
)

// DefaultOsascript is the macOS scripting host binary.
const DefaultOsascript = "osascript"

//go:embed snapshot.js
var snapshotScript []byte

// osascriptOutput is what snapshot.js prints.
type osascriptOutput struct {
	List     string                `json:"list"`
	Tasks    []rawTask             `json:"tasks"`
	Projects map[string]rawProject `json:"projects"`
	Areas    map[string]rawArea    `json:"areas"`
}

// OsascriptSource reads a live Things database through JavaScript for
// Automation.
type OsascriptSource struct {
	Binary string
}

// NewOsascriptSource returns a source that runs the given osascript binary.
func NewOsascriptSource(binary string) *OsascriptSource {
	if binary == "" {
		binary = DefaultOsascript
	}
	return &OsascriptSource{Binary: binary}
}

// Fetch runs the snapshot script against the named list. Things keeps its
// Logbook ordered by completion date, most recent first, so Logbook
// snapshots are marked sorted.
func (s *OsascriptSource) Fetch(list string) (*Snapshot, error) {
	cmd := exec.Command(s.Binary, "-l", "JavaScript", "-", list)
	cmd.Stdin = bytes.NewReader(snapshotScript)

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: osascript exit code %d, stderr: %s",
				ErrSourceUnavailable, exitErr.ExitCode(), bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var out osascriptOutput
	if err := json.Unmarshal(output, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal osascript output: %w", err)
	}
	if out.List == "" {
		out.List = list
	}

	return newSnapshot(out.List, out.List == model.ListLogbook, out.Tasks, out.Projects, out.Areas)
}
