package things

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// snapshotFile is the on-disk snapshot format. JSON files decode too.
type snapshotFile struct {
	Lists    map[string]fileList   `yaml:"lists"`
	Projects map[string]rawProject `yaml:"projects"`
	Areas    map[string]rawArea    `yaml:"areas"`
}

type fileList struct {
	Sorted bool      `yaml:"sorted"`
	Tasks  []rawTask `yaml:"tasks"`
}

// FileSource reads lists from a YAML or JSON snapshot file. The file is read
// on every Fetch.
type FileSource struct {
	Path string
}

// NewFileSource returns a source backed by the snapshot at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch loads the named list. A list missing from the file is empty.
// Order is only trusted when the list is marked sorted.
func (s *FileSource) Fetch(list string) (*Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read snapshot '%s': %v", ErrSourceUnavailable, s.Path, err)
	}

	var f snapshotFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not parse snapshot '%s': %w", s.Path, err)
	}

	l := f.Lists[list]
	return newSnapshot(list, l.Sorted, l.Tasks, f.Projects, f.Areas)
}
