// Package report renders exported records as a Markdown status report.
package report

import (
	"github.com/bryan-cox/thingsexport/internal/model"
)

// ProjectTree is a project and the exported tasks that belong to it.
type ProjectTree struct {
	ID    string
	Title string
	Tasks []model.Record
}

// AreaTree groups projects and loose tasks under an area.
type AreaTree struct {
	ID       string
	Title    string
	Projects []*ProjectTree
	Tasks    []model.Record
}

// Tree is the full grouping of an export. Projects and tasks that have no
// effective area hang off the root.
type Tree struct {
	Areas    []*AreaTree
	Projects []*ProjectTree
	Tasks    []model.Record
}

// BuildTree groups records by effective area, then by project. Groups appear
// in the order their first record appears.
func BuildTree(records []model.Record) *Tree {
	tree := &Tree{}
	for _, r := range records {
		tree.add(r)
	}
	return tree
}

func (t *Tree) add(r model.Record) {
	if r.Area == nil {
		if r.Project == nil {
			t.Tasks = append(t.Tasks, r)
			return
		}
		p := findProject(&t.Projects, r.Project)
		p.Tasks = append(p.Tasks, r)
		return
	}

	var area *AreaTree
	for _, a := range t.Areas {
		if a.ID == r.Area.ID {
			area = a
			break
		}
	}
	if area == nil {
		area = &AreaTree{ID: r.Area.ID, Title: r.Area.Title}
		t.Areas = append(t.Areas, area)
	}

	if r.Project == nil {
		area.Tasks = append(area.Tasks, r)
		return
	}
	p := findProject(&area.Projects, r.Project)
	p.Tasks = append(p.Tasks, r)
}

func findProject(projects *[]*ProjectTree, rp *model.RecordProject) *ProjectTree {
	for _, p := range *projects {
		if p.ID == rp.ID {
			return p
		}
	}
	p := &ProjectTree{ID: rp.ID, Title: rp.Title}
	*projects = append(*projects, p)
	return p
}
