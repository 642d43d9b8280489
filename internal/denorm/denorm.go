// Package denorm turns task snapshots into self-contained export records.
package denorm

import (
	"log/slog"

	"github.com/bryan-cox/thingsexport/internal/model"
)

// Resolver looks up referenced entities. A missing entity is reported with
// ok == false; resolution never fails the export.
type Resolver interface {
	Project(id string) (model.Project, bool)
	Area(id string) (model.Area, bool)
}

// Denormalizer maps tasks to records using a Resolver.
type Denormalizer struct {
	resolver Resolver
}

// New returns a Denormalizer backed by r.
func New(r Resolver) *Denormalizer {
	return &Denormalizer{resolver: r}
}

// Records maps every task in order.
func (d *Denormalizer) Records(tasks []model.Task) []model.Record {
	records := make([]model.Record, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, d.Record(task))
	}
	return records
}

// Record builds the denormalized record for a single task.
func (d *Denormalizer) Record(task model.Task) model.Record {
	rec := model.Record{
		ID:             task.ID,
		Title:          task.Title,
		Status:         task.Status,
		CompletionDate: model.NewTimestamp(task.CompletionDate),
	}
	if task.Notes != "" {
		notes := task.Notes
		rec.Notes = &notes
	}

	var projectTags []string
	project, hasProject := d.project(task)
	if hasProject {
		projectTags = nonEmpty(project.Tags)
		rec.Project = &model.RecordProject{
			ID:     project.ID,
			Title:  project.Title,
			Status: project.Status,
			Notes:  project.Notes,
			Tags:   projectTags,
		}
	}

	// The task's own area wins over the project's. A dangling direct
	// reference counts as unset.
	area, ok := d.area(task.ID, task.AreaID)
	if !ok && hasProject {
		area, ok = d.area(task.ID, project.AreaID)
	}
	if ok {
		rec.Area = &model.RecordArea{ID: area.ID, Title: area.Title}
	}

	tags := make([]string, 0, len(projectTags)+len(task.Tags))
	tags = append(tags, projectTags...)
	tags = append(tags, nonEmpty(task.Tags)...)
	rec.Tags = tags

	return rec
}

func (d *Denormalizer) project(task model.Task) (model.Project, bool) {
	if task.ProjectID == "" {
		return model.Project{}, false
	}
	p, ok := d.resolver.Project(task.ProjectID)
	if !ok {
		slog.Debug("project reference could not be resolved", "task", task.ID, "project", task.ProjectID)
	}
	return p, ok
}

func (d *Denormalizer) area(taskID, areaID string) (model.Area, bool) {
	if areaID == "" {
		return model.Area{}, false
	}
	a, ok := d.resolver.Area(areaID)
	if !ok {
		slog.Debug("area reference could not be resolved", "task", taskID, "area", areaID)
	}
	return a, ok
}

// nonEmpty drops empty tag names; Things reports "no tags" as a single
// empty string.
func nonEmpty(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
