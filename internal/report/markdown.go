package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/bryan-cox/thingsexport/internal/model"
)

// Markers for task status in Slack-flavoured Markdown.
const (
	MarkerCompleted = ":white_check_mark:"
	strike          = "~"
)

// Options controls Markdown rendering.
type Options struct {
	// ProjectsOnly lists project titles instead of their tasks.
	ProjectsOnly bool
	// SanitizeMentions disguises names found in @-tags so chat tools do
	// not notify those people.
	SanitizeMentions bool
}

var reportBlock = regexp.MustCompile("```report\n([\\s\\S]*?)\n?```")

// ReportNotes extracts the contents of ```report fenced blocks from notes.
func ReportNotes(notes string) string {
	var parts []string
	for _, m := range reportBlock.FindAllStringSubmatch(notes, -1) {
		parts = append(parts, m[1])
	}
	return strings.Join(parts, " ")
}

// WriteMarkdown renders records as a grouped Markdown report.
func WriteMarkdown(out io.Writer, records []model.Record, opts Options) error {
	text := Render(records, opts)
	if opts.SanitizeMentions {
		text = SanitizeMentions(text, MentionNames(records))
	}
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(out, text)
	return err
}

// Render returns the Markdown body without mention sanitizing.
func Render(records []model.Record, opts Options) string {
	tree := BuildTree(records)

	var areaText string
	switch len(tree.Areas) {
	case 0:
	case 1:
		areaText = renderArea(tree.Areas[0], opts)
	default:
		sections := make([]string, 0, len(tree.Areas))
		for _, a := range tree.Areas {
			sections = append(sections, fmt.Sprintf("*%s*\n%s", a.Title, renderArea(a, opts)))
		}
		areaText = strings.Join(sections, "\n\n")
	}

	var loose []string
	for _, p := range tree.Projects {
		loose = append(loose, renderProject(p, 0, opts))
	}
	for _, r := range tree.Tasks {
		loose = append(loose, renderTask(r, 0))
	}

	return joinSections(areaText, strings.Join(loose, "\n"))
}

func renderArea(a *AreaTree, opts Options) string {
	projects := make([]string, 0, len(a.Projects))
	for _, p := range a.Projects {
		projects = append(projects, renderProject(p, 0, opts))
	}
	if opts.ProjectsOnly {
		return strings.Join(projects, "\n")
	}

	tasks := make([]string, 0, len(a.Tasks))
	for _, r := range a.Tasks {
		tasks = append(tasks, renderTask(r, 0))
	}
	return joinSections(strings.Join(projects, "\n"), strings.Join(tasks, "\n"))
}

func renderProject(p *ProjectTree, depth int, opts Options) string {
	indent := strings.Repeat(" ", depth)
	if opts.ProjectsOnly {
		return fmt.Sprintf("%s- %s", indent, p.Title)
	}
	lines := []string{indent + p.Title}
	for _, r := range p.Tasks {
		lines = append(lines, renderTask(r, depth+4))
	}
	return strings.Join(lines, "\n")
}

func renderTask(r model.Record, depth int) string {
	text := r.Title
	notes := ""
	if r.Notes != nil {
		notes = ReportNotes(*r.Notes)
	}

	switch r.Status {
	case model.StatusCanceled:
		text = strike + text + strike
	case model.StatusCompleted:
		if notes != "" {
			text += " " + notes
		}
		text = MarkerCompleted + " " + text
	default:
		if notes != "" {
			text += " " + notes
		}
	}
	return fmt.Sprintf("%s- %s", strings.Repeat(" ", depth), text)
}

func joinSections(a, b string) string {
	if a == "" || b == "" {
		return a + b
	}
	return a + "\n\n" + b
}
