package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"text/template"

	"github.com/phrazzld/meetdocs/internal/domain"
)

// Template ids of the embedded templates.
const (
	TemplateNotice   = "notice"
	TemplateEmail    = "email"
	TemplateMOM      = "mom"
	TemplateTaskList = "tasklist"
)

// NoAttendees is rendered in place of an empty attendee list.
const NoAttendees = "To be confirmed"

const templateExt = ".tmpl"

//go:embed templates/*.tmpl
var embedded embed.FS

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// templateData is the value every template executes against.
type templateData struct {
	Date         string
	Time         string
	Agenda       string
	AgendaItems  []string
	Attendees    []string
	AttendeeList string
	Location     string
	Duration     string
	Organizer    string
}

// Builder renders prompts from parsed templates. It is immutable after
// construction and safe for concurrent use.
type Builder struct {
	templates map[string]*template.Template
}

// NewBuilder parses the embedded templates. When overrideDir is non-empty,
// every <id>.tmpl file found there replaces the embedded template of the same
// id or adds a new one.
func NewBuilder(overrideDir string) (*Builder, error) {
	b := &Builder{templates: make(map[string]*template.Template)}

	if err := b.load(embedded, "templates"); err != nil {
		return nil, err
	}

	if overrideDir != "" {
		info, err := os.Stat(overrideDir)
		if err != nil {
			return nil, fmt.Errorf("template directory %q: %w", overrideDir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template directory %q: not a directory", overrideDir)
		}
		if err := b.load(os.DirFS(overrideDir), "."); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *Builder) load(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read templates: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != templateExt {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), templateExt)
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read template %q: %w", id, err)
		}

		tmpl, err := template.New(id).
			Funcs(funcs).
			Option("missingkey=error").
			Parse(string(raw))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, id, err)
		}
		b.templates[id] = tmpl
	}
	return nil
}

// TemplateIDs returns the known template ids in sorted order.
func (b *Builder) TemplateIDs() []string {
	ids := make([]string, 0, len(b.templates))
	for id := range b.templates {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Has reports whether a template with the given id is known.
func (b *Builder) Has(templateID string) bool {
	_, ok := b.templates[templateID]
	return ok
}

// Build renders the template for the request. It returns a *ValidationError
// when the request is invalid and ErrUnknownTemplate for an unknown id.
func (b *Builder) Build(req domain.MeetingRequest, templateID string) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	tmpl, ok := b.templates[templateID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(req)); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", templateID, err)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "", fmt.Errorf("template %q rendered an empty prompt", templateID)
	}
	return out, nil
}

func newTemplateData(req domain.MeetingRequest) templateData {
	attendees := req.Attendees()
	list := NoAttendees
	if len(attendees) > 0 {
		list = strings.Join(attendees, ", ")
	}

	return templateData{
		Date:         req.Date(),
		Time:         req.Time(),
		Agenda:       req.Agenda(),
		AgendaItems:  splitAgenda(req.Agenda()),
		Attendees:    attendees,
		AttendeeList: list,
		Location:     req.Location(),
		Duration:     req.Duration(),
		Organizer:    req.Organizer(),
	}
}

// splitAgenda breaks an agenda into items on newlines and semicolons. A single
// line agenda yields one item.
func splitAgenda(agenda string) []string {
	fields := strings.FieldsFunc(agenda, func(r rune) bool {
		return r == '\n' || r == ';'
	})

	items := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		f = strings.TrimLeft(f, "-*• ")
		if f != "" {
			items = append(items, f)
		}
	}
	if len(items) == 0 {
		items = append(items, strings.TrimSpace(agenda))
	}
	return items
}
