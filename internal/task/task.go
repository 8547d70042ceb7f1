package task

import (
	"fmt"

	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/phrazzld/meetdocs/internal/prompt"
)

// Output keys of the four documents, also used as file names.
const (
	KeyNotice   = "notice"
	KeyEmail    = "email"
	KeyMOM      = "mom"
	KeyTaskList = "tasklist"
)

// GenerationTask binds one output document to a provider and a template.
type GenerationTask struct {
	Name       string
	OutputKey  string
	Provider   domain.ProviderID
	TemplateID string
}

// DefaultTasks returns the four tasks in declaration order. The order is the
// enumeration order of every ResultSet.
func DefaultTasks() []GenerationTask {
	return []GenerationTask{
		{Name: "Meeting notice", OutputKey: KeyNotice, Provider: domain.ProviderOpenAI, TemplateID: prompt.TemplateNotice},
		{Name: "Staff summary email", OutputKey: KeyEmail, Provider: domain.ProviderGemini, TemplateID: prompt.TemplateEmail},
		{Name: "Minutes of meeting template", OutputKey: KeyMOM, Provider: domain.ProviderOpenAI, TemplateID: prompt.TemplateMOM},
		{Name: "Follow-up task list", OutputKey: KeyTaskList, Provider: domain.ProviderGemini, TemplateID: prompt.TemplateTaskList},
	}
}

// BindTasks returns a copy of tasks with the provider of every task named in
// overrides replaced. Overrides for unknown output keys or providers are
// rejected.
func BindTasks(tasks []GenerationTask, overrides map[string]domain.ProviderID) ([]GenerationTask, error) {
	out := make([]GenerationTask, len(tasks))
	copy(out, tasks)

	index := make(map[string]int, len(out))
	for i, t := range out {
		index[t.OutputKey] = i
	}

	for key, provider := range overrides {
		i, ok := index[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown output key %q", ErrInvalidTask, key)
		}
		if !provider.Valid() {
			return nil, fmt.Errorf("%w: task %q bound to unknown provider %q", ErrInvalidTask, key, provider)
		}
		out[i].Provider = provider
	}

	return out, nil
}

func validateTasks(tasks []GenerationTask) error {
	if len(tasks) == 0 {
		return fmt.Errorf("%w: task list is empty", ErrInvalidTask)
	}

	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.OutputKey == "" {
			return fmt.Errorf("%w: task %q has no output key", ErrInvalidTask, t.Name)
		}
		if t.TemplateID == "" {
			return fmt.Errorf("%w: task %q has no template", ErrInvalidTask, t.OutputKey)
		}
		if _, dup := seen[t.OutputKey]; dup {
			return fmt.Errorf("%w: duplicate output key %q", ErrInvalidTask, t.OutputKey)
		}
		seen[t.OutputKey] = struct{}{}
	}
	return nil
}
