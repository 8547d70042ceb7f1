package task

import (
	"testing"

	"github.com/phrazzld/meetdocs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTasks(t *testing.T) {
	t.Parallel()

	tasks := DefaultTasks()
	require.Len(t, tasks, 4)

	keys := make([]string, 0, len(tasks))
	for _, tk := range tasks {
		keys = append(keys, tk.OutputKey)
	}
	assert.Equal(t, []string{KeyNotice, KeyEmail, KeyMOM, KeyTaskList}, keys)

	assert.Equal(t, domain.ProviderOpenAI, tasks[0].Provider)
	assert.Equal(t, domain.ProviderGemini, tasks[1].Provider)
	assert.Equal(t, domain.ProviderOpenAI, tasks[2].Provider)
	assert.Equal(t, domain.ProviderGemini, tasks[3].Provider)
	assert.NoError(t, validateTasks(tasks))
}

func TestBindTasks(t *testing.T) {
	t.Parallel()

	t.Run("overrides provider", func(t *testing.T) {
		t.Parallel()

		defaults := DefaultTasks()
		bound, err := BindTasks(defaults, map[string]domain.ProviderID{KeyNotice: domain.ProviderGemini})
		require.NoError(t, err)

		assert.Equal(t, domain.ProviderGemini, bound[0].Provider)
		assert.Equal(t, domain.ProviderOpenAI, defaults[0].Provider, "input must not be mutated")
		assert.Equal(t, defaults[1:], bound[1:])
	})

	t.Run("no overrides", func(t *testing.T) {
		t.Parallel()

		bound, err := BindTasks(DefaultTasks(), nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultTasks(), bound)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := BindTasks(DefaultTasks(), map[string]domain.ProviderID{"agenda": domain.ProviderGemini})
		assert.ErrorIs(t, err, ErrInvalidTask)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		_, err := BindTasks(DefaultTasks(), map[string]domain.ProviderID{KeyMOM: "anthropic"})
		assert.ErrorIs(t, err, ErrInvalidTask)
	})
}

func TestValidateTasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tasks []GenerationTask
	}{
		{"empty", nil},
		{"missing key", []GenerationTask{{Name: "x", TemplateID: "notice", Provider: domain.ProviderOpenAI}}},
		{"missing template", []GenerationTask{{OutputKey: "notice", Provider: domain.ProviderOpenAI}}},
		{"duplicate key", []GenerationTask{
			{OutputKey: "notice", TemplateID: "notice", Provider: domain.ProviderOpenAI},
			{OutputKey: "notice", TemplateID: "email", Provider: domain.ProviderGemini},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, validateTasks(tc.tasks), ErrInvalidTask)
		})
	}
}
