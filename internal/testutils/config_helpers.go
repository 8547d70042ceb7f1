package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTempConfigFile writes content to meetdocs.yaml in a fresh temporary
// directory and returns the file path. t.TempDir() removes it when the test
// completes.
func CreateTempConfigFile(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "meetdocs.yaml")
	err := os.WriteFile(configPath, []byte(content), 0600)
	require.NoError(t, err, "Failed to create temporary config file")

	return configPath
}
