package generator

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifestFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0644))
}

func TestCheckManifest_AllRecorded(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, `{
  "name": "my-app",
  "version": "1.0.50",
  "scripts": {"dev": "bun run --watch src/index.ts"},
  "dependencies": {"elysia": "latest", "luxon": "^3.4.4"},
  "devDependencies": {"@types/luxon": "^3.4.2"}
}`)

	report, err := CheckManifest(dir, []string{"luxon", "@types/luxon"})
	require.NoError(t, err)
	assert.True(t, report.Valid())
	assert.Empty(t, report.Missing)
}

func TestCheckManifest_ReportsMissing(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, `{"name": "my-app", "dependencies": {"luxon": "^3.4.4"}}`)

	report, err := CheckManifest(dir, []string{"luxon", "winston", "mongoose"})
	require.NoError(t, err)
	assert.Equal(t, []string{"winston", "mongoose"}, report.Missing)
}

func TestCheckManifest_SchemaIssues(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, `{"dependencies": {"luxon": 3}}`)

	report, err := CheckManifest(dir, nil)
	require.NoError(t, err)
	assert.False(t, report.Valid())
	assert.NotEmpty(t, report.Issues)
}

func TestCheckManifest_Missing(t *testing.T) {
	_, err := CheckManifest(t.TempDir(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCheckManifest_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, `{not json`)

	_, err := CheckManifest(dir, nil)
	assert.Error(t, err)
}
