package config

import (
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestLoadParsesJSON5WithCommentsAndTrailingCommas(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	contents := `{
		// a schema
		"schemas": {
			"User": {"fields": {"id": "${this.id}",},},
		},
	}`
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	root, err := Load(path)
	assert.NoError(t, err)
	assert.True(t, root.Get("schemas.User").Exists())
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json5"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json5")
	assert.NoError(t, os.WriteFile(path, []byte("{ this is not json "), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsNonObjectTopLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "array.json5")
	assert.NoError(t, os.WriteFile(path, []byte("[1, 2, 3]"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
