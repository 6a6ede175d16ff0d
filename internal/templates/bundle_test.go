package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	b := Default()
	assert.Contains(t, b.HTML, "{{.Name}}")
	assert.Contains(t, b.CSS, ".cv-container")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "modern"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modern", "template.html"), []byte("<h1>{{.Name}}</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modern", "styles.css"), []byte("h1{}"), 0o644))

	b, err := Load(dir, "modern")
	require.NoError(t, err)
	assert.Equal(t, "<h1>{{.Name}}</h1>", b.HTML)
	assert.Equal(t, "h1{}", b.CSS)
}

func TestLoad_MissingCSS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "half"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "half", "template.html"), []byte("x"), 0o644))

	_, err := Load(dir, "half")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "styles.css")
}

func TestLoad_RejectsTraversal(t *testing.T) {
	for _, slug := range []string{"../etc", "a/b", "", "Upper", ".hidden"} {
		_, err := Load(t.TempDir(), slug)
		assert.Error(t, err, slug)
	}
}
