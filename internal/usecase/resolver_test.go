package usecase

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cv-renderer/internal/domain"
	"cv-renderer/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBundle(t *testing.T, dir, slug, html, css string) {
	t.Helper()
	base := filepath.Join(dir, slug)
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "template.html"), []byte(html), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "styles.css"), []byte(css), 0o644))
}

func TestResolver_Order(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "modern", "<p>bundle</p>", ".b{}")
	ctx := context.Background()
	r := NewResolver(dir, nil, nil)

	t.Run("nil template", func(t *testing.T) {
		assert.Equal(t, model.SourceDefault, r.Resolve(ctx, nil).Source)
	})

	t.Run("generated wins", func(t *testing.T) {
		def := r.Resolve(ctx, &domain.Template{
			ID:            uuid.New(),
			Slug:          "modern",
			GeneratedHTML: "<p>generated</p>",
			GeneratedCSS:  ".g{}",
			Metadata:      json.RawMessage(`{"html":"<p>meta</p>"}`),
		})
		assert.Equal(t, model.SourceGenerated, def.Source)
		assert.Equal(t, "<p>generated</p>", def.HTML)
		assert.Equal(t, ".g{}", def.CSS)
	})

	t.Run("metadata before bundle", func(t *testing.T) {
		def := r.Resolve(ctx, &domain.Template{
			ID:       uuid.New(),
			Slug:     "modern",
			Metadata: json.RawMessage(`{"html":"<p>meta</p>","css":".m{}","colors":{"primary":"#000"}}`),
		})
		assert.Equal(t, model.SourceMetadata, def.Source)
		assert.Equal(t, ".m{}", def.CSS)
		assert.Equal(t, "#000", def.Metadata.Colors["primary"])
	})

	t.Run("generated html without css is skipped", func(t *testing.T) {
		def := r.Resolve(ctx, &domain.Template{
			ID:            uuid.New(),
			Slug:          "modern",
			GeneratedHTML: "<p>generated</p>",
			Metadata:      json.RawMessage(`{"html":"<p>meta</p>","css":".m{}"}`),
		})
		assert.Equal(t, model.SourceMetadata, def.Source)
	})

	t.Run("metadata html without css is skipped", func(t *testing.T) {
		def := r.Resolve(ctx, &domain.Template{
			ID:       uuid.New(),
			Slug:     "modern",
			Metadata: json.RawMessage(`{"html":"<p>meta</p>"}`),
		})
		assert.Equal(t, model.SourceBundle, def.Source)
		assert.Equal(t, "<p>bundle</p>", def.HTML)
	})

	t.Run("bundle by slug", func(t *testing.T) {
		def := r.Resolve(ctx, &domain.Template{ID: uuid.New(), Slug: "modern"})
		assert.Equal(t, model.SourceBundle, def.Source)
		assert.Equal(t, "<p>bundle</p>", def.HTML)
	})

	t.Run("unknown slug falls back", func(t *testing.T) {
		def := r.Resolve(ctx, &domain.Template{ID: uuid.New(), Slug: "missing"})
		assert.Equal(t, model.SourceDefault, def.Source)
	})

	t.Run("traversal slug rejected", func(t *testing.T) {
		def := r.Resolve(ctx, &domain.Template{ID: uuid.New(), Slug: "../modern"})
		assert.Equal(t, model.SourceDefault, def.Source)
	})

	t.Run("invalid metadata is ignored", func(t *testing.T) {
		def := r.Resolve(ctx, &domain.Template{
			ID:       uuid.New(),
			Slug:     "modern",
			Metadata: json.RawMessage(`{"html": 42}`),
		})
		assert.Equal(t, model.SourceBundle, def.Source)
	})
}

func TestResolver_CacheAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "classic", "<p>v1</p>", "")
	ctx := context.Background()
	cache := NewMemoryCache()
	r := NewResolver(dir, cache, nil)

	tpl := &domain.Template{ID: uuid.New(), Slug: "classic"}
	assert.Equal(t, "<p>v1</p>", r.Resolve(ctx, tpl).HTML)
	assert.Equal(t, 1, cache.Len())

	writeBundle(t, dir, "classic", "<p>v2</p>", "")
	assert.Equal(t, "<p>v1</p>", r.Resolve(ctx, tpl).HTML)

	require.NoError(t, r.Invalidate(ctx, tpl.ID.String()))
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, "<p>v2</p>", r.Resolve(ctx, tpl).HTML)
}

func TestResolver_DefaultNotCached(t *testing.T) {
	cache := NewMemoryCache()
	r := NewResolver(t.TempDir(), cache, nil)
	def := r.Resolve(context.Background(), &domain.Template{ID: uuid.New(), Slug: "nothing"})
	assert.Equal(t, model.SourceDefault, def.Source)
	assert.Equal(t, 0, cache.Len())
}

func TestResolver_InvalidateWithoutCache(t *testing.T) {
	r := NewResolver("", nil, nil)
	assert.NoError(t, r.Invalidate(context.Background(), uuid.NewString()))
}
