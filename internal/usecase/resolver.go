package usecase

import (
	"context"
	"log/slog"
	"strings"

	"cv-renderer/internal/domain"
	"cv-renderer/internal/model"
	"cv-renderer/internal/templates"
)

// Resolver picks the template definition for a CV. Resolution never fails:
// anything unusable falls through to the embedded default.
type Resolver struct {
	templatesDir string
	cache        TemplateCache
	logger       *slog.Logger
}

// NewResolver builds a resolver reading bundles from templatesDir. cache may
// be nil.
func NewResolver(templatesDir string, cache TemplateCache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{templatesDir: templatesDir, cache: cache, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, tpl *domain.Template) *model.TemplateDefinition {
	if tpl == nil {
		return DefaultDefinition()
	}
	key := tpl.ID.String()

	if r.cache != nil {
		if def, ok := r.cache.Get(ctx, key); ok {
			return def
		}
	}

	def := r.lookup(tpl)
	if def == nil {
		r.logger.Info("template has no usable source, using default", "template_id", key, "slug", tpl.Slug)
		return DefaultDefinition()
	}
	if r.cache != nil {
		r.cache.Set(ctx, key, def)
	}
	return def
}

// Invalidate drops a cached definition so the next Resolve reloads it.
func (r *Resolver) Invalidate(ctx context.Context, templateID string) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Invalidate(ctx, templateID)
}

func (r *Resolver) lookup(tpl *domain.Template) *model.TemplateDefinition {
	key := tpl.ID.String()

	md, err := model.ParseMetadata(tpl.Metadata)
	if err != nil {
		r.logger.Warn("ignoring template metadata", "template_id", key, "error", err)
		md = model.TemplateMetadata{}
	}

	// Generated and metadata sources are used only when both html and css are set.
	if complete(tpl.GeneratedHTML, tpl.GeneratedCSS) {
		return &model.TemplateDefinition{
			Key:      key,
			HTML:     tpl.GeneratedHTML,
			CSS:      tpl.GeneratedCSS,
			Metadata: md,
			Source:   model.SourceGenerated,
		}
	}

	if complete(md.HTML, md.CSS) {
		return &model.TemplateDefinition{
			Key:      key,
			HTML:     md.HTML,
			CSS:      md.CSS,
			Metadata: md,
			Source:   model.SourceMetadata,
		}
	}

	if tpl.Slug != "" && r.templatesDir != "" {
		b, err := templates.Load(r.templatesDir, tpl.Slug)
		if err == nil {
			return &model.TemplateDefinition{
				Key:      key,
				HTML:     b.HTML,
				CSS:      b.CSS,
				Metadata: md,
				Source:   model.SourceBundle,
			}
		}
		r.logger.Debug("template bundle not loaded", "slug", tpl.Slug, "error", err)
	}
	return nil
}

func complete(html, css string) bool {
	return strings.TrimSpace(html) != "" && strings.TrimSpace(css) != ""
}
