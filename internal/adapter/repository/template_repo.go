package repository

import (
	"context"
	"fmt"

	"cv-renderer/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type TemplateRepo struct {
	db querier
}

func NewTemplateRepo(pool *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{db: pool}
}

func (r *TemplateRepo) GetTemplate(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	var t domain.Template
	err := queryJSON(ctx, r.db, &t, `SELECT `+templateJSON+` FROM templates t WHERE t.id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("template", id.String())
		}
		return nil, fmt.Errorf("failed to load template %s: %w", id, err)
	}
	return &t, nil
}

// Upsert inserts a template or replaces the stored one with the same id.
func (r *TemplateRepo) Upsert(ctx context.Context, t *domain.Template) error {
	var metadata interface{}
	if len(t.Metadata) > 0 {
		metadata = string(t.Metadata)
	}
	_, err := r.db.Exec(ctx, `INSERT INTO templates (id, name, slug, is_active, metadata, generated_html, generated_css, updated_at)
		VALUES ($1,$2,$3,$4,$5::jsonb,$6,$7,now())
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, slug = EXCLUDED.slug, is_active = EXCLUDED.is_active, metadata = EXCLUDED.metadata, generated_html = EXCLUDED.generated_html, generated_css = EXCLUDED.generated_css, updated_at = EXCLUDED.updated_at`,
		t.ID, t.Name, t.Slug, t.IsActive, metadata, t.GeneratedHTML, t.GeneratedCSS)
	return err
}
