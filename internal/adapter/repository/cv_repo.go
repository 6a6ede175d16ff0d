package repository

import (
	"context"
	"fmt"

	"cv-renderer/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

const templateJSON = `json_build_object(
	'id', t.id,
	'name', t.name,
	'slug', t.slug,
	'isActive', t.is_active,
	'metadata', t.metadata,
	'generatedHtml', coalesce(t.generated_html, ''),
	'generatedCss', coalesce(t.generated_css, ''),
	'updatedAt', t.updated_at
)`

const getCVSQL = `
SELECT json_build_object(
	'id', c.id,
	'userId', c.user_id,
	'templateId', c.template_id,
	'title', c.title,
	'language', c.language,
	'jobTargetTitle', c.job_target_title,
	'jobTargetArea', c.job_target_area,
	'contentJson', c.content_json,
	'generatedPdfUrl', c.generated_pdf_url,
	'status', c.status,
	'createdAt', c.created_at,
	'updatedAt', c.updated_at,
	'template', CASE WHEN t.id IS NULL THEN NULL ELSE ` + templateJSON + ` END
)
FROM cvs c
LEFT JOIN templates t ON t.id = c.template_id
WHERE c.id = $1 AND c.user_id = $2`

// Children are aggregated in sort_order; the document keeps that order.
const getProfileSQL = `
SELECT json_build_object(
	'id', p.id,
	'userId', u.id,
	'name', u.name,
	'email', u.email,
	'phone', p.phone,
	'location', p.location,
	'website', p.website,
	'linkedin', p.linkedin,
	'github', p.github,
	'headline', p.headline,
	'summary', p.summary,
	'experiences', (
		SELECT coalesce(json_agg(json_build_object(
			'id', e.id, 'jobTitle', e.job_title, 'company', e.company, 'location', e.location,
			'startDate', e.start_date, 'endDate', e.end_date, 'isCurrent', e.is_current,
			'description', e.description, 'achievements', e.achievements, 'skills', e.skills,
			'sortOrder', e.sort_order) ORDER BY e.sort_order), '[]')
		FROM experiences e WHERE e.profile_id = p.id),
	'educations', (
		SELECT coalesce(json_agg(json_build_object(
			'id', ed.id, 'degree', ed.degree, 'institution', ed.institution, 'fieldOfStudy', ed.field_of_study,
			'location', ed.location, 'startDate', ed.start_date, 'endDate', ed.end_date,
			'isCurrent', ed.is_current, 'grade', ed.grade, 'description', ed.description,
			'achievements', ed.achievements, 'sortOrder', ed.sort_order) ORDER BY ed.sort_order), '[]')
		FROM educations ed WHERE ed.profile_id = p.id),
	'skills', (
		SELECT coalesce(json_agg(json_build_object(
			'id', s.id, 'name', s.name, 'category', s.category, 'level', s.level,
			'yearsOfExp', s.years_of_exp, 'sortOrder', s.sort_order) ORDER BY s.sort_order), '[]')
		FROM skills s WHERE s.profile_id = p.id),
	'certifications', (
		SELECT coalesce(json_agg(json_build_object(
			'id', ce.id, 'name', ce.name, 'issuingOrg', ce.issuing_org, 'issueDate', ce.issue_date,
			'expirationDate', ce.expiration_date, 'doesNotExpire', ce.does_not_expire,
			'credentialId', ce.credential_id, 'credentialUrl', ce.credential_url,
			'sortOrder', ce.sort_order) ORDER BY ce.sort_order), '[]')
		FROM certifications ce WHERE ce.profile_id = p.id),
	'projects', (
		SELECT coalesce(json_agg(json_build_object(
			'id', pr.id, 'name', pr.name, 'description', pr.description, 'role', pr.role,
			'startDate', pr.start_date, 'endDate', pr.end_date, 'isCurrent', pr.is_current,
			'url', pr.url, 'technologies', pr.technologies, 'highlights', pr.highlights,
			'sortOrder', pr.sort_order) ORDER BY pr.sort_order), '[]')
		FROM projects pr WHERE pr.profile_id = p.id),
	'languages', (
		SELECT coalesce(json_agg(json_build_object('name', l.name, 'level', l.level) ORDER BY l.sort_order), '[]')
		FROM profile_languages l WHERE l.profile_id = p.id)
)
FROM users u
JOIN profiles p ON p.user_id = u.id
WHERE u.id = $1`

// CVRepo reads CVs and profile graphs from Postgres.
type CVRepo struct {
	db querier
}

func NewCVRepo(pool *pgxpool.Pool) *CVRepo {
	return &CVRepo{db: pool}
}

// GetCV loads a CV owned by userID together with its template, if any.
func (r *CVRepo) GetCV(ctx context.Context, userID, cvID uuid.UUID) (*domain.CV, error) {
	var cv domain.CV
	if err := queryJSON(ctx, r.db, &cv, getCVSQL, cvID, userID); err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("cv", cvID.String())
		}
		return nil, fmt.Errorf("failed to load cv %s: %w", cvID, err)
	}
	return &cv, nil
}

func (r *CVRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	if err := queryJSON(ctx, r.db, &p, getProfileSQL, userID); err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound("profile", userID.String())
		}
		return nil, fmt.Errorf("failed to load profile for %s: %w", userID, err)
	}
	return &p, nil
}

func (r *CVRepo) UpdatePDFURL(ctx context.Context, cvID uuid.UUID, url string) error {
	tag, err := r.db.Exec(ctx, `UPDATE cvs SET generated_pdf_url = $2, updated_at = now() WHERE id = $1`, cvID, url)
	if err != nil {
		return fmt.Errorf("failed to store pdf url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cv", cvID.String())
	}
	return nil
}
