package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cv-renderer/internal/domain"
	"cv-renderer/internal/model"

	"github.com/google/uuid"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// CVStore loads CVs and profiles already scoped to the requesting user.
type CVStore interface {
	GetCV(ctx context.Context, userID, cvID uuid.UUID) (*domain.CV, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	UpdatePDFURL(ctx context.Context, cvID uuid.UUID, url string) error
}

type TemplateStore interface {
	GetTemplate(ctx context.Context, id uuid.UUID) (*domain.Template, error)
}

type UploadSink interface {
	Upload(ctx context.Context, userID, cvID uuid.UUID, pdf []byte) (string, error)
}

type PageCounter interface {
	PageCount(pdf []byte) (int, error)
}

// TemplateCache holds resolved definitions by template id.
type TemplateCache interface {
	Get(ctx context.Context, key string) (*model.TemplateDefinition, bool)
	Set(ctx context.Context, key string, def *model.TemplateDefinition)
	Invalidate(ctx context.Context, key string) error
}

// ContentOverrides is the AI-improved content stored on the CV. Values
// present here win over the profile.
type ContentOverrides struct {
	PersonalInfo   PersonalInfo           `json:"personalInfo"`
	Summary        string                 `json:"summary"`
	Experiences    []domain.Experience    `json:"experiences"`
	Educations     []domain.Education     `json:"educations"`
	Skills         []ContentSkill         `json:"skills"`
	Projects       []domain.Project       `json:"projects"`
	Certifications []domain.Certification `json:"certifications"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
}

// ContentSkill accepts either a bare skill name or a skill object.
type ContentSkill struct {
	Name     string
	Category string
	Level    int
}

func (s *ContentSkill) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		s.Name = strings.TrimSpace(name)
		return nil
	}
	var obj struct {
		Name     string  `json:"name"`
		Category *string `json:"category"`
		Level    *int    `json:"level"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("skill must be a string or an object: %w", err)
	}
	s.Name = strings.TrimSpace(obj.Name)
	if obj.Category != nil {
		s.Category = *obj.Category
	}
	if obj.Level != nil {
		s.Level = *obj.Level
	}
	return nil
}

// ParseContent decodes the CV content column. Empty input gives empty
// overrides.
func ParseContent(raw json.RawMessage) (*ContentOverrides, error) {
	out := &ContentOverrides{}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ContentOverrides{}, err
	}
	return out, nil
}
