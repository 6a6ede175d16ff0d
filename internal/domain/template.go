package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Template is a stored template row. Metadata is the raw JSONB column and
// may carry html, css, colors and fonts.
type Template struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	IsActive      bool            `json:"isActive"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	GeneratedHTML string          `json:"generatedHtml,omitempty"`
	GeneratedCSS  string          `json:"generatedCss,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
