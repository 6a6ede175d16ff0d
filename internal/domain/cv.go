package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CV struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	TemplateID      *uuid.UUID      `json:"templateId,omitempty"`
	Title           string          `json:"title"`
	Language        string          `json:"language"`
	JobTargetTitle  string          `json:"jobTargetTitle"`
	JobTargetArea   string          `json:"jobTargetArea"`
	Content         json.RawMessage `json:"contentJson,omitempty"`
	GeneratedPDFURL *string         `json:"generatedPdfUrl,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Template        *Template       `json:"template,omitempty"`
}

// Profile is the owner's profile graph. Name and Email come from the users
// table; child slices are expected in sort_order.
type Profile struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          *string         `json:"phone"`
	Location       *string         `json:"location"`
	Website        *string         `json:"website"`
	LinkedIn       *string         `json:"linkedin"`
	GitHub         *string         `json:"github"`
	Headline       *string         `json:"headline"`
	Summary        *string         `json:"summary"`
	Experiences    []Experience    `json:"experiences"`
	Educations     []Education     `json:"educations"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Languages      []Language      `json:"languages"`
}

type Experience struct {
	ID           uuid.UUID `json:"id"`
	JobTitle     string    `json:"jobTitle"`
	Company      string    `json:"company"`
	Location     *string   `json:"location"`
	StartDate    *string   `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	IsCurrent    bool      `json:"isCurrent"`
	Description  *string   `json:"description"`
	Achievements []string  `json:"achievements"`
	Skills       []string  `json:"skills"`
	SortOrder    int       `json:"sortOrder"`
}

type Education struct {
	ID           uuid.UUID `json:"id"`
	Degree       string    `json:"degree"`
	Institution  string    `json:"institution"`
	FieldOfStudy *string   `json:"fieldOfStudy"`
	Location     *string   `json:"location"`
	StartDate    *string   `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	IsCurrent    bool      `json:"isCurrent"`
	Grade        *string   `json:"grade"`
	Description  *string   `json:"description"`
	Achievements []string  `json:"achievements"`
	SortOrder    int       `json:"sortOrder"`
}

type Skill struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   *string   `json:"category"`
	Level      *int      `json:"level"`
	YearsOfExp *int      `json:"yearsOfExp"`
	SortOrder  int       `json:"sortOrder"`
}

type Certification struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	IssuingOrg     *string   `json:"issuingOrg"`
	IssueDate      *string   `json:"issueDate"`
	ExpirationDate *string   `json:"expirationDate"`
	DoesNotExpire  bool      `json:"doesNotExpire"`
	CredentialID   *string   `json:"credentialId"`
	CredentialURL  *string   `json:"credentialUrl"`
	SortOrder      int       `json:"sortOrder"`
}

type Project struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Role         *string   `json:"role"`
	StartDate    *string   `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	IsCurrent    bool      `json:"isCurrent"`
	URL          *string   `json:"url"`
	Technologies []string  `json:"technologies"`
	Highlights   []string  `json:"highlights"`
	SortOrder    int       `json:"sortOrder"`
}

type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}
