package model

// Go models that templates are executed against. Every field is always
// populated: strings default to "", slices and maps are never nil.

type Experience struct {
	JobTitle     string   `json:"jobTitle"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Skills       []string `json:"skills"`
}

type Education struct {
	Degree       string   `json:"degree"`
	Institution  string   `json:"institution"`
	FieldOfStudy string   `json:"fieldOfStudy"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Grade        string   `json:"grade"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

type Skill struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Level      int    `json:"level"`
	YearsOfExp int    `json:"yearsOfExp"`
}

type Certification struct {
	Name           string `json:"name"`
	IssuingOrg     string `json:"issuingOrg"`
	IssueDate      string `json:"issueDate"`
	ExpirationDate string `json:"expirationDate"`
	CredentialID   string `json:"credentialId"`
	CredentialURL  string `json:"credentialUrl"`
	URLLabel       string `json:"urlLabel"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Role         string   `json:"role"`
	URL          string   `json:"url"`
	URLLabel     string   `json:"urlLabel"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Technologies []string `json:"technologies"`
	Highlights   []string `json:"highlights"`
}

type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// CVDocument is the render-ready projection of a CV and its owner's profile.
type CVDocument struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`

	Headline string `json:"headline"`
	Summary  string `json:"summary"`

	Title          string `json:"title"`
	Language       string `json:"language"`
	JobTargetTitle string `json:"jobTargetTitle"`
	JobTargetArea  string `json:"jobTargetArea"`

	Experiences    []Experience    `json:"experiences"`
	Educations     []Education     `json:"educations"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Languages      []Language      `json:"languages"`

	TemplateColors map[string]string `json:"templateColors"`
	TemplateFonts  map[string]string `json:"templateFonts"`

	Labels Labels `json:"labels"`
}

const (
	DefaultTitle    = "Curriculum Vitae"
	DefaultLanguage = "PT"
)

// DefaultColors and DefaultFonts apply when the template metadata does not
// override a key.
func DefaultColors() map[string]string {
	return map[string]string{
		"primary":    "#2563eb",
		"text":       "#1e293b",
		"background": "#ffffff",
	}
}

func DefaultFonts() map[string]string {
	return map[string]string{
		"body":    "Arial, sans-serif",
		"heading": "Arial, sans-serif",
	}
}

// NewCVDocument returns a document with every sequence and map initialised.
func NewCVDocument() *CVDocument {
	return &CVDocument{
		Title:          DefaultTitle,
		Language:       DefaultLanguage,
		Experiences:    []Experience{},
		Educations:     []Education{},
		Skills:         []Skill{},
		Certifications: []Certification{},
		Projects:       []Project{},
		Languages:      []Language{},
		TemplateColors: DefaultColors(),
		TemplateFonts:  DefaultFonts(),
		Labels:         LabelsFor(DefaultLanguage),
	}
}

// TemplateSource records which resolution step produced a definition.
type TemplateSource string

const (
	SourceGenerated TemplateSource = "generated"
	SourceMetadata  TemplateSource = "metadata"
	SourceBundle    TemplateSource = "bundle"
	SourceDefault   TemplateSource = "default"
)

// TemplateMetadata is the validated shape of the templates.metadata column.
type TemplateMetadata struct {
	HTML   string            `json:"html,omitempty"`
	CSS    string            `json:"css,omitempty"`
	Colors map[string]string `json:"colors,omitempty"`
	Fonts  map[string]string `json:"fonts,omitempty"`
}

// TemplateDefinition is one resolved, read-only template.
type TemplateDefinition struct {
	Key      string           `json:"key"`
	HTML     string           `json:"html"`
	CSS      string           `json:"css"`
	Metadata TemplateMetadata `json:"metadata"`
	Source   TemplateSource   `json:"source"`
}

// RenderedArtifact is the produced PDF. The pipeline owns PDF until it is
// handed to the upload sink.
type RenderedArtifact struct {
	PDF            []byte
	Filename       string
	PageCount      int
	TemplateSource TemplateSource
}
