package usecase

import (
	"log/slog"
	"net/url"
	"strings"

	"cv-renderer/internal/domain"
	"cv-renderer/internal/model"

	"golang.org/x/net/publicsuffix"
)

// Aggregator builds the render-ready CVDocument from a CV and its owner's
// profile graph.
type Aggregator struct {
	defaultLanguage string
	logger          *slog.Logger
}

func NewAggregator(defaultLanguage string, logger *slog.Logger) *Aggregator {
	if defaultLanguage == "" {
		defaultLanguage = model.DefaultLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{defaultLanguage: defaultLanguage, logger: logger}
}

// Build never fails on partial data. Only a missing CV or profile is an
// error, reported as domain.ErrNotFound. Style overrides come from the CV's
// own template.
func (a *Aggregator) Build(cv *domain.CV, profile *domain.Profile) (*model.CVDocument, error) {
	if cv == nil {
		return nil, domain.NotFound("cv", "")
	}
	return a.BuildWithTemplate(cv, profile, cv.Template)
}

// BuildWithTemplate is Build with style overrides taken from tpl, the
// template the document is rendered with. A nil tpl keeps the defaults.
func (a *Aggregator) BuildWithTemplate(cv *domain.CV, profile *domain.Profile, tpl *domain.Template) (*model.CVDocument, error) {
	if cv == nil {
		return nil, domain.NotFound("cv", "")
	}
	if profile == nil {
		return nil, domain.NotFound("profile", cv.UserID.String())
	}

	content, err := ParseContent(cv.Content)
	if err != nil {
		a.logger.Warn("ignoring unparseable cv content", "cv_id", cv.ID, "error", err)
	}

	doc := model.NewCVDocument()
	doc.Language = firstNonEmpty(cv.Language, a.defaultLanguage)
	doc.Labels = model.LabelsFor(doc.Language)
	doc.Title = firstNonEmpty(cv.Title, model.DefaultTitle)
	doc.JobTargetTitle = cv.JobTargetTitle
	doc.JobTargetArea = cv.JobTargetArea

	pi := content.PersonalInfo
	doc.Name = firstNonEmpty(pi.Name, profile.Name)
	doc.Email = firstNonEmpty(pi.Email, profile.Email)
	doc.Phone = firstNonEmpty(pi.Phone, deref(profile.Phone))
	doc.Location = firstNonEmpty(pi.Location, deref(profile.Location))
	doc.Website = firstNonEmpty(pi.Website, deref(profile.Website))
	doc.LinkedIn = firstNonEmpty(pi.LinkedIn, deref(profile.LinkedIn))
	doc.GitHub = firstNonEmpty(pi.GitHub, deref(profile.GitHub))
	doc.Headline = deref(profile.Headline)
	doc.Summary = firstNonEmpty(content.Summary, deref(profile.Summary))

	experiences := profile.Experiences
	if len(content.Experiences) > 0 {
		experiences = content.Experiences
	}
	for _, e := range experiences {
		doc.Experiences = append(doc.Experiences, model.Experience{
			JobTitle:     e.JobTitle,
			Company:      e.Company,
			Location:     deref(e.Location),
			StartDate:    formatDatePtr(e.StartDate),
			EndDate:      endLabel(e.IsCurrent, doc.Labels.Current, e.EndDate),
			Description:  deref(e.Description),
			Achievements: strings0(e.Achievements),
			Skills:       strings0(e.Skills),
		})
	}

	educations := profile.Educations
	if len(content.Educations) > 0 {
		educations = content.Educations
	}
	for _, e := range educations {
		doc.Educations = append(doc.Educations, model.Education{
			Degree:       e.Degree,
			Institution:  e.Institution,
			FieldOfStudy: deref(e.FieldOfStudy),
			Location:     deref(e.Location),
			StartDate:    formatDatePtr(e.StartDate),
			EndDate:      endLabel(e.IsCurrent, doc.Labels.Current, e.EndDate),
			Grade:        deref(e.Grade),
			Description:  deref(e.Description),
			Achievements: strings0(e.Achievements),
		})
	}

	if len(content.Skills) > 0 {
		for _, s := range content.Skills {
			doc.Skills = append(doc.Skills, model.Skill{Name: s.Name, Category: s.Category, Level: s.Level})
		}
	} else {
		for _, s := range profile.Skills {
			doc.Skills = append(doc.Skills, model.Skill{
				Name:       s.Name,
				Category:   deref(s.Category),
				Level:      derefInt(s.Level),
				YearsOfExp: derefInt(s.YearsOfExp),
			})
		}
	}

	certifications := profile.Certifications
	if len(content.Certifications) > 0 {
		certifications = content.Certifications
	}
	for _, c := range certifications {
		issuer := deref(c.IssuingOrg)
		credURL := deref(c.CredentialURL)
		doc.Certifications = append(doc.Certifications, model.Certification{
			Name:           c.Name,
			IssuingOrg:     issuer,
			IssueDate:      formatDatePtr(c.IssueDate),
			ExpirationDate: endLabel(c.DoesNotExpire, doc.Labels.NoExpiry, c.ExpirationDate),
			CredentialID:   deref(c.CredentialID),
			CredentialURL:  credURL,
			URLLabel:       urlLabel(credURL, issuer),
		})
	}

	projects := profile.Projects
	if len(content.Projects) > 0 {
		projects = content.Projects
	}
	for _, p := range projects {
		projURL := deref(p.URL)
		doc.Projects = append(doc.Projects, model.Project{
			Name:         p.Name,
			Description:  deref(p.Description),
			Role:         deref(p.Role),
			URL:          projURL,
			URLLabel:     urlLabel(projURL, ""),
			StartDate:    formatDatePtr(p.StartDate),
			EndDate:      endLabel(p.IsCurrent, doc.Labels.Current, p.EndDate),
			Technologies: strings0(p.Technologies),
			Highlights:   strings0(p.Highlights),
		})
	}

	for _, l := range profile.Languages {
		if strings.TrimSpace(l.Name) == "" {
			continue
		}
		doc.Languages = append(doc.Languages, model.Language{Name: l.Name, Level: l.Level})
	}

	a.applyTemplateStyle(doc, tpl)
	return doc, nil
}

// applyTemplateStyle merges the template's colours and fonts over the
// defaults. Invalid metadata is ignored.
func (a *Aggregator) applyTemplateStyle(doc *model.CVDocument, tpl *domain.Template) {
	if tpl == nil {
		return
	}
	md, err := model.ParseMetadata(tpl.Metadata)
	if err != nil {
		a.logger.Warn("ignoring template metadata", "template_id", tpl.ID, "error", err)
		return
	}
	for k, v := range md.Colors {
		doc.TemplateColors[k] = v
	}
	for k, v := range md.Fonts {
		doc.TemplateFonts[k] = v
	}
}

// urlLabel produces a short display label for a link: the registrable
// domain when possible, else the host, else the fallback, else "link".
func urlLabel(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	if parsed, err := url.Parse(candidate); err == nil && parsed.Hostname() != "" {
		host := parsed.Hostname()
		if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
			return strings.TrimPrefix(etld, "www.")
		}
		return strings.TrimPrefix(host, "www.")
	}
	if fallback != "" {
		return fallback
	}
	return "link"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func strings0(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
