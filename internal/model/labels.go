package model

import "strings"

// Labels holds the fixed strings a template prints around the data.
type Labels struct {
	Summary        string `json:"summary"`
	Experience     string `json:"experience"`
	Education      string `json:"education"`
	Skills         string `json:"skills"`
	Certifications string `json:"certifications"`
	Projects       string `json:"projects"`
	Languages      string `json:"languages"`
	Grade          string `json:"grade"`
	Current        string `json:"current"`
	NoExpiry       string `json:"noExpiry"`
}

var labelSets = map[string]Labels{
	"pt": {
		Summary:        "Sobre Mim",
		Experience:     "Experiência Profissional",
		Education:      "Formação Académica",
		Skills:         "Competências",
		Certifications: "Certificações",
		Projects:       "Projetos",
		Languages:      "Idiomas",
		Grade:          "Nota",
		Current:        "Atual",
		NoExpiry:       "Sem expiração",
	},
	"en": {
		Summary:        "About Me",
		Experience:     "Professional Experience",
		Education:      "Education",
		Skills:         "Skills",
		Certifications: "Certifications",
		Projects:       "Projects",
		Languages:      "Languages",
		Grade:          "Grade",
		Current:        "Current",
		NoExpiry:       "No expiration",
	},
}

// LabelsFor returns the label set for a CV language code such as "PT",
// "pt-PT" or "EN". Unknown languages get the Portuguese set.
func LabelsFor(language string) Labels {
	code := strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if l, ok := labelSets[code]; ok {
		return l
	}
	return labelSets["pt"]
}
