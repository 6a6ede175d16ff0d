package domain

import (
	"encoding/json"
	"fmt"
	"os"
)

// Fixture is an offline render input: a CV, its owner's profile and an
// optional template, as stored.
type Fixture struct {
	CV       *CV       `json:"cv"`
	Profile  *Profile  `json:"profile"`
	Template *Template `json:"template,omitempty"`
}

func LoadFixture(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	if f.CV == nil {
		f.CV = &CV{}
	}
	if f.Profile == nil {
		return nil, fmt.Errorf("fixture %s has no profile", path)
	}
	return &f, nil
}
