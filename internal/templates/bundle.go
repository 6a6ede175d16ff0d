// Package templates ships the built-in default CV template and loads named
// template bundles from disk.
package templates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const (
	// DefaultKey identifies the embedded bundle.
	DefaultKey = "default"

	htmlFile = "template.html"
	cssFile  = "styles.css"
)

//go:embed default/template.html default/styles.css
var defaultFS embed.FS

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Bundle is an HTML skeleton plus its stylesheet.
type Bundle struct {
	HTML string
	CSS  string
}

// Default returns the embedded bundle. The files are compiled into the
// binary, so reading them cannot fail at runtime.
func Default() Bundle {
	html, err := defaultFS.ReadFile("default/" + htmlFile)
	if err != nil {
		panic(fmt.Sprintf("templates: embedded default missing: %v", err))
	}
	css, err := defaultFS.ReadFile("default/" + cssFile)
	if err != nil {
		panic(fmt.Sprintf("templates: embedded default missing: %v", err))
	}
	return Bundle{HTML: string(html), CSS: string(css)}
}

// ValidSlug reports whether slug can name a bundle directory.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// Load reads <dir>/<slug>/template.html and <dir>/<slug>/styles.css.
func Load(dir, slug string) (Bundle, error) {
	if !ValidSlug(slug) {
		return Bundle{}, fmt.Errorf("invalid template slug %q", slug)
	}
	base := filepath.Join(dir, slug)
	html, err := os.ReadFile(filepath.Join(base, htmlFile))
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read %s: %w", htmlFile, err)
	}
	css, err := os.ReadFile(filepath.Join(base, cssFile))
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read %s: %w", cssFile, err)
	}
	return Bundle{HTML: string(html), CSS: string(css)}, nil
}
