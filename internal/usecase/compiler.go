package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"cv-renderer/internal/domain"
	"cv-renderer/internal/model"
	"cv-renderer/internal/templates"
)

// pageShell wraps the compiled template body. Style is assembled from
// validated metadata and trusted template CSS.
var pageShell = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Lang  string
	Title string
	Style template.CSS
	Body  template.HTML
}

// Compiler binds a CVDocument into a template definition and produces one
// self-contained HTML document.
type Compiler struct {
	helpers *HelperRegistry
	logger  *slog.Logger
}

func NewCompiler(helpers *HelperRegistry, logger *slog.Logger) *Compiler {
	if helpers == nil {
		helpers = NewHelperRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{helpers: helpers, logger: logger}
}

// Compile returns a *domain.TemplateError when the template cannot be
// parsed or executed against doc.
func (c *Compiler) Compile(doc *model.CVDocument, def *model.TemplateDefinition) (string, error) {
	if doc == nil || def == nil {
		return "", &domain.TemplateError{Message: "nothing to compile"}
	}
	if strings.TrimSpace(def.HTML) == "" {
		return "", &domain.TemplateError{Template: def.Key, Message: "empty html"}
	}

	tpl, err := template.New(def.Key).
		Option("missingkey=zero").
		Funcs(c.helpers.FuncMap()).
		Parse(def.HTML)
	if err != nil {
		return "", &domain.TemplateError{Template: def.Key, Message: "failed to parse template", Cause: err}
	}

	var body bytes.Buffer
	if err := tpl.Execute(&body, doc); err != nil {
		return "", &domain.TemplateError{Template: def.Key, Message: "failed to execute template", Cause: err}
	}

	var out bytes.Buffer
	err = pageShell.Execute(&out, pageData{
		Lang:  strings.ToLower(firstNonEmpty(doc.Language, model.DefaultLanguage)),
		Title: firstNonEmpty(doc.Title, model.DefaultTitle),
		Style: template.CSS(buildStyle(doc, def.CSS)),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", &domain.TemplateError{Template: def.Key, Message: "failed to assemble page", Cause: err}
	}
	return out.String(), nil
}

// CompileWithFallback compiles with def and, if that fails, with the
// embedded default. The returned definition is the one actually used;
// degraded is true when the fallback kicked in.
func (c *Compiler) CompileWithFallback(doc *model.CVDocument, def *model.TemplateDefinition) (html string, used *model.TemplateDefinition, degraded bool, err error) {
	html, err = c.Compile(doc, def)
	if err == nil {
		return html, def, false, nil
	}
	if def != nil && def.Source == model.SourceDefault {
		return "", def, false, err
	}
	c.logger.Warn("template compile degraded, falling back to default", "error", err)

	fallback := DefaultDefinition()
	html, err = c.Compile(doc, fallback)
	if err != nil {
		return "", fallback, true, err
	}
	return html, fallback, true, nil
}

// DefaultDefinition returns the embedded default template.
func DefaultDefinition() *model.TemplateDefinition {
	b := templates.Default()
	return &model.TemplateDefinition{
		Key:    templates.DefaultKey,
		HTML:   b.HTML,
		CSS:    b.CSS,
		Source: model.SourceDefault,
	}
}

func buildStyle(doc *model.CVDocument, templateCSS string) string {
	var sb strings.Builder
	sb.WriteString(`
* {
  margin: 0;
  padding: 0;
  box-sizing: border-box;
}

body {
`)
	fmt.Fprintf(&sb, "  font-family: %s;\n", styleValue(doc.TemplateFonts, "body", "Arial, sans-serif"))
	sb.WriteString("  font-size: 11pt;\n  line-height: 1.5;\n")
	fmt.Fprintf(&sb, "  color: %s;\n", styleValue(doc.TemplateColors, "text", "#1e293b"))
	fmt.Fprintf(&sb, "  background: %s;\n", styleValue(doc.TemplateColors, "background", "#ffffff"))
	sb.WriteString("}\n\n")
	fmt.Fprintf(&sb, "h1, h2, h3, h4 {\n  font-family: %s;\n}\n\n", styleValue(doc.TemplateFonts, "heading", "Arial, sans-serif"))
	fmt.Fprintf(&sb, ":root {\n  --cv-primary: %s;\n}\n\n", styleValue(doc.TemplateColors, "primary", "#2563eb"))

	sb.WriteString(templateCSS)

	sb.WriteString(`

.item {
  page-break-inside: avoid;
  break-inside: avoid;
}

@media print {
  body {
    -webkit-print-color-adjust: exact;
    print-color-adjust: exact;
  }
}
`)
	// A template stylesheet must not be able to close the style element.
	return strings.ReplaceAll(sb.String(), "</", `<\/`)
}

func styleValue(m map[string]string, key, fallback string) string {
	if v := strings.TrimSpace(m[key]); v != "" {
		return v
	}
	return fallback
}
