package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"cv-renderer/internal/domain"
	"cv-renderer/internal/model"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// GenerateResult is what Generate hands back to transports. UploadErr is
// set when the PDF was produced but could not be stored; URL is then empty.
type GenerateResult struct {
	Artifact  *model.RenderedArtifact
	URL       string
	UploadErr error
}

// Processor runs the render pipeline: aggregate, resolve, compile, render.
type Processor struct {
	renderer   Renderer
	cvs        CVStore
	templates  TemplateStore
	uploader   UploadSink
	pages      PageCounter
	aggregator *Aggregator
	resolver   *Resolver
	compiler   *Compiler
	logger     *slog.Logger

	attempts int
	backoff  time.Duration
}

type ProcessorOption func(*Processor)

func WithUploader(u UploadSink) ProcessorOption {
	return func(p *Processor) { p.uploader = u }
}

func WithPageCounter(c PageCounter) ProcessorOption {
	return func(p *Processor) { p.pages = c }
}

func WithAggregator(a *Aggregator) ProcessorOption {
	return func(p *Processor) { p.aggregator = a }
}

func WithResolver(r *Resolver) ProcessorOption {
	return func(p *Processor) { p.resolver = r }
}

func WithCompiler(c *Compiler) ProcessorOption {
	return func(p *Processor) { p.compiler = c }
}

func WithLogger(l *slog.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = l }
}

// WithRetry makes render failures retry up to attempts times in total, with
// backoff doubled after every failure. Without it a render is attempted once
// and a failure goes straight back to the caller.
func WithRetry(attempts int, backoff time.Duration) ProcessorOption {
	return func(p *Processor) {
		if attempts > 0 {
			p.attempts = attempts
		}
		p.backoff = backoff
	}
}

// NewProcessor wires the pipeline. cvs and templates may be nil when only
// RenderCV is used.
func NewProcessor(r Renderer, cvs CVStore, templates TemplateStore, opts ...ProcessorOption) *Processor {
	p := &Processor{
		renderer:  r,
		cvs:       cvs,
		templates: templates,
		attempts:  1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.aggregator == nil {
		p.aggregator = NewAggregator("", p.logger)
	}
	if p.resolver == nil {
		p.resolver = NewResolver("", nil, p.logger)
	}
	if p.compiler == nil {
		p.compiler = NewCompiler(NewHelperRegistry(), p.logger)
	}
	return p
}

// BuildHTML runs every stage up to, but excluding, the browser.
func (p *Processor) BuildHTML(ctx context.Context, cv *domain.CV, profile *domain.Profile, tpl *domain.Template) (string, model.TemplateSource, error) {
	if tpl == nil && cv != nil {
		tpl = cv.Template
	}
	doc, err := p.aggregator.BuildWithTemplate(cv, profile, tpl)
	if err != nil {
		return "", "", err
	}
	def := p.resolver.Resolve(ctx, tpl)

	html, used, degraded, err := p.compiler.CompileWithFallback(doc, def)
	if err != nil {
		return "", "", err
	}
	if degraded {
		p.logger.Warn("rendered with default template", "cv_id", cv.ID, "requested_source", def.Source)
	}
	return html, used.Source, nil
}

// RenderCV turns a CV, its owner's profile and an optional template into a
// PDF. It never returns a partial document.
func (p *Processor) RenderCV(ctx context.Context, cv *domain.CV, profile *domain.Profile, tpl *domain.Template) (*model.RenderedArtifact, error) {
	start := time.Now()

	html, source, err := p.BuildHTML(ctx, cv, profile, tpl)
	if err != nil {
		return nil, err
	}

	pdf, err := p.render(ctx, html)
	if err != nil {
		return nil, err
	}

	art := &model.RenderedArtifact{
		PDF:            pdf,
		Filename:       Filename(cv.Title),
		TemplateSource: source,
	}
	if p.pages != nil {
		if n, err := p.pages.PageCount(pdf); err != nil {
			p.logger.Warn("could not count pdf pages", "cv_id", cv.ID, "error", err)
		} else {
			art.PageCount = n
		}
	}

	p.logger.Info("cv rendered",
		"cv_id", cv.ID,
		"template_source", source,
		"bytes", len(pdf),
		"pages", art.PageCount,
		"duration", time.Since(start))
	return art, nil
}

// render runs the browser once, or up to p.attempts times when WithRetry is
// set. Busy and cancelled renders are returned immediately.
func (p *Processor) render(ctx context.Context, html string) ([]byte, error) {
	var lastErr error
	for i := 0; i < p.attempts; i++ {
		pdf, err := p.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil && !bytes.HasPrefix(pdf, []byte("%PDF")) {
			err = &domain.RenderError{Stage: domain.StagePrint, Cause: fmt.Errorf("invalid PDF output (len=%d)", len(pdf))}
		}
		if err == nil {
			return pdf, nil
		}
		lastErr = err

		var renderErr *domain.RenderError
		if !errors.As(err, &renderErr) || ctx.Err() != nil {
			return nil, err
		}
		p.logger.Warn("render attempt failed", "attempt", i+1, "stage", renderErr.Stage, "error", err)

		if i < p.attempts-1 {
			select {
			case <-time.After(p.backoff * time.Duration(1<<i)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// Generate renders a stored CV for its owner, uploads the PDF when an
// upload sink is configured and records the resulting URL.
func (p *Processor) Generate(ctx context.Context, userID, cvID uuid.UUID, templateOverride *uuid.UUID) (*GenerateResult, error) {
	if p.cvs == nil {
		return nil, errors.New("processor has no cv store")
	}
	cv, err := p.cvs.GetCV(ctx, userID, cvID)
	if err != nil {
		return nil, err
	}
	profile, err := p.cvs.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	tpl := p.loadTemplate(ctx, cv, templateOverride)
	art, err := p.RenderCV(ctx, cv, profile, tpl)
	if err != nil {
		return nil, err
	}

	res := &GenerateResult{Artifact: art}
	if p.uploader == nil {
		return res, nil
	}

	url, err := p.uploader.Upload(ctx, userID, cvID, art.PDF)
	if err != nil {
		var uploadErr *domain.UploadError
		if !errors.As(err, &uploadErr) {
			err = &domain.UploadError{Key: cvID.String(), Cause: err}
		}
		p.logger.Warn("pdf upload failed", "cv_id", cvID, "error", err)
		res.UploadErr = err
		return res, nil
	}
	if err := p.cvs.UpdatePDFURL(ctx, cvID, url); err != nil {
		p.logger.Warn("failed to store pdf url", "cv_id", cvID, "error", err)
		res.UploadErr = &domain.UploadError{Key: url, Cause: err}
		return res, nil
	}
	res.URL = url
	return res, nil
}

// loadTemplate returns the override template, the CV's own template or nil.
// Lookup failures fall back to the default template.
func (p *Processor) loadTemplate(ctx context.Context, cv *domain.CV, override *uuid.UUID) *domain.Template {
	id := cv.TemplateID
	if override != nil {
		id = override
	} else if cv.Template != nil {
		return cv.Template
	}
	if id == nil || p.templates == nil {
		return nil
	}
	tpl, err := p.templates.GetTemplate(ctx, *id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.logger.Info("template not found, using default", "template_id", *id, "cv_id", cv.ID)
		} else {
			p.logger.Warn("template lookup failed, using default", "template_id", *id, "cv_id", cv.ID, "error", err)
		}
		return nil
	}
	return tpl
}

// DownloadURL returns the stored PDF location of a CV.
func (p *Processor) DownloadURL(ctx context.Context, userID, cvID uuid.UUID) (string, error) {
	if p.cvs == nil {
		return "", errors.New("processor has no cv store")
	}
	cv, err := p.cvs.GetCV(ctx, userID, cvID)
	if err != nil {
		return "", err
	}
	if cv.GeneratedPDFURL == nil || *cv.GeneratedPDFURL == "" {
		return "", domain.ErrPDFNotGenerated
	}
	return *cv.GeneratedPDFURL, nil
}

// InvalidateTemplate drops the cached definition of a template.
func (p *Processor) InvalidateTemplate(ctx context.Context, templateID uuid.UUID) error {
	return p.resolver.Invalidate(ctx, templateID.String())
}

// Filename derives the download name from the CV title.
func Filename(title string) string {
	title = firstNonEmpty(title, model.DefaultTitle)
	return unsafeFilenameChars.ReplaceAllString(title, "_") + ".pdf"
}
