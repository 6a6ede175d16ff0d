package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cv-renderer/internal/domain"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// RenderState is a step of one browser session.
type RenderState string

const (
	StateLaunching     RenderState = "launching"
	StatePageOpen      RenderState = "page_open"
	StateContentLoaded RenderState = "content_loaded"
	StatePrintingPDF   RenderState = "printing_pdf"
	StateClosed        RenderState = "closed"
)

const (
	defaultLoadTimeout  = 30 * time.Second
	defaultPrintTimeout = 60 * time.Second
)

// A4 paper and 1cm margins, in inches.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 0.3937

	viewportWidth  = 1200
	viewportHeight = 1600
)

type RendererOptions struct {
	ChromePath   string
	LoadTimeout  time.Duration
	PrintTimeout time.Duration
}

// session is one isolated browser instance. Close must be safe to call
// after any failed step.
type session interface {
	Launch(ctx context.Context) error
	OpenPage(ctx context.Context) error
	Load(ctx context.Context, html string) error
	Print(ctx context.Context) ([]byte, error)
	Close()
}

type ChromedpRenderer struct {
	opts       RendererOptions
	logger     *slog.Logger
	hook       func(RenderState)
	newSession func() session
}

type RendererOption func(*ChromedpRenderer)

// WithStateHook registers fn to observe every state transition.
func WithStateHook(fn func(RenderState)) RendererOption {
	return func(r *ChromedpRenderer) { r.hook = fn }
}

func WithRendererLogger(l *slog.Logger) RendererOption {
	return func(r *ChromedpRenderer) { r.logger = l }
}

func withSessionFactory(fn func() session) RendererOption {
	return func(r *ChromedpRenderer) { r.newSession = fn }
}

func NewChromedpRenderer(opts RendererOptions, options ...RendererOption) *ChromedpRenderer {
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = defaultLoadTimeout
	}
	if opts.PrintTimeout <= 0 {
		opts.PrintTimeout = defaultPrintTimeout
	}
	r := &ChromedpRenderer{opts: opts}
	for _, o := range options {
		o(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.newSession == nil {
		r.newSession = func() session { return &chromeSession{opts: r.opts, logger: r.logger} }
	}
	return r
}

// RenderHTMLToPDF prints html as an A4 PDF using a fresh browser. The
// browser is torn down on every path, including cancellation.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	s := r.newSession()
	defer func() {
		s.Close()
		r.report(StateClosed)
	}()

	r.report(StateLaunching)
	if err := s.Launch(ctx); err != nil {
		return nil, &domain.RenderError{Stage: domain.StageLaunch, Cause: err}
	}

	if err := s.OpenPage(ctx); err != nil {
		return nil, &domain.RenderError{Stage: domain.StageOpen, Cause: err}
	}
	r.report(StatePageOpen)

	if err := s.Load(ctx, html); err != nil {
		return nil, &domain.RenderError{Stage: domain.StageLoad, Cause: err}
	}
	r.report(StateContentLoaded)

	r.report(StatePrintingPDF)
	pdf, err := s.Print(ctx)
	if err != nil {
		return nil, &domain.RenderError{Stage: domain.StagePrint, Cause: err}
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, &domain.RenderError{Stage: domain.StagePrint, Cause: fmt.Errorf("invalid PDF output (len=%d)", len(pdf))}
	}
	return pdf, nil
}

func (r *ChromedpRenderer) report(s RenderState) {
	if r.hook != nil {
		r.hook(s)
	}
}

type chromeSession struct {
	opts   RendererOptions
	logger *slog.Logger

	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	tabCtx        context.Context
	cancelTab     context.CancelFunc
	tmpDir        string
}

func (s *chromeSession) Launch(ctx context.Context) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if s.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.opts.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	s.cancelAlloc = cancelAlloc
	s.browserCtx, s.cancelBrowser = chromedp.NewContext(allocCtx)

	// The first Run on a fresh context starts the browser process.
	return chromedp.Run(s.browserCtx)
}

func (s *chromeSession) OpenPage(_ context.Context) error {
	if s.browserCtx == nil {
		return errors.New("browser not launched")
	}
	s.tabCtx, s.cancelTab = chromedp.NewContext(s.browserCtx)
	return chromedp.Run(s.tabCtx, chromedp.EmulateViewport(viewportWidth, viewportHeight))
}

func (s *chromeSession) Load(_ context.Context, html string) error {
	if s.tabCtx == nil {
		return errors.New("page not open")
	}
	tmpDir, err := os.MkdirTemp("", "cv-render-")
	if err != nil {
		return err
	}
	s.tmpDir = tmpDir

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return err
	}

	// tabCtx descends from the launch context, so caller cancellation
	// still reaches this step.
	loadCtx, cancel := context.WithTimeout(s.tabCtx, s.opts.LoadTimeout)
	defer cancel()

	var fontsReady bool
	return chromedp.Run(loadCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams { return p.WithAwaitPromise(true) }),
	)
}

func (s *chromeSession) Print(_ context.Context) ([]byte, error) {
	if s.tabCtx == nil {
		return nil, errors.New("page not open")
	}
	printCtx, cancel := context.WithTimeout(s.tabCtx, s.opts.PrintTimeout)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(printCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdfBuf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(paperWidthIn).
			WithPaperHeight(paperHeightIn).
			WithMarginTop(marginIn).
			WithMarginBottom(marginIn).
			WithMarginLeft(marginIn).
			WithMarginRight(marginIn).
			WithPreferCSSPageSize(false).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

func (s *chromeSession) Close() {
	if s.cancelTab != nil {
		s.cancelTab()
	}
	if s.browserCtx != nil {
		if err := chromedp.Cancel(s.browserCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Debug("browser close returned error", "error", err)
		}
		s.cancelBrowser()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
	if s.tmpDir != "" {
		if err := os.RemoveAll(s.tmpDir); err != nil {
			s.logger.Warn("failed to remove render temp dir", "dir", s.tmpDir, "error", err)
		}
	}
}
