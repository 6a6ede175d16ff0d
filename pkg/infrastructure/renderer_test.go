package infrastructure

import (
	"context"
	"errors"
	"testing"

	"cv-renderer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	failAt  domain.RenderStage
	pdf     []byte
	calls   []string
	closed  int
	loaded  string
	blockOn domain.RenderStage
}

func (f *fakeSession) step(ctx context.Context, stage domain.RenderStage) error {
	f.calls = append(f.calls, string(stage))
	if f.blockOn == stage {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.failAt == stage {
		return errors.New(string(stage) + " failed")
	}
	return nil
}

func (f *fakeSession) Launch(ctx context.Context) error   { return f.step(ctx, domain.StageLaunch) }
func (f *fakeSession) OpenPage(ctx context.Context) error { return f.step(ctx, domain.StageOpen) }

func (f *fakeSession) Load(ctx context.Context, html string) error {
	f.loaded = html
	return f.step(ctx, domain.StageLoad)
}

func (f *fakeSession) Print(ctx context.Context) ([]byte, error) {
	if err := f.step(ctx, domain.StagePrint); err != nil {
		return nil, err
	}
	if f.pdf != nil {
		return f.pdf, nil
	}
	return []byte("%PDF-1.7\n..."), nil
}

func (f *fakeSession) Close() { f.closed++ }

func newFakeRenderer(s *fakeSession, states *[]RenderState) *ChromedpRenderer {
	return NewChromedpRenderer(RendererOptions{},
		withSessionFactory(func() session { return s }),
		WithStateHook(func(st RenderState) { *states = append(*states, st) }),
	)
}

func TestChromedpRenderer_Lifecycle(t *testing.T) {
	s := &fakeSession{}
	var states []RenderState
	pdf, err := newFakeRenderer(s, &states).RenderHTMLToPDF(context.Background(), "<p>hi</p>")

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7\n...", string(pdf))
	assert.Equal(t, "<p>hi</p>", s.loaded)
	assert.Equal(t, 1, s.closed)
	assert.Equal(t, []RenderState{StateLaunching, StatePageOpen, StateContentLoaded, StatePrintingPDF, StateClosed}, states)
}

func TestChromedpRenderer_ClosesOnEveryFailure(t *testing.T) {
	for _, stage := range []domain.RenderStage{domain.StageLaunch, domain.StageOpen, domain.StageLoad, domain.StagePrint} {
		t.Run(string(stage), func(t *testing.T) {
			s := &fakeSession{failAt: stage}
			var states []RenderState
			pdf, err := newFakeRenderer(s, &states).RenderHTMLToPDF(context.Background(), "<p/>")

			assert.Nil(t, pdf)
			var renderErr *domain.RenderError
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, stage, renderErr.Stage)
			assert.Equal(t, 1, s.closed)
			assert.Equal(t, StateClosed, states[len(states)-1])
			assert.Equal(t, string(stage), s.calls[len(s.calls)-1])
		})
	}
}

func TestChromedpRenderer_RejectsNonPDF(t *testing.T) {
	s := &fakeSession{pdf: []byte("<html></html>")}
	var states []RenderState
	_, err := newFakeRenderer(s, &states).RenderHTMLToPDF(context.Background(), "<p/>")

	var renderErr *domain.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, domain.StagePrint, renderErr.Stage)
	assert.Equal(t, 1, s.closed)
}

func TestChromedpRenderer_Cancellation(t *testing.T) {
	s := &fakeSession{blockOn: domain.StageLoad}
	var states []RenderState
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFakeRenderer(s, &states).RenderHTMLToPDF(ctx, "<p/>")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, s.closed)
	assert.Equal(t, 500, domain.HTTPStatus(err))
}

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r := NewChromedpRenderer(RendererOptions{ChromePath: "/usr/bin/chromium"})
	assert.Equal(t, defaultLoadTimeout, r.opts.LoadTimeout)
	assert.Equal(t, defaultPrintTimeout, r.opts.PrintTimeout)
	assert.Equal(t, "/usr/bin/chromium", r.opts.ChromePath)
}
