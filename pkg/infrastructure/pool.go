package infrastructure

import (
	"context"
	"errors"
	"time"

	"cv-renderer/internal/domain"

	"golang.org/x/sync/semaphore"
)

type HTMLRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// BoundedRenderer caps the number of browsers running at once. Callers
// queue for a slot up to queueTimeout and then get domain.ErrRenderBusy.
type BoundedRenderer struct {
	inner        HTMLRenderer
	sem          *semaphore.Weighted
	queueTimeout time.Duration
}

func NewBoundedRenderer(inner HTMLRenderer, concurrency int, queueTimeout time.Duration) *BoundedRenderer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BoundedRenderer{
		inner:        inner,
		sem:          semaphore.NewWeighted(int64(concurrency)),
		queueTimeout: queueTimeout,
	}
}

func (b *BoundedRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	waitCtx := ctx
	if b.queueTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, b.queueTimeout)
		defer cancel()
	}

	if err := b.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrRenderBusy
		}
		return nil, err
	}
	defer b.sem.Release(1)

	return b.inner.RenderHTMLToPDF(ctx, html)
}
