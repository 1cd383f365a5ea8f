package telegram

import (
	"context"
	"time"

	"trainerbot/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Handler processes one update, errors are logged by the handler itself
type Handler func(ctx context.Context, u Update)

// Updater is the part of Client the poller needs
type Updater interface {
	GetUpdates(ctx context.Context, offset int64) ([]Update, error)
}

// Poller feeds updates to a handler with bounded concurrency
type Poller struct {
	src     Updater
	workers int
	backoff time.Duration
	log     logger.Logger
}

// NewPoller returns a Poller running at most workers handlers at once
func NewPoller(src Updater, workers int) *Poller {
	if workers <= 0 {
		workers = 8
	}
	return &Poller{src: src, workers: workers, backoff: 2 * time.Second, log: *logger.Named("telegram.poller")}
}

// Run polls until ctx is done, then waits for in-flight handlers
// Handlers get a context detached from ctx so a shutdown does not cut a reply in half
func (p *Poller) Run(ctx context.Context, h Handler) error {
	var g errgroup.Group
	g.SetLimit(p.workers)
	defer func() { _ = g.Wait() }()

	var offset int64
	for {
		if ctx.Err() != nil {
			return nil
		}
		ups, err := p.src.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.log.Warn().Err(err).Dur("retry_in", p.backoff).Msg("getUpdates failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.backoff):
			}
			continue
		}
		for _, u := range ups {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			hctx := logger.WithUpdate(context.WithoutCancel(ctx), u.UpdateID)
			g.Go(func() error {
				defer func() {
					if r := recover(); r != nil {
						logger.C(hctx).Error().Interface("panic", r).Msg("update handler panicked")
					}
				}()
				h(hctx, u)
				return nil
			})
		}
	}
}
