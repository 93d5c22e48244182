package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dispatcher fans updates out to a fixed set of workers keyed by user, so
// one user's updates are handled in arrival order while different users
// are handled in parallel.
type Dispatcher struct {
	handle  func(context.Context, tgbotapi.Update)
	workers int
	log     *zap.Logger
}

func NewDispatcher(handle func(context.Context, tgbotapi.Update), workers int, logger *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{handle: handle, workers: workers, log: logger}
}

// Run blocks until ctx is done or updates is closed. Updates already handed
// to a worker are still handled before Run returns.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	queues := make([]chan tgbotapi.Update, d.workers)
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, 16)
	}

	var g errgroup.Group
	for _, q := range queues {
		g.Go(func() error {
			for upd := range q {
				d.handle(ctx, upd)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			for _, q := range queues {
				close(q)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return nil
			case upd, ok := <-updates:
				if !ok {
					return nil
				}
				user, ok := updateUser(upd)
				if !ok {
					d.log.Debug("skipping update without sender", zap.Int("update_id", upd.UpdateID))
					continue
				}
				select {
				case queues[uint64(user)%uint64(len(queues))] <- upd:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})

	return g.Wait()
}
