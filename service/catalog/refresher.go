package catalogsvc

import (
	"context"
	"log/slog"
	"time"
)

// Refresher re-mirrors the catalog on an interval so long-lived sessions
// eventually see books written by other instances.
type Refresher struct {
	svc   Service
	every time.Duration
	log   *slog.Logger
}

func NewRefresher(svc Service, every time.Duration, log *slog.Logger) *Refresher {
	return &Refresher{svc: svc, every: every, log: log}
}

func (r *Refresher) Run(ctx context.Context) {
	t := time.NewTicker(r.every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := r.svc.Refresh(ctx); err != nil {
				r.log.Warn("catalog refresh failed", "err", err)
			}
		}
	}
}
