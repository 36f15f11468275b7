package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/villagehs/village-backend/internal/metrics"
	"github.com/villagehs/village-backend/internal/repository"
)

const refreshBatchSize = 500

// Poller periodically refreshes the cached pending-request counter for
// recently active users so clients can read it without hammering the
// database.
type Poller struct {
	userRepo  repository.UserRepository
	connRepo  repository.ConnectionRepository
	prefsRepo repository.PrefsRepository
	log       *slog.Logger
	tick      time.Duration
	window    time.Duration
}

func New(
	userRepo repository.UserRepository,
	connRepo repository.ConnectionRepository,
	prefsRepo repository.PrefsRepository,
	log *slog.Logger,
) *Poller {
	return &Poller{
		userRepo:  userRepo,
		connRepo:  connRepo,
		prefsRepo: prefsRepo,
		log:       log,
		tick:      1 * time.Minute,
		window:    1 * time.Hour,
	}
}

// SetTickInterval overrides the default 1-minute refresh interval.
func (p *Poller) SetTickInterval(d time.Duration) {
	p.tick = d
}

// SetActiveWindow overrides how recently a user must have been active to
// have their counter refreshed.
func (p *Poller) SetActiveWindow(d time.Duration) {
	p.window = d
}

// Run starts the refresh loop, blocking until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.refreshAll(ctx)

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refreshAll(ctx)
		}
	}
}

func (p *Poller) refreshAll(ctx context.Context) {
	users, err := p.userRepo.ListRecentlyActive(ctx, refreshBatchSize)
	if err != nil {
		p.log.Error("list recently active users", "error", err)
		return
	}

	cutoff := time.Now().Add(-p.window)
	refreshed := 0
	for _, user := range users {
		if ctx.Err() != nil {
			return
		}
		if user.LastActiveAt == nil || user.LastActiveAt.Before(cutoff) {
			continue
		}

		count, err := p.connRepo.CountPendingForUser(ctx, user.ID)
		if err != nil {
			p.log.Error("count pending requests", "user_id", user.ID, "error", err)
			continue
		}
		if err := p.prefsRepo.SetPendingCount(ctx, user.ID, count); err != nil {
			p.log.Error("cache pending count", "user_id", user.ID, "error", err)
			continue
		}
		metrics.PendingCountRefreshes.Inc()
		refreshed++
	}

	if refreshed > 0 {
		p.log.Debug("refreshed pending counts", "users", refreshed)
	}
}
