package repository

import (
	"context"

	"github.com/villagehs/village-backend/internal/domain"
)

// PrefsRepository stores the per-viewer preference blob and cached counters.
type PrefsRepository interface {
	// Get loads the viewer's preferences. A missing or unparseable blob
	// returns zero-value prefs and a nil error.
	Get(ctx context.Context, userID int) (*domain.ViewerPrefs, error)
	Save(ctx context.Context, userID int, prefs *domain.ViewerPrefs) error

	// Pending-count cache, refreshed by the background poller.
	GetPendingCount(ctx context.Context, userID int) (int, bool, error)
	SetPendingCount(ctx context.Context, userID int, count int) error
}
