package repository

import (
	"context"

	"github.com/villagehs/village-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id int) error
	// ListRoster returns the full candidate roster for discovery, excluding
	// the viewer's own profile. Filtering happens in memory over this
	// snapshot, not in SQL.
	ListRoster(ctx context.Context, excludeUserID int) ([]*domain.Profile, error)
}
