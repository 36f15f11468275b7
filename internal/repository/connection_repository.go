package repository

import (
	"context"

	"github.com/villagehs/village-backend/internal/domain"
)

type ConnectionRepository interface {
	Create(ctx context.Context, conn *domain.Connection) error
	GetByID(ctx context.Context, id int) (*domain.Connection, error)
	GetByUsers(ctx context.Context, userAID, userBID int) (*domain.Connection, error)
	ListForUser(ctx context.Context, userID int) ([]*domain.Connection, error)
	UpdateStatus(ctx context.Context, id int, status domain.ConnectionStatus) error
	CountPendingForUser(ctx context.Context, userID int) (int, error)
	// StatusMap returns the viewer's connection state keyed by the other
	// party's user id, as consumed by discovery's exclusion stage.
	StatusMap(ctx context.Context, userID int) (map[int]domain.ConnectionInfo, error)
}
