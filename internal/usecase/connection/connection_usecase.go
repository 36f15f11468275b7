package connection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/repository"
)

type ConnectionUseCase struct {
	connRepo    repository.ConnectionRepository
	profileRepo repository.ProfileRepository
	prefsRepo   repository.PrefsRepository
	log         *slog.Logger
}

func NewConnectionUseCase(
	connRepo repository.ConnectionRepository,
	profileRepo repository.ProfileRepository,
	prefsRepo repository.PrefsRepository,
	log *slog.Logger,
) *ConnectionUseCase {
	return &ConnectionUseCase{
		connRepo:    connRepo,
		profileRepo: profileRepo,
		prefsRepo:   prefsRepo,
		log:         log,
	}
}

// Request sends a connection request to another member.
func (uc *ConnectionUseCase) Request(ctx context.Context, requesterID, addresseeID int) (*domain.Connection, error) {
	if requesterID == addresseeID {
		return nil, domain.ErrCannotConnectSelf
	}

	// The target must exist as a member.
	if _, err := uc.profileRepo.GetByUserID(ctx, addresseeID); err != nil {
		return nil, err
	}

	existing, err := uc.connRepo.GetByUsers(ctx, requesterID, addresseeID)
	if err != nil && err != domain.ErrConnectionNotFound {
		return nil, fmt.Errorf("failed to check existing connection: %w", err)
	}
	if existing != nil && existing.Status != domain.ConnectionDeclined {
		return nil, domain.ErrConnectionAlreadyExists
	}

	conn := &domain.Connection{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      domain.ConnectionPending,
	}
	if existing != nil {
		// A declined request can be re-sent; reuse the row.
		if err := uc.connRepo.UpdateStatus(ctx, existing.ID, domain.ConnectionPending); err != nil {
			return nil, err
		}
		existing.Status = domain.ConnectionPending
		return existing, nil
	}
	if err := uc.connRepo.Create(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Respond accepts or declines a pending request; only the addressee may
// respond.
func (uc *ConnectionUseCase) Respond(ctx context.Context, connectionID, userID int, accept bool) (*domain.Connection, error) {
	conn, err := uc.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.AddresseeID != userID {
		return nil, domain.ErrNotConnectionAddressee
	}
	if conn.Status != domain.ConnectionPending {
		return nil, domain.ErrConnectionNotFound
	}

	status := domain.ConnectionDeclined
	if accept {
		status = domain.ConnectionAccepted
	}
	if err := uc.connRepo.UpdateStatus(ctx, conn.ID, status); err != nil {
		return nil, err
	}
	conn.Status = status
	return conn, nil
}

// List returns all connections for the user, both directions.
func (uc *ConnectionUseCase) List(ctx context.Context, userID int) ([]*domain.Connection, error) {
	return uc.connRepo.ListForUser(ctx, userID)
}

// PendingCount returns the number of incoming pending requests, preferring
// the cache the background poller keeps warm.
func (uc *ConnectionUseCase) PendingCount(ctx context.Context, userID int) (int, error) {
	if count, hit, err := uc.prefsRepo.GetPendingCount(ctx, userID); err == nil && hit {
		return count, nil
	} else if err != nil {
		uc.log.Warn("pending-count cache read failed", "user_id", userID, "error", err)
	}

	count, err := uc.connRepo.CountPendingForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}
	if err := uc.prefsRepo.SetPendingCount(ctx, userID, count); err != nil {
		uc.log.Warn("pending-count cache write failed", "user_id", userID, "error", err)
	}
	return count, nil
}
