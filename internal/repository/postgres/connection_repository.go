package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/repository"
)

type connectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) repository.ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *domain.Connection) error {
	query := `
		INSERT INTO connections (requester_id, addressee_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		conn.RequesterID, conn.AddresseeID, conn.Status,
	).Scan(&conn.ID, &conn.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConnectionAlreadyExists
		}
		return err
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id int) (*domain.Connection, error) {
	var conn domain.Connection
	query := `SELECT * FROM connections WHERE id = $1`
	if err := r.db.GetContext(ctx, &conn, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) GetByUsers(ctx context.Context, userAID, userBID int) (*domain.Connection, error) {
	var conn domain.Connection
	query := `
		SELECT * FROM connections
		WHERE (requester_id = $1 AND addressee_id = $2)
		   OR (requester_id = $2 AND addressee_id = $1)
	`
	if err := r.db.GetContext(ctx, &conn, query, userAID, userBID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) ListForUser(ctx context.Context, userID int) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	query := `
		SELECT * FROM connections
		WHERE requester_id = $1 OR addressee_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &conns, query, userID)
	return conns, err
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, id int, status domain.ConnectionStatus) error {
	query := `
		UPDATE connections
		SET status = $1, responded_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}

func (r *connectionRepository) CountPendingForUser(ctx context.Context, userID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM connections WHERE addressee_id = $1 AND status = 'pending'`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *connectionRepository) StatusMap(ctx context.Context, userID int) (map[int]domain.ConnectionInfo, error) {
	conns, err := r.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses := make(map[int]domain.ConnectionInfo, len(conns))
	for _, conn := range conns {
		other, ok := conn.OtherUserID(userID)
		if !ok {
			continue
		}
		statuses[other] = domain.ConnectionInfo{
			Status:      conn.Status,
			IsRequester: conn.RequesterID == userID,
		}
	}
	return statuses, nil
}
