package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, display_name, alias, handle, bio,
	location_name, location_lat, location_lon,
	account_type, child_ages, status_raw,
	approaches, subjects, age_groups_taught, services,
	is_verified, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Alias, &p.Handle, &p.Bio,
		&p.LocationName, &p.LocationLat, &p.LocationLon,
		&p.AccountType, pq.Array(&p.ChildAges), &p.StatusRaw,
		pq.Array(&p.Approaches), pq.Array(&p.Subjects), pq.Array(&p.AgeGroupsTaught), &p.Services,
		&p.IsVerified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, display_name, alias, handle, bio,
			location_name, location_lat, location_lon,
			account_type, child_ages, status_raw,
			approaches, subjects, age_groups_taught, services, is_verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.DisplayName, profile.Alias, profile.Handle, profile.Bio,
		profile.LocationName, profile.LocationLat, profile.LocationLon,
		profile.AccountType, pq.Array(profile.ChildAges), profile.StatusRaw,
		pq.Array(profile.Approaches), pq.Array(profile.Subjects),
		pq.Array(profile.AgeGroupsTaught), profile.Services, profile.IsVerified,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, alias = $2, handle = $3, bio = $4,
		    location_name = $5, location_lat = $6, location_lon = $7,
		    account_type = $8, child_ages = $9, status_raw = $10,
		    approaches = $11, subjects = $12, age_groups_taught = $13,
		    services = $14, is_verified = $15,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $16
		RETURNING updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Alias, profile.Handle, profile.Bio,
		profile.LocationName, profile.LocationLat, profile.LocationLon,
		profile.AccountType, pq.Array(profile.ChildAges), profile.StatusRaw,
		pq.Array(profile.Approaches), pq.Array(profile.Subjects),
		pq.Array(profile.AgeGroupsTaught), profile.Services, profile.IsVerified,
		profile.ID,
	).Scan(&profile.UpdatedAt)
}

func (r *profileRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM profiles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ListRoster(ctx context.Context, excludeUserID int) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id <> $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, excludeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
