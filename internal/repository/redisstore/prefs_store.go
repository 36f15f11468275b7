// Package redisstore keeps per-viewer preference blobs and cached counters
// in Redis. Preferences are single JSON values with no schema versioning; a
// blob that fails to parse loads as empty prefs rather than an error.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/repository"
)

const (
	prefsKeyFmt        = "prefs:%d"
	pendingCountKeyFmt = "pending_count:%d"
	pendingCountTTL    = 5 * time.Minute
)

type prefsStore struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewPrefsStore(rdb *redis.Client, log *slog.Logger) repository.PrefsRepository {
	return &prefsStore{rdb: rdb, log: log}
}

func (s *prefsStore) Get(ctx context.Context, userID int) (*domain.ViewerPrefs, error) {
	raw, err := s.rdb.Get(ctx, fmt.Sprintf(prefsKeyFmt, userID)).Result()
	if errors.Is(err, redis.Nil) {
		return &domain.ViewerPrefs{}, nil
	}
	if err != nil {
		return nil, err
	}

	var prefs domain.ViewerPrefs
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		// Corrupt blob: fall back to empty prefs, never fail the read.
		s.log.Warn("unparseable prefs blob, resetting", "user_id", userID, "error", err)
		return &domain.ViewerPrefs{}, nil
	}
	return &prefs, nil
}

func (s *prefsStore) Save(ctx context.Context, userID int, prefs *domain.ViewerPrefs) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, fmt.Sprintf(prefsKeyFmt, userID), raw, 0).Err()
}

func (s *prefsStore) GetPendingCount(ctx context.Context, userID int) (int, bool, error) {
	count, err := s.rdb.Get(ctx, fmt.Sprintf(pendingCountKeyFmt, userID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (s *prefsStore) SetPendingCount(ctx context.Context, userID int, count int) error {
	return s.rdb.Set(ctx, fmt.Sprintf(pendingCountKeyFmt, userID), count, pendingCountTTL).Err()
}
