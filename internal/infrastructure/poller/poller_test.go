package poller

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/villagehs/village-backend/internal/domain"
)

type fakeUserRepo struct {
	users []*domain.User
}

func (f *fakeUserRepo) Create(context.Context, *domain.User) error { return nil }
func (f *fakeUserRepo) GetByID(context.Context, int) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserRepo) Update(context.Context, *domain.User) error { return nil }
func (f *fakeUserRepo) TouchLastActive(context.Context, int) error { return nil }
func (f *fakeUserRepo) ListRecentlyActive(_ context.Context, limit int) ([]*domain.User, error) {
	if len(f.users) > limit {
		return f.users[:limit], nil
	}
	return f.users, nil
}

type fakeConnRepo struct {
	pending map[int]int
}

func (f *fakeConnRepo) Create(context.Context, *domain.Connection) error { return nil }
func (f *fakeConnRepo) GetByID(context.Context, int) (*domain.Connection, error) {
	return nil, domain.ErrConnectionNotFound
}
func (f *fakeConnRepo) GetByUsers(context.Context, int, int) (*domain.Connection, error) {
	return nil, domain.ErrConnectionNotFound
}
func (f *fakeConnRepo) ListForUser(context.Context, int) ([]*domain.Connection, error) {
	return nil, nil
}
func (f *fakeConnRepo) UpdateStatus(context.Context, int, domain.ConnectionStatus) error {
	return nil
}
func (f *fakeConnRepo) CountPendingForUser(_ context.Context, userID int) (int, error) {
	return f.pending[userID], nil
}
func (f *fakeConnRepo) StatusMap(context.Context, int) (map[int]domain.ConnectionInfo, error) {
	return nil, nil
}

type fakePrefsRepo struct {
	counts map[int]int
}

func (f *fakePrefsRepo) Get(context.Context, int) (*domain.ViewerPrefs, error) {
	return &domain.ViewerPrefs{}, nil
}
func (f *fakePrefsRepo) Save(context.Context, int, *domain.ViewerPrefs) error { return nil }
func (f *fakePrefsRepo) GetPendingCount(_ context.Context, userID int) (int, bool, error) {
	count, ok := f.counts[userID]
	return count, ok, nil
}
func (f *fakePrefsRepo) SetPendingCount(_ context.Context, userID, count int) error {
	f.counts[userID] = count
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefreshCachesCountsForActiveUsers(t *testing.T) {
	now := time.Now()
	stale := now.Add(-2 * time.Hour)
	users := &fakeUserRepo{users: []*domain.User{
		{ID: 1, LastActiveAt: &now},
		{ID: 2, LastActiveAt: &stale},
		{ID: 3, LastActiveAt: &now},
		{ID: 4},
	}}
	conns := &fakeConnRepo{pending: map[int]int{1: 3, 2: 9, 3: 0}}
	prefs := &fakePrefsRepo{counts: make(map[int]int)}

	p := New(users, conns, prefs, discardLogger())
	p.SetActiveWindow(1 * time.Hour)
	p.refreshAll(context.Background())

	if got := prefs.counts[1]; got != 3 {
		t.Errorf("user 1 cached count = %d, want 3", got)
	}
	if got, ok := prefs.counts[3]; !ok || got != 0 {
		t.Errorf("user 3 cached count = %d (cached=%v), want 0 cached", got, ok)
	}
	if _, ok := prefs.counts[2]; ok {
		t.Error("stale user 2 should not be refreshed")
	}
	if _, ok := prefs.counts[4]; ok {
		t.Error("never-active user 4 should not be refreshed")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	users := &fakeUserRepo{}
	p := New(users, &fakeConnRepo{}, &fakePrefsRepo{counts: make(map[int]int)}, discardLogger())
	p.SetTickInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}
