package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/geo"
	"github.com/villagehs/village-backend/internal/repository"
)

// Empty-state identifiers for the discovery screen.
const (
	EmptyStateNoMembers = "no_members" // roster itself is empty
	EmptyStateNoMatches = "no_matches" // filters excluded everyone
)

type DiscoveryUseCase struct {
	profileRepo repository.ProfileRepository
	connRepo    repository.ConnectionRepository
	userRepo    repository.UserRepository
	prefsRepo   repository.PrefsRepository
	log         *slog.Logger
}

func NewDiscoveryUseCase(
	profileRepo repository.ProfileRepository,
	connRepo repository.ConnectionRepository,
	userRepo repository.UserRepository,
	prefsRepo repository.PrefsRepository,
	log *slog.Logger,
) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		profileRepo: profileRepo,
		connRepo:    connRepo,
		userRepo:    userRepo,
		prefsRepo:   prefsRepo,
		log:         log,
	}
}

// CandidateResponse is one roster entry in the discovery result.
type CandidateResponse struct {
	UserID      int                  `json:"user_id"`
	DisplayName string               `json:"display_name"`
	Alias       *string              `json:"alias,omitempty"`
	Bio         *string              `json:"bio,omitempty"`
	Location    *string              `json:"location,omitempty"`
	AccountType domain.AccountType   `json:"account_type"`
	Bucket      domain.DisplayBucket `json:"bucket"`
	StatusTags  []string             `json:"status_tags,omitempty"`
	ChildAges   []int64              `json:"child_ages,omitempty"`
	IsVerified  bool                 `json:"is_verified"`
	IsOnline    bool                 `json:"is_online"`
	DistanceKm  *float64             `json:"distance_km,omitempty"`
}

// Response is the filtered, ordered discovery view plus presentation state.
type Response struct {
	Results    []CandidateResponse `json:"results"`
	Total      int                 `json:"total"`
	EmptyState string              `json:"empty_state,omitempty"`
	// LocationAdvisory is set once when the viewer's own location cannot be
	// resolved, so radius search may not surface them to others.
	LocationAdvisory bool `json:"location_advisory,omitempty"`
}

// Browse computes the discovery view for the given filter state. The roster
// is loaded once per call; all filtering is in memory over that snapshot.
func (uc *DiscoveryUseCase) Browse(ctx context.Context, viewerUserID int, state FilterState) (*Response, error) {
	viewer, err := uc.profileRepo.GetByUserID(ctx, viewerUserID)
	if err != nil && err != domain.ErrProfileNotFound {
		return nil, fmt.Errorf("failed to get viewer profile: %w", err)
	}

	prefs, err := uc.prefsRepo.Get(ctx, viewerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewer prefs: %w", err)
	}

	connections, err := uc.connRepo.StatusMap(ctx, viewerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load connections: %w", err)
	}

	roster, err := uc.profileRepo.ListRoster(ctx, viewerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	origin, viewerUnlocatable := uc.resolveOrigin(viewer, prefs, state)

	filtered := Apply(roster, viewer, state, Exclusions{
		Hidden:      prefs,
		Connections: connections,
	}, origin)

	resp := &Response{Total: len(filtered)}
	now := time.Now()
	for _, p := range filtered {
		resp.Results = append(resp.Results, uc.toCandidate(ctx, p, origin, now))
	}

	switch {
	case len(roster) == 0:
		resp.EmptyState = EmptyStateNoMembers
	case len(filtered) == 0:
		resp.EmptyState = EmptyStateNoMatches
	}

	// One-time advisory: the viewer wanted radius search but their own
	// location does not resolve, so they may not be discoverable either.
	if viewerUnlocatable && !prefs.HasSeen(domain.FlagLocationAdvisory) {
		resp.LocationAdvisory = true
		prefs.MarkSeen(domain.FlagLocationAdvisory)
		if err := uc.prefsRepo.Save(ctx, viewerUserID, prefs); err != nil {
			uc.log.Warn("failed to persist advisory flag", "user_id", viewerUserID, "error", err)
		}
	}

	return resp, nil
}

// resolveOrigin picks the radius origin: an explicit browse-location
// override wins over the viewer's own resolved location. The second return
// reports that radius search was requested but the viewer's own location
// could not be resolved.
func (uc *DiscoveryUseCase) resolveOrigin(viewer *domain.Profile, prefs *domain.ViewerPrefs, state FilterState) (*geo.Coordinates, bool) {
	if state.RadiusKm <= 0 {
		return nil, false
	}

	if prefs.BrowseLocation != "" {
		if coords, ok := geo.Lookup(prefs.BrowseLocation); ok {
			return &coords, false
		}
		uc.log.Debug("browse location did not resolve", "location", prefs.BrowseLocation)
	}

	if viewer != nil {
		if coords, ok := ResolveCoordinates(viewer); ok {
			return &coords, false
		}
	}
	return nil, true
}

func (uc *DiscoveryUseCase) toCandidate(ctx context.Context, p *domain.Profile, origin *geo.Coordinates, now time.Time) CandidateResponse {
	c := CandidateResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Alias:       p.Alias,
		Bio:         p.Bio,
		Location:    p.LocationName,
		AccountType: p.AccountType,
		Bucket:      p.AccountType.Bucket(),
		StatusTags:  p.StatusTags(),
		ChildAges:   p.ChildAges,
		IsVerified:  p.IsVerified,
	}

	if user, err := uc.userRepo.GetByID(ctx, p.UserID); err == nil {
		c.IsOnline = user.IsOnline(now)
	}

	if origin != nil {
		if coords, ok := ResolveCoordinates(p); ok {
			d := geo.DistanceKm(*origin, coords)
			c.DistanceKm = &d
		}
	}
	return c
}
