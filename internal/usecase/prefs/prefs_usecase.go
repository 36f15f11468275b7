package prefs

import (
	"context"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/repository"
)

type PrefsUseCase struct {
	prefsRepo   repository.PrefsRepository
	profileRepo repository.ProfileRepository
}

func NewPrefsUseCase(prefsRepo repository.PrefsRepository, profileRepo repository.ProfileRepository) *PrefsUseCase {
	return &PrefsUseCase{prefsRepo: prefsRepo, profileRepo: profileRepo}
}

type UpdatePrefsRequest struct {
	RadiusKm       *float64 `json:"radius_km,omitempty" binding:"omitempty,gte=0,lte=500"`
	BrowseLocation *string  `json:"browse_location,omitempty" binding:"omitempty,max=100"`
}

func (uc *PrefsUseCase) Get(ctx context.Context, userID int) (*domain.ViewerPrefs, error) {
	return uc.prefsRepo.Get(ctx, userID)
}

// Update applies a partial change to the viewer's preferences. Unset fields
// are left as they are.
func (uc *PrefsUseCase) Update(ctx context.Context, userID int, req *UpdatePrefsRequest) (*domain.ViewerPrefs, error) {
	prefs, err := uc.prefsRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.RadiusKm != nil {
		prefs.RadiusKm = *req.RadiusKm
	}
	if req.BrowseLocation != nil {
		prefs.BrowseLocation = *req.BrowseLocation
	}
	if err := uc.prefsRepo.Save(ctx, userID, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Hide adds the target to the viewer's hidden list. The target must be an
// existing member.
func (uc *PrefsUseCase) Hide(ctx context.Context, viewerID, targetID int) (*domain.ViewerPrefs, error) {
	if _, err := uc.profileRepo.GetByUserID(ctx, targetID); err != nil {
		return nil, err
	}
	prefs, err := uc.prefsRepo.Get(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	prefs.Hide(targetID)
	if err := uc.prefsRepo.Save(ctx, viewerID, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Unhide removes the target from the viewer's hidden list. Unhiding a user
// that was never hidden is a no-op.
func (uc *PrefsUseCase) Unhide(ctx context.Context, viewerID, targetID int) (*domain.ViewerPrefs, error) {
	prefs, err := uc.prefsRepo.Get(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	prefs.Unhide(targetID)
	if err := uc.prefsRepo.Save(ctx, viewerID, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
