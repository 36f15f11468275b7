package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/infrastructure/gemini"
	"github.com/villagehs/village-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo  repository.ProfileRepository
	userRepo     repository.UserRepository
	geminiClient *gemini.GeminiClient
	log          *slog.Logger
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	geminiClient *gemini.GeminiClient,
	log *slog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		geminiClient: geminiClient,
		log:          log,
	}
}

// UpdateProfileRequest carries partial profile updates; nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	DisplayName     *string   `json:"display_name" binding:"omitempty,min=2,max=100"`
	Alias           *string   `json:"alias" binding:"omitempty,max=100"`
	Handle          *string   `json:"handle" binding:"omitempty,max=50"`
	Bio             *string   `json:"bio" binding:"omitempty,max=2000"`
	LocationName    *string   `json:"location_name" binding:"omitempty,max=100"`
	LocationLat     *float64  `json:"location_lat" binding:"omitempty,min=-90,max=90"`
	LocationLon     *float64  `json:"location_lon" binding:"omitempty,min=-180,max=180"`
	AccountType     *string   `json:"account_type" binding:"omitempty,oneof=family teacher business event facility other"`
	ChildAges       *[]int64  `json:"child_ages" binding:"omitempty,max=12,dive,min=0,max=18"`
	Status          *[]string `json:"status" binding:"omitempty,max=5"`
	Approaches      *[]string `json:"approaches" binding:"omitempty,max=10"`
	Subjects        *[]string `json:"subjects" binding:"omitempty,max=20"`
	AgeGroupsTaught *[]string `json:"age_groups_taught" binding:"omitempty,max=5"`
	Services        *string   `json:"services" binding:"omitempty,max=2000"`
}

func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID int) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// ProfileResponse is another member's profile as shown to a viewer.
type ProfileResponse struct {
	Profile    *domain.Profile        `json:"profile"`
	StatusTags []string               `json:"status_tags"`
	Bucket     domain.DisplayBucket   `json:"bucket"`
	IsOnline   bool                   `json:"is_online"`
	Connection *domain.ConnectionInfo `json:"connection,omitempty"`
}

func (uc *ProfileUseCase) GetProfileByUserID(ctx context.Context, targetUserID int) (*ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{
		Profile:    profile,
		StatusTags: profile.StatusTags(),
		Bucket:     profile.AccountType.Bucket(),
	}
	if user, err := uc.userRepo.GetByID(ctx, targetUserID); err == nil {
		resp.IsOnline = user.IsOnline(time.Now())
	}
	return resp, nil
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Alias != nil {
		profile.Alias = req.Alias
	}
	if req.Handle != nil {
		profile.Handle = req.Handle
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.LocationName != nil {
		profile.LocationName = req.LocationName
	}
	if req.LocationLat != nil {
		profile.LocationLat = req.LocationLat
	}
	if req.LocationLon != nil {
		profile.LocationLon = req.LocationLon
	}
	if req.AccountType != nil {
		profile.AccountType = domain.AccountType(*req.AccountType)
	}
	if req.ChildAges != nil {
		profile.ChildAges = *req.ChildAges
	}
	if req.Status != nil {
		// Normalize to the canonical comma-joined form on write; legacy
		// rows keep whatever shape they had until next save.
		joined := strings.Join(*req.Status, ",")
		profile.StatusRaw = &joined
	}
	if req.Approaches != nil {
		profile.Approaches = *req.Approaches
	}
	if req.Subjects != nil {
		profile.Subjects = *req.Subjects
	}
	if req.AgeGroupsTaught != nil {
		profile.AgeGroupsTaught = *req.AgeGroupsTaught
	}
	if req.Services != nil {
		profile.Services = req.Services
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// SuggestBioRequest asks for an AI-drafted bio.
type SuggestBioRequest struct {
	Interests []string `json:"interests" binding:"omitempty,max=10"`
}

func (uc *ProfileUseCase) SuggestBio(ctx context.Context, userID int, req *SuggestBioRequest) (string, error) {
	if uc.geminiClient == nil {
		return "", fmt.Errorf("bio suggestions are not available")
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	location := ""
	if profile.LocationName != nil {
		location = *profile.LocationName
	}
	return uc.geminiClient.SuggestBio(ctx, profile.DisplayName, string(profile.AccountType), location, req.Interests)
}
