package domain

import (
	"strings"
	"time"
)

// AccountType is the raw account type stored on a profile.
type AccountType string

const (
	AccountFamily   AccountType = "family"
	AccountTeacher  AccountType = "teacher"
	AccountBusiness AccountType = "business"
	AccountEvent    AccountType = "event"
	AccountFacility AccountType = "facility"
	AccountOther    AccountType = "other"
)

// DisplayBucket is the coarser bucket used for tab matching in discovery.
// Business, event and facility accounts collapse into one bucket; the raw
// AccountType is kept for badge rendering.
type DisplayBucket string

const (
	BucketFamily   DisplayBucket = "family"
	BucketTeacher  DisplayBucket = "teacher"
	BucketBusiness DisplayBucket = "business"
	BucketOther    DisplayBucket = "other"
)

// Bucket maps an account type to its display bucket. An empty or unknown
// type defaults to family.
func (t AccountType) Bucket() DisplayBucket {
	switch t {
	case AccountTeacher:
		return BucketTeacher
	case AccountBusiness, AccountEvent, AccountFacility:
		return BucketBusiness
	case AccountOther:
		return BucketOther
	default:
		return BucketFamily
	}
}

type Profile struct {
	ID           int         `json:"id" db:"id"`
	UserID       int         `json:"user_id" db:"user_id"`
	DisplayName  string      `json:"display_name" db:"display_name"`
	Alias        *string     `json:"alias" db:"alias"`
	Handle       *string     `json:"handle" db:"handle"`
	Bio          *string     `json:"bio" db:"bio"`
	LocationName *string     `json:"location_name" db:"location_name"`
	LocationLat  *float64    `json:"location_lat" db:"location_lat"`
	LocationLon  *float64    `json:"location_lon" db:"location_lon"`
	AccountType  AccountType `json:"account_type" db:"account_type"`
	ChildAges    []int64     `json:"child_ages" db:"child_ages"`
	// StatusRaw is the legacy status column: a JSON array, a comma-joined
	// string, or empty. Decode with DecomposeStatus, never directly.
	StatusRaw       *string   `json:"-" db:"status_raw"`
	Approaches      []string  `json:"approaches" db:"approaches"`
	Subjects        []string  `json:"subjects" db:"subjects"`
	AgeGroupsTaught []string  `json:"age_groups_taught" db:"age_groups_taught"`
	Services        *string   `json:"services" db:"services"`
	IsVerified      bool      `json:"is_verified" db:"is_verified"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// StatusTags decodes the legacy status column.
func (p *Profile) StatusTags() []string {
	if p.StatusRaw == nil {
		return nil
	}
	return DecomposeStatus(*p.StatusRaw)
}

// SortName derives the sort key used by discovery: the last space-separated
// token of the display name when it has more than one word, else the whole
// name, lowercased.
func (p *Profile) SortName() string {
	name := strings.TrimSpace(p.DisplayName)
	if i := strings.LastIndex(name, " "); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}
