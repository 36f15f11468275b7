package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecomposeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"null literal", "null", nil},
		{"single tag", "new", []string{"new"}},
		{"comma joined", "new, considering", []string{"new", "considering"}},
		{"json array", `["experienced","new"]`, []string{"experienced", "new"}},
		{"json array with spaces", `[" Experienced ", "new"]`, []string{"experienced", "new"}},
		{"malformed json", `["unclosed`, nil},
		{"mixed case", "NEW,Considering", []string{"new", "considering"}},
		{"custom tag", "unschooling journey", []string{"unschooling journey"}},
		{"trailing commas", "new,,considering,", []string{"new", "considering"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecomposeStatus(tc.raw)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("DecomposeStatus(%q) mismatch (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}

func TestHasKnownStatusTag(t *testing.T) {
	if !HasKnownStatusTag([]string{"custom", "experienced"}) {
		t.Error("expected known tag to be detected")
	}
	// A tag outside the known set is custom, not known: the "other" branch
	// is the complement of the known-value union.
	if HasKnownStatusTag([]string{"veteran", "unschooling"}) {
		t.Error("custom-only tags must not count as known")
	}
	if HasKnownStatusTag(nil) {
		t.Error("empty tags must not count as known")
	}
}

func TestUserIsOnline(t *testing.T) {
	now := time.Now()

	recent := now.Add(-5 * time.Minute)
	stale := now.Add(-20 * time.Minute)

	u := &User{LastActiveAt: &recent}
	if !u.IsOnline(now) {
		t.Error("user active 5 minutes ago should be online")
	}

	u.LastActiveAt = &stale
	if u.IsOnline(now) {
		t.Error("user active 20 minutes ago should be offline")
	}

	u.LastActiveAt = nil
	if u.IsOnline(now) {
		t.Error("user with no activity timestamp should be offline")
	}
}

func TestAccountTypeBucket(t *testing.T) {
	tests := []struct {
		in   AccountType
		want DisplayBucket
	}{
		{AccountFamily, BucketFamily},
		{AccountTeacher, BucketTeacher},
		{AccountBusiness, BucketBusiness},
		{AccountEvent, BucketBusiness},
		{AccountFacility, BucketBusiness},
		{AccountOther, BucketOther},
		{"", BucketFamily}, // absent type defaults to family
		{"garbage", BucketFamily},
	}

	for _, tc := range tests {
		if got := tc.in.Bucket(); got != tc.want {
			t.Errorf("Bucket(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestProfileSortName(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{"Sarah Thompson", "thompson"},
		{"Cher", "cher"},
		{"Mary Anne Walker", "walker"},
		{"  Jo Bloggs  ", "bloggs"},
	}
	for _, tc := range tests {
		p := &Profile{DisplayName: tc.display}
		if got := p.SortName(); got != tc.want {
			t.Errorf("SortName(%q) = %q, want %q", tc.display, got, tc.want)
		}
	}
}
