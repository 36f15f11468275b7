package discovery

import (
	"sort"
	"strings"

	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/geo"
)

// Tab identifiers for the account-type filter.
const (
	TabAll      = "all"
	TabFamily   = "family"
	TabTeacher  = "teacher"
	TabBusiness = "business"
	TabOther    = "other"
)

// SubOther selects the complement branch of any sub-filter: records matching
// none of the enumerated known values for that facet. It is computed at
// match time, never stored.
const SubOther = "other"

// Known-value sets for the sub-filters. These are versioned constants:
// adding a value silently reclassifies records out of the "other" branch.
var (
	primaryBrackets = []string{"5-7", "8-10", "11-13"}
	highBrackets    = []string{"14-16", "17-18"}

	subjectKeywords = map[string][]string{
		"music":   {"music", "piano", "guitar", "singing", "choir"},
		"sport":   {"sport", "swimming", "gymnastics", "soccer", "athletics"},
		"arts":    {"art", "drawing", "painting", "drama", "craft"},
		"math":    {"math", "maths", "mathematics", "numeracy"},
		"english": {"english", "literacy", "reading", "writing"},
	}

	businessCategoryKeywords = map[string][]string{
		"playspace": {"playspace", "play centre", "playground", "indoor play", "play"},
		"learning":  {"learning", "tutoring", "classes", "workshop", "education"},
		"resources": {"resources", "curriculum", "books", "supplies", "materials"},
	}
)

// FilterState is the live selection of all discovery filter controls.
// Switching tab clears every sub-filter, which handlers enforce by building
// a fresh state per request.
type FilterState struct {
	// Search is the global free-text override: when non-empty it replaces
	// every stage except the hidden-list exclusion.
	Search string

	Tab string

	// Family tab.
	Status       string // known status tag, or SubOther
	StatusCustom string
	Approach     string // independently composable with Status

	// Teacher tab.
	TeacherGroup  string // "primary", "high", "extracurricular", or SubOther
	TeacherCustom string
	Subject       string // known subject keyword, or SubOther
	SubjectCustom string

	// Business tab.
	Category       string // known category, or SubOther
	CategoryCustom string

	// Location: radius when an origin resolves, else plain substring match.
	RadiusKm     float64
	LocationText string

	// Age window, inclusive. Zero AgeMax disables the stage.
	AgeMin int
	AgeMax int
}

// Exclusions carries the two independent drop sets: profiles hidden by the
// viewer and profiles already connected to them.
type Exclusions struct {
	Hidden      *domain.ViewerPrefs
	Connections map[int]domain.ConnectionInfo
}

func (e Exclusions) isHidden(userID int) bool {
	return e.Hidden != nil && e.Hidden.IsHidden(userID)
}

func (e Exclusions) isConnected(userID int) bool {
	info, ok := e.Connections[userID]
	return ok && info.Status == domain.ConnectionAccepted
}

// ResolveCoordinates returns a candidate's coordinates: stored lat/lon when
// present, else a gazetteer lookup of the location name. No resolution means
// the candidate is unlocatable and must be excluded from radius results.
func ResolveCoordinates(p *domain.Profile) (geo.Coordinates, bool) {
	if p.LocationLat != nil && p.LocationLon != nil {
		return geo.Coordinates{Lat: *p.LocationLat, Lon: *p.LocationLon}, true
	}
	if p.LocationName != nil {
		return geo.Lookup(*p.LocationName)
	}
	return geo.Coordinates{}, false
}

// Apply runs the filter chain over the candidate snapshot and returns the
// ordered result. origin is the resolved radius origin, nil when radius
// filtering is inactive. viewer may be nil (no profile yet); viewer-derived
// stages are skipped then.
func Apply(candidates []*domain.Profile, viewer *domain.Profile, state FilterState, ex Exclusions, origin *geo.Coordinates) []*domain.Profile {
	// Global search override: only the hidden-list exclusion survives.
	if q := strings.TrimSpace(state.Search); q != "" {
		var out []*domain.Profile
		for _, c := range candidates {
			if ex.isHidden(c.UserID) {
				continue
			}
			if matchesSearch(c, q) {
				out = append(out, c)
			}
		}
		sortByLastName(out)
		return out
	}

	var out []*domain.Profile
	for _, c := range candidates {
		if ex.isHidden(c.UserID) || ex.isConnected(c.UserID) {
			continue
		}
		if !passesLocation(c, state, origin) {
			continue
		}
		if !passesAgeOverlap(c, viewer, state) {
			continue
		}
		if state.Tab != "" && state.Tab != TabAll && c.AccountType.Bucket() != domain.DisplayBucket(state.Tab) {
			continue
		}
		if !passesSubFilters(c, state) {
			continue
		}
		out = append(out, c)
	}
	sortByLastName(out)
	return out
}

func matchesSearch(p *domain.Profile, query string) bool {
	q := strings.ToLower(query)
	fields := []string{p.DisplayName}
	for _, s := range []*string{p.Alias, p.Handle, p.LocationName, p.Bio} {
		if s != nil {
			fields = append(fields, *s)
		}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func passesLocation(p *domain.Profile, state FilterState, origin *geo.Coordinates) bool {
	if origin != nil && state.RadiusKm > 0 {
		coords, ok := ResolveCoordinates(p)
		if !ok {
			// Unlocatable candidates never appear in radius results.
			return false
		}
		return geo.DistanceKm(*origin, coords) <= state.RadiusKm
	}
	if text := strings.TrimSpace(state.LocationText); text != "" {
		if p.LocationName == nil {
			return false
		}
		return strings.Contains(strings.ToLower(*p.LocationName), strings.ToLower(text))
	}
	return true
}

func passesAgeOverlap(p *domain.Profile, viewer *domain.Profile, state FilterState) bool {
	if viewer == nil || len(viewer.ChildAges) == 0 || state.AgeMax <= 0 {
		return true
	}
	for _, age := range p.ChildAges {
		if int(age) >= state.AgeMin && int(age) <= state.AgeMax {
			return true
		}
	}
	return false
}

func passesSubFilters(p *domain.Profile, state FilterState) bool {
	switch state.Tab {
	case TabFamily:
		return passesStatusFilter(p, state) && passesApproachFilter(p, state)
	case TabTeacher:
		return passesTeacherGroupFilter(p, state) && passesSubjectFilter(p, state)
	case TabBusiness:
		return passesCategoryFilter(p, state)
	default:
		return true
	}
}

func passesStatusFilter(p *domain.Profile, state FilterState) bool {
	if state.Status == "" {
		return true
	}
	tags := p.StatusTags()
	if state.Status == SubOther {
		if domain.HasKnownStatusTag(tags) {
			return false
		}
		return matchesCustomText(state.StatusCustom, p.DisplayName, deref(p.Bio))
	}
	for _, tag := range tags {
		if tag == state.Status {
			return true
		}
	}
	return false
}

func passesApproachFilter(p *domain.Profile, state FilterState) bool {
	if state.Approach == "" {
		return true
	}
	for _, approach := range p.Approaches {
		if strings.EqualFold(approach, state.Approach) {
			return true
		}
	}
	return false
}

func passesTeacherGroupFilter(p *domain.Profile, state FilterState) bool {
	switch state.TeacherGroup {
	case "":
		return true
	case "extracurricular":
		// Narrowing happens in the subject sub-filter.
		return true
	case "primary":
		return teachesAnyBracket(p, primaryBrackets)
	case "high":
		return teachesAnyBracket(p, highBrackets)
	case SubOther:
		if teachesAnyBracket(p, primaryBrackets) || teachesAnyBracket(p, highBrackets) {
			return false
		}
		return matchesCustomText(state.TeacherCustom, deref(p.Bio), strings.Join(p.Subjects, " "))
	default:
		return false
	}
}

func teachesAnyBracket(p *domain.Profile, brackets []string) bool {
	for _, group := range p.AgeGroupsTaught {
		g := normalizeBracket(group)
		for _, bracket := range brackets {
			if g == bracket {
				return true
			}
		}
	}
	return false
}

// normalizeBracket maps stored age-group strings onto the canonical bracket
// form: lowercased, trimmed, en dashes folded to hyphens, inner spaces
// dropped ("5 – 7" == "5-7").
func normalizeBracket(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

func passesSubjectFilter(p *domain.Profile, state FilterState) bool {
	if state.Subject == "" {
		return true
	}
	subjects := strings.ToLower(strings.Join(p.Subjects, " "))
	if state.Subject == SubOther {
		for _, keywords := range subjectKeywords {
			if containsAny(subjects, keywords) {
				return false
			}
		}
		return matchesCustomText(state.SubjectCustom, subjects, deref(p.Bio))
	}
	keywords, ok := subjectKeywords[state.Subject]
	if !ok {
		return false
	}
	return containsAny(subjects, keywords)
}

func passesCategoryFilter(p *domain.Profile, state FilterState) bool {
	if state.Category == "" {
		return true
	}
	haystack := strings.ToLower(deref(p.Services) + " " + deref(p.Bio))
	if state.Category == SubOther {
		for _, keywords := range businessCategoryKeywords {
			if containsAny(haystack, keywords) {
				return false
			}
		}
		return matchesCustomText(state.CategoryCustom, haystack)
	}
	keywords, ok := businessCategoryKeywords[state.Category]
	if !ok {
		return false
	}
	return containsAny(haystack, keywords)
}

// matchesCustomText narrows an "other" branch by free text; empty custom
// text passes everything through.
func matchesCustomText(custom string, fields ...string) bool {
	custom = strings.ToLower(strings.TrimSpace(custom))
	if custom == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), custom) {
			return true
		}
	}
	return false
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

func sortByLastName(profiles []*domain.Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].SortName() < profiles[j].SortName()
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
