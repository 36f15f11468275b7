package discovery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/villagehs/village-backend/internal/domain"
	"github.com/villagehs/village-backend/internal/geo"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func profile(userID int, name string, opts ...func(*domain.Profile)) *domain.Profile {
	p := &domain.Profile{
		UserID:      userID,
		DisplayName: name,
		AccountType: domain.AccountFamily,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func withType(t domain.AccountType) func(*domain.Profile) {
	return func(p *domain.Profile) { p.AccountType = t }
}

func withLocation(name string) func(*domain.Profile) {
	return func(p *domain.Profile) { p.LocationName = strPtr(name) }
}

func withCoords(lat, lon float64) func(*domain.Profile) {
	return func(p *domain.Profile) {
		p.LocationLat = f64Ptr(lat)
		p.LocationLon = f64Ptr(lon)
	}
}

func names(profiles []*domain.Profile) []string {
	var out []string
	for _, p := range profiles {
		out = append(out, p.DisplayName)
	}
	return out
}

func TestApply_RadiusFilter(t *testing.T) {
	geelong := &geo.Coordinates{Lat: -38.1479, Lon: 144.3599}

	candidates := []*domain.Profile{
		profile(1, "Torquay Family", withCoords(-38.3305, 144.3256)),
		profile(2, "Nowhere Family"), // no coordinates, no location name
	}

	// ~20.5 km away: excluded at 15 km.
	got := Apply(candidates, nil, FilterState{RadiusKm: 15}, Exclusions{}, geelong)
	if len(got) != 0 {
		t.Errorf("radius 15: expected no results, got %v", names(got))
	}

	// Included at 25 km; the unlocatable candidate stays excluded at any
	// radius.
	got = Apply(candidates, nil, FilterState{RadiusKm: 25}, Exclusions{}, geelong)
	if diff := cmp.Diff([]string{"Torquay Family"}, names(got)); diff != "" {
		t.Errorf("radius 25 mismatch (-want +got):\n%s", diff)
	}

	got = Apply(candidates, nil, FilterState{RadiusKm: 10000}, Exclusions{}, geelong)
	for _, p := range got {
		if p.UserID == 2 {
			t.Error("unlocatable candidate must never appear in radius results")
		}
	}
}

func TestApply_GazetteerFallbackForRadius(t *testing.T) {
	geelong := &geo.Coordinates{Lat: -38.1479, Lon: 144.3599}

	// No stored coordinates: the suburb name resolves via the gazetteer.
	candidates := []*domain.Profile{
		profile(1, "Torquay Family", withLocation("Torquay")),
	}

	got := Apply(candidates, nil, FilterState{RadiusKm: 25}, Exclusions{}, geelong)
	if len(got) != 1 {
		t.Errorf("expected gazetteer-resolved candidate within 25 km, got %v", names(got))
	}
}

func TestApply_LocationTextFallback(t *testing.T) {
	candidates := []*domain.Profile{
		profile(1, "A", withLocation("Ocean Grove")),
		profile(2, "B", withLocation("Ballarat")),
		profile(3, "C"),
	}

	got := Apply(candidates, nil, FilterState{LocationText: "ocean"}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"A"}, names(got)); diff != "" {
		t.Errorf("location text mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_SearchOverrideIgnoresOtherFilters(t *testing.T) {
	candidates := []*domain.Profile{
		profile(1, "Sarah Thompson", withType(domain.AccountTeacher), withLocation("Ballarat")),
		profile(2, "Tom Sawyer"),
	}

	base := FilterState{Search: "thompson"}
	want := Apply(candidates, nil, base, Exclusions{}, nil)
	if len(want) != 1 || want[0].UserID != 1 {
		t.Fatalf("search should find Sarah Thompson, got %v", names(want))
	}

	// Toggling any other control has no effect while the query is active.
	variants := []FilterState{
		{Search: "thompson", Tab: TabFamily},
		{Search: "thompson", Tab: TabBusiness, Category: "playspace"},
		{Search: "thompson", RadiusKm: 1, LocationText: "nowhere"},
		{Search: "thompson", AgeMin: 3, AgeMax: 5},
	}
	origin := &geo.Coordinates{Lat: 0, Lon: 0}
	viewer := profile(99, "Viewer")
	viewer.ChildAges = []int64{7}

	for i, state := range variants {
		got := Apply(candidates, viewer, state, Exclusions{}, origin)
		if diff := cmp.Diff(names(want), names(got)); diff != "" {
			t.Errorf("variant %d changed search results (-want +got):\n%s", i, diff)
		}
	}
}

func TestApply_SearchStillRespectsHiddenList(t *testing.T) {
	candidates := []*domain.Profile{
		profile(1, "Sarah Thompson"),
		profile(2, "Theo Thompson"),
	}

	prefs := &domain.ViewerPrefs{HiddenUserIDs: []int{2}}
	got := Apply(candidates, nil, FilterState{Search: "thompson"}, Exclusions{Hidden: prefs}, nil)
	if diff := cmp.Diff([]string{"Sarah Thompson"}, names(got)); diff != "" {
		t.Errorf("hidden exclusion mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_ConnectedExclusion(t *testing.T) {
	candidates := []*domain.Profile{
		profile(1, "Accepted"),
		profile(2, "Pending"),
		profile(3, "Stranger"),
	}

	ex := Exclusions{
		Connections: map[int]domain.ConnectionInfo{
			1: {Status: domain.ConnectionAccepted, IsRequester: true},
			2: {Status: domain.ConnectionPending, IsRequester: false},
		},
	}

	got := Apply(candidates, nil, FilterState{}, ex, nil)
	if diff := cmp.Diff([]string{"Pending", "Stranger"}, names(got)); diff != "" {
		t.Errorf("connected exclusion mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_AgeOverlap(t *testing.T) {
	viewer := profile(99, "Viewer")
	viewer.ChildAges = []int64{6, 9}

	inRange := profile(1, "In Range")
	inRange.ChildAges = []int64{4, 8}
	outOfRange := profile(2, "Out Of Range")
	outOfRange.ChildAges = []int64{15}
	noKids := profile(3, "No Kids")

	state := FilterState{AgeMin: 5, AgeMax: 10}
	got := Apply([]*domain.Profile{inRange, outOfRange, noKids}, viewer, state, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"In Range"}, names(got)); diff != "" {
		t.Errorf("age overlap mismatch (-want +got):\n%s", diff)
	}

	// Viewer without children: the stage is inactive.
	childless := profile(98, "Childless Viewer")
	got = Apply([]*domain.Profile{inRange, outOfRange, noKids}, childless, state, Exclusions{}, nil)
	if len(got) != 3 {
		t.Errorf("age stage should be inactive for childless viewer, got %v", names(got))
	}
}

func TestApply_TabBucketCollapse(t *testing.T) {
	candidates := []*domain.Profile{
		profile(1, "Biz", withType(domain.AccountBusiness)),
		profile(2, "Event Host", withType(domain.AccountEvent)),
		profile(3, "Facility", withType(domain.AccountFacility)),
		profile(4, "Family"),
	}

	// Event and facility accounts pass the business tab.
	got := Apply(candidates, nil, FilterState{Tab: TabBusiness}, Exclusions{}, nil)
	// sortNames yields SortName() values, which are lowercased last tokens.
	if diff := cmp.Diff([]string{"biz", "facility", "host"}, sortNames(got)); diff != "" {
		t.Errorf("business tab mismatch (-want +got):\n%s", diff)
	}

	got = Apply(candidates, nil, FilterState{Tab: TabAll}, Exclusions{}, nil)
	if len(got) != 4 {
		t.Errorf("all tab should pass everyone, got %v", names(got))
	}
}

func sortNames(profiles []*domain.Profile) []string {
	var out []string
	for _, p := range profiles {
		out = append(out, p.SortName())
	}
	return out
}

func TestApply_TeacherPrimaryBrackets(t *testing.T) {
	// Legacy records store age groups with en dashes; they must still match.
	primary := profile(1, "Primary Teacher", withType(domain.AccountTeacher))
	primary.AgeGroupsTaught = []string{"5–7"}
	high := profile(2, "High Teacher", withType(domain.AccountTeacher))
	high.AgeGroupsTaught = []string{"17–18"}

	got := Apply([]*domain.Profile{primary, high}, nil,
		FilterState{Tab: TabTeacher, TeacherGroup: "primary"}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"Primary Teacher"}, names(got)); diff != "" {
		t.Errorf("primary bracket mismatch (-want +got):\n%s", diff)
	}

	got = Apply([]*domain.Profile{primary, high}, nil,
		FilterState{Tab: TabTeacher, TeacherGroup: "high"}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"High Teacher"}, names(got)); diff != "" {
		t.Errorf("high bracket mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_TeacherOtherIsComplement(t *testing.T) {
	bracketless := profile(1, "Tutor", withType(domain.AccountTeacher))
	bracketless.Subjects = []string{"Chess"}
	primary := profile(2, "Primary", withType(domain.AccountTeacher))
	primary.AgeGroupsTaught = []string{"8-10"}

	got := Apply([]*domain.Profile{bracketless, primary}, nil,
		FilterState{Tab: TabTeacher, TeacherGroup: SubOther}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"Tutor"}, names(got)); diff != "" {
		t.Errorf("teacher other mismatch (-want +got):\n%s", diff)
	}

	// Custom text narrows the other branch against bio/subjects.
	got = Apply([]*domain.Profile{bracketless, primary}, nil,
		FilterState{Tab: TabTeacher, TeacherGroup: SubOther, TeacherCustom: "chess"}, Exclusions{}, nil)
	if len(got) != 1 {
		t.Errorf("custom narrowing should keep the chess tutor, got %v", names(got))
	}
	got = Apply([]*domain.Profile{bracketless, primary}, nil,
		FilterState{Tab: TabTeacher, TeacherGroup: SubOther, TeacherCustom: "robotics"}, Exclusions{}, nil)
	if len(got) != 0 {
		t.Errorf("custom narrowing should drop non-matching tutors, got %v", names(got))
	}
}

func TestApply_ExtracurricularPassesThrough(t *testing.T) {
	a := profile(1, "A", withType(domain.AccountTeacher))
	a.Subjects = []string{"Piano"}
	b := profile(2, "B", withType(domain.AccountTeacher))
	b.Subjects = []string{"Soccer"}

	// Extracurricular itself passes everyone; the subject filter narrows.
	got := Apply([]*domain.Profile{a, b}, nil,
		FilterState{Tab: TabTeacher, TeacherGroup: "extracurricular"}, Exclusions{}, nil)
	if len(got) != 2 {
		t.Fatalf("extracurricular should pass everyone, got %v", names(got))
	}

	got = Apply([]*domain.Profile{a, b}, nil,
		FilterState{Tab: TabTeacher, TeacherGroup: "extracurricular", Subject: "music"}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"A"}, names(got)); diff != "" {
		t.Errorf("subject narrowing mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_FamilyStatusFilter(t *testing.T) {
	fresh := profile(1, "Fresh", withType(domain.AccountFamily))
	fresh.StatusRaw = strPtr("new")
	veteran := profile(2, "Veteran", withType(domain.AccountFamily))
	veteran.StatusRaw = strPtr(`["experienced","considering"]`)
	custom := profile(3, "Custom", withType(domain.AccountFamily))
	custom.StatusRaw = strPtr("worldschooling")

	all := []*domain.Profile{fresh, veteran, custom}

	got := Apply(all, nil, FilterState{Tab: TabFamily, Status: "experienced"}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"Veteran"}, names(got)); diff != "" {
		t.Errorf("known status mismatch (-want +got):\n%s", diff)
	}

	// "Other" = no tag from the known set, not a stored value.
	got = Apply(all, nil, FilterState{Tab: TabFamily, Status: SubOther}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"Custom"}, names(got)); diff != "" {
		t.Errorf("status other mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_ApproachComposesWithStatus(t *testing.T) {
	a := profile(1, "A Charlotte", withType(domain.AccountFamily))
	a.StatusRaw = strPtr("new")
	a.Approaches = []string{"Charlotte Mason"}
	b := profile(2, "B Unschooler", withType(domain.AccountFamily))
	b.StatusRaw = strPtr("new")
	b.Approaches = []string{"Unschooling"}

	got := Apply([]*domain.Profile{a, b}, nil,
		FilterState{Tab: TabFamily, Status: "new", Approach: "charlotte mason"}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"A Charlotte"}, names(got)); diff != "" {
		t.Errorf("approach composition mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_BusinessCategoryOtherIsComplement(t *testing.T) {
	play := profile(1, "Play Biz", withType(domain.AccountBusiness))
	play.Services = strPtr("Indoor playspace for families")
	tutor := profile(2, "Tutor Biz", withType(domain.AccountBusiness))
	tutor.Services = strPtr("Tutoring and classes")
	niche := profile(3, "Niche Biz", withType(domain.AccountBusiness))
	niche.Services = strPtr("Pony rides")

	all := []*domain.Profile{play, tutor, niche}

	got := Apply(all, nil, FilterState{Tab: TabBusiness, Category: "playspace"}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"Play Biz"}, names(got)); diff != "" {
		t.Errorf("playspace category mismatch (-want +got):\n%s", diff)
	}

	got = Apply(all, nil, FilterState{Tab: TabBusiness, Category: SubOther}, Exclusions{}, nil)
	if diff := cmp.Diff([]string{"Niche Biz"}, names(got)); diff != "" {
		t.Errorf("business other mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_SortByLastNameToken(t *testing.T) {
	candidates := []*domain.Profile{
		profile(1, "Zoe Adams"),
		profile(2, "Cher"),
		profile(3, "Amy Zhang"),
		profile(4, "Ben adams"),
	}

	got := Apply(candidates, nil, FilterState{}, Exclusions{}, nil)
	want := []string{"Zoe Adams", "Ben adams", "Cher", "Amy Zhang"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
}
