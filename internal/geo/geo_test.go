package geo

import (
	"math"
	"testing"
)

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := []struct {
		name string
		a, b Coordinates
	}{
		{"geelong-torquay", Coordinates{-38.1479, 144.3599}, Coordinates{-38.3305, 144.3256}},
		{"melbourne-sydney", Coordinates{-37.8136, 144.9631}, Coordinates{-33.8688, 151.2093}},
		{"equator-crossing", Coordinates{10, 20}, Coordinates{-10, -20}},
	}

	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			ab := DistanceKm(tc.a, tc.b)
			ba := DistanceKm(tc.b, tc.a)
			if ab != ba {
				t.Errorf("distance not symmetric: %v vs %v", ab, ba)
			}
		})
	}
}

func TestDistanceKm_ZeroForIdenticalPoints(t *testing.T) {
	p := Coordinates{-38.1479, 144.3599}
	if d := DistanceKm(p, p); d != 0 {
		t.Errorf("expected 0 for identical points, got %v", d)
	}
}

func TestDistanceKm_GeelongTorquay(t *testing.T) {
	geelong := Coordinates{-38.1479, 144.3599}
	torquay := Coordinates{-38.3305, 144.3256}

	// The haversine distance between these points is ~20.5 km (the oft-quoted
	// "22 km" is road distance). What matters for the radius filter is the
	// band: excluded at 15 km, included at 25 km.
	d := DistanceKm(geelong, torquay)
	if d <= 15 {
		t.Errorf("distance %v should exceed a 15 km radius", d)
	}
	if d > 25 {
		t.Errorf("distance %v should be within a 25 km radius", d)
	}
	if math.Abs(d-20.5) > 0.5 {
		t.Errorf("expected ~20.5 km between Geelong and Torquay, got %v", d)
	}
}

func TestLookup_ExactMatch(t *testing.T) {
	coords, ok := Lookup("Torquay")
	if !ok {
		t.Fatal("expected Torquay in gazetteer")
	}
	if coords.Lat != -38.3305 || coords.Lon != 144.3256 {
		t.Errorf("unexpected coordinates: %+v", coords)
	}
}

func TestLookup_CaseAndWhitespaceNormalization(t *testing.T) {
	want, ok := Lookup("Geelong")
	if !ok {
		t.Fatal("expected Geelong in gazetteer")
	}

	// Different casing and surrounding whitespace must resolve to the same
	// entry.
	for _, name := range []string{"geelong", "GEELONG", "  Geelong  ", "\tgeelong\n"} {
		got, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q) missed", name)
			continue
		}
		if got != want {
			t.Errorf("Lookup(%q) = %+v, want %+v", name, got, want)
		}
	}
}

func TestLookup_SubstringFallback(t *testing.T) {
	want, _ := Lookup("Geelong")
	got, ok := Lookup("Geelong West")
	if !ok {
		t.Fatal("expected substring fallback to resolve 'Geelong West'")
	}
	if got != want {
		t.Errorf("substring fallback resolved to %+v, want %+v", got, want)
	}
}

func TestLookup_MissReturnsNotFound(t *testing.T) {
	if _, ok := Lookup("Atlantis"); ok {
		t.Error("expected miss for unknown location")
	}
	if _, ok := Lookup(""); ok {
		t.Error("expected miss for empty location")
	}
	if _, ok := Lookup("   "); ok {
		t.Error("expected miss for blank location")
	}
}
