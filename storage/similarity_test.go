package storage

import (
	"math"
	"testing"

	"location-stories/types"
)

func TestNormalizeText(t *testing.T) {
	cases := map[string]string{
		"  Hello,   World! ":        "hello world",
		"Café—Au Lait":              "café au lait",
		"":                          "",
		"...":                       "",
		"Route 66: The Mother Road": "route 66 the mother road",
	}
	for in, want := range cases {
		if got := NormalizeText(in); got != want {
			t.Errorf("NormalizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFingerprintDistinguishesVariants(t *testing.T) {
	desc := descInput(t, "Old Mill")
	poi := poiInput(t, "Old Mill", types.CategoryHistorical, 0, 0)
	if Fingerprint(*desc) == Fingerprint(*poi) {
		t.Error("description and structured inputs share a fingerprint")
	}
	if Fingerprint(*desc) != Fingerprint(*descInput(t, "old   mill!")) {
		t.Error("normalized descriptions should share a fingerprint")
	}
}

func TestSimilarityStructuredDecaysWithDistance(t *testing.T) {
	a := poiInput(t, "Tower", types.CategoryArchitectural, 48.8584, 2.2945)
	same := poiInput(t, "Tower", types.CategoryArchitectural, 48.8584, 2.2945)
	if got := Similarity(*a, *same, DefaultMatchRadiusMeters); got != 1 {
		t.Errorf("identical location score = %v, want 1", got)
	}

	// roughly 50 m north
	near := poiInput(t, "Tower", types.CategoryArchitectural, 48.85885, 2.2945)
	got := Similarity(*a, *near, DefaultMatchRadiusMeters)
	if got < 0.85 || got > 0.95 {
		t.Errorf("50m score = %v, want about 0.9", got)
	}

	edge := Similarity(*a, *poiInput(t, "Tower", types.CategoryArchitectural, 48.8594, 2.2945), DefaultMatchRadiusMeters)
	if edge != 0 {
		t.Errorf("111m score = %v, want 0", edge)
	}
}

func TestSimilarityStructuredRequiresSameName(t *testing.T) {
	a := poiInput(t, "Old City Hall", types.CategoryHistorical, 40.7128, -74.0060)
	tests := []struct {
		name string
		b    *types.ContentInput
		want float64
	}{
		{"same name", poiInput(t, "old city hall.", types.CategoryHistorical, 40.7128, -74.0060), 1},
		{"neighbour", poiInput(t, "Historic Downtown", types.CategoryHistorical, 40.7128, -74.0060), 0},
		{"other category", poiInput(t, "Old City Hall", types.CategoryCultural, 40.7128, -74.0060), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(*a, *tt.b, DefaultMatchRadiusMeters); got != tt.want {
				t.Errorf("Similarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHaversineMeters(t *testing.T) {
	// one degree of latitude is about 111.2 km
	d := haversineMeters(0, 0, 1, 0)
	if math.Abs(d-111195) > 100 {
		t.Errorf("distance = %v, want about 111195", d)
	}
}
