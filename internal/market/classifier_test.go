package market

import "testing"

func TestClassify_LimaTopBand(t *testing.T) {
	tests := []struct {
		suggested float64
		want      Status
	}{
		{20, StatusCompetitive},
		{15, StatusCheap},
		{30, StatusExpensive},
		{18, StatusCompetitive}, // low edge
		{25, StatusCompetitive}, // high edge
	}
	for _, tt := range tests {
		a := Classify(10, tt.suggested, "lima_top")
		if a == nil {
			t.Fatal("expected assessment")
		}
		if a.MarketLow != 18 || a.MarketHigh != 25 || a.MarketAverage != 21.5 {
			t.Fatalf("unexpected band figures %+v", a)
		}
		if a.Status != tt.want {
			t.Errorf("Classify(10, %v) = %s, want %s", tt.suggested, a.Status, tt.want)
		}
		if a.Message != tt.want.Message() || a.Message == "" {
			t.Errorf("message %q does not match status %s", a.Message, a.Status)
		}
		if a.ZoneLabel != "Lima Moderna: San Isidro / Miraflores" {
			t.Errorf("unexpected zone label %q", a.ZoneLabel)
		}
	}
}

func TestClassify_NoSignalWithoutUnitCost(t *testing.T) {
	for _, uc := range []float64{0, -1} {
		if a := Classify(uc, 10, "lima_top"); a != nil {
			t.Errorf("Classify(%v) = %+v, want nil", uc, a)
		}
	}
}

func TestClassify_UnknownZoneFallsBack(t *testing.T) {
	a := Classify(10, 13, "atlantis")
	want := Lookup(DefaultZone)
	if a.ZoneLabel != want.Label {
		t.Fatalf("expected default zone label, got %q", a.ZoneLabel)
	}
	if a.Status != StatusCompetitive {
		t.Fatalf("13 is inside [12.5, 14], got %s", a.Status)
	}
}

func TestClassify_StatusMatchesInterval(t *testing.T) {
	for _, z := range Zones() {
		for _, price := range []float64{0.5, 1, 12.5, 14, 16, 18, 22, 30} {
			a := Classify(10, price, z.ID)
			var want Status
			switch {
			case price < a.MarketLow:
				want = StatusCheap
			case price > a.MarketHigh:
				want = StatusExpensive
			default:
				want = StatusCompetitive
			}
			if a.Status != want {
				t.Errorf("zone %s price %v: got %s want %s", z.ID, price, a.Status, want)
			}
		}
	}
}

func TestZones(t *testing.T) {
	zs := Zones()
	if len(zs) != 11 {
		t.Fatalf("expected 11 zones, got %d", len(zs))
	}
	seen := map[string]bool{}
	for _, z := range zs {
		if seen[z.ID] {
			t.Errorf("duplicate zone %s", z.ID)
		}
		seen[z.ID] = true
		if z.Min <= 0 || z.Max < z.Min {
			t.Errorf("zone %s has invalid band %+v", z.ID, z.Band)
		}
	}
	// Callers get a copy.
	zs[0].Label = "changed"
	if Zones()[0].Label == "changed" {
		t.Error("Zones() must not expose the reference table")
	}
}
