package validation

import (
	"math"
	"testing"
)

func TestValidators(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	PositiveFloat("unit_cost", 0, v)
	NonNegativeFloat("margin", -1, v)
	Email("email", "not-an-email", v)
	OneOf("role", "root", []string{"admin", "user", "viewer"}, v)
	RangeFloat("rate", 11, 0, 10, v)

	want := map[string]string{
		"name":      "required",
		"unit_cost": "must_be_positive",
		"margin":    "must_not_be_negative",
		"email":     "invalid_email",
		"role":      "invalid_choice",
		"rate":      "out_of_range",
	}
	for field, code := range want {
		if v[field] != code {
			t.Errorf("%s = %q, want %q", field, v[field], code)
		}
	}
}

func TestValidatorsAccept(t *testing.T) {
	v := make(Violations)
	Required("name", "Polos", v)
	PositiveFloat("unit_cost", 8.5, v)
	NonNegativeFloat("margin", 0, v)
	Email("email", "admin@costopro.com", v)
	OneOf("role", "viewer", []string{"admin", "user", "viewer"}, v)
	if !v.Empty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestFirstViolationWins(t *testing.T) {
	v := make(Violations)
	Required("email", "", v)
	Email("email", "", v)
	if v["email"] != "required" {
		t.Fatalf("expected first code to be kept, got %q", v["email"])
	}
}

func TestPositiveFloatRejectsNaN(t *testing.T) {
	v := make(Violations)
	PositiveFloat("rate", math.NaN(), v)
	if v.Empty() {
		t.Fatal("NaN must not pass")
	}
}
