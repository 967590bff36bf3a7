package schedule

import (
	"testing"

	"greenhouse_control/internal/models"
)

func TestAddMinutes(t *testing.T) {
	cases := []struct {
		name    string
		in      models.TimeOfDay
		minutes int
		want    models.TimeOfDay
	}{
		{"no_carry", models.TimeOfDay{Hour: 8, Minute: 0}, 20, models.TimeOfDay{Hour: 8, Minute: 20}},
		{"exact_hour", models.TimeOfDay{Hour: 8, Minute: 40}, 20, models.TimeOfDay{Hour: 9, Minute: 0}},
		{"carry", models.TimeOfDay{Hour: 8, Minute: 50}, 20, models.TimeOfDay{Hour: 9, Minute: 10}},
		{"midnight_wrap", models.TimeOfDay{Hour: 23, Minute: 50}, 20, models.TimeOfDay{Hour: 0, Minute: 10}},
		{"max_byte", models.TimeOfDay{Hour: 0, Minute: 0}, 255, models.TimeOfDay{Hour: 4, Minute: 15}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AddMinutes(tc.in, tc.minutes)
			if got != tc.want {
				t.Fatalf("AddMinutes(%v, %d) = %v, want %v", tc.in, tc.minutes, got, tc.want)
			}
		})
	}
}

func TestLegacyAddMinutes(t *testing.T) {
	cases := []struct {
		name         string
		in           models.TimeOfDay
		minutes      int
		wantPacked   int
		wantOverflow bool
	}{
		{"no_carry", models.TimeOfDay{Hour: 8, Minute: 0}, 20, 820, false},
		{"sixty_is_not_carried", models.TimeOfDay{Hour: 8, Minute: 40}, 20, 860, false},
		{"carry_leaves_domain", models.TimeOfDay{Hour: 8, Minute: 50}, 20, LegacyMaxPacked, true},
		{"whole_hour_leaves_domain", models.TimeOfDay{Hour: 10, Minute: 0}, 60, LegacyMaxPacked, true},
		{"zero", models.TimeOfDay{Hour: 10, Minute: 0}, 0, 1000, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ov := LegacyAddMinutes(tc.in, tc.minutes)
			if got != tc.wantPacked || ov != tc.wantOverflow {
				t.Fatalf("LegacyAddMinutes(%v, %d) = (%d, %v), want (%d, %v)",
					tc.in, tc.minutes, got, ov, tc.wantPacked, tc.wantOverflow)
			}
		})
	}
}

func TestParseArithmetic(t *testing.T) {
	if ParseArithmetic("legacy") != Legacy {
		t.Fatalf("expected legacy")
	}
	if ParseArithmetic("minutes") != Minutes {
		t.Fatalf("expected minutes")
	}
	if ParseArithmetic("bogus") != Minutes {
		t.Fatalf("unknown value should fall back to minutes")
	}
}
