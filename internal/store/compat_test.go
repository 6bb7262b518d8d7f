package store

import "testing"

func TestIsCompatibleSameType(t *testing.T) {
	for _, bt := range BloodTypes() {
		if !IsCompatible(bt, bt) {
			t.Errorf("IsCompatible(%q, %q) = false, want true", bt, bt)
		}
	}
}

func TestIsCompatibleUniversalDonor(t *testing.T) {
	for _, bt := range BloodTypes() {
		if !IsCompatible("O-", bt) {
			t.Errorf("IsCompatible(O-, %q) = false, want true", bt)
		}
	}
}

func TestIsCompatibleABPlus(t *testing.T) {
	for _, bt := range BloodTypes() {
		want := bt == "AB+"
		if got := IsCompatible("AB+", bt); got != want {
			t.Errorf("IsCompatible(AB+, %q) = %v, want %v", bt, got, want)
		}
	}
}

func TestIsCompatibleTable(t *testing.T) {
	cases := []struct {
		donor string
		want  map[string]bool
	}{
		{"O+", map[string]bool{"O+": true, "A+": true, "B+": true, "AB+": true}},
		{"A-", map[string]bool{"A-": true, "A+": true, "AB-": true, "AB+": true}},
		{"A+", map[string]bool{"A+": true, "AB+": true}},
		{"B-", map[string]bool{"B-": true, "B+": true, "AB-": true, "AB+": true}},
		{"B+", map[string]bool{"B+": true, "AB+": true}},
		{"AB-", map[string]bool{"AB-": true, "AB+": true}},
	}

	for _, tc := range cases {
		for _, needed := range BloodTypes() {
			if got := IsCompatible(tc.donor, needed); got != tc.want[needed] {
				t.Errorf("IsCompatible(%q, %q) = %v, want %v", tc.donor, needed, got, tc.want[needed])
			}
		}
	}
}

func TestIsCompatibleEmptyAndUnknown(t *testing.T) {
	cases := [][2]string{
		{"", "A+"},
		{"A+", ""},
		{"", ""},
		{"C+", "A+"},
		{"A+", "C+"},
		{"o-", "A+"},
	}
	for _, tc := range cases {
		if IsCompatible(tc[0], tc[1]) {
			t.Errorf("IsCompatible(%q, %q) = true, want false", tc[0], tc[1])
		}
	}
}
