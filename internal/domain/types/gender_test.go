package types

import "testing"

func TestGenderIsValid(t *testing.T) {
	cases := []struct {
		in   Gender
		want bool
	}{
		{GenderMale, true},
		{GenderFemale, true},
		{GenderOther, true},
		{Gender(""), false},
		{Gender("Male"), false}, // sensible a mayúsculas
		{Gender("unknown"), false},
	}
	for _, c := range cases {
		if got := c.in.IsValid(); got != c.want {
			t.Fatalf("IsValid(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
