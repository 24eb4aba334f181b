package services

import "testing"

func TestComputeInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Dana Whitfield", "DW"},
		{"dana whitfield", "DW"},
		{"Cher", "C"},
		{"Mary Jo van der Berg", "MB"},
		{"   ", "?"},
		{"", "?"},
	}
	for _, tc := range cases {
		if got := computeInitials(tc.name); got != tc.want {
			t.Errorf("computeInitials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestColorForNameIsStable(t *testing.T) {
	a := colorForName("Dana Whitfield")
	b := colorForName("  DANA WHITFIELD ")
	if a != b {
		t.Fatalf("color differs for normalized name: %v vs %v", a, b)
	}
	for i := 0; i < 10; i++ {
		if colorForName("Dana Whitfield") != a {
			t.Fatal("color not deterministic")
		}
	}
}
