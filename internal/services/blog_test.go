package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Managing Seasonal Allergies!  ", "managing-seasonal-allergies"},
		{"Q&A: What to Expect", "q-a-what-to-expect"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
