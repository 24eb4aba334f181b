package ordering

import (
	"testing"

	"github.com/google/uuid"
)

func ptr(v int64) *int64 { return &v }

func TestSortedOrderAscending(t *testing.T) {
	entries := []Entry{
		{ID: uuid.New(), Label: "C", Order: ptr(3)},
		{ID: uuid.New(), Label: "A", Order: ptr(1)},
		{ID: uuid.New(), Label: "B", Order: ptr(2)},
	}
	got := Sorted(entries)
	for i, want := range []string{"A", "B", "C"} {
		if got[i].Label != want {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Label, want)
		}
	}
}

func TestSortedUnsetValuesLast(t *testing.T) {
	entries := []Entry{
		{ID: uuid.New(), Label: "unset-b", Order: nil},
		{ID: uuid.New(), Label: "second", Order: ptr(2)},
		{ID: uuid.New(), Label: "zero", Order: ptr(0)},
		{ID: uuid.New(), Label: "first", Order: ptr(1)},
		{ID: uuid.New(), Label: "unset-a", Order: nil},
	}
	got := Sorted(entries)
	want := []string{"first", "second", "unset-a", "unset-b", "zero"}
	for i := range want {
		if got[i].Label != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, got[i].Label, want[i])
		}
	}
}

func TestSortedTieBreakByLabel(t *testing.T) {
	entries := []Entry{
		{ID: uuid.New(), Label: "beta", Order: ptr(1)},
		{ID: uuid.New(), Label: "alpha", Order: ptr(1)},
	}
	got := Sorted(entries)
	if got[0].Label != "alpha" || got[1].Label != "beta" {
		t.Fatalf("tie-break: got [%q %q]", got[0].Label, got[1].Label)
	}
}

func TestSortedCaseSensitive(t *testing.T) {
	// Uppercase sorts before lowercase, as stored.
	entries := []Entry{
		{ID: uuid.New(), Label: "apple", Order: nil},
		{ID: uuid.New(), Label: "Banana", Order: nil},
	}
	got := Sorted(entries)
	if got[0].Label != "Banana" {
		t.Fatalf("expected case-sensitive sort, got %q first", got[0].Label)
	}
}

func TestSortedDoesNotMutateInput(t *testing.T) {
	entries := []Entry{
		{ID: uuid.New(), Label: "B", Order: ptr(2)},
		{ID: uuid.New(), Label: "A", Order: ptr(1)},
	}
	_ = Sorted(entries)
	if entries[0].Label != "B" {
		t.Fatalf("input slice was reordered")
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{in: "up", want: Up},
		{in: "DOWN", want: Down},
		{in: " up ", want: Up},
		{in: "sideways", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseDirection(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDirection(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDirection(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDirection(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}
