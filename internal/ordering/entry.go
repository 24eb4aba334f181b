package ordering

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is the minimal projection of an orderable row: identity, the label used
// as tie-break key, and the stored order value (nil or zero means unset).
type Entry struct {
	ID    uuid.UUID
	Label string
	Order *int64
}

// HasOrder reports whether the entry carries a usable order value.
func (e Entry) HasOrder() bool {
	return e.Order != nil && *e.Order != 0
}

// Store is implemented by every orderable repo. UpdateOrderIf must match the
// row's current order value (nil-safe comparison) and report a conflict when
// zero rows match.
type Store interface {
	ListKey() string
	ListEntries(ctx context.Context, tx *gorm.DB) ([]Entry, error)
	UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int64) error
	UpdateOrderIf(ctx context.Context, tx *gorm.DB, id uuid.UUID, next int64, expected *int64) error
}

type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Sorted returns the entries in display order: order ascending with unset
// values last, label ascending (case-sensitive) as tie-break. Every list read
// in the repo goes through this one policy.
func Sorted(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := out[i], out[j]
		switch {
		case ei.HasOrder() && ej.HasOrder():
			if *ei.Order != *ej.Order {
				return *ei.Order < *ej.Order
			}
			return ei.Label < ej.Label
		case ei.HasOrder():
			return true
		case ej.HasOrder():
			return false
		default:
			return ei.Label < ej.Label
		}
	})
	return out
}

// Less reports whether (aOrder, aLabel) sorts before (bOrder, bLabel) under
// the display-order policy. Services use it to sort full rows without going
// through Entry.
func Less(aOrder *int64, aLabel string, bOrder *int64, bLabel string) bool {
	aHas := aOrder != nil && *aOrder != 0
	bHas := bOrder != nil && *bOrder != 0
	switch {
	case aHas && bHas:
		if *aOrder != *bOrder {
			return *aOrder < *bOrder
		}
		return aLabel < bLabel
	case aHas:
		return true
	case bHas:
		return false
	default:
		return aLabel < bLabel
	}
}

// sortedByLabel is the normalization order: pure alphabetic, ignoring any
// partially assigned order values.
func sortedByLabel(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}
