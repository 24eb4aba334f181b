package ordering

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/data/storeerr"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// fakeStore keeps entries in memory and applies the same nil-safe optimistic
// check the repos use.
type fakeStore struct {
	key  string
	rows []Entry

	updateErrFor   map[uuid.UUID]error // unconditional UpdateOrder failures
	updateIfErrFor map[uuid.UUID]error // conditional UpdateOrderIf failures
	writes         int
}

func newFakeStore(rows ...Entry) *fakeStore {
	return &fakeStore{
		key:            "fake",
		rows:           rows,
		updateErrFor:   map[uuid.UUID]error{},
		updateIfErrFor: map[uuid.UUID]error{},
	}
}

func (s *fakeStore) ListKey() string { return s.key }

func (s *fakeStore) ListEntries(ctx context.Context, tx *gorm.DB) ([]Entry, error) {
	out := make([]Entry, len(s.rows))
	for i, r := range s.rows {
		e := Entry{ID: r.ID, Label: r.Label}
		if r.Order != nil {
			v := *r.Order
			e.Order = &v
		}
		out[i] = e
	}
	return out, nil
}

func (s *fakeStore) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int64) error {
	if err := s.updateErrFor[id]; err != nil {
		return err
	}
	for i := range s.rows {
		if s.rows[i].ID == id {
			v := order
			s.rows[i].Order = &v
			s.writes++
			return nil
		}
	}
	return storeerr.NotFound("fake.update_order", "entry")
}

func (s *fakeStore) UpdateOrderIf(ctx context.Context, tx *gorm.DB, id uuid.UUID, next int64, expected *int64) error {
	if err := s.updateIfErrFor[id]; err != nil {
		return err
	}
	for i := range s.rows {
		if s.rows[i].ID != id {
			continue
		}
		cur := s.rows[i].Order
		match := (cur == nil && expected == nil) ||
			(cur != nil && expected != nil && *cur == *expected)
		if !match {
			return storeerr.Conflict("fake.update_order_if", "order value changed concurrently")
		}
		v := next
		s.rows[i].Order = &v
		s.writes++
		return nil
	}
	return storeerr.NotFound("fake.update_order_if", "entry")
}

func (s *fakeStore) orderOf(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	for _, r := range s.rows {
		if r.ID == id {
			if r.Order == nil {
				t.Fatalf("entry %s has no order", id)
			}
			return *r.Order
		}
	}
	t.Fatalf("entry %s not found", id)
	return 0
}

func threeDense() (*fakeStore, uuid.UUID, uuid.UUID, uuid.UUID) {
	id1, id2, id3 := uuid.New(), uuid.New(), uuid.New()
	store := newFakeStore(
		Entry{ID: id1, Label: "A", Order: ptr(1)},
		Entry{ID: id2, Label: "B", Order: ptr(2)},
		Entry{ID: id3, Label: "C", Order: ptr(3)},
	)
	return store, id1, id2, id3
}

func TestNormalizeAssignsAlphabeticSequence(t *testing.T) {
	idC, idA, idB := uuid.New(), uuid.New(), uuid.New()
	store := newFakeStore(
		Entry{ID: idC, Label: "C"},
		Entry{ID: idA, Label: "A"},
		Entry{ID: idB, Label: "B"},
	)
	engine := NewEngine(nil, testLogger(t))

	changed, err := engine.Normalize(context.Background(), store)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !changed {
		t.Fatalf("Normalize: expected changes")
	}
	if got := store.orderOf(t, idA); got != 1 {
		t.Fatalf("A order=%d, want 1", got)
	}
	if got := store.orderOf(t, idB); got != 2 {
		t.Fatalf("B order=%d, want 2", got)
	}
	if got := store.orderOf(t, idC); got != 3 {
		t.Fatalf("C order=%d, want 3", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	store := newFakeStore(
		Entry{ID: uuid.New(), Label: "B"},
		Entry{ID: uuid.New(), Label: "A"},
	)
	engine := NewEngine(nil, testLogger(t))
	ctx := context.Background()

	if _, err := engine.Normalize(ctx, store); err != nil {
		t.Fatalf("first Normalize: %v", err)
	}
	writesAfterFirst := store.writes

	changed, err := engine.Normalize(ctx, store)
	if err != nil {
		t.Fatalf("second Normalize: %v", err)
	}
	if changed {
		t.Fatalf("second Normalize: expected no changes")
	}
	if store.writes != writesAfterFirst {
		t.Fatalf("second Normalize issued %d extra writes", store.writes-writesAfterFirst)
	}
}

func TestNormalizeZeroTreatedAsUnset(t *testing.T) {
	idA, idB := uuid.New(), uuid.New()
	store := newFakeStore(
		Entry{ID: idB, Label: "B", Order: ptr(0)},
		Entry{ID: idA, Label: "A", Order: ptr(5)},
	)
	engine := NewEngine(nil, testLogger(t))

	changed, err := engine.Normalize(context.Background(), store)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !changed {
		t.Fatalf("expected zero order to trigger normalization")
	}
	if got := store.orderOf(t, idA); got != 1 {
		t.Fatalf("A order=%d, want 1", got)
	}
	if got := store.orderOf(t, idB); got != 2 {
		t.Fatalf("B order=%d, want 2", got)
	}
}

func TestNormalizeSwallowsMissingColumnWrites(t *testing.T) {
	idA, idB := uuid.New(), uuid.New()
	store := newFakeStore(
		Entry{ID: idA, Label: "A"},
		Entry{ID: idB, Label: "B"},
	)
	store.updateErrFor[idA] = &pgconn.PgError{Code: "42703", Message: `column "order" does not exist`}
	engine := NewEngine(nil, testLogger(t))

	changed, err := engine.Normalize(context.Background(), store)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !changed {
		t.Fatalf("expected normalization attempt")
	}
	// B's write still landed.
	if got := store.orderOf(t, idB); got != 2 {
		t.Fatalf("B order=%d, want 2", got)
	}
}

func TestNormalizeAbortsOnOtherFailures(t *testing.T) {
	idA := uuid.New()
	store := newFakeStore(Entry{ID: idA, Label: "A"})
	store.updateErrFor[idA] = errors.New("connection refused")
	engine := NewEngine(nil, testLogger(t))

	if _, err := engine.Normalize(context.Background(), store); err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestMoveUpFirstIsRejected(t *testing.T) {
	store, id1, _, _ := threeDense()
	engine := NewEngine(nil, testLogger(t))

	err := engine.Move(context.Background(), store, id1, Up)
	if !errors.Is(err, ErrAtTop) {
		t.Fatalf("got %v, want ErrAtTop", err)
	}
	if store.writes != 0 {
		t.Fatalf("boundary move issued %d writes", store.writes)
	}
}

func TestMoveDownLastIsRejected(t *testing.T) {
	store, _, _, id3 := threeDense()
	engine := NewEngine(nil, testLogger(t))

	err := engine.Move(context.Background(), store, id3, Down)
	if !errors.Is(err, ErrAtBottom) {
		t.Fatalf("got %v, want ErrAtBottom", err)
	}
	if store.writes != 0 {
		t.Fatalf("boundary move issued %d writes", store.writes)
	}
}

func TestMoveSingleRecordRejected(t *testing.T) {
	id := uuid.New()
	store := newFakeStore(Entry{ID: id, Label: "only", Order: ptr(1)})
	engine := NewEngine(nil, testLogger(t))
	ctx := context.Background()

	if err := engine.Move(ctx, store, id, Up); !errors.Is(err, ErrAtTop) {
		t.Fatalf("move up: got %v, want ErrAtTop", err)
	}
	if err := engine.Move(ctx, store, id, Down); !errors.Is(err, ErrAtBottom) {
		t.Fatalf("move down: got %v, want ErrAtBottom", err)
	}
}

func TestMoveUpSwapsAdjacentPair(t *testing.T) {
	store, id1, id2, id3 := threeDense()
	engine := NewEngine(nil, testLogger(t))

	if err := engine.Move(context.Background(), store, id2, Up); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got := store.orderOf(t, id1); got != 2 {
		t.Fatalf("id1 order=%d, want 2", got)
	}
	if got := store.orderOf(t, id2); got != 1 {
		t.Fatalf("id2 order=%d, want 1", got)
	}
	if got := store.orderOf(t, id3); got != 3 {
		t.Fatalf("id3 order=%d, want 3", got)
	}

	entries, _ := store.ListEntries(context.Background(), nil)
	sorted := Sorted(entries)
	want := []string{"B", "A", "C"}
	for i := range want {
		if sorted[i].Label != want[i] {
			t.Fatalf("display position %d: got %q, want %q", i, sorted[i].Label, want[i])
		}
	}
}

func TestMoveUpThenDownRestoresOrder(t *testing.T) {
	store, id1, id2, id3 := threeDense()
	engine := NewEngine(nil, testLogger(t))
	ctx := context.Background()

	if err := engine.Move(ctx, store, id2, Up); err != nil {
		t.Fatalf("Move up: %v", err)
	}
	if err := engine.Move(ctx, store, id2, Down); err != nil {
		t.Fatalf("Move down: %v", err)
	}
	if got := store.orderOf(t, id1); got != 1 {
		t.Fatalf("id1 order=%d, want 1", got)
	}
	if got := store.orderOf(t, id2); got != 2 {
		t.Fatalf("id2 order=%d, want 2", got)
	}
	if got := store.orderOf(t, id3); got != 3 {
		t.Fatalf("id3 order=%d, want 3", got)
	}
}

func TestMoveUnknownRecord(t *testing.T) {
	store, _, _, _ := threeDense()
	engine := NewEngine(nil, testLogger(t))

	err := engine.Move(context.Background(), store, uuid.New(), Up)
	if !errors.Is(err, ErrNotInList) {
		t.Fatalf("got %v, want ErrNotInList", err)
	}
}

func TestMoveCompensatesWhenSecondWriteFails(t *testing.T) {
	store, id1, id2, _ := threeDense()
	store.updateIfErrFor[id1] = errors.New("connection reset")
	engine := NewEngine(nil, testLogger(t))

	err := engine.Move(context.Background(), store, id2, Up)
	if err == nil {
		t.Fatalf("expected move to fail")
	}
	// Write A (id2 <- 1) succeeded, write B (id1 <- 2) failed; the
	// compensating write must restore id2 to its pre-swap value.
	if got := store.orderOf(t, id2); got != 2 {
		t.Fatalf("id2 order=%d after compensation, want 2", got)
	}
	if got := store.orderOf(t, id1); got != 1 {
		t.Fatalf("id1 order=%d, want untouched 1", got)
	}
}

func TestMoveSurfacesSchemaErrorOnFirstWrite(t *testing.T) {
	store, _, id2, _ := threeDense()
	store.updateIfErrFor[id2] = &pgconn.PgError{Code: "42703", Message: `column "order" does not exist`}
	engine := NewEngine(nil, testLogger(t))

	err := engine.Move(context.Background(), store, id2, Up)
	if !storeerr.IsSchemaFieldMissing(err) {
		t.Fatalf("got %v, want schema-field-missing kind", err)
	}
}

func TestMoveInFlightGuard(t *testing.T) {
	store, _, id2, _ := threeDense()
	engine := NewEngine(nil, testLogger(t))

	release, err := engine.acquire(store.ListKey(), id2)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if err := engine.Move(context.Background(), store, id2, Up); !errors.Is(err, ErrMoveInFlight) {
		t.Fatalf("got %v, want ErrMoveInFlight", err)
	}

	release()
	if err := engine.Move(context.Background(), store, id2, Up); err != nil {
		t.Fatalf("Move after release: %v", err)
	}
}

func TestMoveGuardIsPerRecord(t *testing.T) {
	store, id1, id2, id3 := threeDense()
	engine := NewEngine(nil, testLogger(t))

	release, err := engine.acquire(store.ListKey(), id1)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	// A different record in the same list is not blocked.
	if err := engine.Move(context.Background(), store, id3, Up); err != nil {
		t.Fatalf("Move of unrelated record: %v", err)
	}
	_ = id2
}

func TestMoveUsesPositionFallbackWhenUnnormalized(t *testing.T) {
	// Order column rejected by the store: normalization writes are swallowed
	// and the swap falls back to position-derived values.
	idA, idB := uuid.New(), uuid.New()
	store := newFakeStore(
		Entry{ID: idA, Label: "A"},
		Entry{ID: idB, Label: "B"},
	)
	colMissing := &pgconn.PgError{Code: "42703", Message: `column "order" does not exist`}
	store.updateErrFor[idA] = colMissing
	store.updateErrFor[idB] = colMissing
	engine := NewEngine(nil, testLogger(t))

	if err := engine.Move(context.Background(), store, idB, Up); err != nil {
		t.Fatalf("Move: %v", err)
	}
	// B took A's position-derived order (1), A took B's (2).
	if got := store.orderOf(t, idB); got != 1 {
		t.Fatalf("B order=%d, want 1", got)
	}
	if got := store.orderOf(t, idA); got != 2 {
		t.Fatalf("A order=%d, want 2", got)
	}
}
