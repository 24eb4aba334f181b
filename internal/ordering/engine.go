package ordering

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/clinicsite-backend/internal/data/storeerr"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

var (
	// ErrMoveInFlight means another move for the same record has not finished.
	ErrMoveInFlight = errors.New("a move is already in flight for this record")
	// ErrAtTop / ErrAtBottom reject boundary moves before any write happens.
	ErrAtTop    = errors.New("record is already first in the list")
	ErrAtBottom = errors.New("record is already last in the list")
	// ErrNotInList means the record disappeared between display and move.
	ErrNotInList = errors.New("record is no longer in the list")
)

// Engine implements the shared reorder protocol: lazy normalization followed
// by an adjacent swap of order values. One engine instance serves every
// orderable list; per-record in-flight guards are keyed by the store's ListKey.
type Engine struct {
	db  *gorm.DB
	log *logger.Logger

	mu       sync.Mutex
	inFlight map[string]map[uuid.UUID]struct{}
}

func NewEngine(db *gorm.DB, baseLog *logger.Logger) *Engine {
	return &Engine{
		db:       db,
		log:      baseLog.With("component", "OrderingEngine"),
		inFlight: make(map[string]map[uuid.UUID]struct{}),
	}
}

// Normalize assigns dense 1..N order values in label order when any entry has
// no usable order value. It is idempotent and issues one sequential write per
// entry. A schema-field-missing failure on a write is logged and skipped so a
// not-yet-migrated table degrades instead of hard-failing; any other failure
// aborts. Not transactional by contract: a partial run leaves a mixed state
// that the next run repairs.
func (e *Engine) Normalize(ctx context.Context, store Store) (bool, error) {
	entries, err := store.ListEntries(ctx, nil)
	if err != nil {
		return false, storeerr.Classify("ordering.normalize.list", err)
	}

	needs := false
	for _, entry := range entries {
		if !entry.HasOrder() {
			needs = true
			break
		}
	}
	if !needs {
		return false, nil
	}

	e.log.Info("Normalizing list order", "list", store.ListKey(), "count", len(entries))
	for i, entry := range sortedByLabel(entries) {
		want := int64(i + 1)
		if err := store.UpdateOrder(ctx, nil, entry.ID, want); err != nil {
			classified := storeerr.Classify("ordering.normalize.write", err)
			if storeerr.IsSchemaFieldMissing(classified) {
				e.log.Warn("Order column missing, skipping normalization write",
					"list", store.ListKey(), "id", entry.ID, "error", err)
				continue
			}
			return false, classified
		}
	}
	return true, nil
}

// Move swaps the record's order value with its neighbor in the given
// direction. The refetched list is authoritative; the caller's view may be
// stale. Both writes carry an optimistic expected-value guard and run inside
// one transaction when the engine has a DB handle; without one, a failed
// second write triggers a best-effort compensating write restoring the first.
func (e *Engine) Move(ctx context.Context, store Store, id uuid.UUID, dir Direction) error {
	release, err := e.acquire(store.ListKey(), id)
	if err != nil {
		return err
	}
	defer release()

	if _, err := e.Normalize(ctx, store); err != nil {
		return err
	}

	entries, err := store.ListEntries(ctx, nil)
	if err != nil {
		return storeerr.Classify("ordering.move.list", err)
	}
	sorted := Sorted(entries)

	pos := -1
	for i := range sorted {
		if sorted[i].ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("%w: %s", ErrNotInList, id)
	}
	if dir == Up && pos == 0 {
		return ErrAtTop
	}
	if dir == Down && pos == len(sorted)-1 {
		return ErrAtBottom
	}

	adjPos := pos - 1
	if dir == Down {
		adjPos = pos + 1
	}
	cur, adj := sorted[pos], sorted[adjPos]

	// Position-derived fallback for entries the normalization pass could not
	// reach (order column present but value unset under concurrent edits).
	curOrder := effectiveOrder(cur, pos)
	adjOrder := effectiveOrder(adj, adjPos)

	swapErr := e.runTx(ctx, func(tx *gorm.DB) error {
		if err := store.UpdateOrderIf(ctx, tx, cur.ID, adjOrder, cur.Order); err != nil {
			return storeerr.Classify("ordering.move.write_current", err)
		}
		if err := store.UpdateOrderIf(ctx, tx, adj.ID, curOrder, adj.Order); err != nil {
			classified := storeerr.Classify("ordering.move.write_adjacent", err)
			if tx == nil {
				if restoreErr := store.UpdateOrder(ctx, nil, cur.ID, curOrder); restoreErr != nil {
					e.log.Warn("Compensating order restore failed",
						"list", store.ListKey(), "id", cur.ID, "error", restoreErr)
				}
			}
			return classified
		}
		return nil
	})
	if swapErr != nil {
		e.log.Warn("Move failed", "list", store.ListKey(), "id", id, "direction", dir.String(), "error", swapErr)
		return swapErr
	}

	e.log.Debug("Move applied", "list", store.ListKey(), "id", id, "direction", dir.String())
	return nil
}

func (e *Engine) runTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if e.db == nil {
		return fn(nil)
	}
	return e.db.WithContext(ctx).Transaction(fn)
}

func (e *Engine) acquire(listKey string, id uuid.UUID) (func(), error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	set := e.inFlight[listKey]
	if set == nil {
		set = make(map[uuid.UUID]struct{})
		e.inFlight[listKey] = set
	}
	if _, held := set[id]; held {
		return nil, ErrMoveInFlight
	}
	set[id] = struct{}{}

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(set, id)
	}, nil
}

func effectiveOrder(entry Entry, pos int) int64 {
	if entry.HasOrder() {
		return *entry.Order
	}
	return int64(pos + 1)
}
