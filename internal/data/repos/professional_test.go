package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/clinicsite-backend/internal/data/repos/testutil"
	"github.com/yungbote/clinicsite-backend/internal/data/storeerr"
	types "github.com/yungbote/clinicsite-backend/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func TestProfessionalRepoCRUDAndOrdering(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, db)
	repo := NewProfessionalRepo(db, log)
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, &types.Professional{
		FullName: "Dana Whitfield",
		Title:    "Clinical Director",
		Bio:      "Leads the practice.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}

	got, err := repo.GetByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FullName != "Dana Whitfield" {
		t.Fatalf("FullName = %q", got.FullName)
	}

	next, err := repo.NextOrder(ctx, tx)
	if err != nil {
		t.Fatalf("NextOrder: %v", err)
	}
	if next != 1 {
		t.Fatalf("NextOrder on empty ordering = %d, want 1", next)
	}

	if err := repo.UpdateOrder(ctx, tx, created.ID, next); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	next, err = repo.NextOrder(ctx, tx)
	if err != nil {
		t.Fatalf("NextOrder: %v", err)
	}
	if next != 2 {
		t.Fatalf("NextOrder after one assignment = %d, want 2", next)
	}

	entries, err := repo.ListEntries(ctx, tx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Label != "Dana Whitfield" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Order == nil || *entries[0].Order != 1 {
		t.Fatalf("entry order = %v, want 1", entries[0].Order)
	}

	if err := repo.Update(ctx, tx, created.ID, map[string]any{"title": "Medical Director"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.Title != "Medical Director" {
		t.Fatalf("Title = %q", got.Title)
	}

	if err := repo.UpdatePhotoFields(ctx, tx, created.ID, "portraits/dana.png", "https://cdn.example.com/portraits/dana.png"); err != nil {
		t.Fatalf("UpdatePhotoFields: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after photo update: %v", err)
	}
	if got.PhotoBucketKey != "portraits/dana.png" {
		t.Fatalf("PhotoBucketKey = %q", got.PhotoBucketKey)
	}

	if err := repo.Delete(ctx, tx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("List after delete = %d rows", len(list))
	}
}

func TestProfessionalRepoUpdateOrderIf(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, db)
	repo := NewProfessionalRepo(db, log)
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, &types.Professional{FullName: "Avery Cole", Title: "Therapist"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Fresh row has no order, so the nil-expected guard matches.
	if err := repo.UpdateOrderIf(ctx, tx, created.ID, 1, nil); err != nil {
		t.Fatalf("UpdateOrderIf nil expected: %v", err)
	}

	// The guard now requires the current value.
	if err := repo.UpdateOrderIf(ctx, tx, created.ID, 2, int64Ptr(1)); err != nil {
		t.Fatalf("UpdateOrderIf matching expected: %v", err)
	}

	// Stale expected value must conflict, not silently no-op.
	err = repo.UpdateOrderIf(ctx, tx, created.ID, 3, int64Ptr(1))
	if !storeerr.IsConflict(err) {
		t.Fatalf("stale expected: err = %v, want conflict", err)
	}

	// Unknown id is reported as not found.
	err = repo.UpdateOrderIf(ctx, tx, uuid.New(), 1, nil)
	if !storeerr.IsNotFound(err) {
		t.Fatalf("unknown id: err = %v, want not found", err)
	}
}
