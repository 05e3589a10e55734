package subjects

import (
	"context"
	"testing"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

func TestMemoryStoreCreateAssignsIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.Create(ctx, &models.Subject{Name: "Alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx, &models.Subject{Name: "Bob"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.SubjectID != 1 || second.SubjectID != 2 {
		t.Errorf("IDs = %d, %d, want 1, 2", first.SubjectID, second.SubjectID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", got.Name)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), 99); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreListPaging(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		if _, err := store.Create(ctx, &models.Subject{Name: name}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	page, err := store.List(ctx, 2, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d subjects, want 2", len(page))
	}
	if page[0].SubjectID != 2 || page[1].SubjectID != 3 {
		t.Errorf("page IDs = %d, %d, want 2, 3", page[0].SubjectID, page[1].SubjectID)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 5 {
		t.Errorf("Count = %d, want 5", count)
	}
}

func TestMemoryStoreCreateCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	in := &models.Subject{Name: "Carol", DateOfBirth: &dob, Gender: "female"}

	created, err := store.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	in.Name = "mutated"

	got, _ := store.Get(ctx, created.SubjectID)
	if got.Name != "Carol" {
		t.Errorf("stored subject mutated: Name = %q", got.Name)
	}
}
