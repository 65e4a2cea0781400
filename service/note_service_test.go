package service

import (
	"errors"
	"testing"

	"sanctuary/models"
)

func TestNoteCreate_StacksOnTop(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)

	first, err := svc.Create(models.NoteCreate{Content: "first"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(models.NoteCreate{Content: "second"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.SortOrder != 1 {
		t.Fatalf("expected first note at sort order 1, got %d", first.SortOrder)
	}
	if second.SortOrder != 2 {
		t.Fatalf("expected second note stacked above at 2, got %d", second.SortOrder)
	}
	if first.Color != "yellow" {
		t.Fatalf("expected default color yellow, got %q", first.Color)
	}
}

func TestNoteCreate_RequiresContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)

	if _, err := svc.Create(models.NoteCreate{Content: "  "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNoteMove_UpdatesOnlyPosition(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)

	note, err := svc.Create(models.NoteCreate{Content: "movable", Color: "blue"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Move(note.ID, models.NoteMove{X: 120, Y: 45, SortOrder: 9}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	moved, err := svc.Get(note.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if moved.X != 120 || moved.Y != 45 || moved.SortOrder != 9 {
		t.Fatalf("position not applied: %+v", moved)
	}
	if moved.Content != "movable" || moved.Color != "blue" {
		t.Fatalf("Move touched non-position fields: %+v", moved)
	}
}

func TestNoteMove_UnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)

	if err := svc.Move(404, models.NoteMove{X: 1, Y: 1}); !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteReorder_UnknownIDAbortsBatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)

	note, err := svc.Create(models.NoteCreate{Content: "only"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = svc.Reorder([]models.ReorderItem{
		{ID: note.ID, SortOrder: 50},
		{ID: 999, SortOrder: 51},
	})
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}

	unchanged, _ := svc.Get(note.ID)
	if unchanged.SortOrder != 1 {
		t.Fatalf("expected sort order unchanged after aborted batch, got %d", unchanged.SortOrder)
	}
}

func TestNoteUpdate_KeepsColorWhenOmitted(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db)

	note, err := svc.Create(models.NoteCreate{Content: "old", Color: "pink"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(note.ID, models.NoteCreate{Content: "new"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Content != "new" {
		t.Fatalf("content not updated: %q", updated.Content)
	}
	if updated.Color != "pink" {
		t.Fatalf("omitted color should be preserved, got %q", updated.Color)
	}
}
