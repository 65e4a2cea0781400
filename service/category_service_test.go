package service

import (
	"errors"
	"testing"

	"sanctuary/models"
)

func TestCategoryCreate_RejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	if _, err := svc.Create("Reading", 0); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := svc.Create("Reading", 5)
	if !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryRename_RewritesLinkCategoryNames(t *testing.T) {
	db := newTestDB(t)
	categorySvc := NewCategoryService(db)
	linkSvc := NewLinkService(db, categorySvc)

	if _, err := linkSvc.Create(models.LinkCreate{Title: "A", URL: "https://a.example", Category: "Old"}); err != nil {
		t.Fatalf("Create link failed: %v", err)
	}
	if _, err := linkSvc.Create(models.LinkCreate{Title: "B", URL: "https://b.example", Category: "Other"}); err != nil {
		t.Fatalf("Create link failed: %v", err)
	}

	categories, _ := categorySvc.List()
	var oldID uint
	for _, c := range categories {
		if c.Name == "Old" {
			oldID = c.ID
		}
	}
	if oldID == 0 {
		t.Fatalf("Old category missing: %+v", categories)
	}

	renamed, err := categorySvc.Rename(oldID, "New")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if renamed.Name != "New" {
		t.Fatalf("expected renamed category New, got %q", renamed.Name)
	}

	var moved int64
	if err := db.Model(&models.Link{}).Where("category = ?", "New").Count(&moved).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if moved != 1 {
		t.Fatalf("expected 1 link rewritten to New, got %d", moved)
	}

	var untouched int64
	db.Model(&models.Link{}).Where("category = ?", "Other").Count(&untouched)
	if untouched != 1 {
		t.Fatalf("unrelated link category was rewritten")
	}
}

func TestCategoryReorder_AppliesAllPairs(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	a, _ := svc.Create("A", 0)
	b, _ := svc.Create("B", 1)
	c, _ := svc.Create("C", 2)

	err := svc.Reorder([]models.ReorderItem{
		{ID: a.ID, SortOrder: 2},
		{ID: b.ID, SortOrder: 0},
		{ID: c.ID, SortOrder: 1},
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	categories, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"B", "C", "A"}
	for i, name := range want {
		if categories[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, categories[i].Name)
		}
	}
}

func TestCategoryReorder_UnknownIDAbortsBatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	a, _ := svc.Create("A", 0)

	err := svc.Reorder([]models.ReorderItem{
		{ID: a.ID, SortOrder: 9},
		{ID: 999, SortOrder: 1},
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	// The whole batch must roll back, including the valid pair
	categories, _ := svc.List()
	if categories[0].SortOrder != 0 {
		t.Fatalf("expected sort order unchanged after aborted batch, got %d", categories[0].SortOrder)
	}
}

func TestCategoryDelete_UnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	if err := svc.Delete(7); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
