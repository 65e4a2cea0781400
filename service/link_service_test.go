package service

import (
	"errors"
	"testing"

	"sanctuary/models"
)

func newLinkFixture(t *testing.T) (*LinkService, *CategoryService) {
	t.Helper()
	db := newTestDB(t)
	categorySvc := NewCategoryService(db)
	return NewLinkService(db, categorySvc), categorySvc
}

func TestLinkCreate_AutoInsertsCategory(t *testing.T) {
	linkSvc, categorySvc := newLinkFixture(t)

	link, err := linkSvc.Create(models.LinkCreate{
		Title:    "Search",
		URL:      "https://example.com",
		Category: "Tools",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if link.Category != "Tools" {
		t.Fatalf("expected category Tools, got %q", link.Category)
	}

	categories, err := categorySvc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Tools" {
		t.Fatalf("expected auto-inserted Tools category, got %+v", categories)
	}
	if categories[0].SortOrder != 0 {
		t.Fatalf("auto-inserted category should have sort order 0, got %d", categories[0].SortOrder)
	}

	// A second link into the same category must not duplicate the row
	if _, err := linkSvc.Create(models.LinkCreate{Title: "Another", URL: "https://example.org", Category: "Tools"}); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	categories, _ = categorySvc.List()
	if len(categories) != 1 {
		t.Fatalf("expected 1 category after duplicate ensure, got %d", len(categories))
	}
}

func TestLinkCreate_DefaultsCategory(t *testing.T) {
	linkSvc, _ := newLinkFixture(t)

	link, err := linkSvc.Create(models.LinkCreate{Title: "Blank", URL: "https://example.com", Category: "   "})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if link.Category != models.DefaultCategory {
		t.Fatalf("expected default category %q, got %q", models.DefaultCategory, link.Category)
	}
}

func TestLinkCreate_RequiresTitleAndURL(t *testing.T) {
	linkSvc, _ := newLinkFixture(t)

	_, err := linkSvc.Create(models.LinkCreate{Title: "  ", URL: "https://example.com"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty title, got %v", err)
	}

	_, err = linkSvc.Create(models.LinkCreate{Title: "No URL", URL: ""})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty url, got %v", err)
	}
}

func TestLinkListGrouped_OrdersByCategorySortOrder(t *testing.T) {
	linkSvc, categorySvc := newLinkFixture(t)

	if _, err := categorySvc.Create("Work", 2); err != nil {
		t.Fatalf("Create category failed: %v", err)
	}
	if _, err := categorySvc.Create("Play", 1); err != nil {
		t.Fatalf("Create category failed: %v", err)
	}

	if _, err := linkSvc.Create(models.LinkCreate{Title: "Mail", URL: "https://mail.example", Category: "Work"}); err != nil {
		t.Fatalf("Create link failed: %v", err)
	}
	if _, err := linkSvc.Create(models.LinkCreate{Title: "Games", URL: "https://games.example", Category: "Play"}); err != nil {
		t.Fatalf("Create link failed: %v", err)
	}

	groups, err := linkSvc.ListGrouped()
	if err != nil {
		t.Fatalf("ListGrouped failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Category.Name != "Play" || groups[1].Category.Name != "Work" {
		t.Fatalf("expected Play before Work, got %q then %q", groups[0].Category.Name, groups[1].Category.Name)
	}
	if len(groups[0].Links) != 1 || groups[0].Links[0].Title != "Games" {
		t.Fatalf("Play group has wrong links: %+v", groups[0].Links)
	}
}

func TestLinkListGrouped_KeepsOrphanedLinks(t *testing.T) {
	linkSvc, categorySvc := newLinkFixture(t)

	if _, err := linkSvc.Create(models.LinkCreate{Title: "Lost", URL: "https://lost.example", Category: "Doomed"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	categories, _ := categorySvc.List()
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
	if err := categorySvc.Delete(categories[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	groups, err := linkSvc.ListGrouped()
	if err != nil {
		t.Fatalf("ListGrouped failed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected orphan group to survive, got %d groups", len(groups))
	}
	if groups[0].Category.ID != 0 || groups[0].Category.Name != "Doomed" {
		t.Fatalf("expected zero-id placeholder category, got %+v", groups[0].Category)
	}
	if len(groups[0].Links) != 1 || groups[0].Links[0].Title != "Lost" {
		t.Fatalf("orphan group lost its link: %+v", groups[0].Links)
	}
}

func TestLinkDelete_UnknownID(t *testing.T) {
	linkSvc, _ := newLinkFixture(t)

	err := linkSvc.Delete(42)
	if !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestLinkList_RecommendedFirst(t *testing.T) {
	linkSvc, _ := newLinkFixture(t)

	if _, err := linkSvc.Create(models.LinkCreate{Title: "Plain", URL: "https://a.example"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := linkSvc.Create(models.LinkCreate{Title: "Starred", URL: "https://b.example", IsRecommended: true}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	links, err := linkSvc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[0].Title != "Starred" {
		t.Fatalf("expected recommended link first, got %q", links[0].Title)
	}
}
