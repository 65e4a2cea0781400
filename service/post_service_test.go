package service

import (
	"errors"
	"testing"

	"sanctuary/models"
)

func TestPostCreate_AppearanceDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)

	post, err := svc.Create(models.PostCreate{Title: "First", Content: "hello"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !post.IsMarkdown {
		t.Fatalf("expected markdown default true")
	}
	if post.ContentBgColor != "#ffffff" {
		t.Fatalf("expected default background color, got %q", post.ContentBgColor)
	}
	if post.ContentBgOpacity != 0.85 {
		t.Fatalf("expected default opacity 0.85, got %v", post.ContentBgOpacity)
	}
	if post.Published {
		t.Fatalf("new posts should default to draft")
	}
}

func TestPostCreate_ExplicitZeroOpacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)

	zero := 0.0
	plain := false
	post, err := svc.Create(models.PostCreate{
		Title:            "Styled",
		IsMarkdown:       &plain,
		ContentBgOpacity: &zero,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.IsMarkdown {
		t.Fatalf("explicit false must override markdown default")
	}
	if post.ContentBgOpacity != 0 {
		t.Fatalf("explicit zero opacity must not fall back to default, got %v", post.ContentBgOpacity)
	}
}

func TestPostPublishedVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)

	draft, err := svc.Create(models.PostCreate{Title: "Draft"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	live, err := svc.Create(models.PostCreate{Title: "Live", Published: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	public, err := svc.ListPublished()
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(public) != 1 || public[0].ID != live.ID {
		t.Fatalf("expected only the published post, got %+v", public)
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both posts in admin view, got %d", len(all))
	}

	// Drafts must be indistinguishable from missing posts publicly
	if _, err := svc.GetPublished(draft.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for draft, got %v", err)
	}
	if _, err := svc.GetPublished(live.ID); err != nil {
		t.Fatalf("GetPublished failed for published post: %v", err)
	}

	published, drafts, err := svc.CountByPublished()
	if err != nil {
		t.Fatalf("CountByPublished failed: %v", err)
	}
	if published != 1 || drafts != 1 {
		t.Fatalf("expected counts (1,1), got (%d,%d)", published, drafts)
	}
}
