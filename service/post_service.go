package service

import (
	"fmt"

	"sanctuary/models"

	"gorm.io/gorm"
)

// PostService handles blog post business logic
type PostService struct {
	db *gorm.DB
}

// NewPostService constructs a post service
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// ListPublished returns published posts, newest first.
func (s *PostService) ListPublished() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Where("published = ?", true).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// ListAll returns every post for the admin view, newest first.
func (s *PostService) ListAll() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// CountByPublished returns (published, draft) counts for the admin view.
func (s *PostService) CountByPublished() (published int64, drafts int64, err error) {
	if err = s.db.Model(&models.Post{}).Where("published = ?", true).Count(&published).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count posts: %w", err)
	}
	if err = s.db.Model(&models.Post{}).Where("published = ?", false).Count(&drafts).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return published, drafts, nil
}

// Get fetches a post by ID
func (s *PostService) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, wrapSentinel(fmt.Sprintf("post not found: %d", id), ErrPostNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// GetPublished fetches a post by ID, rejecting drafts. Used by the public
// blog endpoint so unpublished content never leaks.
func (s *PostService) GetPublished(id uint) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !post.Published {
		return nil, wrapSentinel(fmt.Sprintf("post not found: %d", id), ErrPostNotFound)
	}
	return post, nil
}

func applyPostPayload(post *models.Post, req models.PostCreate) {
	post.Title = req.Title
	post.Content = req.Content
	post.Summary = req.Summary
	post.Published = req.Published
	post.BackgroundImage = req.BackgroundImage
	if req.IsMarkdown != nil {
		post.IsMarkdown = *req.IsMarkdown
	}
	if req.ContentBgColor != "" {
		post.ContentBgColor = req.ContentBgColor
	}
	if req.ContentBgOpacity != nil {
		post.ContentBgOpacity = *req.ContentBgOpacity
	}
}

// Create creates a post
func (s *PostService) Create(req models.PostCreate) (*models.Post, error) {
	req.Normalize()
	if req.Title == "" {
		return nil, wrapSentinel("title is required", ErrValidation)
	}

	post := models.Post{IsMarkdown: true, ContentBgColor: "#ffffff", ContentBgOpacity: 0.85}
	applyPostPayload(&post, req)
	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

// Update updates a post by ID
func (s *PostService) Update(id uint, req models.PostCreate) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if req.Title == "" {
		return nil, wrapSentinel("title is required", ErrValidation)
	}

	applyPostPayload(post, req)
	if err := s.db.Save(post).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// Delete deletes a post by ID
func (s *PostService) Delete(id uint) error {
	result := s.db.Delete(&models.Post{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapSentinel(fmt.Sprintf("post not found: %d", id), ErrPostNotFound)
	}
	return nil
}
