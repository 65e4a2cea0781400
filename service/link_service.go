package service

import (
	"fmt"

	"sanctuary/models"

	"gorm.io/gorm"
)

// LinkService handles navigation link business logic
type LinkService struct {
	db          *gorm.DB
	categorySvc *CategoryService
}

// NewLinkService constructs a link service
func NewLinkService(db *gorm.DB, categorySvc *CategoryService) *LinkService {
	return &LinkService{db: db, categorySvc: categorySvc}
}

// List returns all links, recommended first, newest first within each group.
func (s *LinkService) List() ([]models.Link, error) {
	var links []models.Link
	if err := s.db.Order("is_recommended DESC, created_at DESC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

// LinkGroup is one dashboard section: a category and its links.
type LinkGroup struct {
	Category models.Category `json:"category"`
	Links    []models.Link   `json:"links"`
}

// ListGrouped returns links grouped by category, groups ordered by category
// sort order. Links whose category row is missing are grouped under a
// zero-id placeholder so they never disappear from the dashboard.
func (s *LinkService) ListGrouped() ([]LinkGroup, error) {
	links, err := s.List()
	if err != nil {
		return nil, err
	}

	categories, err := s.categorySvc.List()
	if err != nil {
		return nil, err
	}

	byName := make(map[string][]models.Link, len(categories))
	for _, l := range links {
		byName[l.Category] = append(byName[l.Category], l)
	}

	groups := make([]LinkGroup, 0, len(categories))
	for _, cat := range categories {
		groups = append(groups, LinkGroup{Category: cat, Links: byName[cat.Name]})
		delete(byName, cat.Name)
	}

	// Orphaned category names (row deleted after links were created)
	for name, ls := range byName {
		groups = append(groups, LinkGroup{Category: models.Category{Name: name}, Links: ls})
	}

	return groups, nil
}

// Get fetches a link by ID
func (s *LinkService) Get(id uint) (*models.Link, error) {
	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, wrapSentinel(fmt.Sprintf("link not found: %d", id), ErrLinkNotFound)
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return &link, nil
}

// Create creates a link. Referencing an unknown category name auto-inserts
// that category with sort order 0 before the create returns.
func (s *LinkService) Create(req models.LinkCreate) (*models.Link, error) {
	req.Normalize()
	if req.Title == "" || req.URL == "" {
		return nil, wrapSentinel("title and url are required", ErrValidation)
	}
	if req.Category == "" {
		req.Category = models.DefaultCategory
	}

	link := models.Link{
		Title:         req.Title,
		URL:           req.URL,
		Description:   req.Description,
		Category:      req.Category,
		IsRecommended: req.IsRecommended,
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	if err := s.categorySvc.Ensure(req.Category); err != nil {
		return nil, err
	}

	return &link, nil
}

// Update updates a link by ID, repairing the category set the same way
// Create does.
func (s *LinkService) Update(id uint, req models.LinkCreate) (*models.Link, error) {
	link, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if req.Title == "" || req.URL == "" {
		return nil, wrapSentinel("title and url are required", ErrValidation)
	}
	if req.Category == "" {
		req.Category = models.DefaultCategory
	}

	link.Title = req.Title
	link.URL = req.URL
	link.Description = req.Description
	link.Category = req.Category
	link.IsRecommended = req.IsRecommended

	if err := s.db.Save(link).Error; err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}

	if err := s.categorySvc.Ensure(req.Category); err != nil {
		return nil, err
	}

	return link, nil
}

// Delete deletes a link by ID
func (s *LinkService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Link{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}
