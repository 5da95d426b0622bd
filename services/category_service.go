package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"quizzy/models"

	"gorm.io/gorm"
)

const (
	ownerListLimit  = 50
	publicListLimit = 100
)

type CategoryService struct {
	db    *gorm.DB
	cache *ListingCache
	pages *PageGenerator
}

func NewCategoryService(db *gorm.DB, cache *ListingCache, pages *PageGenerator) *CategoryService {
	return &CategoryService{
		db:    db,
		cache: cache,
		pages: pages,
	}
}

// List returns the owner's categories ordered by name. This read path is
// best-effort: a backing-store failure is logged and degrades to an empty
// slice rather than a 5xx.
func (s *CategoryService) List(ctx context.Context, owner string) []models.Category {
	s.cache.InvalidateOwner(ctx, owner)

	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("created_by = ?", owner).
		Order("name").
		Limit(ownerListLimit).
		Find(&categories).Error
	if err != nil {
		log.Printf("Error fetching categories for %s: %v", owner, err)
		return []models.Category{}
	}
	return categories
}

// ListPublic returns every non-empty category name for the unauthenticated
// browse view. Best-effort like List.
func (s *CategoryService) ListPublic(ctx context.Context) []models.Category {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Distinct("name", "image_url").
		Where("name IS NOT NULL AND name != ''").
		Order("name").
		Limit(publicListLimit).
		Find(&categories).Error
	if err != nil {
		log.Printf("Error fetching categories for users: %v", err)
		return []models.Category{}
	}
	return categories
}

// Create inserts the category and kicks off static page generation for it.
// The returned ticket identifies the queued page job; the job itself is
// fire-and-forget.
func (s *CategoryService) Create(ctx context.Context, owner, name string) (*models.Category, string, error) {
	if name == "" {
		return nil, "", fmt.Errorf("%w: category name is required", ErrInvalidArgument)
	}

	s.cache.InvalidateOwner(ctx, owner)

	var existing models.Category
	err := s.db.WithContext(ctx).
		Where("name = ? AND created_by = ?", name, owner).
		First(&existing).Error
	if err == nil {
		return nil, "", fmt.Errorf("%w: category %q", ErrAlreadyExists, name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	category := models.Category{
		Name:      name,
		CreatedBy: owner,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, "", err
	}

	s.cache.InvalidateOwner(ctx, owner)

	ticket := s.pages.Enqueue(name)
	return &category, ticket, nil
}

// Delete removes the category row only. Quizzes referencing the name stay
// behind, orphaned; that is the documented behavior, not an oversight.
func (s *CategoryService) Delete(ctx context.Context, owner, name string) error {
	s.cache.InvalidateOwner(ctx, owner)

	result := s.db.WithContext(ctx).
		Where("name = ? AND created_by = ?", name, owner).
		Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: category %q", ErrNotFound, name)
	}

	s.cache.InvalidateOwner(ctx, owner)
	return nil
}

func (s *CategoryService) SetImage(ctx context.Context, owner, name, imageURL string) error {
	if imageURL == "" {
		return fmt.Errorf("%w: image URL is required", ErrInvalidArgument)
	}

	result := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("name = ? AND created_by = ?", name, owner).
		Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: category %q", ErrNotFound, name)
	}

	s.cache.InvalidateOwner(ctx, owner)
	return nil
}

// Names returns the owner's category names, used by the bulk page refresh.
func (s *CategoryService) Names(ctx context.Context, owner string) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("created_by = ?", owner).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
