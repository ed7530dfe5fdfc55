package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tableside/internal/caching"
	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

const menuItemTTL = 10 * time.Minute

// MenuService manages the dish catalogue
type MenuService interface {
	Create(ctx context.Context, item *models.MenuItem) error
	Get(ctx context.Context, id int64) (*models.MenuItem, error)
	List(ctx context.Context) ([]*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id int64) error
}

type menuService struct {
	menuRepo repositories.MenuRepository
	cacheSvc caching.CacheService
}

func NewMenuService(menuRepo repositories.MenuRepository, cacheSvc caching.CacheService) MenuService {
	return &menuService{menuRepo: menuRepo, cacheSvc: cacheSvc}
}

func (s *menuService) validate(item *models.MenuItem) error {
	if err := common.ValidateRequiredString(item.Name, "name"); err != nil {
		return common.NewValidationError("name", err.Error())
	}
	if err := common.ValidateRequiredString(item.Category, "category"); err != nil {
		return common.NewValidationError("category", err.Error())
	}
	if err := common.ValidatePositiveFloat(item.Price, "price", 100000.0); err != nil {
		return common.NewValidationError("price", err.Error())
	}
	return common.SanitizeHTMLField(item.Description, "description")
}

func (s *menuService) Create(ctx context.Context, item *models.MenuItem) error {
	if err := s.validate(item); err != nil {
		return err
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return common.StorageError("create menu item", err)
	}
	return nil
}

// Get reads through the cache; the store is only hit on a miss.
func (s *menuService) Get(ctx context.Context, id int64) (*models.MenuItem, error) {
	cached, err := s.cacheSvc.GetMenuItem(ctx, id)
	if err != nil {
		log.Printf("Menu cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.StorageError("get menu item", err)
	}
	if item == nil {
		return nil, fmt.Errorf("menu item %d: %w", id, common.ErrNotFound)
	}

	if err := s.cacheSvc.SetMenuItem(ctx, item, menuItemTTL); err != nil {
		log.Printf("Menu cache write failed: %v", err)
	}

	return item, nil
}

func (s *menuService) List(ctx context.Context) ([]*models.MenuItem, error) {
	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, common.StorageError("list menu items", err)
	}
	return items, nil
}

func (s *menuService) Update(ctx context.Context, item *models.MenuItem) error {
	if err := s.validate(item); err != nil {
		return err
	}

	existing, err := s.menuRepo.GetByID(ctx, item.ID)
	if err != nil {
		return common.StorageError("get menu item", err)
	}
	if existing == nil {
		return fmt.Errorf("menu item %d: %w", item.ID, common.ErrNotFound)
	}
	item.CreatedAt = existing.CreatedAt

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return common.StorageError("update menu item", err)
	}

	if err := s.cacheSvc.DeleteMenuItem(ctx, item.ID); err != nil {
		log.Printf("Menu cache invalidation failed: %v", err)
	}

	return nil
}

func (s *menuService) Delete(ctx context.Context, id int64) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return common.StorageError("delete menu item", err)
	}
	if err := s.cacheSvc.DeleteMenuItem(ctx, id); err != nil {
		log.Printf("Menu cache invalidation failed: %v", err)
	}
	return nil
}
