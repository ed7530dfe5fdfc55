package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"
)

// MenuHandlers handles HTTP requests for menu items
type MenuHandlers struct {
	menuService  services.MenuService
	imageService services.ImageService
}

// NewMenuHandlers creates a new menu handlers instance. imageService may be
// nil when object storage is not configured; image routes then return 503.
func NewMenuHandlers(menuService services.MenuService, imageService services.ImageService) *MenuHandlers {
	return &MenuHandlers{
		menuService:  menuService,
		imageService: imageService,
	}
}

type menuItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url"`
	Available   *bool   `json:"available"`
}

func (r *menuItemRequest) toModel() *models.MenuItem {
	item := &models.MenuItem{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Available:   true,
	}
	if r.Available != nil {
		item.Available = *r.Available
	}
	return item
}

// CreateMenuItem handles POST /menu
func (h *MenuHandlers) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item := req.toModel()
	if err := h.menuService.Create(ctx, item); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Menu item created successfully",
		"menu_item": item,
	})
}

// ListMenuItems handles GET /menu
func (h *MenuHandlers) ListMenuItems(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.menuService.List(ctx)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetMenuItem handles GET /menu/:id
func (h *MenuHandlers) GetMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.menuService.Get(ctx, id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateMenuItem handles PUT /menu/:id
func (h *MenuHandlers) UpdateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item := req.toModel()
	item.ID = id
	if err := h.menuService.Update(ctx, item); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Menu item updated successfully",
		"menu_item": item,
	})
}

// DeleteMenuItem handles DELETE /menu/:id
func (h *MenuHandlers) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.menuService.Delete(ctx, id); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Menu item deleted successfully",
	})
}

// UploadMenuImage handles POST /menu/:id/image with a multipart "image" field
func (h *MenuHandlers) UploadMenuImage(c echo.Context) error {
	ctx := c.Request().Context()

	if h.imageService == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Image storage not configured")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.menuService.Get(ctx, id)
	if err != nil {
		return common.RespondDomainError(c, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing image file")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read image file")
	}
	defer src.Close()

	objectName, err := h.imageService.UploadMenuImage(ctx, item.ID, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Image upload failed")
	}

	url, err := h.imageService.GetPresignedURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not generate image URL")
	}

	item.ImageURL = &objectName
	if err := h.menuService.Update(ctx, item); err != nil {
		return common.RespondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Image uploaded successfully",
		"object":  objectName,
		"url":     url,
	})
}
