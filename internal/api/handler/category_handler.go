package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petitmarche/catalog-api/internal/api/metrics"
	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/ports"
)

type CategoryHandler struct {
	categoryService ports.CategoryService
	productService  ports.ProductService
}

func NewCategoryHandler(categoryService ports.CategoryService, productService ports.ProductService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, productService: productService}
}

type categoryRequest struct {
	Nom         string `json:"nom" validate:"required"`
	Description string `json:"description"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Create handles POST /api/categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  ports.CategoryView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.categoryService.Create(c.Request().Context(), identity, ports.CategoryInput{
		Nom:         req.Nom,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("category").Inc()
	return c.JSON(http.StatusCreated, view)
}

// List handles GET /api/categories (public).
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  ports.CategoryView
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	views, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /api/categories/:id (public).
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  ports.CategoryView
// @Failure      404  {object}  map[string]string
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	view, err := h.categoryService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update handles PUT /api/categories/:id. A non-owner, non-admin caller
// gets the same 404 as a missing id.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "Category"
// @Success      200   {object}  ports.CategoryView
// @Failure      404   {object}  map[string]string
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.categoryService.Update(c.Request().Context(), identity, c.Param("id"), ports.CategoryInput{
		Nom:         req.Nom,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFoundOrForbidden) {
			metrics.OwnershipRefusalsTotal.WithLabelValues("category").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /api/categories/:id. Refused with 409 while
// products still reference the category.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFoundOrForbidden) {
			metrics.OwnershipRefusalsTotal.WithLabelValues("category").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "category deleted"})
}

// ListProducts handles GET /api/categories/:id/products (public).
//
// @Summary      List products of a category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {array}   ports.ProductView
// @Failure      404  {object}  map[string]string
// @Router       /api/categories/{id}/products [get]
func (h *CategoryHandler) ListProducts(c echo.Context) error {
	views, err := h.productService.ListByCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}
