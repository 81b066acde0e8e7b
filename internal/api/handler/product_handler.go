package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/petitmarche/catalog-api/internal/api/metrics"
	"github.com/petitmarche/catalog-api/internal/core/domain"
	"github.com/petitmarche/catalog-api/internal/core/ports"
)

type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type productRequest struct {
	Nom         string  `json:"nom" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Prix        float64 `json:"prix" validate:"required,gte=0"`
	Quantite    int     `json:"quantite" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Nom:         r.Nom,
		Description: r.Description,
		Prix:        r.Prix,
		Quantite:    r.Quantite,
		CategoryID:  r.Category,
	}
}

// Create handles POST /api/products. The category reference must
// resolve to an existing category.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  ports.ProductView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.productService.Create(c.Request().Context(), identity, req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("product").Inc()
	return c.JSON(http.StatusCreated, view)
}

// List handles GET /api/products (public, paginated).
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Filter by category id"
// @Param        page      query     int     false  "Page (default 1)"
// @Param        limit     query     int     false  "Page size (default 10)"
// @Success      200       {object}  ports.ProductPage
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.productService.List(c.Request().Context(), ports.ListProductsFilter{
		CategoryID: c.QueryParam("category"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ListMine handles GET /api/products/my-products. Admins see every
// product, other callers only their own.
//
// @Summary      List the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.ProductView
// @Failure      401  {object}  map[string]string
// @Router       /api/products/my-products [get]
func (h *ProductHandler) ListMine(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.productService.ListMine(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /api/products/:id (public).
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  ports.ProductView
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	view, err := h.productService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update handles PUT /api/products/:id under the owner filter.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  ports.ProductView
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.productService.Update(c.Request().Context(), identity, c.Param("id"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrNotFoundOrForbidden) {
			metrics.OwnershipRefusalsTotal.WithLabelValues("product").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /api/products/:id under the owner filter.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFoundOrForbidden) {
			metrics.OwnershipRefusalsTotal.WithLabelValues("product").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}
