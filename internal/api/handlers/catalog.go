package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	service "github.com/sajibul-islam-robin/halchash-frontend/internal/services"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Lists normalized catalog products with optional search, category, price range and sort.
//	@Tags			Catalog
//	@Produce		json
//	@Param			search		query		string	false	"Matches name or description"
//	@Param			category	query		string	false	"Category slug, `all` for every category"
//	@Param			min_price	query		number	false	"Lowest effective price"
//	@Param			max_price	query		number	false	"Highest effective price"
//	@Param			sort		query		string	false	"name | price-low | price-high | rating"
//	@Success		200			{object}	models.ProductListResponse
//	@Failure		400			{object}	response.ErrorResponse	"Invalid price"
//	@Failure		502			{object}	response.ErrorResponse	"Catalog unavailable"
//	@Router			/products [get]
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		filter, err := parseProductFilter(r)
		if err != nil {
			logger.Warn("Invalid product query", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		products, err := h.catalogService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func parseProductFilter(r *http.Request) (models.ProductFilter, error) {
	query := r.URL.Query()

	filter := models.ProductFilter{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Sort:     query.Get("sort"),
	}

	for name, dest := range map[string]**float64{"min_price": &filter.MinPrice, "max_price": &filter.MaxPrice} {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" {
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errors.BadRequestError("Invalid price filter").WithDetail(name + " must be a number")
		}

		*dest = &value
	}

	return filter, nil
}

// GetProduct godoc
//	@Summary		Get a product
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	models.Product
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [get]
func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id := r.PathValue("id")
		if id == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ListCategories godoc
//	@Summary		List categories
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}		models.Category
//	@Failure		502	{object}	response.ErrorResponse	"Catalog unavailable"
//	@Router			/categories [get]
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// Hero godoc
//	@Summary		Hero products
//	@Description	Products for the home page carousel. Falls back to the first catalog products.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}	models.Product
//	@Router			/hero [get]
func (h *CatalogHandler) Hero() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hero, err := h.catalogService.Hero(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load hero products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, hero)
	}
}

// Refresh godoc
//	@Summary		Reload the catalog cache
//	@Description	Reloads products and categories from the backend and replaces both cached collections.
//	@Tags			Catalog
//	@Produce		json
//	@Security		AdminToken
//	@Success		200	{object}	map[string]string
//	@Failure		401	{object}	response.ErrorResponse	"Admin token required"
//	@Failure		502	{object}	response.ErrorResponse	"Catalog unavailable"
//	@Router			/catalog/refresh [post]
func (h *CatalogHandler) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.catalogService.Refresh(r.Context()); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"message": "Catalog refreshed"})
	}
}
