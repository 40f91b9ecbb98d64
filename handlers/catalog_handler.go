package handlers

import (
	"net/http"

	"reviewdb-api/helper"
	"reviewdb-api/models"
	"reviewdb-api/services"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the category and genre endpoints. Both are
// public-read; creation and deletion sit behind the admin gate at the
// routing level.
type CatalogHandler struct {
	catalogService services.CatalogService
	Helper         *helper.HTTPHelper
}

func NewCatalogHandler(catalogService services.CatalogService, h *helper.HTTPHelper) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, Helper: h}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters")
		return
	}

	categories, total, err := h.catalogService.ListCategories(params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	results := make([]models.SlugResponse, 0, len(categories))
	for _, cat := range categories {
		results = append(results, models.SlugResponse{Name: cat.Name, Slug: cat.Slug})
	}
	c.JSON(http.StatusOK, h.Helper.Paginate(total, results))
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req models.SlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	category, err := h.catalogService.CreateCategory(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SlugResponse{Name: category.Name, Slug: category.Slug})
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if _, err := h.catalogService.DeleteCategory(c.Param("slug")); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListGenres(c *gin.Context) {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "invalid query parameters")
		return
	}

	genres, total, err := h.catalogService.ListGenres(params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	results := make([]models.SlugResponse, 0, len(genres))
	for _, genre := range genres {
		results = append(results, models.SlugResponse{Name: genre.Name, Slug: genre.Slug})
	}
	c.JSON(http.StatusOK, h.Helper.Paginate(total, results))
}

func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	var req models.SlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "malformed request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	genre, err := h.catalogService.CreateGenre(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SlugResponse{Name: genre.Name, Slug: genre.Slug})
}

func (h *CatalogHandler) DeleteGenre(c *gin.Context) {
	if _, err := h.catalogService.DeleteGenre(c.Param("slug")); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
