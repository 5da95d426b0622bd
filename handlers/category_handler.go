package handlers

import (
	"net/http"

	"quizzy/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type setImageRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories := h.categoryService.List(c.Request.Context(), sessionEmail(c))
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) ListPublic(c *gin.Context) {
	categories := h.categoryService.ListPublic(c.Request.Context())
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	category, ticket, err := h.categoryService.Create(c.Request.Context(), sessionEmail(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": category.Name, "page_job": ticket})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), sessionEmail(c), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CategoryHandler) SetImage(c *gin.Context) {
	var req setImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
		return
	}

	name := c.Param("name")
	if err := h.categoryService.SetImage(c.Request.Context(), sessionEmail(c), name, req.ImageURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}
