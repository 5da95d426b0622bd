package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"quizzy/services"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	pages           *services.PageGenerator
	categoryService *services.CategoryService
}

func NewPageHandler(pages *services.PageGenerator, categoryService *services.CategoryService) *PageHandler {
	return &PageHandler{
		pages:           pages,
		categoryService: categoryService,
	}
}

type createPageRequest struct {
	CategoryName string `json:"category_name" binding:"required"`
}

// CreatePage queues regeneration of one category's static page and returns
// immediately with the job ticket.
func (h *PageHandler) CreatePage(c *gin.Context) {
	var req createPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	ticket := h.pages.Enqueue(req.CategoryName)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Category page creation started",
		"filename": services.Slug(req.CategoryName) + ".html",
		"ticket":   ticket,
	})
}

// RefreshPages rewrites every page the caller owns before responding. The
// work is proportional to the caller's category count and blocks the
// request for its duration.
func (h *PageHandler) RefreshPages(c *gin.Context) {
	names, err := h.categoryService.Names(c.Request.Context(), sessionEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := h.pages.RefreshAll(names)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Refreshed %d category pages", count)})
}

// ServePage serves the static artifact for a category straight from disk.
func (h *PageHandler) ServePage(c *gin.Context) {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		name = c.Param("name")
	}
	if strings.ContainsAny(name, "/\\") {
		c.String(http.StatusNotFound, "Category page not found")
		return
	}

	path := h.pages.PathFor(name)
	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusNotFound, "Category page not found")
		return
	}
	c.File(path)
}
