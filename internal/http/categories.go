package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/libriscore/libris/internal/categories"
)

// CategoriesController serves the category collection. Deleting a
// category cascades into the catalog: the name is stripped from every
// book that carries it.
type CategoriesController struct {
	store   CategoryStore
	catalog BookStore
}

func NewCategoriesController(store CategoryStore, catalog BookStore) *CategoriesController {
	return &CategoriesController{store: store, catalog: catalog}
}

func (controller *CategoriesController) GetAllCategories(c *gin.Context) {
	controller.store.UpdateBookCounts(controller.catalog)
	cats := controller.store.GetAllCategories()
	c.IndentedJSON(http.StatusOK, gin.H{"categories": cats, "count": len(cats)})
}

func (controller *CategoriesController) GetCategory(c *gin.Context) {
	controller.store.UpdateBookCounts(controller.catalog)
	cat, err := controller.store.GetCategoryByName(c.Param("name"))
	if err != nil {
		respondNotFound(c, "category")
		return
	}
	c.IndentedJSON(http.StatusOK, cat)
}

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (controller *CategoriesController) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondBadRequest(c, "category name is required")
		return
	}

	cat, err := controller.store.CreateCategory(req.Name, req.Color)
	if err != nil {
		if errors.Is(err, categories.ErrDuplicate) {
			respondConflict(c, "category name already exists")
			return
		}
		respondInternalError(c, err, "create category")
		return
	}
	respondCreated(c, cat)
}

func (controller *CategoriesController) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondBadRequest(c, "category name is required")
		return
	}

	oldName := c.Param("name")
	cat, err := controller.store.UpdateCategory(oldName, req.Name, req.Color)
	if err != nil {
		if errors.Is(err, categories.ErrNotFound) {
			respondNotFound(c, "category")
			return
		}
		if errors.Is(err, categories.ErrDuplicate) {
			respondConflict(c, "category name already exists")
			return
		}
		respondInternalError(c, err, "update category")
		return
	}

	// A rename must follow through to book memberships
	if cat.Name != oldName {
		controller.catalog.RenameCategory(oldName, cat.Name)
	}
	c.IndentedJSON(http.StatusOK, cat)
}

func (controller *CategoriesController) DeleteCategory(c *gin.Context) {
	name := c.Param("name")
	if !controller.store.DeleteCategory(name) {
		respondNotFound(c, "category")
		return
	}
	affected := controller.catalog.RemoveCategory(name)
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "category deleted",
		Data:    gin.H{"books_updated": affected},
	})
}

func (controller *CategoriesController) GetCategoryStats(c *gin.Context) {
	controller.store.UpdateBookCounts(controller.catalog)
	c.IndentedJSON(http.StatusOK, controller.store.GetCategoryStats())
}
