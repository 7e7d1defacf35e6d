package delivery

import (
	"net/http"
	"strconv"

	"github.com/Canapean/Market/internal/domain"
	"github.com/Canapean/Market/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.GET("/:id/children", h.ListChildren)
		categories.PATCH("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		h.log.Errorf("Failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	createdCategory, err := h.useCase.CreateCategory(&category)
	if err != nil {
		h.log.Errorf("Failed to create category '%s': %v", category.Title, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create category: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Category created successfully", createdCategory)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	category, err := h.useCase.GetCategoryByID(id)
	if err != nil {
		h.log.Warnf("Failed to get category by ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve category: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

func (h *CategoryHandler) ListChildren(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	children, err := h.useCase.ListChildren(id)
	if err != nil {
		h.log.Warnf("Failed to list children of category %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve child categories: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Child categories retrieved successfully", children)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	var categoryUpdates domain.Category
	if err := c.ShouldBindJSON(&categoryUpdates); err != nil {
		h.log.Errorf("Failed to bind JSON for update category ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	categoryUpdates.ID = id

	updatedCategory, err := h.useCase.UpdateCategory(&categoryUpdates)
	if err != nil {
		h.log.Errorf("Failed to update category ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update category: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Category updated successfully", updatedCategory)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	if err := h.useCase.DeleteCategory(id); err != nil {
		h.log.Warnf("Failed to delete category ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete category: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories()
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve categories: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", categories)
}

func pathID(c *gin.Context, log *logrus.Logger) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		log.Warnf("Invalid ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return id, true
}
