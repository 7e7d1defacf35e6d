package delivery

import (
	"net/http"
	"strconv"

	"github.com/Canapean/Market/internal/domain"
	"github.com/Canapean/Market/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)

		authed := products.Group("", RequireUser(h.log))
		{
			authed.POST("", h.CreateProduct)
			authed.PATCH("/:id", h.UpdateProduct)
			authed.DELETE("/:id", h.DeleteProduct)
		}
	}
}

type createProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	CategoryID  int     `json:"category_id" binding:"required"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product := &domain.Product{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		CategoryID:  req.CategoryID,
	}

	createdProduct, err := h.useCase.CreateProduct(product, c.GetString(userKey))
	if err != nil {
		h.log.Errorf("Failed to create product '%s': %v", req.Title, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Product created successfully", createdProduct)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	product, err := h.useCase.GetProductByID(id)
	if err != nil {
		h.log.Warnf("Failed to get product by ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

// ListProducts serves the catalog listing. Query parameters: q (substring
// title search), category_id (exact category filter), sort (asc|desc by
// price; omitted means newest first), page.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	query := domain.ProductQuery{
		TitleQuery: c.Query("q"),
		PageSize:   domain.DefaultPageSize,
	}

	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := strconv.Atoi(categoryStr)
		if err != nil || categoryID <= 0 {
			h.log.Warnf("Invalid category_id parameter: %s", categoryStr)
			ErrorResponse(c, http.StatusBadRequest, "Invalid category_id format")
			return
		}
		query.CategoryID = categoryID
	}

	if sortParam, ok := c.GetQuery("sort"); ok {
		if sortParam == string(domain.SortPriceDesc) {
			query.Sort = domain.SortPriceDesc
		} else {
			query.Sort = domain.SortPriceAsc
		}
	}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			h.log.Warnf("Invalid page parameter: %s", pageStr)
			ErrorResponse(c, http.StatusBadRequest, "Invalid page format")
			return
		}
		query.Page = page
	}

	products, err := h.useCase.ListProducts(query)
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve products: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.Errorf("Failed to bind JSON for update product ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updatedProduct, err := h.useCase.UpdateProduct(id, c.GetString(userKey), updates)
	if err != nil {
		h.log.Warnf("Failed to update product ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product updated successfully", updatedProduct)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}

	if err := h.useCase.DeleteProduct(id, c.GetString(userKey)); err != nil {
		h.log.Warnf("Failed to delete product ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}
