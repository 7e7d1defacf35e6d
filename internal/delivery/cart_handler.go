package delivery

import (
	"net/http"
	"strconv"

	"github.com/Canapean/Market/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CartHandler struct {
	useCase usecase.CartUseCase
	log     *logrus.Logger
}

func NewCartHandler(uc usecase.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/cart")
	{
		cart.GET("", h.ViewCart)
		cart.POST("/items/:product_id", h.AddToCart)
		cart.DELETE("/items/:product_id", h.RemoveFromCart)
	}
}

func (h *CartHandler) ViewCart(c *gin.Context) {
	view, err := h.useCase.ViewCart(c.Request.Context(), c.GetString(sessionKey))
	if err != nil {
		h.log.Errorf("Failed to view cart: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", view)
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	productID, ok := cartProductID(c, h.log)
	if !ok {
		return
	}

	if err := h.useCase.AddToCart(c.Request.Context(), c.GetString(sessionKey), productID); err != nil {
		h.log.Errorf("Failed to add product %d to cart: %v", productID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to add product to cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product added to cart", nil)
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID, ok := cartProductID(c, h.log)
	if !ok {
		return
	}

	if err := h.useCase.RemoveFromCart(c.Request.Context(), c.GetString(sessionKey), productID); err != nil {
		h.log.Errorf("Failed to remove product %d from cart: %v", productID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to remove product from cart: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product removed from cart", nil)
}

func cartProductID(c *gin.Context, log *logrus.Logger) (int, bool) {
	idStr := c.Param("product_id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		log.Warnf("Invalid product_id parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return 0, false
	}
	return id, true
}
