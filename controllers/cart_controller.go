package controllers

import (
	"net/http"

	"electronics-store/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	cart   CartUseCase
	logger *zap.Logger
}

func NewCartController(cart CartUseCase, logger *zap.Logger) *CartController {
	return &CartController{cart: cart, logger: logger}
}

// AddToCart godoc
// @Summary Add product to cart
// @Description Adds one unit, incrementing the quantity when the product is already in the cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response{data=models.CartItem}
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/add/{productId} [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	productID, ok := idParam(c, "productId")
	if !ok {
		return
	}

	item, err := ctrl.cart.AddToCart(c.Request.Context(), ident, productID)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, item.Product.Name+" added to cart", item)
}

// ViewCart godoc
// @Summary View cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Router /cart [get]
func (ctrl *CartController) ViewCart(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	summary, err := ctrl.cart.ListCart(c.Request.Context(), ident)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart retrieved", summary)
}

// UpdateCart godoc
// @Summary Update cart entry quantity
// @Description A quantity of zero or less removes the entry. Missing quantity means 1.
// @Tags Cart
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param cartEntryId path int true "Cart entry ID"
// @Param request body models.UpdateCartRequest false "New quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/update/{cartEntryId} [post]
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "cartEntryId")
	if !ok {
		return
	}

	var req models.UpdateCartRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	removed, err := ctrl.cart.UpdateQuantity(c.Request.Context(), ident, itemID, quantity)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	if removed {
		respondOK(c, http.StatusOK, "Item removed from cart", nil)
		return
	}
	respondOK(c, http.StatusOK, "Cart updated", gin.H{"id": itemID, "quantity": quantity})
}

// RemoveFromCart godoc
// @Summary Remove cart entry
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param cartEntryId path int true "Cart entry ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/remove/{cartEntryId} [post]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	itemID, ok := idParam(c, "cartEntryId")
	if !ok {
		return
	}
	if err := ctrl.cart.RemoveFromCart(c.Request.Context(), ident, itemID); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Item removed from cart", nil)
}

// Checkout godoc
// @Summary Review cart before placing the order
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Failure 409 {object} models.ErrorResponse "Cart is empty"
// @Router /checkout [get]
func (ctrl *CartController) Checkout(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	summary, err := ctrl.cart.Checkout(c.Request.Context(), ident)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Checkout ready", summary)
}
