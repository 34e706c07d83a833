package controllers

import (
	"context"
	"errors"
	"net/http"

	"electronics-store/libs"
	"electronics-store/models"
	"electronics-store/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const paymentProofFolder = "payments"

type OrderController struct {
	orders        OrderUseCase
	images        libs.ImageStore
	maxUploadSize int64
	logger        *zap.Logger
}

func NewOrderController(orders OrderUseCase, images libs.ImageStore, maxUploadSize int64, logger *zap.Logger) *OrderController {
	return &OrderController{orders: orders, images: images, maxUploadSize: maxUploadSize, logger: logger}
}

// PlaceOrder godoc
// @Summary Place order
// @Description Converts the whole cart into a pending order. JazzCash payments need a transaction number and may attach a screenshot.
// @Tags Orders
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param full_name formData string true "Full name"
// @Param phone_number formData string true "Phone number"
// @Param city formData string true "City"
// @Param address formData string true "Address"
// @Param payment_method formData string true "Payment method" Enums(cod, jazzcash)
// @Param jazzcash_number formData string false "JazzCash transaction number"
// @Param payment_screenshot formData file false "Payment screenshot"
// @Success 201 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Cart is empty"
// @Router /order/place [post]
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req models.PlaceOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input := req.Input("")
	if err := ctrl.orders.ValidateInput(&input); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	if input.Payment.Wallet != nil {
		proofURL, err := ctrl.savePaymentProof(c)
		if err != nil {
			respondError(c, ctrl.logger, err)
			return
		}
		input.Payment.Wallet.ProofURL = proofURL
	}

	order, err := ctrl.orders.PlaceOrder(c.Request.Context(), ident, input)
	if err != nil {
		if input.Payment.Wallet != nil && input.Payment.Wallet.ProofURL != "" {
			ctrl.discardUpload(c.Request.Context(), input.Payment.Wallet.ProofURL)
		}
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Order placed successfully", order)
}

// savePaymentProof stores the optional payment_screenshot and returns its URL.
func (ctrl *OrderController) savePaymentProof(c *gin.Context) (string, error) {
	file, err := c.FormFile("payment_screenshot")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", models.NewValidationError("payment_screenshot", err.Error())
	}
	if err := utils.ValidateImage(file, ctrl.maxUploadSize); err != nil {
		return "", err
	}
	if ctrl.images == nil {
		return "", nil
	}
	return ctrl.images.Save(c.Request.Context(), file, paymentProofFolder)
}

func (ctrl *OrderController) discardUpload(ctx context.Context, url string) {
	if ctrl.images == nil {
		return
	}
	if err := ctrl.images.Delete(context.WithoutCancel(ctx), url); err != nil {
		ctrl.logger.Warn("Failed to delete payment proof", zap.String("url", url), zap.Error(err))
	}
}

// OrderConfirmation godoc
// @Summary Order confirmation
// @Description One of the caller's orders with its items
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param orderId path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /order/confirmation/{orderId} [get]
func (ctrl *OrderController) OrderConfirmation(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c, "orderId")
	if !ok {
		return
	}
	order, err := ctrl.orders.GetOrder(c.Request.Context(), ident, orderID)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved", order)
}

// OrderHistory godoc
// @Summary Order history
// @Description The caller's orders, newest first
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response{data=[]models.Order}
// @Router /orders [get]
func (ctrl *OrderController) OrderHistory(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	orders, err := ctrl.orders.ListOrders(c.Request.Context(), ident)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondOK(c, http.StatusOK, "Orders retrieved", orders)
}
