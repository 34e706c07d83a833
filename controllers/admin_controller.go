package controllers

import (
	"net/http"

	"electronics-store/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminController struct {
	catalog CatalogUseCase
	orders  OrderAdminUseCase
	carts   CartUseCase
	logger  *zap.Logger
}

func NewAdminController(catalog CatalogUseCase, orders OrderAdminUseCase, carts CartUseCase, logger *zap.Logger) *AdminController {
	return &AdminController{catalog: catalog, orders: orders, carts: carts, logger: logger}
}

// CreateCategory godoc
// @Summary Create category
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CategoryRequest true "Category"
// @Success 201 {object} models.Response{data=models.Category}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/categories [post]
func (ctrl *AdminController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cat, err := ctrl.catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, "Category created", cat)
}

// UpdateCategory godoc
// @Summary Update category
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body models.CategoryRequest true "Category"
// @Success 200 {object} models.Response{data=models.Category}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories/{id} [patch]
func (ctrl *AdminController) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cat, err := ctrl.catalog.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Category updated", cat)
}

// CreateProduct godoc
// @Summary Create product
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response{data=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *AdminController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := ctrl.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct godoc
// @Summary Update product
// @Description Only the fields present in the body are changed
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body models.UpdateProductRequest true "Product fields"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *AdminController) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := ctrl.catalog.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Product updated", product)
}

// ListOrders godoc
// @Summary List all orders
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Order status" Enums(pending, processing, shipped, delivered, cancelled)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /admin/orders [get]
func (ctrl *AdminController) ListOrders(c *gin.Context) {
	page, limit := pageParams(c)
	resp, err := ctrl.orders.ListOrders(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrder godoc
// @Summary Get any order
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [get]
func (ctrl *AdminController) GetOrder(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := ctrl.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved", order)
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description pending → processing → shipped → delivered, with cancellation before shipping
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *AdminController) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := ctrl.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Order status updated", order)
}

// ListCarts godoc
// @Summary List every cart entry
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.PaginationResponse
// @Router /admin/carts [get]
func (ctrl *AdminController) ListCarts(c *gin.Context) {
	page, limit := pageParams(c)
	resp, err := ctrl.carts.ListAllCarts(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
