package controllers

import (
	"net/http"

	"electronics-store/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	catalog CatalogUseCase
	logger  *zap.Logger
}

func NewProductController(catalog CatalogUseCase, logger *zap.Logger) *ProductController {
	return &ProductController{catalog: catalog, logger: logger}
}

// Home godoc
// @Summary Storefront home
// @Description All categories and the eight newest products
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Response{data=models.HomePage}
// @Router / [get]
func (ctrl *ProductController) Home(c *gin.Context) {
	page, err := ctrl.catalog.Home(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Home page retrieved", page)
}

// CategoryProducts godoc
// @Summary Products of a category
// @Tags Catalog
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response{data=models.CategoryPage}
// @Failure 404 {object} models.ErrorResponse
// @Router /category/{id} [get]
func (ctrl *ProductController) CategoryProducts(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	page, err := ctrl.catalog.CategoryProducts(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Category retrieved", page)
}

// ProductDetail godoc
// @Summary Product detail
// @Description A product with up to four related products from its category
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.ProductPage}
// @Failure 404 {object} models.ErrorResponse
// @Router /product/{id} [get]
func (ctrl *ProductController) ProductDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	page, err := ctrl.catalog.ProductDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Product retrieved", page)
}

// ListProducts godoc
// @Summary Filter products
// @Description Filter products by search, category, price range and stock, then sort
// @Tags Catalog
// @Produce json
// @Param search query string false "Search in name and description"
// @Param category query int false "Category ID"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param in_stock query string false "Only products with more than 10 in stock"
// @Param low_stock query string false "Only products with 1 to 10 in stock"
// @Param sort query string false "Sort order" Enums(price_asc, price_desc, name, newest)
// @Success 200 {object} models.Response{data=models.ProductListPage}
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	filter, err := services.ParseProductFilter(c.Request.URL.Query())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	page, err := ctrl.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "Products retrieved", page)
}
