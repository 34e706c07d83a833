package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"electronics-store/middleware"
	"electronics-store/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var customer = models.Identity{UserID: 3, Username: "alice", Role: models.RoleCustomer}

func withIdentity(ident models.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetIdentity(c, ident)
		c.Next()
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantBody string
	}{
		{models.NewValidationError("username", "Username already exists!"), http.StatusBadRequest, "validation_error"},
		{models.ErrEmptyCart, http.StatusConflict, "cart_empty"},
		{fmt.Errorf("checkout: %w", models.ErrEmptyCart), http.StatusConflict, "cart_empty"},
		{models.NotFoundf("order %d", 9), http.StatusNotFound, "not_found"},
		{models.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{models.ErrForbidden, http.StatusForbidden, "forbidden"},
		{errors.New("connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.wantBody, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, zap.NewNop(), tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			body := decode(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantBody, body.Code)
			assert.NotContains(t, body.Message, "connection refused")
		})
	}
}

type stubCart struct {
	CartUseCase
	summary  *models.CartSummary
	err      error
	quantity int
	removed  bool
}

func (s *stubCart) Checkout(context.Context, models.Identity) (*models.CartSummary, error) {
	return s.summary, s.err
}

func (s *stubCart) UpdateQuantity(_ context.Context, _ models.Identity, _ int, quantity int) (bool, error) {
	s.quantity = quantity
	return quantity <= 0, s.err
}

func cartRouter(svc CartUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewCartController(svc, zap.NewNop())
	r.Use(withIdentity(customer))
	r.GET("/checkout", ctrl.Checkout)
	r.POST("/cart/update/:cartEntryId", ctrl.UpdateCart)
	return r
}

func TestCheckoutEmptyCartIsConflict(t *testing.T) {
	r := cartRouter(&stubCart{err: models.ErrEmptyCart})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "cart_empty", decode(t, w).Code)
}

func TestUpdateCartQuantityParsing(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		want        int
		wantStatus  int
	}{
		{"form quantity", "quantity=3", "application/x-www-form-urlencoded", 3, http.StatusOK},
		{"json quantity", `{"quantity":0}`, "application/json", 0, http.StatusOK},
		{"missing quantity", "", "", 1, http.StatusOK},
		{"bad quantity", "quantity=lots", "application/x-www-form-urlencoded", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCart{}
			r := cartRouter(stub)

			req := httptest.NewRequest(http.MethodPost, "/cart/update/12", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.want, stub.quantity)
		})
	}
}

func TestUpdateCartBadID(t *testing.T) {
	r := cartRouter(&stubCart{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/update/abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type stubOrders struct {
	placed *models.PlaceOrderInput
	err    error
}

func (s *stubOrders) ValidateInput(input *models.PlaceOrderInput) error {
	if input.Payment.Method == models.PaymentJazzCash && input.Payment.Wallet == nil {
		return models.NewValidationError("jazzcash_number", "is required for JazzCash payments")
	}
	return nil
}

func (s *stubOrders) PlaceOrder(_ context.Context, _ models.Identity, input models.PlaceOrderInput) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.placed = &input
	return &models.Order{ID: 77, Status: models.OrderStatusPending, TotalAmount: decimal.RequireFromString("25.50")}, nil
}

func (s *stubOrders) GetOrder(context.Context, models.Identity, int) (*models.Order, error) {
	return nil, models.NotFoundf("order")
}

func (s *stubOrders) ListOrders(context.Context, models.Identity) ([]models.Order, error) {
	return nil, nil
}

type memImages struct {
	saved   []string
	deleted []string
}

func (m *memImages) Save(_ context.Context, file *multipart.FileHeader, folder string) (string, error) {
	url := "/uploads/" + folder + "/" + file.Filename
	m.saved = append(m.saved, url)
	return url, nil
}

func (m *memImages) Delete(_ context.Context, url string) error {
	m.deleted = append(m.deleted, url)
	return nil
}

func orderRouter(svc OrderUseCase, images *memImages) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewOrderController(svc, images, 5<<20, zap.NewNop())
	r.Use(withIdentity(customer))
	r.POST("/order/place", ctrl.PlaceOrder)
	r.GET("/order/confirmation/:orderId", ctrl.OrderConfirmation)
	r.GET("/orders", ctrl.OrderHistory)
	return r
}

func checkoutForm(t *testing.T, fields map[string]string, screenshot string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if screenshot != "" {
		fw, err := mw.CreateFormFile("payment_screenshot", screenshot)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/order/place", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func shippingFields(method string) map[string]string {
	return map[string]string{
		"full_name":      "Ali Raza",
		"phone_number":   "03001234567",
		"city":           "Lahore",
		"address":        "12 Mall Road",
		"payment_method": method,
	}
}

func TestPlaceOrderWalletWithScreenshot(t *testing.T) {
	svc := &stubOrders{}
	images := &memImages{}
	fields := shippingFields("jazzcash")
	fields["jazzcash_number"] = "TX-9"

	w := httptest.NewRecorder()
	orderRouter(svc, images).ServeHTTP(w, checkoutForm(t, fields, "proof.png"))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, svc.placed)
	require.NotNil(t, svc.placed.Payment.Wallet)
	assert.Equal(t, "TX-9", svc.placed.Payment.Wallet.TransactionNumber)
	assert.Equal(t, "/uploads/payments/proof.png", svc.placed.Payment.Wallet.ProofURL)
	assert.Equal(t, "Lahore", svc.placed.Shipping.City)
}

func TestPlaceOrderWalletWithoutNumber(t *testing.T) {
	svc := &stubOrders{}
	images := &memImages{}

	w := httptest.NewRecorder()
	orderRouter(svc, images).ServeHTTP(w, checkoutForm(t, shippingFields("jazzcash"), "proof.png"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.placed)
	assert.Empty(t, images.saved)
}

func TestPlaceOrderRejectsNonImageProof(t *testing.T) {
	fields := shippingFields("jazzcash")
	fields["jazzcash_number"] = "TX-9"

	w := httptest.NewRecorder()
	orderRouter(&stubOrders{}, &memImages{}).ServeHTTP(w, checkoutForm(t, fields, "proof.exe"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_file", decode(t, w).Code)
}

func TestPlaceOrderFailureDiscardsUpload(t *testing.T) {
	images := &memImages{}
	fields := shippingFields("jazzcash")
	fields["jazzcash_number"] = "TX-9"

	w := httptest.NewRecorder()
	orderRouter(&stubOrders{err: models.ErrEmptyCart}, images).ServeHTTP(w, checkoutForm(t, fields, "proof.png"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, images.saved, images.deleted)
}

func TestPlaceOrderCashOnDeliveryIgnoresScreenshot(t *testing.T) {
	svc := &stubOrders{}
	images := &memImages{}

	w := httptest.NewRecorder()
	orderRouter(svc, images).ServeHTTP(w, checkoutForm(t, shippingFields("cod"), "proof.png"))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, svc.placed.Payment.Wallet)
	assert.Empty(t, images.saved)
}

func TestOrderConfirmationNotOwned(t *testing.T) {
	w := httptest.NewRecorder()
	orderRouter(&stubOrders{}, &memImages{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order/confirmation/5", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHistoryEmptyIsArray(t *testing.T) {
	w := httptest.NewRecorder()
	orderRouter(&stubOrders{}, &memImages{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotNil(t, body.Data)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

type stubCatalog struct {
	CatalogUseCase
	filter models.ProductFilter
}

func (s *stubCatalog) ListProducts(_ context.Context, f models.ProductFilter) (*models.ProductListPage, error) {
	s.filter = f
	return &models.ProductListPage{}, nil
}

func TestListProductsParsesQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubCatalog{}
	r := gin.New()
	r.GET("/products", NewProductController(stub, zap.NewNop()).ListProducts)

	q := url.Values{"search": {"tv"}, "sort": {"newest"}, "low_stock": {"1"}}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?"+q.Encode(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tv", stub.filter.Search)
	assert.Equal(t, models.SortNewest, stub.filter.Sort)
	assert.True(t, stub.filter.LowStock)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?min_price=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
