package routes

import (
	"net/http"

	"electronics-store/controllers"
	"electronics-store/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Auth    *controllers.AuthController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Profile *controllers.ProfileController
	Admin   *controllers.AdminController
}

func SetupRoutes(router *gin.Engine, h Handlers, auth middleware.Authenticator, uploadDir string) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.GET("/", h.Product.Home)
	router.GET("/category/:id", h.Product.CategoryProducts)
	router.GET("/product/:id", h.Product.ProductDetail)
	router.GET("/products", h.Product.ListProducts)

	router.POST("/register", h.Auth.Register)
	router.POST("/login", h.Auth.Login)

	user := router.Group("/")
	user.Use(middleware.AuthMiddleware(auth))
	{
		user.POST("/logout", h.Auth.Logout)

		user.GET("/cart", h.Cart.ViewCart)
		user.POST("/cart/add/:productId", h.Cart.AddToCart)
		user.POST("/cart/update/:cartEntryId", h.Cart.UpdateCart)
		user.POST("/cart/remove/:cartEntryId", h.Cart.RemoveFromCart)
		user.GET("/checkout", h.Cart.Checkout)

		user.POST("/order/place", h.Order.PlaceOrder)
		user.GET("/order/confirmation/:orderId", h.Order.OrderConfirmation)
		user.GET("/orders", h.Order.OrderHistory)

		user.GET("/profile", h.Profile.GetProfile)
		user.POST("/profile", h.Profile.UpdateProfile)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(auth), middleware.AdminMiddleware())
	{
		admin.POST("/categories", h.Admin.CreateCategory)
		admin.PATCH("/categories/:id", h.Admin.UpdateCategory)

		admin.POST("/products", h.Admin.CreateProduct)
		admin.PATCH("/products/:id", h.Admin.UpdateProduct)

		admin.GET("/orders", h.Admin.ListOrders)
		admin.GET("/orders/:id", h.Admin.GetOrder)
		admin.PATCH("/orders/:id/status", h.Admin.UpdateOrderStatus)

		admin.GET("/carts", h.Admin.ListCarts)
	}

	router.Static("/uploads", uploadDir)
}
