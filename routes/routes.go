package routes

import (
	"net/http"

	"github.com/Laib363/E-Commerce-Project/controllers"
	"github.com/Laib363/E-Commerce-Project/middleware"
	"github.com/Laib363/E-Commerce-Project/repository"
	"github.com/gin-gonic/gin"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Auth     *controllers.AuthController
	Listings *controllers.ListingController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController

	ListingRepo  repository.ListingRepository
	LoginLimiter *middleware.RateLimiter
}

// Register binds every route, applying guards where the surface requires
// them.
func Register(r *gin.Engine, d Deps) {
	requireAuth := middleware.RequireAuthenticated()
	requireAuthor := middleware.RequireAuthor(d.ListingRepo)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/listings")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// Auth
	r.GET("/register", d.Auth.RegisterForm)
	r.POST("/register", d.Auth.Register)
	r.GET("/login", d.Auth.LoginForm)
	r.POST("/login", d.LoginLimiter.Limit(), d.Auth.Login)
	r.GET("/logout", d.Auth.Logout)

	// Listings
	r.GET("/listings", d.Listings.Index)
	r.GET("/listings/new", requireAuth, d.Listings.NewForm)
	r.POST("/listings", requireAuth, d.Listings.Create)
	r.GET("/listings/:id", d.Listings.Show)
	r.GET("/listings/:id/edit", requireAuth, requireAuthor, d.Listings.EditForm)
	r.PUT("/listings/:id", requireAuth, requireAuthor, d.Listings.Update)
	r.DELETE("/listings/:id", requireAuth, requireAuthor, d.Listings.Delete)

	// Cart
	r.GET("/cart", requireAuth, d.Cart.View)
	r.POST("/cart/add/:id", requireAuth, d.Cart.Add)
	r.DELETE("/cart/remove/:id", requireAuth, d.Cart.Remove)

	// Orders
	r.POST("/orders/checkout", requireAuth, d.Orders.Checkout)
	r.GET("/my-orders", requireAuth, d.Orders.MyOrders)
	r.GET("/orders/:id", requireAuth, d.Orders.Show)
}
