package controllers

import (
	"errors"
	"net/http"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/flash"
	"github.com/Laib363/E-Commerce-Project/logger"
	"github.com/Laib363/E-Commerce-Project/middleware"
	"github.com/Laib363/E-Commerce-Project/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartController handles the cart pages.
type CartController struct {
	carts *services.CartService
}

// NewCartController creates a new CartController.
func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// View renders the cart with its price total.
func (cc *CartController) View(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	view, err := cc.carts.View(c, user)
	if err != nil {
		logger.Error(c, "Failed to load cart", err)
		flash.Error(c, userMessage(err))
		c.Redirect(http.StatusFound, "/listings")
		return
	}

	render(c, "cart.html", gin.H{"Items": view.Items, "Total": view.Total})
}

// Add puts the listing in the cart. A listing already present stays put and
// the user is told so.
func (cc *CartController) Add(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		flash.Error(c, "Invalid listing id")
		c.Redirect(http.StatusFound, "/listings")
		return
	}

	user, _ := middleware.UserFrom(c)
	added, err := cc.carts.Add(c, user, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			flash.Error(c, "Listing not found")
		} else {
			logger.Error(c, "Failed to add to cart", err)
			flash.Error(c, userMessage(err))
		}
		c.Redirect(http.StatusFound, "/listings")
		return
	}

	if added {
		flash.Success(c, "Item added to cart!")
	} else {
		flash.Error(c, "Item is already in your cart.")
	}
	c.Redirect(http.StatusFound, "/listings/"+id.Hex())
}

// Remove drops the listing from the cart. Removing an absent id still
// succeeds.
func (cc *CartController) Remove(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		flash.Error(c, "Invalid listing id")
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	user, _ := middleware.UserFrom(c)
	if err := cc.carts.Remove(c, user.ID, id); err != nil {
		logger.Error(c, "Failed to remove from cart", err)
		flash.Error(c, userMessage(err))
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	flash.Success(c, "Item removed from cart.")
	c.Redirect(http.StatusFound, "/cart")
}
