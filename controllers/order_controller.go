package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/flash"
	"github.com/Laib363/E-Commerce-Project/logger"
	"github.com/Laib363/E-Commerce-Project/middleware"
	"github.com/Laib363/E-Commerce-Project/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrderController handles checkout and the order pages.
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Checkout converts the cart into an order.
func (oc *OrderController) Checkout(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	order, err := oc.orders.Checkout(c, user)
	if err != nil {
		if !errors.Is(err, apperrors.ErrEmptyCart) {
			logger.Error(c, "Checkout failed", err, zap.String("user_id", user.ID.Hex()))
		}
		flash.Error(c, userMessage(err))
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	logger.Info(c, "Order placed",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", user.ID.Hex()),
		zap.Float64("total", order.TotalAmount))
	flash.Success(c, fmt.Sprintf("Order placed successfully! Your order ID is #%s", order.OrderID))
	c.Redirect(http.StatusFound, "/my-orders")
}

// MyOrders renders the current user's order history, newest first.
func (oc *OrderController) MyOrders(c *gin.Context) {
	user, _ := middleware.UserFrom(c)

	orders, err := oc.orders.ListForCustomer(c, user.ID)
	if err != nil {
		logger.Error(c, "Failed to list orders", err)
		flash.Error(c, userMessage(err))
		orders = nil
	}

	render(c, "my-orders.html", gin.H{"Orders": orders})
}

// Show renders one order's status page. Not-found and not-owner both land on
// the order history, with different messages.
func (oc *OrderController) Show(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		flash.Error(c, "Invalid order ID.")
		c.Redirect(http.StatusFound, "/my-orders")
		return
	}

	user, _ := middleware.UserFrom(c)
	detail, err := oc.orders.Get(c, id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			flash.Error(c, "Order not found.")
		case errors.Is(err, apperrors.ErrUnauthorized):
			flash.Error(c, "You are not authorized to view this order.")
		default:
			logger.Error(c, "Failed to load order", err)
			flash.Error(c, userMessage(err))
		}
		c.Redirect(http.StatusFound, "/my-orders")
		return
	}

	render(c, "order-status.html", gin.H{"Order": detail.Order, "Items": detail.Items})
}
