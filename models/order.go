package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusPlaced is the status every order starts in.
const StatusPlaced = "Order Placed"

// Order is an immutable snapshot of a completed checkout. Items and
// TotalAmount are frozen at checkout time; later listing changes never alter
// an existing order.
type Order struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderID           string               `bson:"order_id" json:"order_id"`
	Customer          primitive.ObjectID   `bson:"customer" json:"customer"`
	Items             []primitive.ObjectID `bson:"items" json:"items"`
	TotalAmount       float64              `bson:"total_amount" json:"total_amount"`
	Status            string               `bson:"status" json:"status"`
	OrderDate         time.Time            `bson:"order_date" json:"order_date"`
	EstimatedDelivery time.Time            `bson:"estimated_delivery" json:"estimated_delivery"`
}
