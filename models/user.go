package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. Password holds the bcrypt digest, never the
// plaintext. Cart is an ordered, duplicate-free list of listing references.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username string               `bson:"username" json:"username"`
	Email    string               `bson:"email" json:"email"`
	Password string               `bson:"password" json:"-"`
	Cart     []primitive.ObjectID `bson:"cart" json:"cart"`
}

// InCart reports whether the listing id is already in the user's cart.
func (u *User) InCart(id primitive.ObjectID) bool {
	for _, item := range u.Cart {
		if item == id {
			return true
		}
	}
	return false
}
