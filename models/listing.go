package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultImageURL is shown for listings created without an uploaded image.
const DefaultImageURL = "https://cdn.pixabay.com/photo/2021/04/20/11/13/product-photography-6193556_960_720.jpg"

// Image is a stored product photo: the serving URL plus the image service's
// public id, kept so the file can be deleted later. Filename is empty for the
// placeholder image.
type Image struct {
	URL      string `bson:"url" json:"url"`
	Filename string `bson:"filename,omitempty" json:"filename,omitempty"`
}

// Listing is a sellable product. Author references the creating user and is
// never reassigned.
type Listing struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       Image              `bson:"image" json:"image"`
	Price       float64            `bson:"price" json:"price"`
	Author      primitive.ObjectID `bson:"author" json:"author"`
}
