package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/flash"
	"github.com/Laib363/E-Commerce-Project/logger"
	"github.com/Laib363/E-Commerce-Project/middleware"
	"github.com/Laib363/E-Commerce-Project/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingController handles the listing CRUD pages.
type ListingController struct {
	listings *services.ListingService
}

// NewListingController creates a new ListingController.
func NewListingController(listings *services.ListingService) *ListingController {
	return &ListingController{listings: listings}
}

// Index renders all listings.
func (lc *ListingController) Index(c *gin.Context) {
	listings, err := lc.listings.List(c)
	if err != nil {
		logger.Error(c, "Failed to list listings", err)
		flash.Error(c, userMessage(err))
		listings = nil
	}
	render(c, "listings-index.html", gin.H{"Listings": listings})
}

// NewForm renders the creation form.
func (lc *ListingController) NewForm(c *gin.Context) {
	render(c, "listings-new.html", nil)
}

// Create builds a listing from the form, uploading the attached image if
// present. An upload failure aborts the creation.
func (lc *ListingController) Create(c *gin.Context) {
	in, ok := bindListingForm(c, "/listings/new")
	if !ok {
		return
	}

	file, err := readImageFile(c)
	if err != nil {
		flash.Error(c, "Could not read the uploaded file")
		c.Redirect(http.StatusFound, "/listings/new")
		return
	}

	user, _ := middleware.UserFrom(c)
	if _, err := lc.listings.Create(c, user.ID, in, file); err != nil {
		logger.Error(c, "Failed to create listing", err)
		flash.Error(c, "Failed to upload image or create listing: "+userMessage(err))
		c.Redirect(http.StatusFound, "/listings/new")
		return
	}

	flash.Success(c, "Listing created successfully!")
	c.Redirect(http.StatusFound, "/listings")
}

// Show renders one listing with its author and whether it is already in the
// current user's cart.
func (lc *ListingController) Show(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		flash.Error(c, "Invalid listing id")
		c.Redirect(http.StatusFound, "/listings")
		return
	}

	detail, err := lc.listings.Show(c, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			flash.Error(c, "Listing not found")
		} else {
			logger.Error(c, "Failed to load listing", err)
			flash.Error(c, userMessage(err))
		}
		c.Redirect(http.StatusFound, "/listings")
		return
	}

	inCart := false
	if user, ok := middleware.UserFrom(c); ok {
		inCart = user.InCart(id)
	}

	render(c, "listings-show.html", gin.H{
		"Listing": detail.Listing,
		"Author":  detail.Author,
		"InCart":  inCart,
	})
}

// EditForm renders the edit form pre-filled with the existing listing. The
// author guard has already vouched for the listing and the user.
func (lc *ListingController) EditForm(c *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))
	listing, err := lc.listings.Get(c, id)
	if err != nil {
		flash.Error(c, userMessage(err))
		c.Redirect(http.StatusFound, "/listings")
		return
	}
	render(c, "listings-edit.html", gin.H{"Listing": listing})
}

// Update applies the edit. When a new file fails to upload, nothing is
// updated and the user lands back on the edit form.
func (lc *ListingController) Update(c *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	in, ok := bindListingForm(c, "/listings/"+id.Hex()+"/edit")
	if !ok {
		return
	}

	file, err := readImageFile(c)
	if err != nil {
		flash.Error(c, "Could not read the uploaded file")
		c.Redirect(http.StatusFound, "/listings/"+id.Hex()+"/edit")
		return
	}

	if err := lc.listings.Update(c, id, in, file); err != nil {
		if errors.Is(err, apperrors.ErrImageUpload) {
			flash.Error(c, "Error uploading new image: "+userMessage(err))
			c.Redirect(http.StatusFound, "/listings/"+id.Hex()+"/edit")
			return
		}
		logger.Error(c, "Failed to update listing", err)
		flash.Error(c, userMessage(err))
		c.Redirect(http.StatusFound, "/listings")
		return
	}

	flash.Success(c, "Listing updated successfully!")
	c.Redirect(http.StatusFound, "/listings/"+id.Hex())
}

// Delete removes the listing. Image cleanup happens best-effort downstream.
func (lc *ListingController) Delete(c *gin.Context) {
	id, _ := primitive.ObjectIDFromHex(c.Param("id"))

	if err := lc.listings.Delete(c, id); err != nil {
		logger.Error(c, "Failed to delete listing", err)
		flash.Error(c, userMessage(err))
		c.Redirect(http.StatusFound, "/listings")
		return
	}

	flash.Success(c, "Listing deleted successfully!")
	c.Redirect(http.StatusFound, "/listings")
}

// bindListingForm validates the listing fields, flashing and redirecting to
// backTo on bad input.
func bindListingForm(c *gin.Context, backTo string) (services.ListingInput, bool) {
	in := services.ListingInput{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
	}

	if in.Title == "" {
		flash.Error(c, "Title is required")
		c.Redirect(http.StatusFound, backTo)
		return in, false
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		flash.Error(c, "Price must be a non-negative number")
		c.Redirect(http.StatusFound, backTo)
		return in, false
	}
	in.Price = price
	return in, true
}

// readImageFile pulls the optional "image" file into memory. A missing file
// is not an error.
func readImageFile(c *gin.Context) (*services.ImageFile, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &services.ImageFile{Data: data, MimeType: mimeType}, nil
}
