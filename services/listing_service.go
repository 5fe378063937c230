package services

import (
	"context"
	"errors"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/logger"
	"github.com/Laib363/E-Commerce-Project/models"
	"github.com/Laib363/E-Commerce-Project/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ImageFile is an uploaded file held in memory, ready to forward to the
// image service.
type ImageFile struct {
	Data     []byte
	MimeType string
}

// ListingInput carries the user-editable listing fields.
type ListingInput struct {
	Title       string
	Description string
	Price       float64
}

// ListingDetail is a listing with its author resolved.
type ListingDetail struct {
	Listing models.Listing
	Author  *models.User
}

// ListingService implements the listing workflow, including the image
// lifecycle on the hosted image service.
type ListingService struct {
	listings repository.ListingRepository
	users    repository.UserRepository
	images   ImageStore
}

// NewListingService creates a new ListingService.
func NewListingService(listings repository.ListingRepository, users repository.UserRepository, images ImageStore) *ListingService {
	return &ListingService{listings: listings, users: users, images: images}
}

// List returns every listing.
func (s *ListingService) List(ctx context.Context) ([]models.Listing, error) {
	return s.listings.FindAll(ctx)
}

// Get returns one listing without resolving its author.
func (s *ListingService) Get(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return listing, nil
}

// Show returns one listing with its author populated.
func (s *ListingService) Show(ctx context.Context, id primitive.ObjectID) (*ListingDetail, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, listing.Author)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &ListingDetail{Listing: *listing, Author: author}, nil
}

// Create builds a listing owned by author. When a file is supplied it is
// uploaded first; an upload failure aborts the whole creation.
func (s *ListingService) Create(ctx context.Context, author primitive.ObjectID, in ListingInput, file *ImageFile) (*models.Listing, error) {
	listing := &models.Listing{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       models.Image{URL: models.DefaultImageURL},
		Author:      author,
	}

	if file != nil {
		uploaded, err := s.images.Upload(ctx, file.Data, file.MimeType, ListingImageFolder)
		if err != nil {
			return nil, err
		}
		listing.Image = models.Image{URL: uploaded.URL, Filename: uploaded.Filename}
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return listing, nil
}

// Update replaces the listing's fields. With a new file the old stored image
// is deleted and the new one uploaded; an upload failure aborts the edit.
// Without a file the existing image is carried forward explicitly.
func (s *ListingService) Update(ctx context.Context, id primitive.ObjectID, in ListingInput, file *ImageFile) error {
	old, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	updated := &models.Listing{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       old.Image,
	}

	if file != nil {
		if old.Image.Filename != "" {
			if err := s.images.Delete(ctx, old.Image.Filename); err != nil {
				logger.Warn(ctx, "Failed to delete previous image",
					zap.String("listing_id", id.Hex()),
					zap.String("filename", old.Image.Filename),
					zap.Error(err))
			}
		}
		uploaded, err := s.images.Upload(ctx, file.Data, file.MimeType, ListingImageFolder)
		if err != nil {
			return err
		}
		updated.Image = models.Image{URL: uploaded.URL, Filename: uploaded.Filename}
	}

	if err := s.listings.Update(ctx, id, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Delete removes the listing, then removes its stored image best-effort:
// image-service failures are logged and never block the deletion.
func (s *ListingService) Delete(ctx context.Context, id primitive.ObjectID) error {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.listings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if listing.Image.Filename != "" {
		if err := s.images.Delete(ctx, listing.Image.Filename); err != nil {
			logger.Warn(ctx, "Image cleanup failed after listing deletion",
				zap.String("listing_id", id.Hex()),
				zap.String("filename", listing.Image.Filename),
				zap.Error(err))
		}
	}
	return nil
}
