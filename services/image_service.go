package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
)

// ListingImageFolder is where every listing photo lands on the image service.
const ListingImageFolder = "ecommerce_products"

// UploadedImage is the outcome of a successful upload: the serving URL and
// the reference needed to delete the file later.
type UploadedImage struct {
	URL      string
	Filename string
}

// ImageStore abstracts the hosted image service. Upload failures surface as
// apperrors.ErrImageUpload; Delete is best-effort and callers decide whether
// its failure matters.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, mimeType, folder string) (*UploadedImage, error)
	Delete(ctx context.Context, filename string) error
}

// CloudinaryStore implements ImageStore against Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore creates a CloudinaryStore from explicit credentials.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init error: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, data []byte, mimeType, folder string) (*UploadedImage, error) {
	payload := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	resp, err := s.cld.Upload.Upload(ctx, payload, uploader.UploadParams{Folder: folder})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImageUpload, err)
	}
	if resp == nil || resp.SecureURL == "" {
		if resp != nil && resp.Error.Message != "" {
			return nil, apperrors.Wrap(apperrors.ErrImageUpload, errors.New(resp.Error.Message))
		}
		return nil, apperrors.ErrImageUpload
	}

	return &UploadedImage{URL: resp.SecureURL, Filename: resp.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, filename string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: filename})
	if err != nil {
		return err
	}
	if resp != nil && resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	return nil
}
