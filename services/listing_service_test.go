package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Laib363/E-Commerce-Project/apperrors"
	"github.com/Laib363/E-Commerce-Project/models"
	"github.com/Laib363/E-Commerce-Project/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeImageStore records uploads and deletes and can be told to fail either.
type fakeImageStore struct {
	uploads   int
	deleted   []string
	failUp    error
	failDel   error
	nextURL   string
	nextToken string
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{nextURL: "https://img.test/photo.png", nextToken: "photo123"}
}

func (f *fakeImageStore) Upload(_ context.Context, _ []byte, _ string, _ string) (*UploadedImage, error) {
	if f.failUp != nil {
		return nil, apperrors.Wrap(apperrors.ErrImageUpload, f.failUp)
	}
	f.uploads++
	return &UploadedImage{URL: f.nextURL, Filename: f.nextToken}, nil
}

func (f *fakeImageStore) Delete(_ context.Context, filename string) error {
	if f.failDel != nil {
		return f.failDel
	}
	f.deleted = append(f.deleted, filename)
	return nil
}

func newListingFixture(t *testing.T) (*ListingService, *repository.MemoryListingRepository, *repository.MemoryUserRepository, *fakeImageStore, *models.User) {
	t.Helper()
	listings := repository.NewMemoryListingRepository()
	users := repository.NewMemoryUserRepository()
	images := newFakeImageStore()
	svc := NewListingService(listings, users, images)

	author := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, users.Create(context.Background(), author))
	return svc, listings, users, images, author
}

func TestCreateListingWithoutFile(t *testing.T) {
	svc, _, _, images, author := newListingFixture(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, author.ID, ListingInput{Title: "Lamp", Description: "A lamp", Price: 19.99}, nil)
	require.NoError(t, err)
	assert.Equal(t, author.ID, listing.Author)
	assert.Equal(t, models.DefaultImageURL, listing.Image.URL)
	assert.Empty(t, listing.Image.Filename)
	assert.Zero(t, images.uploads)
}

func TestCreateListingWithFile(t *testing.T) {
	svc, _, _, images, author := newListingFixture(t)
	ctx := context.Background()

	file := &ImageFile{Data: []byte("png-bytes"), MimeType: "image/png"}
	listing, err := svc.Create(ctx, author.ID, ListingInput{Title: "Lamp", Price: 10}, file)
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/photo.png", listing.Image.URL)
	assert.Equal(t, "photo123", listing.Image.Filename)
	assert.Equal(t, 1, images.uploads)
}

func TestCreateListingUploadFailureAborts(t *testing.T) {
	svc, listings, _, images, author := newListingFixture(t)
	ctx := context.Background()
	images.failUp = errors.New("cloud unreachable")

	file := &ImageFile{Data: []byte("png-bytes"), MimeType: "image/png"}
	_, err := svc.Create(ctx, author.ID, ListingInput{Title: "Lamp", Price: 10}, file)
	assert.ErrorIs(t, err, apperrors.ErrImageUpload)

	all, err := listings.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no listing persists when the upload fails")
}

func TestUpdateCarriesImageForwardWithoutFile(t *testing.T) {
	svc, _, _, _, author := newListingFixture(t)
	ctx := context.Background()

	file := &ImageFile{Data: []byte("png-bytes"), MimeType: "image/png"}
	listing, err := svc.Create(ctx, author.ID, ListingInput{Title: "Lamp", Price: 10}, file)
	require.NoError(t, err)

	err = svc.Update(ctx, listing.ID, ListingInput{Title: "Brass Lamp", Price: 12}, nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brass Lamp", got.Title)
	assert.Equal(t, 12.0, got.Price)
	assert.Equal(t, listing.Image, got.Image)
	assert.Equal(t, author.ID, got.Author, "author never changes on update")
}

func TestUpdateReplacesImage(t *testing.T) {
	svc, _, _, images, author := newListingFixture(t)
	ctx := context.Background()

	file := &ImageFile{Data: []byte("old"), MimeType: "image/png"}
	listing, err := svc.Create(ctx, author.ID, ListingInput{Title: "Lamp", Price: 10}, file)
	require.NoError(t, err)

	images.nextURL = "https://img.test/new.png"
	images.nextToken = "new456"
	err = svc.Update(ctx, listing.ID, ListingInput{Title: "Lamp", Price: 10}, &ImageFile{Data: []byte("new"), MimeType: "image/png"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/new.png", got.Image.URL)
	assert.Equal(t, "new456", got.Image.Filename)
	assert.Equal(t, []string{"photo123"}, images.deleted, "old stored image is removed first")
}

func TestUpdateUploadFailureAbortsEdit(t *testing.T) {
	svc, _, _, images, author := newListingFixture(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, author.ID, ListingInput{Title: "Lamp", Price: 10}, nil)
	require.NoError(t, err)

	images.failUp = errors.New("cloud unreachable")
	err = svc.Update(ctx, listing.ID, ListingInput{Title: "Changed", Price: 99}, &ImageFile{Data: []byte("new"), MimeType: "image/png"})
	assert.ErrorIs(t, err, apperrors.ErrImageUpload)

	got, err := svc.Get(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", got.Title, "no field updates when the upload fails")
	assert.Equal(t, 10.0, got.Price)
}

func TestDeleteListingCleansUpImageBestEffort(t *testing.T) {
	svc, listings, _, images, author := newListingFixture(t)
	ctx := context.Background()

	file := &ImageFile{Data: []byte("png"), MimeType: "image/png"}
	listing, err := svc.Create(ctx, author.ID, ListingInput{Title: "Lamp", Price: 10}, file)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, listing.ID))
	assert.Equal(t, []string{"photo123"}, images.deleted)

	_, err = listings.FindByID(ctx, listing.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteListingSurvivesImageServiceFailure(t *testing.T) {
	svc, listings, _, images, author := newListingFixture(t)
	ctx := context.Background()

	file := &ImageFile{Data: []byte("png"), MimeType: "image/png"}
	listing, err := svc.Create(ctx, author.ID, ListingInput{Title: "Lamp", Price: 10}, file)
	require.NoError(t, err)

	images.failDel = errors.New("cloud unreachable")
	assert.NoError(t, svc.Delete(ctx, listing.ID), "image cleanup failure never blocks deletion")

	_, err = listings.FindByID(ctx, listing.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestShowPopulatesAuthor(t *testing.T) {
	svc, _, _, _, author := newListingFixture(t)
	ctx := context.Background()

	listing, err := svc.Create(ctx, author.ID, ListingInput{Title: "Lamp", Price: 10}, nil)
	require.NoError(t, err)

	detail, err := svc.Show(ctx, listing.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Author)
	assert.Equal(t, "alice", detail.Author.Username)
}

func TestShowMissingListing(t *testing.T) {
	svc, _, _, _, _ := newListingFixture(t)

	_, err := svc.Show(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
