package app

import (
	"context"
	"testing"

	"hydauction-listing-service/internal/domain/shared"
	"hydauction-listing-service/internal/ports/inbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListingFixture() (*ListingService, *fakeItemRepo, *fakeImageRepo) {
	items := newFakeItemRepo()
	images := newFakeImageRepo()
	service := NewListingService(ListingServiceParams{
		ItemRepo:  items,
		ImageRepo: images,
		Files:     &fakeFileStore{},
		Logger:    zerolog.Nop(),
	})
	return service, items, images
}

func upload(name string) shared.Upload {
	return shared.Upload{Filename: name}
}

func TestAddItemRecordsImagesInUploadOrder(t *testing.T) {
	service, items, images := newListingFixture()
	ctx := context.Background()
	owner := shared.Identity{UserID: uuid.New(), Username: "alice"}

	itemID, err := service.AddItem(ctx, owner, inbound.AddItemRequest{
		Name:    "vase",
		Price:   42.5,
		Uploads: []shared.Upload{upload("front.jpg"), upload("back.jpg")},
	})
	require.NoError(t, err)

	item, err := items.GetByID(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, "vase", item.Name)
	assert.Equal(t, 42.5, item.Price)
	assert.Equal(t, owner.UserID, item.AddedBy)
	require.Len(t, item.ImageIDs, 2)

	stored, err := images.List(ctx)
	require.NoError(t, err)
	byID := make(map[uuid.UUID]string, len(stored))
	for _, image := range stored {
		byID[image.ID] = image.ImagePath
	}

	// Image ids on the item line up with the uploads, front first
	assert.Contains(t, byID[item.ImageIDs[0]], "front.jpg")
	assert.Contains(t, byID[item.ImageIDs[1]], "back.jpg")
}

func TestListItemsJoinsImagesAndFlagsOwnership(t *testing.T) {
	service, _, _ := newListingFixture()
	ctx := context.Background()
	alice := shared.Identity{UserID: uuid.New(), Username: "alice"}
	bob := shared.Identity{UserID: uuid.New(), Username: "bob"}

	_, err := service.AddItem(ctx, alice, inbound.AddItemRequest{
		Name:    "vase",
		Price:   42.5,
		Uploads: []shared.Upload{upload("front.jpg")},
	})
	require.NoError(t, err)

	views, err := service.ListItems(ctx, &alice)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Mine)
	require.Len(t, views[0].Images, 1)
	assert.Equal(t, "/public/uploads/0-front.jpg", views[0].Images[0])

	views, err = service.ListItems(ctx, &bob)
	require.NoError(t, err)
	assert.False(t, views[0].Mine)

	// Anonymous listing works and owns nothing
	views, err = service.ListItems(ctx, nil)
	require.NoError(t, err)
	assert.False(t, views[0].Mine)
}

func TestListItemsToleratesDanglingImageReference(t *testing.T) {
	service, items, _ := newListingFixture()
	ctx := context.Background()

	// Item referencing an image record that no longer exists
	item := &shared.Item{
		ID:       uuid.New(),
		Name:     "lamp",
		Price:    10,
		AddedBy:  uuid.New(),
		ImageIDs: []uuid.UUID{uuid.New()},
	}
	require.NoError(t, items.Create(ctx, item))

	views, err := service.ListItems(ctx, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Images, 1)
	assert.Equal(t, "", views[0].Images[0])
}

func TestDeleteItemRequiresOwnership(t *testing.T) {
	service, items, images := newListingFixture()
	ctx := context.Background()
	alice := shared.Identity{UserID: uuid.New(), Username: "alice"}
	mallory := shared.Identity{UserID: uuid.New(), Username: "mallory"}

	itemID, err := service.AddItem(ctx, alice, inbound.AddItemRequest{
		Name:    "vase",
		Price:   42.5,
		Uploads: []shared.Upload{upload("front.jpg")},
	})
	require.NoError(t, err)

	err = service.DeleteItem(ctx, mallory, itemID)
	assert.ErrorIs(t, err, shared.ErrNotItemOwner)

	// The item and its images are untouched after the rejected delete
	item, err := items.GetByID(ctx, itemID)
	require.NoError(t, err)
	stored, err := images.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, len(item.ImageIDs))
}

func TestDeleteItemCascadesToImages(t *testing.T) {
	service, _, images := newListingFixture()
	ctx := context.Background()
	alice := shared.Identity{UserID: uuid.New(), Username: "alice"}

	itemID, err := service.AddItem(ctx, alice, inbound.AddItemRequest{
		Name:    "vase",
		Price:   42.5,
		Uploads: []shared.Upload{upload("front.jpg"), upload("back.jpg")},
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteItem(ctx, alice, itemID))

	views, err := service.ListItems(ctx, &alice)
	require.NoError(t, err)
	assert.Empty(t, views)

	stored, err := images.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestDeleteItemNotFound(t *testing.T) {
	service, _, _ := newListingFixture()

	err := service.DeleteItem(context.Background(), shared.Identity{UserID: uuid.New()}, uuid.New())
	assert.ErrorIs(t, err, shared.ErrItemNotFound)
}
