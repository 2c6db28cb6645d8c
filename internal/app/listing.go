package app

import (
	"context"
	"time"

	"hydauction-listing-service/internal/domain/shared"
	"hydauction-listing-service/internal/ports/inbound"
	"hydauction-listing-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ListingService implements the item listing use cases
type ListingService struct {
	itemRepo  outbound.ItemRepository
	imageRepo outbound.ImageRepository
	files     outbound.FileStore
	logger    zerolog.Logger
}
type ListingServiceParams struct {
	ItemRepo  outbound.ItemRepository
	ImageRepo outbound.ImageRepository
	Files     outbound.FileStore
	Logger    zerolog.Logger
}

// NewListingService creates a new listing service
func NewListingService(params ListingServiceParams) *ListingService {
	return &ListingService{
		itemRepo:  params.ItemRepo,
		imageRepo: params.ImageRepo,
		files:     params.Files,
		logger:    params.Logger.With().Str("component", "listing_service").Logger(),
	}
}

// ListItems joins every item with its images. An image id with no matching
// record yields an empty path entry; a concurrent delete must degrade the
// view, not fail it.
func (service *ListingService) ListItems(ctx context.Context, identity *shared.Identity) ([]shared.ItemView, error) {
	items, err := service.itemRepo.List(ctx)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to fetch items")
		return nil, err
	}

	images, err := service.imageRepo.List(ctx)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to fetch images")
		return nil, err
	}

	pathsByID := make(map[uuid.UUID]string, len(images))
	for _, image := range images {
		pathsByID[image.ID] = image.ImagePath
	}

	views := make([]shared.ItemView, 0, len(items))
	for _, item := range items {
		paths := make([]string, 0, len(item.ImageIDs))
		for _, imageID := range item.ImageIDs {
			if path, ok := pathsByID[imageID]; ok {
				paths = append(paths, "/"+path)
			} else {
				paths = append(paths, "")
			}
		}

		views = append(views, shared.ItemView{
			ID:     item.ID,
			Name:   item.Name,
			Price:  item.Price,
			Images: paths,
			Mine:   identity != nil && identity.UserID == item.AddedBy,
		})
	}

	return views, nil
}

// AddItem stores the uploaded files, records one image per stored path and
// creates the item referencing them in upload order
func (service *ListingService) AddItem(ctx context.Context, identity shared.Identity, req inbound.AddItemRequest) (uuid.UUID, error) {
	service.logger.Info().
		Str("user_id", identity.UserID.String()).
		Str("name", req.Name).
		Int("uploads", len(req.Uploads)).
		Msg("Adding item")

	paths, err := service.files.SaveAll(ctx, req.Uploads)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to store uploaded files")
		return uuid.Nil, err
	}

	imageIDs := make([]uuid.UUID, 0, len(paths))
	for _, path := range paths {
		image := &shared.Image{
			ID:        uuid.New(),
			ImagePath: path,
		}

		if err := service.imageRepo.Create(ctx, image); err != nil {
			service.logger.Error().Err(err).Str("image_path", path).Msg("Failed to save image record")
			return uuid.Nil, err
		}

		imageIDs = append(imageIDs, image.ID)
	}

	item := &shared.Item{
		ID:        uuid.New(),
		Name:      req.Name,
		Price:     req.Price,
		AddedBy:   identity.UserID,
		ImageIDs:  imageIDs,
		CreatedAt: time.Now(),
	}

	if err := service.itemRepo.Create(ctx, item); err != nil {
		service.logger.Error().Err(err).Str("item_id", item.ID.String()).Msg("Failed to save item to database")
		return uuid.Nil, err
	}

	service.logger.Info().
		Str("item_id", item.ID.String()).
		Str("user_id", identity.UserID.String()).
		Int("images", len(imageIDs)).
		Msg("Item added successfully")

	return item.ID, nil
}

// DeleteItem removes an item and every image it references. Ownership is the
// only authorization rule. Images are deleted before the item, so a crash in
// between leaves an imageless item rather than unowned images.
func (service *ListingService) DeleteItem(ctx context.Context, identity shared.Identity, itemID uuid.UUID) error {
	service.logger.Info().
		Str("item_id", itemID.String()).
		Str("user_id", identity.UserID.String()).
		Msg("Deleting item")

	item, err := service.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		service.logger.Warn().Err(err).Str("item_id", itemID.String()).Msg("Failed to retrieve item for deletion")
		return err
	}

	if item.AddedBy != identity.UserID {
		service.logger.Warn().
			Str("item_id", itemID.String()).
			Str("owner_id", item.AddedBy.String()).
			Str("user_id", identity.UserID.String()).
			Msg("Delete rejected, requester is not the owner")
		return shared.ErrNotItemOwner
	}

	if len(item.ImageIDs) > 0 {
		if err := service.imageRepo.DeleteByIDs(ctx, item.ImageIDs); err != nil {
			service.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to delete item images")
			return err
		}
	}

	if err := service.itemRepo.Delete(ctx, itemID); err != nil {
		service.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to delete item")
		return err
	}

	service.logger.Info().
		Str("item_id", itemID.String()).
		Int("images_deleted", len(item.ImageIDs)).
		Msg("Item deleted successfully")

	return nil
}
