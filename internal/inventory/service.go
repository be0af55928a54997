// Package inventory coordinates the item and list collections of an owner
// with the asset pipeline. Every mutation re-reads the affected collection
// so callers always render what the store holds.
package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/erazemk/restock/internal/asset"
	"github.com/erazemk/restock/internal/model"
	"github.com/erazemk/restock/internal/store"
)

// Assets is the part of the asset pipeline the service needs.
type Assets interface {
	CompressAndUpload(ctx context.Context, owner model.OwnerID, up asset.Upload) (string, error)
	Release(ctx context.Context, ref string)
}

// Service implements item and list operations for authenticated owners.
type Service struct {
	db     *sql.DB
	assets Assets
	log    *slog.Logger
}

// NewService creates a Service.
func NewService(db *sql.DB, assets Assets, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, assets: assets, log: logger.With("component", "inventory")}
}

// ItemResult is returned by item mutations. Item is the affected record
// (nil after a delete or a failed write); Items is the owner's collection
// as re-read after the mutation.
type ItemResult struct {
	Item  *model.Item  `json:"item,omitempty"`
	Items []model.Item `json:"items"`
}

// ListResult is the list counterpart of ItemResult.
type ListResult struct {
	Entry   *model.ListEntry  `json:"entry,omitempty"`
	Entries []model.ListEntry `json:"entries"`
}

// Items returns owner's items.
func (s *Service) Items(ctx context.Context, owner model.OwnerID) ([]model.Item, error) {
	items, err := store.ListItems(ctx, s.db, owner)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// FindByBarcode returns owner's items carrying exactly barcode.
func (s *Service) FindByBarcode(ctx context.Context, owner model.OwnerID, barcode string) ([]model.Item, error) {
	items, err := store.FindItemsByBarcode(ctx, s.db, owner, barcode)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Item returns a single item or an error matching model.ErrNotFound.
func (s *Service) Item(ctx context.Context, owner model.OwnerID, id string) (*model.Item, error) {
	item, err := store.GetItem(ctx, s.db, owner, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
	}
	return item, nil
}

// CreateItem validates in, uploads img when given and inserts the item.
// Nothing is uploaded or written when validation fails, and a freshly
// uploaded image is released again if the insert fails.
func (s *Service) CreateItem(ctx context.Context, owner model.OwnerID, in model.ItemInput, img *asset.Upload) (ItemResult, error) {
	if err := in.Validate(); err != nil {
		return s.itemResult(ctx, owner, nil, err)
	}

	var ref string
	if img != nil {
		var err error
		ref, err = s.assets.CompressAndUpload(ctx, owner, *img)
		if err != nil {
			return s.itemResult(ctx, owner, nil, fmt.Errorf("uploading item image: %w", err))
		}
	}

	item, err := store.CreateItem(ctx, s.db, owner, in, ref)
	if err != nil {
		s.assets.Release(ctx, ref)
		return s.itemResult(ctx, owner, nil, err)
	}

	s.log.Info("item created", "owner", owner, "item", item.ID, "name", item.Name, "image", item.HasImage())
	return s.itemResult(ctx, owner, item, nil)
}

// UpdateItem replaces the fields of an existing item. Without img the
// current image is kept; with img the new image is uploaded first and the
// old one released once the record points at the new one.
func (s *Service) UpdateItem(ctx context.Context, owner model.OwnerID, id string, in model.ItemInput, img *asset.Upload) (ItemResult, error) {
	if err := in.Validate(); err != nil {
		return s.itemResult(ctx, owner, nil, err)
	}

	existing, err := s.Item(ctx, owner, id)
	if err != nil {
		return s.itemResult(ctx, owner, nil, err)
	}

	ref := existing.ImageRef
	if img != nil {
		ref, err = s.assets.CompressAndUpload(ctx, owner, *img)
		if err != nil {
			return s.itemResult(ctx, owner, existing, fmt.Errorf("uploading item image: %w", err))
		}
	}

	if err := store.UpdateItem(ctx, s.db, owner, id, in, ref); err != nil {
		if img != nil {
			s.assets.Release(ctx, ref)
		}
		return s.itemResult(ctx, owner, existing, err)
	}

	if img != nil && existing.ImageRef != "" && existing.ImageRef != ref {
		s.assets.Release(ctx, existing.ImageRef)
	}

	item, err := store.GetItem(ctx, s.db, owner, id)
	if err != nil {
		return s.itemResult(ctx, owner, nil, err)
	}

	s.log.Info("item updated", "owner", owner, "item", id, "image_replaced", img != nil)
	return s.itemResult(ctx, owner, item, nil)
}

// QuickRemove lowers an item's quantity by one, stopping at zero.
func (s *Service) QuickRemove(ctx context.Context, owner model.OwnerID, id string) (ItemResult, error) {
	if err := store.DecrementItemQuantity(ctx, s.db, owner, id); err != nil {
		return s.itemResult(ctx, owner, nil, err)
	}

	item, err := store.GetItem(ctx, s.db, owner, id)
	if err != nil {
		return s.itemResult(ctx, owner, nil, err)
	}
	return s.itemResult(ctx, owner, item, nil)
}

// DeleteItem releases the item's image and then deletes the record. The
// record is deleted even when the image could not be removed.
func (s *Service) DeleteItem(ctx context.Context, owner model.OwnerID, id string) (ItemResult, error) {
	existing, err := s.Item(ctx, owner, id)
	if err != nil {
		return s.itemResult(ctx, owner, nil, err)
	}

	if existing.HasImage() {
		s.assets.Release(ctx, existing.ImageRef)
	}

	if err := store.DeleteItem(ctx, s.db, owner, id); err != nil {
		return s.itemResult(ctx, owner, nil, err)
	}

	s.log.Info("item deleted", "owner", owner, "item", id, "name", existing.Name)
	return s.itemResult(ctx, owner, nil, nil)
}

// List returns owner's restock list.
func (s *Service) List(ctx context.Context, owner model.OwnerID) ([]model.ListEntry, error) {
	entries, err := store.ListEntries(ctx, s.db, owner)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.ListEntry{}
	}
	return entries, nil
}

// QuickAdd creates an ad-hoc list entry, filling in defaults for a
// missing name or quantity.
func (s *Service) QuickAdd(ctx context.Context, owner model.OwnerID, in model.ListInput) (ListResult, error) {
	if err := in.Validate(); err != nil {
		return s.listResult(ctx, owner, nil, err)
	}

	entry, err := store.CreateListEntry(ctx, s.db, owner, in.Entry())
	if err != nil {
		return s.listResult(ctx, owner, nil, err)
	}

	s.log.Info("list entry added", "owner", owner, "entry", entry.ID, "name", entry.Name)
	return s.listResult(ctx, owner, entry, nil)
}

// RemoveFromList deletes a list entry.
func (s *Service) RemoveFromList(ctx context.Context, owner model.OwnerID, id string) (ListResult, error) {
	if err := store.DeleteListEntry(ctx, s.db, owner, id); err != nil {
		return s.listResult(ctx, owner, nil, err)
	}

	s.log.Info("list entry removed", "owner", owner, "entry", id)
	return s.listResult(ctx, owner, nil, nil)
}

// itemResult re-reads owner's items and pairs them with the outcome of
// the operation. opErr wins over a failed refresh.
func (s *Service) itemResult(ctx context.Context, owner model.OwnerID, item *model.Item, opErr error) (ItemResult, error) {
	items, err := s.Items(ctx, owner)
	if err != nil {
		if opErr != nil {
			s.log.Warn("refreshing items failed", "owner", owner, "error", err)
			return ItemResult{Item: item}, opErr
		}
		return ItemResult{Item: item}, fmt.Errorf("refreshing %s: %w", model.ItemsPath(owner), err)
	}
	return ItemResult{Item: item, Items: items}, opErr
}

func (s *Service) listResult(ctx context.Context, owner model.OwnerID, entry *model.ListEntry, opErr error) (ListResult, error) {
	entries, err := s.List(ctx, owner)
	if err != nil {
		if opErr != nil {
			s.log.Warn("refreshing list failed", "owner", owner, "error", err)
			return ListResult{Entry: entry}, opErr
		}
		return ListResult{Entry: entry}, fmt.Errorf("refreshing %s: %w", model.ListPath(owner), err)
	}
	return ListResult{Entry: entry, Entries: entries}, opErr
}
