package inventory

import (
	"context"
	"fmt"

	"github.com/erazemk/restock/internal/model"
	"github.com/erazemk/restock/internal/store"
)

// Transfer copies item into owner's restock list. Name, company, cost and
// barcode are taken from the item as given; description and quantity come
// from ov. The item itself is left untouched and later edits to it do not
// reach the entry.
func (s *Service) Transfer(ctx context.Context, owner model.OwnerID, item model.Item, ov model.TransferOverrides) (ListResult, error) {
	if err := ov.Validate(); err != nil {
		return s.listResult(ctx, owner, nil, err)
	}
	// Items of other owners are invisible, same as in the store.
	if item.OwnerID != owner {
		return s.listResult(ctx, owner, nil, fmt.Errorf("item %s: %w", item.ID, model.ErrNotFound))
	}

	entry, err := store.CreateListEntry(ctx, s.db, owner, ov.Snapshot(item))
	if err != nil {
		return s.listResult(ctx, owner, nil, err)
	}

	s.log.Info("item transferred to list", "owner", owner, "item", item.ID, "entry", entry.ID, "quantity", entry.Quantity)
	return s.listResult(ctx, owner, entry, nil)
}

// TransferByID loads an item by id and transfers it.
func (s *Service) TransferByID(ctx context.Context, owner model.OwnerID, itemID string, ov model.TransferOverrides) (ListResult, error) {
	item, err := s.Item(ctx, owner, itemID)
	if err != nil {
		return s.listResult(ctx, owner, nil, err)
	}
	return s.Transfer(ctx, owner, *item, ov)
}
