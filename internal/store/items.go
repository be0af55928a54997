package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/restock/internal/model"
)

// quantityExpr reads quantity with legacy NULLs mapped to model.LegacyQuantity.
var quantityExpr = fmt.Sprintf("COALESCE(quantity, %d)", model.LegacyQuantity)

var itemColumns = `id, owner_id, name, company, cost, description, barcode,
	` + quantityExpr + `, image_ref, created_at, updated_at`

// CreateItem inserts a new item for owner. The caller validates in first;
// quantity defaults to 0 when omitted.
func CreateItem(ctx context.Context, db *sql.DB, owner model.OwnerID, in model.ItemInput, imageRef string) (*model.Item, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, owner_id, name, company, cost, description, barcode, quantity, image_ref)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(owner), strings.TrimSpace(in.Name), in.Company, in.CostValue(),
		in.Description, in.Barcode, in.QuantityOrDefault(), imageRef,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item in %s: %w", model.ItemsPath(owner), err)
	}

	return GetItem(ctx, db, owner, id)
}

// GetItem returns one of owner's items by ID, or nil if there is none.
func GetItem(ctx context.Context, db *sql.DB, owner model.OwnerID, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE owner_id = ? AND id = ?`,
		string(owner), id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all of owner's items ordered by name.
func ListItems(ctx context.Context, db *sql.DB, owner model.OwnerID) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE owner_id = ? ORDER BY name, created_at, id`,
		string(owner),
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", model.ItemsPath(owner), err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// FindItemsByBarcode returns owner's items whose barcode equals barcode exactly.
func FindItemsByBarcode(ctx context.Context, db *sql.DB, owner model.OwnerID, barcode string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE owner_id = ? AND barcode = ? ORDER BY name, created_at, id`,
		string(owner), barcode,
	)
	if err != nil {
		return nil, fmt.Errorf("finding items by barcode: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem replaces every editable field of an item. Fields left empty
// in the input are stored empty; imageRef is written as given, so callers
// pass the existing reference to keep it.
func UpdateItem(ctx context.Context, db *sql.DB, owner model.OwnerID, id string, in model.ItemInput, imageRef string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, company = ?, cost = ?, description = ?, barcode = ?,
		        quantity = ?, image_ref = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE owner_id = ? AND id = ?`,
		strings.TrimSpace(in.Name), in.Company, in.CostValue(), in.Description, in.Barcode,
		in.QuantityOrDefault(), imageRef, string(owner), id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return expectOneRow(result, "item", id)
}

// DecrementItemQuantity lowers an item's quantity by one, never below zero.
// The clamp happens inside a single UPDATE so repeated calls are safe.
func DecrementItemQuantity(ctx context.Context, db *sql.DB, owner model.OwnerID, id string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET quantity = MAX(`+quantityExpr+` - 1, 0), updated_at = CURRENT_TIMESTAMP
		 WHERE owner_id = ? AND id = ?`,
		string(owner), id,
	)
	if err != nil {
		return fmt.Errorf("decrementing item quantity: %w", err)
	}
	return expectOneRow(result, "item", id)
}

// DeleteItem removes an item record. Releasing its image is the caller's job.
func DeleteItem(ctx context.Context, db *sql.DB, owner model.OwnerID, id string) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM items WHERE owner_id = ? AND id = ?`,
		string(owner), id,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return expectOneRow(result, "item", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var owner string
	err := row.Scan(&item.ID, &owner, &item.Name, &item.Company, &item.Cost, &item.Description,
		&item.Barcode, &item.Quantity, &item.ImageRef, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.OwnerID = model.OwnerID(owner)
	return item, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// expectOneRow maps an UPDATE/DELETE that touched nothing to model.ErrNotFound.
func expectOneRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
	}
	return nil
}
