package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/restock/internal/model"
)

const listColumns = `id, owner_id, name, company, cost, barcode, description, quantity, created_at`

// CreateListEntry inserts entry into owner's restock list. ID, OwnerID and
// CreatedAt on entry are ignored and assigned by the store.
func CreateListEntry(ctx context.Context, db *sql.DB, owner model.OwnerID, entry model.ListEntry) (*model.ListEntry, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO list_entries (id, owner_id, name, company, cost, barcode, description, quantity)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(owner), entry.Name, entry.Company, entry.Cost, entry.Barcode,
		entry.Description, entry.Quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("creating entry in %s: %w", model.ListPath(owner), err)
	}

	return GetListEntry(ctx, db, owner, id)
}

// GetListEntry returns one of owner's list entries, or nil if there is none.
func GetListEntry(ctx context.Context, db *sql.DB, owner model.OwnerID, id string) (*model.ListEntry, error) {
	e := &model.ListEntry{}
	var ownerID string
	err := db.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM list_entries WHERE owner_id = ? AND id = ?`,
		string(owner), id,
	).Scan(&e.ID, &ownerID, &e.Name, &e.Company, &e.Cost, &e.Barcode, &e.Description, &e.Quantity, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting list entry: %w", err)
	}
	e.OwnerID = model.OwnerID(ownerID)
	return e, nil
}

// ListEntries returns owner's restock list, oldest first.
func ListEntries(ctx context.Context, db *sql.DB, owner model.OwnerID) ([]model.ListEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+listColumns+` FROM list_entries WHERE owner_id = ? ORDER BY created_at, rowid`,
		string(owner),
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", model.ListPath(owner), err)
	}
	defer rows.Close()

	var entries []model.ListEntry
	for rows.Next() {
		var e model.ListEntry
		var ownerID string
		if err := rows.Scan(&e.ID, &ownerID, &e.Name, &e.Company, &e.Cost, &e.Barcode, &e.Description, &e.Quantity, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning list entry: %w", err)
		}
		e.OwnerID = model.OwnerID(ownerID)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteListEntry removes an entry from owner's restock list.
func DeleteListEntry(ctx context.Context, db *sql.DB, owner model.OwnerID, id string) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM list_entries WHERE owner_id = ? AND id = ?`,
		string(owner), id,
	)
	if err != nil {
		return fmt.Errorf("deleting list entry: %w", err)
	}
	return expectOneRow(result, "list entry", id)
}
