package db

import (
	"context"
	"testing"

	"github.com/erazemk/restock/internal/model"
)

func TestMigrateIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestMigrateBackfillsLegacyQuantity(t *testing.T) {
	database := NewTestDB(t)
	ctx := context.Background()

	_, err := database.ExecContext(ctx,
		`INSERT INTO items (id, owner_id, name, cost, quantity) VALUES ('legacy', 'o1', 'Old', 1, NULL)`)
	if err != nil {
		t.Fatalf("inserting legacy row: %v", err)
	}

	if err := Migrate(database); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var qty int
	if err := database.QueryRowContext(ctx, `SELECT quantity FROM items WHERE id = 'legacy'`).Scan(&qty); err != nil {
		t.Fatalf("reading quantity: %v", err)
	}
	if qty != model.LegacyQuantity {
		t.Errorf("expected legacy quantity %d, got %d", model.LegacyQuantity, qty)
	}
}
