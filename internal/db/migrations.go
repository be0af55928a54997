package db

import (
	"database/sql"
	"fmt"

	"github.com/erazemk/restock/internal/model"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: barcode lookups (scan-to-find) are per owner.
	`CREATE INDEX IF NOT EXISTS idx_items_owner_barcode ON items(owner_id, barcode)`,
	// Migration 2: rows imported without a quantity get the legacy default.
	fmt.Sprintf(`UPDATE items SET quantity = %d WHERE quantity IS NULL`, model.LegacyQuantity),
}

// Migrate ensures the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
