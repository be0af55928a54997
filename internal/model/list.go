package model

import (
	"math"
	"strings"
	"time"
)

// DefaultListName is used when a quick-add entry has no name.
const DefaultListName = "Unnamed Item"

// ListEntry is a restock list record. It is a snapshot: once created it
// keeps no reference to the item it may have been copied from, and it is
// never updated.
type ListEntry struct {
	ID          string    `json:"id"`
	OwnerID     OwnerID   `json:"owner_id"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Cost        float64   `json:"cost"`
	Barcode     string    `json:"barcode"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListInput is the quick-add payload. Every field is optional.
type ListInput struct {
	Name        string   `json:"name"`
	Company     string   `json:"company"`
	Cost        *float64 `json:"cost"`
	Barcode     string   `json:"barcode"`
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity"`
}

// Validate rejects negative cost or quantity.
func (in *ListInput) Validate() error {
	if in.Cost != nil {
		if math.IsNaN(*in.Cost) || math.IsInf(*in.Cost, 0) {
			return invalid("cost", "must be a number")
		}
		if *in.Cost < 0 {
			return invalid("cost", "must not be negative")
		}
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return invalid("quantity", "must not be negative")
	}
	return nil
}

// Entry applies quick-add defaults: a placeholder name and a quantity of 1
// when the quantity is omitted or zero.
func (in *ListInput) Entry() ListEntry {
	e := ListEntry{
		Name:        strings.TrimSpace(in.Name),
		Company:     in.Company,
		Barcode:     in.Barcode,
		Description: in.Description,
		Quantity:    1,
	}
	if e.Name == "" {
		e.Name = DefaultListName
	}
	if in.Cost != nil {
		e.Cost = *in.Cost
	}
	if in.Quantity != nil && *in.Quantity > 0 {
		e.Quantity = *in.Quantity
	}
	return e
}

// TransferOverrides are the caller-supplied fields of an item→list transfer.
type TransferOverrides struct {
	Description string `json:"description"`
	Quantity    *int   `json:"quantity"`
}

// Validate rejects a negative quantity.
func (ov *TransferOverrides) Validate() error {
	if ov.Quantity != nil && *ov.Quantity < 0 {
		return invalid("quantity", "must not be negative")
	}
	return nil
}

// Snapshot builds a list entry from item, copying its descriptive fields
// by value and taking description and quantity from the overrides.
func (ov *TransferOverrides) Snapshot(item Item) ListEntry {
	e := ListEntry{
		Name:        item.Name,
		Company:     item.Company,
		Cost:        item.Cost,
		Barcode:     item.Barcode,
		Description: ov.Description,
	}
	if ov.Quantity != nil {
		e.Quantity = *ov.Quantity
	}
	return e
}
