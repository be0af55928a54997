package model

import (
	"math"
	"strings"
	"time"
)

// LegacyQuantity is the quantity reported for rows written before the
// quantity column was mandatory.
const LegacyQuantity = 0

// Item is a tracked inventory unit owned by exactly one owner.
type Item struct {
	ID          string    `json:"id"`
	OwnerID     OwnerID   `json:"owner_id"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Cost        float64   `json:"cost"`
	Description string    `json:"description"`
	Barcode     string    `json:"barcode"`
	Quantity    int       `json:"quantity"`
	ImageRef    string    `json:"image_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasImage reports whether the item references a stored asset.
func (i *Item) HasImage() bool {
	return i.ImageRef != ""
}

// ItemInput carries the fields of a create or a full-replace update.
// Cost and Quantity are pointers so an omitted value can be told apart
// from an explicit zero.
type ItemInput struct {
	Name        string   `json:"name"`
	Company     string   `json:"company"`
	Cost        *float64 `json:"cost"`
	Description string   `json:"description"`
	Barcode     string   `json:"barcode"`
	Quantity    *int     `json:"quantity"`
}

// Validate checks required fields. Name must be non-blank and cost present
// and non-negative; quantity, when given, must not be negative.
func (in *ItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "required")
	}
	if in.Cost == nil {
		return invalid("cost", "required")
	}
	if math.IsNaN(*in.Cost) || math.IsInf(*in.Cost, 0) {
		return invalid("cost", "must be a number")
	}
	if *in.Cost < 0 {
		return invalid("cost", "must not be negative")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return invalid("quantity", "must not be negative")
	}
	return nil
}

// QuantityOrDefault returns the submitted quantity, or 0 when omitted.
func (in *ItemInput) QuantityOrDefault() int {
	if in.Quantity == nil {
		return 0
	}
	return *in.Quantity
}

// CostValue returns the submitted cost, or 0 when omitted.
func (in *ItemInput) CostValue() float64 {
	if in.Cost == nil {
		return 0
	}
	return *in.Cost
}
