package model

import "testing"

func TestListInputEntryDefaults(t *testing.T) {
	in := ListInput{}
	e := in.Entry()
	if e.Name != DefaultListName {
		t.Errorf("expected name %q, got %q", DefaultListName, e.Name)
	}
	if e.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", e.Quantity)
	}
	if e.Company != "" || e.Cost != 0 || e.Barcode != "" {
		t.Errorf("expected zero company/cost/barcode, got %+v", e)
	}

	// Zero quantity falls back to 1, like an omitted one.
	in = ListInput{Name: "Tape", Quantity: ptr(0)}
	if e := in.Entry(); e.Quantity != 1 || e.Name != "Tape" {
		t.Errorf("unexpected entry %+v", e)
	}

	in = ListInput{Name: "Tape", Quantity: ptr(6), Cost: ptr(3.25)}
	if e := in.Entry(); e.Quantity != 6 || e.Cost != 3.25 {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestListInputValidate(t *testing.T) {
	if err := (&ListInput{Quantity: ptr(-1)}).Validate(); err == nil {
		t.Error("expected error for negative quantity")
	}
	if err := (&ListInput{Cost: ptr(-0.5)}).Validate(); err == nil {
		t.Error("expected error for negative cost")
	}
	if err := (&ListInput{}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTransferSnapshot(t *testing.T) {
	item := Item{ID: "i1", Name: "Drill", Company: "Acme", Cost: 40, Barcode: "0123", Description: "cordless", Quantity: 9}
	ov := TransferOverrides{Description: "restock", Quantity: ptr(3)}

	e := ov.Snapshot(item)
	if e.Name != "Drill" || e.Company != "Acme" || e.Cost != 40 || e.Barcode != "0123" {
		t.Errorf("descriptive fields not copied: %+v", e)
	}
	if e.Description != "restock" || e.Quantity != 3 {
		t.Errorf("overrides not applied: %+v", e)
	}

	// Defaults: empty description, zero quantity.
	e = (&TransferOverrides{}).Snapshot(item)
	if e.Description != "" || e.Quantity != 0 {
		t.Errorf("expected empty overrides, got %+v", e)
	}
}
