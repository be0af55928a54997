package model

import (
	"errors"
	"math"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestItemInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		in    ItemInput
		field string
	}{
		{"valid", ItemInput{Name: "Bolt", Cost: ptr(1.5)}, ""},
		{"zero cost ok", ItemInput{Name: "Bolt", Cost: ptr(0.0)}, ""},
		{"missing name", ItemInput{Cost: ptr(1.0)}, "name"},
		{"blank name", ItemInput{Name: "   ", Cost: ptr(1.0)}, "name"},
		{"missing cost", ItemInput{Name: "Bolt"}, "cost"},
		{"negative cost", ItemInput{Name: "Bolt", Cost: ptr(-1.0)}, "cost"},
		{"nan cost", ItemInput{Name: "Bolt", Cost: ptr(math.NaN())}, "cost"},
		{"negative quantity", ItemInput{Name: "Bolt", Cost: ptr(1.0), Quantity: ptr(-2)}, "quantity"},
	}

	for _, tt := range tests {
		err := tt.in.Validate()
		if tt.field == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", tt.name, err)
			continue
		}
		if verr.Field != tt.field {
			t.Errorf("%s: expected field %q, got %q", tt.name, tt.field, verr.Field)
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected errors.Is(err, ErrValidation)", tt.name)
		}
	}
}

func TestItemInputDefaults(t *testing.T) {
	in := ItemInput{Name: "Bolt", Cost: ptr(2.0)}
	if in.QuantityOrDefault() != 0 {
		t.Errorf("expected default quantity 0, got %d", in.QuantityOrDefault())
	}
	in.Quantity = ptr(4)
	if in.QuantityOrDefault() != 4 {
		t.Errorf("expected quantity 4, got %d", in.QuantityOrDefault())
	}
}

func TestCollectionPaths(t *testing.T) {
	owner := OwnerID("abc")
	if got := ItemsPath(owner); got != "owner/abc/items" {
		t.Errorf("ItemsPath = %q", got)
	}
	if got := ListPath(owner); got != "owner/abc/list" {
		t.Errorf("ListPath = %q", got)
	}
}

func TestAssetErrorUnwrap(t *testing.T) {
	cause := errors.New("bucket gone")
	up := &AssetError{Op: "upload", Key: "k", Err: cause}
	if !errors.Is(up, ErrUpload) || !errors.Is(up, cause) {
		t.Errorf("upload error should match ErrUpload and cause: %v", up)
	}
	if errors.Is(up, ErrDelete) {
		t.Error("upload error should not match ErrDelete")
	}

	del := &AssetError{Op: "delete", Err: cause}
	if !errors.Is(del, ErrDelete) {
		t.Errorf("delete error should match ErrDelete: %v", del)
	}
}
