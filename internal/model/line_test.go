package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestLineKeySeparatesStatus(t *testing.T) {
	unopened := Line{Category: CategoryFilament, Material: "PLA", Color: "red", Status: StatusUnopened}
	opened := unopened
	opened.Status = StatusOpened

	if unopened.Key() == opened.Key() {
		t.Error("expected different keys for different statuses")
	}
	if unopened.Product() != opened.Product() {
		t.Error("expected same product key for both statuses")
	}
	if unopened.Product().WithStatus(StatusOpened) != opened.Key() {
		t.Error("WithStatus did not produce the opened key")
	}
}

func TestLineKeyIgnoresNotes(t *testing.T) {
	a := Line{Category: CategoryResin, Material: "basic", Color: "grey", Status: StatusOpened, Notes: "half full"}
	b := a
	b.Notes = ""
	b.Count = 7

	if a.Key() != b.Key() {
		t.Error("notes and count must not be part of the identity key")
	}
}

func TestLineKeyIncludesBrand(t *testing.T) {
	a := Line{Category: CategoryFilament, Material: "PETG", Color: "black", Brand: "Prusament", Status: StatusUnopened}
	b := a
	b.Brand = ""

	if a.Key() == b.Key() {
		t.Error("brand must be part of the identity key")
	}
}

func TestEnumValidity(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"filament", CategoryFilament.Valid(), true},
		{"resin", CategoryResin.Valid(), true},
		{"empty category", Category("").Valid(), false},
		{"wood category", Category("wood").Valid(), false},
		{"unopened", StatusUnopened.Valid(), true},
		{"opened", StatusOpened.Valid(), true},
		{"empty status", Status("").Valid(), false},
		{"finished status", Status("finished").Valid(), false},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		err    error
		target error
		msg    string
	}{
		{&ValidationError{Field: "quantity", Reason: "must be at least 1"}, ErrValidation, "quantity: must be at least 1"},
		{&NotFoundError{ID: 4, Want: StatusUnopened}, ErrNotFound, "no unopened line 4 with stock left"},
		{&NotFoundError{ID: 9}, ErrNotFound, "line 9 not found"},
		{&PersistenceError{Op: "save", Err: cause}, ErrPersistence, "save inventory: disk full"},
	}

	for _, tt := range tests {
		wrapped := fmt.Errorf("handling request: %w", tt.err)
		if !errors.Is(wrapped, tt.target) {
			t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.target)
		}
		if tt.err.Error() != tt.msg {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.msg)
		}
	}

	perr := &PersistenceError{Op: "load", Err: cause}
	if !errors.Is(perr, cause) {
		t.Error("PersistenceError should unwrap to its cause")
	}
	if errors.Is(perr, ErrNotFound) {
		t.Error("PersistenceError must not match ErrNotFound")
	}
}
