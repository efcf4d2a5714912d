package model

import (
	"errors"
	"strings"
	"testing"
)

func TestRoleAtLeast(t *testing.T) {
	roles := []string{RoleUser, RoleManager, RoleAdmin}
	for i, role := range roles {
		for j, minimum := range roles {
			want := i >= j
			if got := RoleAtLeast(role, minimum); got != want {
				t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", role, minimum, got, want)
			}
		}
	}
}

func TestRoleAtLeastUnknownRolesFailClosed(t *testing.T) {
	tests := []struct {
		role    string
		minimum string
	}{
		{"unknown", RoleUser},
		{"", RoleUser},
		{RoleAdmin, "unknown"},
		{RoleAdmin, ""},
		{"unknown", "unknown"},
		{"", ""},
		{"Admin", RoleUser},
	}

	for _, tt := range tests {
		if RoleAtLeast(tt.role, tt.minimum) {
			t.Errorf("RoleAtLeast(%q, %q) = true, want false", tt.role, tt.minimum)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleUser} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false", role)
		}
	}
	for _, role := range []string{"", "owner", "ADMIN", " user"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true", role)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	short := strings.Repeat("x", MinPasswordLength-1)
	exact := strings.Repeat("x", MinPasswordLength)

	for _, pw := range []string{"", short} {
		err := ValidatePassword(pw)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ValidatePassword(%q) = %v, want ValidationError", pw, err)
		}
		if verr.Field != "password" {
			t.Errorf("expected field password, got %q", verr.Field)
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected error to match ErrValidation")
		}
	}

	for _, pw := range []string{exact, "a-valid-password"} {
		if err := ValidatePassword(pw); err != nil {
			t.Errorf("ValidatePassword(%q) = %v, want nil", pw, err)
		}
	}
}
