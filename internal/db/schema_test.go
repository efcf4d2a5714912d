package db

import "testing"

func TestEnsureSchemaIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}

func TestInventoryLineConstraints(t *testing.T) {
	database := NewTestDB(t)

	insert := `INSERT INTO inventory_lines (id, position, category, material, color, brand, status, count)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := database.Exec(insert, 1, 0, "filament", "PLA", "red", "", "unopened", 3); err != nil {
		t.Fatalf("valid insert: %v", err)
	}

	tests := []struct {
		name string
		args []any
	}{
		{"negative count", []any{2, 1, "filament", "PLA", "blue", "", "unopened", -1}},
		{"unknown status", []any{3, 2, "filament", "PLA", "blue", "", "sealed", 1}},
		{"unknown category", []any{4, 3, "wood", "PLA", "blue", "", "opened", 1}},
		{"duplicate identity", []any{5, 4, "filament", "PLA", "red", "", "unopened", 1}},
	}

	for _, tt := range tests {
		if _, err := database.Exec(insert, tt.args...); err == nil {
			t.Errorf("%s: expected constraint violation", tt.name)
		}
	}
}
