package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/spoolshelf/internal/model"
)

// LineStore persists the full inventory line table in SQLite.
type LineStore struct {
	DB *sql.DB
}

// Load implements service.Persistence.
func (s *LineStore) Load(ctx context.Context) ([]model.Line, error) {
	return LoadLines(ctx, s.DB)
}

// Save implements service.Persistence.
func (s *LineStore) Save(ctx context.Context, lines []model.Line) error {
	return SaveLines(ctx, s.DB, lines)
}

// LoadLines returns every inventory line in stored order.
func LoadLines(ctx context.Context, db *sql.DB) ([]model.Line, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, category, material, color, brand, status, count, notes
		 FROM inventory_lines ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("loading lines: %w", err)
	}
	defer rows.Close()

	var lines []model.Line
	for rows.Next() {
		var l model.Line
		var count sql.NullInt64
		if err := rows.Scan(&l.ID, &l.Category, &l.Material, &l.Color, &l.Brand, &l.Status, &count, &l.Notes); err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}
		if !count.Valid {
			return nil, fmt.Errorf("line %d has no count", l.ID)
		}
		l.Count = int(count.Int64)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// SaveLines replaces the whole table with lines, keeping their order.
func SaveLines(ctx context.Context, db *sql.DB, lines []model.Line) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_lines`); err != nil {
		return fmt.Errorf("clearing lines: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO inventory_lines (id, position, category, material, color, brand, status, count, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range lines {
		_, err := stmt.ExecContext(ctx,
			l.ID, i, string(l.Category), l.Material, l.Color, l.Brand, string(l.Status), l.Count, l.Notes,
		)
		if err != nil {
			return fmt.Errorf("inserting line %d: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing lines: %w", err)
	}
	return nil
}
