package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/spoolshelf/internal/model"
)

// SetSwatch stores the photo for a product, replacing any previous one.
func SetSwatch(ctx context.Context, db *sql.DB, p model.ProductKey, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO swatches (category, material, color, brand, image, image_mime) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (category, material, color, brand)
		 DO UPDATE SET image = excluded.image, image_mime = excluded.image_mime, updated_at = CURRENT_TIMESTAMP`,
		string(p.Category), p.Material, p.Color, p.Brand, image, mime,
	)
	if err != nil {
		return fmt.Errorf("setting swatch: %w", err)
	}
	return nil
}

// GetSwatch returns the photo and MIME type for a product. Data is nil when
// no photo was uploaded.
func GetSwatch(ctx context.Context, db *sql.DB, p model.ProductKey) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM swatches
		 WHERE category = ? AND material = ? AND color = ? AND brand = ?`,
		string(p.Category), p.Material, p.Color, p.Brand,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting swatch: %w", err)
	}
	return image, mime, nil
}
