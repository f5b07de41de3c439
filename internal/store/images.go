package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// AddItemImage stores an image blob for an item, appended after the item's
// existing images.
func AddItemImage(ctx context.Context, db *sql.DB, itemID string, data []byte, mime string) (*model.ItemImage, error) {
	// Verify the item exists and is not deleted.
	if _, err := GetItem(ctx, db, itemID); err != nil {
		return nil, err
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO item_images (item_id, position, image, mime)
		 VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM item_images WHERE item_id = ?), ?, ?)`,
		itemID, itemID, data, mime,
	)
	if err != nil {
		return nil, fmt.Errorf("adding item image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting image id: %w", err)
	}

	img := &model.ItemImage{}
	err = db.QueryRowContext(ctx,
		`SELECT id, item_id, position, mime, created_at FROM item_images WHERE id = ?`, id,
	).Scan(&img.ID, &img.ItemID, &img.Position, &img.MIME, &img.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting item image: %w", err)
	}
	return img, nil
}

// ListItemImages returns an item's image metadata in display order.
func ListItemImages(ctx context.Context, db *sql.DB, itemID string) ([]model.ItemImage, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, position, mime, created_at
		 FROM item_images WHERE item_id = ? ORDER BY position, id`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item images: %w", err)
	}
	defer rows.Close()

	var images []model.ItemImage
	for rows.Next() {
		var img model.ItemImage
		if err := rows.Scan(&img.ID, &img.ItemID, &img.Position, &img.MIME, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// GetItemImage returns an image's bytes and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, itemID string, imageID int64) ([]byte, string, error) {
	var data []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, mime FROM item_images WHERE id = ? AND item_id = ?`,
		imageID, itemID,
	).Scan(&data, &mime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("image %d of item %s: %w", imageID, itemID, model.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return data, mime, nil
}

// DeleteItemImage removes a single stored image.
func DeleteItemImage(ctx context.Context, db *sql.DB, itemID string, imageID int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM item_images WHERE id = ? AND item_id = ?`,
		imageID, itemID,
	)
	if err != nil {
		return fmt.Errorf("deleting item image: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item image: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("image %d of item %s: %w", imageID, itemID, model.ErrNotFound)
	}
	return nil
}
