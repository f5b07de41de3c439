package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/garderoba/internal/model"
)

// CreateItemParams holds the fields required to create a wardrobe item.
type CreateItemParams struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Style       string   `json:"style"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
}

func (p CreateItemParams) validate() error {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Category) == "" {
		missing = append(missing, "category")
	}
	if len(p.Colors) == 0 {
		missing = append(missing, "colors")
	}
	if len(missing) > 0 {
		return &model.ValidationError{Fields: missing}
	}
	return nil
}

// CreateItem creates a new wardrobe item with a fresh id and the default
// available status.
func CreateItem(ctx context.Context, db *sql.DB, p CreateItemParams) (*model.WardrobeItem, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return nil, fmt.Errorf("encoding colors: %w", err)
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO items (id, name, category, style, description, colors)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.Name, p.Category, p.Style, p.Description, string(colors),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

const itemColumns = `id, name, category, style, description, colors, status,
	last_action, last_action_at, last_used_at, date_added, updated_at, deleted_at`

// GetItem returns an item by id. Deleted items are gone as far as callers
// are concerned and yield ErrNotFound.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.WardrobeItem, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ? AND deleted_at IS NULL`, id,
	)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all non-deleted items in insertion order.
func ListItems(ctx context.Context, db *sql.DB) ([]model.WardrobeItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE deleted_at IS NULL ORDER BY date_added, rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.WardrobeItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItemParams holds an item's editable fields. Nil fields are left
// unchanged.
type UpdateItemParams struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Style       *string   `json:"style"`
	Description *string   `json:"description"`
	Colors      *[]string `json:"colors"`
}

// UpdateItem applies a partial update to an item's descriptive fields.
// Status and lifecycle timestamps are only changed through actions.
func UpdateItem(ctx context.Context, db *sql.DB, id string, p UpdateItemParams) (*model.WardrobeItem, error) {
	var sets []string
	var args []any

	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, &model.ValidationError{Fields: []string{"name"}}
		}
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Category != nil {
		if strings.TrimSpace(*p.Category) == "" {
			return nil, &model.ValidationError{Fields: []string{"category"}}
		}
		sets = append(sets, "category = ?")
		args = append(args, *p.Category)
	}
	if p.Style != nil {
		sets = append(sets, "style = ?")
		args = append(args, *p.Style)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Colors != nil {
		if len(*p.Colors) == 0 {
			return nil, &model.ValidationError{Fields: []string{"colors"}}
		}
		colors, err := json.Marshal(*p.Colors)
		if err != nil {
			return nil, fmt.Errorf("encoding colors: %w", err)
		}
		sets = append(sets, "colors = ?")
		args = append(args, string(colors))
	}

	if len(sets) > 0 {
		sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)

		result, err := db.ExecContext(ctx,
			`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ? AND deleted_at IS NULL`,
			args...,
		)
		if err != nil {
			return nil, fmt.Errorf("updating item: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("updating item: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("item %s: %w", id, model.ErrNotFound)
		}
	}

	return GetItem(ctx, db, id)
}

// DeleteItem soft-deletes an item and releases its stored image blobs.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE items SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %s: %w", id, model.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM item_images WHERE item_id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting item images: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// SaveItemLifecycle persists an item's status, last action and last-worn
// fields after a lifecycle change.
func SaveItemLifecycle(ctx context.Context, db *sql.DB, item *model.WardrobeItem) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET status = ?, last_action = ?, last_action_at = ?, last_used_at = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		item.Status, nullAction(item.LastAction), nullTime(item.LastActionAt), nullTime(item.LastUsedAt), item.ID,
	)
	if err != nil {
		return fmt.Errorf("saving item lifecycle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving item lifecycle: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %s: %w", item.ID, model.ErrNotFound)
	}
	return nil
}

// SetItemStatus persists a single item's status, used when the time-based
// refresh changes it.
func SetItemStatus(ctx context.Context, db *sql.DB, id string, status model.Status) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("setting item status: %w", err)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.WardrobeItem, error) {
	item := &model.WardrobeItem{}
	var style, description, lastAction, colors sql.NullString
	err := s.Scan(
		&item.ID, &item.Name, &item.Category, &style, &description, &colors,
		&item.Status, &lastAction, &item.LastActionAt, &item.LastUsedAt,
		&item.DateAdded, &item.UpdatedAt, &item.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Style = style.String
	item.Description = description.String
	item.LastAction = model.Action(lastAction.String)

	item.Colors = []string{}
	if colors.String != "" {
		if err := json.Unmarshal([]byte(colors.String), &item.Colors); err != nil {
			return nil, fmt.Errorf("decoding colors: %w", err)
		}
	}
	if item.Colors == nil {
		item.Colors = []string{}
	}
	return item, nil
}

func nullAction(a model.Action) any {
	if a == "" {
		return nil
	}
	return string(a)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
