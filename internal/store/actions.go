package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// RecordAction appends an entry to an item's action history.
func RecordAction(ctx context.Context, db *sql.DB, itemID string, action model.Action, performedAt time.Time, performedBy *int64) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO item_actions (item_id, action, performed_at, performed_by)
		 VALUES (?, ?, ?, ?)`,
		itemID, action, performedAt, performedBy,
	)
	if err != nil {
		return fmt.Errorf("recording action: %w", err)
	}
	return nil
}

// ListItemActions returns an item's action history, most recent first.
func ListItemActions(ctx context.Context, db *sql.DB, itemID string) ([]model.ActionRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, action, performed_at, performed_by
		 FROM item_actions WHERE item_id = ?
		 ORDER BY performed_at DESC, id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item actions: %w", err)
	}
	defer rows.Close()

	var records []model.ActionRecord
	for rows.Next() {
		var rec model.ActionRecord
		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.Action, &rec.PerformedAt, &rec.PerformedBy); err != nil {
			return nil, fmt.Errorf("scanning action: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
