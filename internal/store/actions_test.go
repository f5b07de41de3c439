package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
)

func TestRecordAndListActions(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := createTestItem(t, database, "Shirt", "Tops")

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	RecordAction(ctx, database, item.ID, model.ActionUse, base, nil)
	RecordAction(ctx, database, item.ID, model.ActionLaundry, base.Add(time.Hour), nil)
	RecordAction(ctx, database, item.ID, model.ActionAvailable, base.Add(2*time.Hour), nil)

	history, err := ListItemActions(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("ListItemActions: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}

	// Most recent first.
	if history[0].Action != model.ActionAvailable || history[2].Action != model.ActionUse {
		t.Errorf("unexpected history order: %v, %v, %v",
			history[0].Action, history[1].Action, history[2].Action)
	}
}

func TestListActionsEmptyHistory(t *testing.T) {
	database := db.NewTestDB(t)

	item := createTestItem(t, database, "Fresh", "Tops")
	history, err := ListItemActions(context.Background(), database, item.ID)
	if err != nil {
		t.Fatalf("ListItemActions: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d records", len(history))
	}
}

func TestRecordActionWithUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "alice", "hash", model.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	item := createTestItem(t, database, "Shirt", "Tops")

	if err := RecordAction(ctx, database, item.ID, model.ActionUse, time.Now(), &user.ID); err != nil {
		t.Fatalf("RecordAction: %v", err)
	}

	history, _ := ListItemActions(ctx, database, item.ID)
	if len(history) != 1 || history[0].PerformedBy == nil || *history[0].PerformedBy != user.ID {
		t.Errorf("expected action attributed to user %d, got %+v", user.ID, history)
	}
}
