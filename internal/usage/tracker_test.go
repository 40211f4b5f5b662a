package usage

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&TtsRequest{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestSaveRequest_DefaultsToFailure(t *testing.T) {
	tracker := NewTracker(openTestDB(t))

	rec, err := tracker.SaveRequest(context.Background(), "basic", 12, 345)
	if err != nil {
		t.Fatalf("SaveRequest: %v", err)
	}
	if rec.ID == 0 {
		t.Fatalf("expected an assigned id")
	}
	if rec.Success {
		t.Fatalf("a fresh record must not be marked successful")
	}
	if rec.Model != "basic" || rec.StyleLength != 12 || rec.TextLength != 345 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestUpdateRequest_PersistsOutcome(t *testing.T) {
	db := openTestDB(t)
	tracker := NewTracker(db)

	rec, err := tracker.SaveRequest(context.Background(), "advanced", 0, 10)
	if err != nil {
		t.Fatalf("SaveRequest: %v", err)
	}
	if err := tracker.UpdateRequest(context.Background(), rec, true); err != nil {
		t.Fatalf("UpdateRequest: %v", err)
	}

	var reloaded TtsRequest
	if err := db.First(&reloaded, rec.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Success {
		t.Fatalf("expected success=true after update")
	}
}

func TestCountSince(t *testing.T) {
	tracker := NewTracker(openTestDB(t))

	for i := 0; i < 3; i++ {
		if _, err := tracker.SaveRequest(context.Background(), "basic", 0, i); err != nil {
			t.Fatalf("SaveRequest: %v", err)
		}
	}

	past, err := tracker.CountSince(context.Background(), time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountSince: %v", err)
	}
	if past != 3 {
		t.Fatalf("expected 3 requests since an hour ago, got %d", past)
	}

	future, err := tracker.CountSince(context.Background(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CountSince: %v", err)
	}
	if future != 0 {
		t.Fatalf("expected 0 requests since a future instant, got %d", future)
	}
}
