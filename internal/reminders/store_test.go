package reminders

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwhitfield/cert-tracker/internal/logger"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	path := filepath.Join(t.TempDir(), "data.json")
	return NewStore(path, log), path
}

func TestSetWritesEntryKeyedByCode(t *testing.T) {
	store, path := testStore(t)

	entry := Entry{
		Created:      "29-08-2026",
		Name:         "Azure Administrator",
		Code:         "AZ-104",
		ExamDate:     "2026-11-30",
		Frequency:    "weekly",
		StartingFrom: "2026-09-01",
	}
	if err := store.Set("az104", entry); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var doc map[string]Entry
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("parse file: %v", err)
	}
	got, ok := doc["az104"]
	if !ok {
		t.Fatalf("entry missing under normalized code, doc=%v", doc)
	}
	if got.ExamDate != "2026-11-30" || got.Frequency != "weekly" {
		t.Fatalf("entry fields mismatch: %+v", got)
	}
}

func TestSetOverwritesExistingEntry(t *testing.T) {
	store, _ := testStore(t)

	if err := store.Set("az104", Entry{Frequency: "daily"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set("az104", Entry{Frequency: "monthly"}); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	entry, ok, err := store.Get("az104")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if entry.Frequency != "monthly" {
		t.Fatalf("overwrite lost: %+v", entry)
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	store, _ := testStore(t)

	if err := store.Set("az104", Entry{Code: "AZ-104"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	deleted, err := store.Delete("az104")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatalf("expected deleted=true")
	}
	if _, ok, _ := store.Get("az104"); ok {
		t.Fatalf("entry survived delete")
	}
}

func TestDeleteMissingEntryReportsFalse(t *testing.T) {
	store, _ := testStore(t)

	deleted, err := store.Delete("sc900")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted {
		t.Fatalf("expected deleted=false for missing entry")
	}
}

func TestReadMissingFileActsEmpty(t *testing.T) {
	store, _ := testStore(t)

	all, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %v", all)
	}
}
