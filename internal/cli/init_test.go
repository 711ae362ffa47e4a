package cli

import (
	"path/filepath"
	"testing"

	"github.com/studyflowhq/studyflow/internal/constants"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/storage"
)

func TestInitCmd_ForceResetsTheStoreDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "studyflow.db")
	store := storage.NewSQLiteStore(dbPath)
	ctx := &Context{Store: store, DBPath: dbPath}

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	custom := models.Settings{
		SlotStart:       "08:00",
		SlotEnd:         "20:00",
		DefaultBlockMin: 45,
		MaxAdjustEnd:    "22:00",
		Timezone:        "Local",
	}
	if err := store.SaveSettings(custom); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	// Force reset deletes and recreates the database the store points at,
	// so the customized settings are gone and defaults are back.
	forced := &InitCmd{Force: true}
	if err := forced.Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.SlotStart != constants.DefaultSlotStart || settings.SlotEnd != constants.DefaultSlotEnd {
		t.Errorf("force reset kept customized settings: %+v", settings)
	}
}

func TestInitCmd_WithoutForceKeepsExistingData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "studyflow.db")
	store := storage.NewSQLiteStore(dbPath)
	ctx := &Context{Store: store, DBPath: dbPath}

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	custom := models.Settings{
		SlotStart:       "08:00",
		SlotEnd:         "20:00",
		DefaultBlockMin: 45,
		MaxAdjustEnd:    "22:00",
		Timezone:        "Local",
	}
	if err := store.SaveSettings(custom); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("re-init failed: %v", err)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != custom {
		t.Errorf("plain re-init changed settings: %+v", settings)
	}
}
