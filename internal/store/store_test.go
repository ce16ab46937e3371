package store

import (
	"fmt"
	"reflect"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s, err := New(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestLoadWithoutSnapshotFallsBackToDefaults(t *testing.T) {
	s := setupTestStore(t)
	doc, restored := s.Load()
	if restored {
		t.Fatal("no snapshot exists, restored should be false")
	}
	if len(doc.Items) != 1 {
		t.Errorf("default document should have one item, got %d", len(doc.Items))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	doc := models.NewDocument()
	doc.Klant = models.Customer{Naam: "Klaas", Email: "klaas@example.nl"}
	doc.Items = []models.LineItem{{Omschrijving: "Consulting", Aantal: 2, Prijs: 50, BTW: 21}}
	doc.Fotos = []models.Photo{{ID: "h1", Naam: "dak.jpg", MimeType: "image/jpeg", Data: []byte{0xff, 0xd8}}}

	if err := s.Save(doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, restored := s.Load()
	if !restored {
		t.Fatal("expected restored snapshot")
	}
	if !reflect.DeepEqual(doc, loaded) {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", doc, loaded)
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	s := setupTestStore(t)
	doc := models.NewDocument()
	doc.Klant.Naam = "eerste"
	if err := s.Save(doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc.Klant.Naam = "tweede"
	if err := s.Save(doc); err != nil {
		t.Fatalf("save again: %v", err)
	}
	loaded, _ := s.Load()
	if loaded.Klant.Naam != "tweede" {
		t.Errorf("loaded name = %q, want tweede", loaded.Klant.Naam)
	}
}

func TestCorruptSnapshotFallsBackSilently(t *testing.T) {
	s := setupTestStore(t)
	snap := Snapshot{Key: SnapshotKey, Data: []byte("{niet json")}
	if err := s.db.Create(&snap).Error; err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}
	doc, restored := s.Load()
	if restored {
		t.Fatal("corrupt snapshot must not count as restored")
	}
	if len(doc.Items) != 1 {
		t.Error("corrupt snapshot should yield the default document")
	}
}

func TestDelete(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Save(models.NewDocument()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, restored := s.Load(); restored {
		t.Error("snapshot should be gone after delete")
	}
}
