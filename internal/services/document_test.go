package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/offerte-app/offerte/internal/export"
	"github.com/offerte-app/offerte/internal/models"
	"github.com/offerte-app/offerte/internal/store"
)

func setupDocService(t *testing.T) *DocumentService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	st, err := store.New(db)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return NewDocumentService(st)
}

func TestMutationsPersistAndReload(t *testing.T) {
	svc := setupDocService(t)
	svc.SetCustomer(models.Customer{Naam: "Klaas", Email: "klaas@example.nl"})
	svc.SetItem(0, models.LineItem{Omschrijving: "Consulting", Aantal: 2, Prijs: 50, BTW: 21})

	// a second service over the same store sees the persisted edits
	reloaded := NewDocumentService(svc.store)
	doc := reloaded.Snapshot()
	if doc.Klant.Naam != "Klaas" {
		t.Errorf("customer not persisted: %+v", doc.Klant)
	}
	if doc.Items[0].Omschrijving != "Consulting" {
		t.Errorf("item not persisted: %+v", doc.Items[0])
	}
}

func TestMutationInvalidatesArtifact(t *testing.T) {
	svc := setupDocService(t)
	svc.SetArtifact(&export.Artifact{PDF: []byte("%PDF"), Filename: "x.pdf", CreatedAt: time.Now()})
	if svc.Artifact() == nil {
		t.Fatal("artifact should be held")
	}
	svc.SetCustomer(models.Customer{Naam: "gewijzigd"})
	if svc.Artifact() != nil {
		t.Error("editing the document must drop the generated artifact")
	}
}

func TestRemoveLastItemLeavesDefault(t *testing.T) {
	svc := setupDocService(t)
	svc.RemoveItem(0)
	doc := svc.Snapshot()
	if len(doc.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(doc.Items))
	}
	if doc.Items[0] != models.DefaultItem() {
		t.Errorf("remaining item = %+v, want default", doc.Items[0])
	}
}

func TestItemSplicePreservesOrder(t *testing.T) {
	svc := setupDocService(t)
	svc.SetItem(0, models.LineItem{Omschrijving: "a", Aantal: 1, BTW: 21})
	svc.AddItem()
	svc.SetItem(1, models.LineItem{Omschrijving: "b", Aantal: 1, BTW: 21})
	svc.AddItem()
	svc.SetItem(2, models.LineItem{Omschrijving: "c", Aantal: 1, BTW: 21})

	svc.RemoveItem(1)
	doc := svc.Snapshot()
	if doc.Items[0].Omschrijving != "a" || doc.Items[1].Omschrijving != "c" {
		t.Errorf("splice broke order: %+v", doc.Items)
	}
}

func TestPhotoHandleLifecycle(t *testing.T) {
	svc := setupDocService(t)
	foto := svc.AddPhoto("dak.jpg", "image/jpeg", []byte{0xff, 0xd8})
	if foto.ID == "" {
		t.Fatal("photo should get a display handle")
	}
	got, ok := svc.PhotoByHandle(foto.ID)
	if !ok || got.Naam != "dak.jpg" {
		t.Fatalf("handle lookup failed: %v %v", got, ok)
	}
	svc.RemovePhoto(foto.ID)
	if _, ok := svc.PhotoByHandle(foto.ID); ok {
		t.Error("handle must be released when the photo is removed")
	}
}

func TestResetClearsEverything(t *testing.T) {
	svc := setupDocService(t)
	svc.SetCustomer(models.Customer{Naam: "Klaas"})
	svc.AddPhoto("a.jpg", "image/jpeg", []byte{1})
	svc.SetStatus("bezig")
	svc.Reset()

	doc := svc.Snapshot()
	if doc.Klant.Naam != "" || len(doc.Fotos) != 0 {
		t.Errorf("reset left state behind: %+v", doc)
	}
	if svc.Status() != "" {
		t.Error("reset should clear the status line")
	}
	// persisted copy is gone too
	reloaded := NewDocumentService(svc.store)
	if reloaded.Snapshot().Klant.Naam != "" {
		t.Error("reset should delete the persisted snapshot")
	}
}

func TestJobGuard(t *testing.T) {
	svc := setupDocService(t)
	if !svc.TryBeginJob() {
		t.Fatal("first job should start")
	}
	if svc.TryBeginJob() {
		t.Fatal("second job must be rejected while one is in flight")
	}
	svc.EndJob()
	if !svc.TryBeginJob() {
		t.Fatal("job should start again after the first finished")
	}
}
