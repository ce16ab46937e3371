package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/offerte-app/offerte/internal/export"
	"github.com/offerte-app/offerte/internal/logger"
	"github.com/offerte-app/offerte/internal/models"
	"github.com/offerte-app/offerte/internal/store"
)

// DocumentService owns the mutable document state. All mutations go through
// its methods, which persist the full snapshot after every change and drop
// any generated PDF artifact so a stale document can never be downloaded or
// dispatched.
type DocumentService struct {
	mu       sync.Mutex
	store    *store.Store
	doc      *models.Document
	artifact *export.Artifact
	status   string
	busy     bool
}

// NewDocumentService hydrates state from the persisted snapshot, falling
// back to defaults when none exists.
func NewDocumentService(st *store.Store) *DocumentService {
	doc, restored := st.Load()
	if restored {
		logger.Log.Info().Msg("document snapshot restored")
	} else {
		logger.Log.Info().Msg("starting with a fresh document")
	}
	return &DocumentService{store: st, doc: doc}
}

// Snapshot returns a copy of the current document safe to read outside the
// lock. Slices are copied; payload bytes are shared but never mutated.
func (s *DocumentService) Snapshot() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyDocLocked()
}

func (s *DocumentService) copyDocLocked() models.Document {
	doc := *s.doc
	doc.Items = append([]models.LineItem(nil), s.doc.Items...)
	doc.Fotos = append([]models.Photo(nil), s.doc.Fotos...)
	return doc
}

// persistLocked rewrites the snapshot and invalidates the artifact. Save
// failures are logged, not surfaced: the in-memory state stays the source of
// truth for the session.
func (s *DocumentService) persistLocked() {
	s.artifact = nil
	if err := s.store.Save(s.doc); err != nil {
		logger.Log.Warn().Err(err).Msg("persisting snapshot failed")
	}
}

func (s *DocumentService) SetCompany(c models.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Bedrijf = c
	s.persistLocked()
}

func (s *DocumentService) SetCustomer(c models.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Klant = c
	s.persistLocked()
}

func (s *DocumentService) SetQuote(q models.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Offerte = q
	s.persistLocked()
}

func (s *DocumentService) SetEmailConfig(cfg models.EmailConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.Provider == "" {
		cfg.Provider = models.ProviderEmailJS
	}
	s.doc.EmailCfg = cfg
	s.persistLocked()
}

// AddItem appends a default line item and returns its index.
func (s *DocumentService) AddItem() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Items = append(s.doc.Items, models.DefaultItem())
	s.persistLocked()
	return len(s.doc.Items) - 1
}

// SetItem replaces the item at index i. Out-of-range indexes are ignored.
func (s *DocumentService) SetItem(i int, it models.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.doc.Items) {
		return
	}
	s.doc.Items[i] = it
	s.persistLocked()
}

// RemoveItem splices out the item at index i. Removing the last remaining
// item leaves one default item in place.
func (s *DocumentService) RemoveItem(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.doc.Items) {
		return
	}
	s.doc.Items = append(s.doc.Items[:i], s.doc.Items[i+1:]...)
	if len(s.doc.Items) == 0 {
		s.doc.Items = []models.LineItem{models.DefaultItem()}
	}
	s.persistLocked()
}

// AddPhoto stores the payload and acquires a display handle for it.
func (s *DocumentService) AddPhoto(name, mimeType string, data []byte) models.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	foto := models.Photo{ID: uuid.NewString(), Naam: name, MimeType: mimeType, Data: data}
	s.doc.Fotos = append(s.doc.Fotos, foto)
	s.persistLocked()
	return foto
}

// RemovePhoto splices out the photo with the given handle. Unknown
// handles are a no-op.
func (s *DocumentService) RemovePhoto(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.doc.Fotos {
		if f.ID == id {
			s.doc.Fotos = append(s.doc.Fotos[:i], s.doc.Fotos[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// PhotoByHandle resolves a display handle to its payload.
func (s *DocumentService) PhotoByHandle(id string) (models.Photo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.doc.Fotos {
		if f.ID == id {
			return f, true
		}
	}
	return models.Photo{}, false
}

// Reset deletes the persisted snapshot and reinstates the default document.
// All photo handles are released with the document.
func (s *DocumentService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(); err != nil {
		logger.Log.Warn().Err(err).Msg("deleting snapshot failed")
	}
	s.doc = models.NewDocument()
	s.artifact = nil
	s.status = ""
}

// Artifact returns the held PDF artifact, or nil when none is generated.
func (s *DocumentService) Artifact() *export.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact
}

// SetArtifact installs a freshly generated artifact.
func (s *DocumentService) SetArtifact(a *export.Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = a
}

// SetStatus records the latest operation outcome; Status reads it. This is
// the single user-visible reporting mechanism.
func (s *DocumentService) SetStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = msg
}

func (s *DocumentService) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// TryBeginJob marks an export or dispatch as in flight. It returns false
// when one is already running, so re-entrant triggers are rejected instead
// of interleaved.
func (s *DocumentService) TryBeginJob() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *DocumentService) EndJob() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}
