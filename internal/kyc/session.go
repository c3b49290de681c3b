package kyc

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"kycportal/internal/domain"
	"kycportal/internal/port"
)

const (
	defaultStatusUpdateAttempts = 3
	defaultStatusUpdateDelay    = 200 * time.Millisecond
	discardTimeout              = 30 * time.Second
)

// Options tunes a Session. Zero values select defaults.
type Options struct {
	StatusUpdateAttempts uint
	StatusUpdateDelay    time.Duration
	Now                  func() time.Time
}

func (o Options) withDefaults() Options {
	if o.StatusUpdateAttempts == 0 {
		o.StatusUpdateAttempts = defaultStatusUpdateAttempts
	}
	if o.StatusUpdateDelay <= 0 {
		o.StatusUpdateDelay = defaultStatusUpdateDelay
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

// Session is the KYC workflow of one authenticated user. Operations must be
// called sequentially; callers sharing a Session serialize access themselves.
type Session struct {
	userID  uuid.UUID
	catalog *Catalog
	store   *Store
	storage port.DocumentStorage
	records port.KYCDocumentRepository
	opts    Options
}

// NewSession creates a Session over docs, which are typically the user's
// persisted documents.
func NewSession(
	userID uuid.UUID,
	catalog *Catalog,
	storage port.DocumentStorage,
	records port.KYCDocumentRepository,
	docs []domain.Document,
	opts Options,
) *Session {
	return &Session{
		userID:  userID,
		catalog: catalog,
		store:   NewStore(docs...),
		storage: storage,
		records: records,
		opts:    opts.withDefaults(),
	}
}

// LoadSession fetches the user's documents from records and creates a Session.
func LoadSession(
	ctx context.Context,
	userID uuid.UUID,
	catalog *Catalog,
	storage port.DocumentStorage,
	records port.KYCDocumentRepository,
	opts Options,
) (*Session, error) {
	docs, err := records.ListByUser(ctx, userID)
	if err != nil {
		return nil, &domain.TransportError{Op: "fetch documents", Err: err}
	}
	return NewSession(userID, catalog, storage, records, docs, opts), nil
}

// UserID returns the owner of the session.
func (s *Session) UserID() uuid.UUID {
	return s.userID
}

// Summary returns a fresh summary of the session's documents.
func (s *Session) Summary() domain.KYCSummary {
	return Summarize(s.store.ListAll(), s.catalog)
}

// Requirements returns the catalog, required entries first.
func (s *Session) Requirements() []domain.Requirement {
	return s.catalog.All()
}

// Documents returns the documents on file ordered by upload time.
func (s *Session) Documents() []domain.Document {
	return s.store.ListAll()
}

// Document returns one document by id.
func (s *Session) Document(id uuid.UUID) (domain.Document, error) {
	return s.store.Get(id)
}

// Remove deletes a document from remote storage, persistence and the
// session. Removing an unknown id succeeds.
func (s *Session) Remove(ctx context.Context, id uuid.UUID) error {
	doc, err := s.store.Get(id)
	if err != nil {
		return nil
	}

	if doc.StorageLocator != "" {
		if err := s.storage.Delete(ctx, doc.StorageLocator); err != nil {
			return &domain.TransportError{Op: "delete document", Err: err}
		}
	}
	if err := s.records.Delete(ctx, s.userID, id); err != nil {
		return &domain.TransportError{Op: "delete document record", Err: err}
	}
	s.store.Remove(id)

	log.WithFields(log.Fields{
		"user_id":       s.userID,
		"document_id":   id,
		"document_type": doc.DocumentType,
	}).Info("kyc.Session.Remove: document deleted")
	return nil
}

// discardObject deletes an object that is no longer referenced. Failures are
// only logged; the object is orphaned in that case.
func (s *Session) discardObject(ctx context.Context, locator string) {
	if locator == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), discardTimeout)
	defer cancel()
	if err := s.storage.Delete(ctx, locator); err != nil {
		log.WithFields(log.Fields{
			"user_id": s.userID,
			"locator": locator,
		}).Warnf("kyc.Session: failed to discard stored object: %v", err)
	}
}
