package kyc

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"kycportal/internal/domain"
)

// Store holds one user's documents, at most one per document type.
// It is not safe for concurrent use.
type Store struct {
	docs map[uuid.UUID]domain.Document
}

// NewStore creates a Store seeded with docs. Later documents of a type
// replace earlier ones in uploaded order.
func NewStore(docs ...domain.Document) *Store {
	s := &Store{docs: make(map[uuid.UUID]domain.Document, len(docs))}
	sorted := append([]domain.Document(nil), docs...)
	sortDocuments(sorted)
	for _, d := range sorted {
		s.Put(d)
	}
	return s
}

// Put inserts doc, removing any other document of the same type.
func (s *Store) Put(doc domain.Document) {
	for id, d := range s.docs {
		if d.DocumentType == doc.DocumentType && id != doc.ID {
			delete(s.docs, id)
		}
	}
	s.docs[doc.ID] = doc
}

// Remove deletes the document with id. Absent ids are ignored.
func (s *Store) Remove(id uuid.UUID) {
	delete(s.docs, id)
}

// Get returns the document with id.
func (s *Store) Get(id uuid.UUID) (domain.Document, error) {
	d, ok := s.docs[id]
	if !ok {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return d, nil
}

// ByType returns the document currently on file for t.
func (s *Store) ByType(t domain.DocumentType) (domain.Document, bool) {
	for _, d := range s.docs {
		if d.DocumentType == t {
			return d, true
		}
	}
	return domain.Document{}, false
}

// SetStatus changes the status of the document with id and refreshes its
// updated_at.
func (s *Store) SetStatus(id uuid.UUID, status domain.DocumentStatus, at time.Time) error {
	d, ok := s.docs[id]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	d.Status = status
	d.UpdatedAt = at
	s.docs[id] = d
	return nil
}

// ListAll returns all documents ordered by upload time ascending.
func (s *Store) ListAll() []domain.Document {
	out := make([]domain.Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	sortDocuments(out)
	return out
}

// Len returns the number of documents on file.
func (s *Store) Len() int {
	return len(s.docs)
}

func sortDocuments(docs []domain.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.Before(docs[j].UploadedAt)
		}
		return docs[i].ID.String() < docs[j].ID.String()
	})
}
