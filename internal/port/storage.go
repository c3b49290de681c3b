package port

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"kycportal/internal/domain"
)

// PutObjectInput encapsulates the bytes and metadata of one KYC document
// sent to remote storage.
type PutObjectInput struct {
	UserID       uuid.UUID
	DocumentID   uuid.UUID
	DocumentType domain.DocumentType
	FileName     string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// PutObjectOutput contains the result of a successful upload.
type PutObjectOutput struct {
	Locator string
	ETag    string
}

// DocumentStorage abstracts the remote store holding document bytes.
// Delete must treat an absent object as success.
type DocumentStorage interface {
	Put(ctx context.Context, input PutObjectInput) (*PutObjectOutput, error)
	Delete(ctx context.Context, locator string) error
	DownloadURL(ctx context.Context, locator string, expiry time.Duration) (string, error)
}
