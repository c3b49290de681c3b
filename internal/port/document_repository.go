package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kycportal/internal/domain"
)

// KYCDocumentRepository defines the contract for persisting KYC documents
// and their statuses. All per-user methods take userID to keep users isolated.
type KYCDocumentRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Document, error)
	GetByID(ctx context.Context, userID, documentID uuid.UUID) (*domain.Document, error)
	// ReplaceByType stores doc, removing any document of the same type first.
	ReplaceByType(ctx context.Context, doc *domain.Document) error
	UpdateStatus(ctx context.Context, userID, documentID uuid.UUID, status domain.DocumentStatus, at time.Time) error
	UpdateReview(ctx context.Context, userID, documentID uuid.UUID, status domain.DocumentStatus, notes string, at time.Time) error
	// Delete succeeds when the document does not exist.
	Delete(ctx context.Context, userID, documentID uuid.UUID) error
	ListByStatus(ctx context.Context, status domain.DocumentStatus, offset, limit int) ([]domain.Document, int, error)
}
