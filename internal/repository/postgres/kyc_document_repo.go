package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kycportal/internal/domain"
	"kycportal/internal/port"
)

const kycDocumentColumns = `id, user_id, document_type, file_name, file_size_bytes, content_type,
	storage_locator, status, reviewer_notes, uploaded_at, updated_at`

type kycDocumentRepo struct {
	db *sqlx.DB
}

// NewKYCDocumentRepo creates a new PostgreSQL-backed KYCDocumentRepository.
func NewKYCDocumentRepo(db *sqlx.DB) port.KYCDocumentRepository {
	return &kycDocumentRepo{db: db}
}

func (r *kycDocumentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Document, error) {
	docs := []domain.Document{}
	err := r.db.SelectContext(ctx, &docs,
		`SELECT `+kycDocumentColumns+` FROM kyc_documents
		 WHERE user_id = $1
		 ORDER BY uploaded_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("kycDocumentRepo.ListByUser: %w", err)
	}
	return docs, nil
}

func (r *kycDocumentRepo) GetByID(ctx context.Context, userID, documentID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		`SELECT `+kycDocumentColumns+` FROM kyc_documents WHERE id = $1 AND user_id = $2`,
		documentID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("kycDocumentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

// ReplaceByType removes the user's document of the same type and inserts doc
// in one transaction. The unique (user_id, document_type) index backs this.
func (r *kycDocumentRepo) ReplaceByType(ctx context.Context, doc *domain.Document) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("kycDocumentRepo.ReplaceByType begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM kyc_documents WHERE user_id = $1 AND document_type = $2",
		doc.UserID, doc.DocumentType); err != nil {
		return fmt.Errorf("kycDocumentRepo.ReplaceByType delete: %w", err)
	}

	_, err = tx.NamedExecContext(ctx,
		`INSERT INTO kyc_documents (`+kycDocumentColumns+`)
		 VALUES (:id, :user_id, :document_type, :file_name, :file_size_bytes, :content_type,
		 :storage_locator, :status, :reviewer_notes, :uploaded_at, :updated_at)`, doc)
	if err != nil {
		return fmt.Errorf("kycDocumentRepo.ReplaceByType insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("kycDocumentRepo.ReplaceByType commit: %w", err)
	}
	return nil
}

func (r *kycDocumentRepo) UpdateStatus(ctx context.Context, userID, documentID uuid.UUID, status domain.DocumentStatus, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE kyc_documents SET status = $1, updated_at = $2 WHERE id = $3 AND user_id = $4",
		status, at, documentID, userID)
	if err != nil {
		return fmt.Errorf("kycDocumentRepo.UpdateStatus: %w", err)
	}
	return expectOneRow(result, "kycDocumentRepo.UpdateStatus")
}

func (r *kycDocumentRepo) UpdateReview(ctx context.Context, userID, documentID uuid.UUID, status domain.DocumentStatus, notes string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE kyc_documents SET status = $1, reviewer_notes = $2, updated_at = $3
		 WHERE id = $4 AND user_id = $5`,
		status, notes, at, documentID, userID)
	if err != nil {
		return fmt.Errorf("kycDocumentRepo.UpdateReview: %w", err)
	}
	return expectOneRow(result, "kycDocumentRepo.UpdateReview")
}

// Delete removes a document. Deleting a missing row is not an error.
func (r *kycDocumentRepo) Delete(ctx context.Context, userID, documentID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM kyc_documents WHERE id = $1 AND user_id = $2", documentID, userID)
	if err != nil {
		return fmt.Errorf("kycDocumentRepo.Delete: %w", err)
	}
	return nil
}

func (r *kycDocumentRepo) ListByStatus(ctx context.Context, status domain.DocumentStatus, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM kyc_documents WHERE status = $1", status)
	if err != nil {
		return nil, 0, fmt.Errorf("kycDocumentRepo.ListByStatus count: %w", err)
	}

	docs := []domain.Document{}
	err = r.db.SelectContext(ctx, &docs,
		`SELECT `+kycDocumentColumns+` FROM kyc_documents
		 WHERE status = $1
		 ORDER BY updated_at ASC, id ASC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("kycDocumentRepo.ListByStatus: %w", err)
	}
	return docs, total, nil
}

func expectOneRow(result sql.Result, op string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
