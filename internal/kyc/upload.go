package kyc

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"kycportal/internal/domain"
	"kycportal/internal/port"
)

// UploadInput describes a file offered for one document type.
type UploadInput struct {
	DocumentType domain.DocumentType
	FileName     string
	Size         int64
	Body         io.ReadSeeker
}

// Upload validates in, sends its bytes to remote storage and records the
// resulting document, replacing any document of the same type. Cancelling
// ctx before the document is recorded leaves the session untouched.
func (s *Session) Upload(ctx context.Context, in UploadInput, onProgress ProgressFunc) (*domain.Document, error) {
	contentType, err := ValidateUpload(s.catalog, in)
	if err != nil {
		return nil, err
	}
	if st := s.Summary().Status; st == domain.KYCStatusUnderReview || st == domain.KYCStatusApproved {
		return nil, domain.ErrSubmissionLocked
	}

	progress := newProgressTracker(onProgress)
	progress.report(0)

	doc := domain.Document{
		ID:            uuid.New(),
		UserID:        s.userID,
		DocumentType:  in.DocumentType,
		FileName:      in.FileName,
		FileSizeBytes: in.Size,
		ContentType:   contentType,
		Status:        domain.DocumentStatusPending,
	}
	logger := log.WithFields(log.Fields{
		"user_id":       s.userID,
		"document_id":   doc.ID,
		"document_type": doc.DocumentType,
	})
	logger.Infof("kyc.Session.Upload: uploading %s (%s, %d bytes)", in.FileName, contentType, in.Size)

	out, err := s.storage.Put(ctx, port.PutObjectInput{
		UserID:       s.userID,
		DocumentID:   doc.ID,
		DocumentType: doc.DocumentType,
		FileName:     doc.FileName,
		ContentType:  contentType,
		Size:         in.Size,
		Body:         &progressReader{r: in.Body, total: in.Size, tracker: progress},
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Info("kyc.Session.Upload: cancelled during transfer")
			return nil, ctxErr
		}
		logger.Errorf("kyc.Session.Upload: storage upload failed: %v", err)
		return nil, &domain.TransportError{Op: "upload document", Err: err}
	}
	doc.StorageLocator = out.Locator

	if err := ctx.Err(); err != nil {
		logger.Info("kyc.Session.Upload: cancelled after transfer")
		s.discardObject(ctx, doc.StorageLocator)
		return nil, err
	}

	now := s.opts.Now()
	doc.UploadedAt = now
	doc.UpdatedAt = now
	previous, hadPrevious := s.store.ByType(doc.DocumentType)

	if err := s.records.ReplaceByType(ctx, &doc); err != nil {
		s.discardObject(ctx, doc.StorageLocator)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Errorf("kyc.Session.Upload: persisting document failed: %v", err)
		return nil, &domain.TransportError{Op: "persist document", Err: err}
	}
	s.store.Put(doc)
	progress.report(100)

	if hadPrevious && previous.StorageLocator != doc.StorageLocator {
		logger.Infof("kyc.Session.Upload: replaced document %s", previous.ID)
		s.discardObject(ctx, previous.StorageLocator)
	}
	return &doc, nil
}

// ValidateUpload checks in against the catalog and returns the content type
// of the file. Checks run in order: document type, size, format. The body is
// rewound after content sniffing.
func ValidateUpload(catalog *Catalog, in UploadInput) (string, error) {
	req, ok := catalog.Lookup(in.DocumentType)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownDocumentType, in.DocumentType)
	}
	if in.Size > req.MaxSizeBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d for %s",
			domain.ErrFileTooLarge, in.Size, req.MaxSizeBytes, req.Type)
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(in.FileName), "."))
	if !req.Accepts(format) {
		return "", fmt.Errorf("%w: %q is not accepted for %s (allowed: %s)",
			domain.ErrUnsupportedFormat, format, req.Type, strings.Join(req.AcceptedFormats, ", "))
	}
	contentType := domain.FormatContentTypes[format]

	if in.Body == nil {
		return "", fmt.Errorf("%w: empty file", domain.ErrUnsupportedFormat)
	}
	detected, err := mimetype.DetectReader(in.Body)
	if err != nil {
		return "", fmt.Errorf("reading file header: %w", err)
	}
	if _, err := in.Body.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking file: %w", err)
	}
	if !detected.Is(contentType) {
		return "", fmt.Errorf("%w: content is %s, expected %s",
			domain.ErrUnsupportedFormat, detected.String(), contentType)
	}
	return contentType, nil
}
