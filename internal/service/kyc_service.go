package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	log "github.com/sirupsen/logrus"

	"kycportal/internal/config"
	"kycportal/internal/domain"
	"kycportal/internal/kyc"
	"kycportal/internal/metrics"
	"kycportal/internal/port"
)

// KYCUploadInput is the DTO for document upload requests.
type KYCUploadInput struct {
	UserID       uuid.UUID
	DocumentType domain.DocumentType
	File         multipart.File
	Header       *multipart.FileHeader
	OnProgress   kyc.ProgressFunc
}

// ReviewInput is the DTO for reviewer decisions.
type ReviewInput struct {
	UserID     uuid.UUID
	DocumentID uuid.UUID
	ReviewerID uuid.UUID
	Decision   domain.DocumentStatus
	Notes      string
}

// DocumentDetail is a document together with a short-lived download link.
type DocumentDetail struct {
	domain.Document
	DownloadURL string `json:"download_url,omitempty"`
}

// KYCService defines the KYC workflow contract.
type KYCService interface {
	Requirements(ctx context.Context) []domain.Requirement
	Summary(ctx context.Context, userID uuid.UUID) (*domain.KYCSummary, error)
	ListDocuments(ctx context.Context, userID uuid.UUID) ([]domain.Document, error)
	GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*DocumentDetail, error)
	Upload(ctx context.Context, input KYCUploadInput) (*domain.Document, error)
	Delete(ctx context.Context, userID, documentID uuid.UUID) error
	Submit(ctx context.Context, userID uuid.UUID, email string) (*domain.Acknowledgement, error)
	Review(ctx context.Context, input ReviewInput) (*domain.Document, error)
	ListReviewQueue(ctx context.Context, offset, limit int) ([]domain.Document, int, error)
}

// userLock serializes all operations of one user. refs counts holders and
// waiters so idle locks can be dropped.
type userLock struct {
	mu   sync.Mutex
	refs int
}

type kycService struct {
	catalog       *kyc.Catalog
	repo          port.KYCDocumentRepository
	storage       port.DocumentStorage
	email         port.EmailSender
	metrics       *metrics.Recorder
	opts          kyc.Options
	presignExpiry time.Duration

	// Locks live outside the session cache so eviction never splits a user
	// across two sessions.
	mu       sync.Mutex
	locks    map[uuid.UUID]*userLock
	sessions *expirable.LRU[uuid.UUID, *kyc.Session]
}

// NewKYCService creates a new KYCService implementation.
func NewKYCService(
	catalog *kyc.Catalog,
	repo port.KYCDocumentRepository,
	storage port.DocumentStorage,
	email port.EmailSender,
	recorder *metrics.Recorder,
	cfg *config.KYCConfig,
	presignExpiry time.Duration,
) KYCService {
	size := cfg.SessionCacheSize
	if size <= 0 {
		size = 1024
	}
	return &kycService{
		catalog:       catalog,
		repo:          repo,
		storage:       storage,
		email:         email,
		metrics:       recorder,
		presignExpiry: presignExpiry,
		opts: kyc.Options{
			StatusUpdateAttempts: cfg.StatusUpdateAttempts,
			StatusUpdateDelay:    cfg.StatusUpdateDelay,
		},
		locks:    make(map[uuid.UUID]*userLock),
		sessions: expirable.NewLRU[uuid.UUID, *kyc.Session](size, nil, cfg.SessionTTL),
	}
}

// lockUser blocks until the caller holds userID's lock and returns the
// matching unlock.
func (s *kycService) lockUser(userID uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.mu.Unlock()
	}
}

// withSession runs fn with the user's session, loading it when it is not
// cached. An operation keeps using its session even if the cache drops it
// meanwhile; the next operation reloads from persistence.
func (s *kycService) withSession(ctx context.Context, userID uuid.UUID, fn func(*kyc.Session) error) error {
	unlock := s.lockUser(userID)
	defer unlock()

	sess, ok := s.sessions.Get(userID)
	if !ok {
		var err error
		sess, err = kyc.LoadSession(ctx, userID, s.catalog, s.storage, s.repo, s.opts)
		if err != nil {
			log.WithField("user_id", userID).Errorf("kycService: loading session failed: %v", err)
			return err
		}
		s.sessions.Add(userID, sess)
	}
	return fn(sess)
}

func (s *kycService) Requirements(_ context.Context) []domain.Requirement {
	return s.catalog.All()
}

func (s *kycService) Summary(ctx context.Context, userID uuid.UUID) (*domain.KYCSummary, error) {
	var sum domain.KYCSummary
	err := s.withSession(ctx, userID, func(sess *kyc.Session) error {
		sum = sess.Summary()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *kycService) ListDocuments(ctx context.Context, userID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	err := s.withSession(ctx, userID, func(sess *kyc.Session) error {
		docs = sess.Documents()
		return nil
	})
	return docs, err
}

func (s *kycService) GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*DocumentDetail, error) {
	var doc domain.Document
	err := s.withSession(ctx, userID, func(sess *kyc.Session) error {
		var err error
		doc, err = sess.Document(documentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	detail := &DocumentDetail{Document: doc}
	if doc.StorageLocator != "" {
		url, err := s.storage.DownloadURL(ctx, doc.StorageLocator, s.presignExpiry)
		if err != nil {
			return nil, &domain.TransportError{Op: "presign download", Err: err}
		}
		detail.DownloadURL = url
	}
	return detail, nil
}

func (s *kycService) Upload(ctx context.Context, input KYCUploadInput) (*domain.Document, error) {
	var doc *domain.Document
	err := s.withSession(ctx, input.UserID, func(sess *kyc.Session) error {
		var err error
		doc, err = sess.Upload(ctx, kyc.UploadInput{
			DocumentType: input.DocumentType,
			FileName:     input.Header.Filename,
			Size:         input.Header.Size,
			Body:         input.File,
		}, input.OnProgress)
		return err
	})
	s.metrics.Upload(string(input.DocumentType), resultOf(err))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *kycService) Delete(ctx context.Context, userID, documentID uuid.UUID) error {
	err := s.withSession(ctx, userID, func(sess *kyc.Session) error {
		return sess.Remove(ctx, documentID)
	})
	s.metrics.Deletion(resultOf(err))
	return err
}

func (s *kycService) Submit(ctx context.Context, userID uuid.UUID, email string) (*domain.Acknowledgement, error) {
	var ack *domain.Acknowledgement
	err := s.withSession(ctx, userID, func(sess *kyc.Session) error {
		var err error
		ack, err = sess.SubmitForReview(ctx)
		return err
	})
	s.metrics.Submission(resultOf(err))
	if ack == nil {
		return nil, err
	}

	if len(ack.DocumentIDs) > 0 && email != "" {
		if mailErr := s.email.SendSubmissionReceivedEmail(ctx, email, len(ack.DocumentIDs)); mailErr != nil {
			log.WithField("user_id", userID).Warnf("kycService.Submit: failed to send confirmation email: %v", mailErr)
		}
	}
	return ack, err
}

func (s *kycService) Review(ctx context.Context, input ReviewInput) (*domain.Document, error) {
	if input.Decision != domain.DocumentStatusApproved && input.Decision != domain.DocumentStatusRejected {
		return nil, domain.ErrInvalidDecision
	}

	unlock := s.lockUser(input.UserID)
	defer unlock()

	doc, err := s.repo.GetByID(ctx, input.UserID, input.DocumentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("kycService.Review: %w", err)
	}
	if doc.Status != domain.DocumentStatusUnderReview {
		return nil, domain.ErrDocumentNotUnderReview
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateReview(ctx, input.UserID, input.DocumentID, input.Decision, input.Notes, now); err != nil {
		return nil, fmt.Errorf("kycService.Review: %w", err)
	}
	// Reload on next access so the summary reflects the decision.
	s.sessions.Remove(input.UserID)

	doc.Status = input.Decision
	doc.ReviewerNotes = input.Notes
	doc.UpdatedAt = now
	s.metrics.Review(string(input.Decision))

	log.WithFields(log.Fields{
		"user_id":     input.UserID,
		"document_id": input.DocumentID,
		"reviewer_id": input.ReviewerID,
		"decision":    input.Decision,
	}).Info("kycService.Review: decision recorded")
	return doc, nil
}

func (s *kycService) ListReviewQueue(ctx context.Context, offset, limit int) ([]domain.Document, int, error) {
	docs, total, err := s.repo.ListByStatus(ctx, domain.DocumentStatusUnderReview, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("kycService.ListReviewQueue: %w", err)
	}
	return docs, total, nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, domain.ErrTransport), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultError
	default:
		return metrics.ResultRejected
	}
}
