package kyc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"kycportal/internal/domain"
)

// SubmitForReview moves every pending document to under_review. It fails
// with *domain.IncompleteSubmissionError, without touching any document,
// when the summary does not allow submission.
//
// Documents are persisted one by one. When some of them fail, the returned
// acknowledgement lists the documents that did transition and the error
// joins the individual failures; the failed ones stay pending and a later
// submission picks them up again.
func (s *Session) SubmitForReview(ctx context.Context) (*domain.Acknowledgement, error) {
	sum := s.Summary()
	if !sum.CanSubmit {
		return nil, &domain.IncompleteSubmissionError{Missing: sum.MissingTypes, Status: sum.Status}
	}

	now := s.opts.Now()
	ack := &domain.Acknowledgement{SubmittedAt: now, DocumentIDs: []uuid.UUID{}}
	var errs []error
	for _, d := range s.store.ListAll() {
		if d.Status != domain.DocumentStatusPending {
			continue
		}
		if err := s.persistStatus(ctx, d.ID, domain.DocumentStatusUnderReview, now); err != nil {
			errs = append(errs, fmt.Errorf("document %s: %w", d.ID, err))
			continue
		}
		if err := s.store.SetStatus(d.ID, domain.DocumentStatusUnderReview, now); err != nil {
			errs = append(errs, fmt.Errorf("document %s: %w", d.ID, err))
			continue
		}
		ack.DocumentIDs = append(ack.DocumentIDs, d.ID)
	}
	ack.Summary = s.Summary()

	logger := log.WithFields(log.Fields{"user_id": s.userID, "submitted": len(ack.DocumentIDs)})
	if len(errs) > 0 {
		logger.Warnf("kyc.Session.SubmitForReview: %d document(s) failed to transition", len(errs))
		return ack, errors.Join(errs...)
	}
	logger.Info("kyc.Session.SubmitForReview: submitted for review")
	return ack, nil
}

func (s *Session) persistStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus, at time.Time) error {
	err := retry.Do(
		func() error {
			err := s.records.UpdateStatus(ctx, s.userID, id, status, at)
			if errors.Is(err, domain.ErrNotFound) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Attempts(s.opts.StatusUpdateAttempts),
		retry.Delay(s.opts.StatusUpdateDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return &domain.TransportError{Op: "update document status", Err: err}
	}
	return nil
}
