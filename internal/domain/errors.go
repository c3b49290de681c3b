package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrUnknownDocumentType    = errors.New("unknown document type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFormat      = errors.New("unsupported file format")
	ErrIncompleteSubmission   = errors.New("kyc submission is not allowed")
	ErrSubmissionLocked       = errors.New("documents are locked while kyc is under review or approved")
	ErrTransport              = errors.New("remote endpoint failure")
	ErrInvalidCatalog         = errors.New("invalid requirement catalog")
	ErrInvalidDecision        = errors.New("review decision must be approved or rejected")
	ErrDocumentNotUnderReview = errors.New("document is not under review")
)

// IncompleteSubmissionError is returned when a submission is attempted while
// the summary does not allow it. Missing lists the required types without a
// document, in catalog order.
type IncompleteSubmissionError struct {
	Missing []DocumentType
	Status  KYCStatus
}

func (e *IncompleteSubmissionError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%s: kyc status is %s", ErrIncompleteSubmission, e.Status)
	}
	missing := make([]string, len(e.Missing))
	for i, t := range e.Missing {
		missing[i] = string(t)
	}
	return fmt.Sprintf("%s: missing %s", ErrIncompleteSubmission, strings.Join(missing, ", "))
}

// Is makes errors.Is(err, ErrIncompleteSubmission) hold.
func (e *IncompleteSubmissionError) Is(target error) bool {
	return target == ErrIncompleteSubmission
}

// TransportError wraps a failure talking to a remote storage or persistence
// endpoint. It matches ErrTransport and unwraps to the underlying cause.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) hold.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
