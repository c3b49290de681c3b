package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is one uploaded KYC artifact.
type Document struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	UserID         uuid.UUID      `db:"user_id" json:"user_id"`
	DocumentType   DocumentType   `db:"document_type" json:"document_type"`
	FileName       string         `db:"file_name" json:"file_name"`
	FileSizeBytes  int64          `db:"file_size_bytes" json:"file_size_bytes"`
	ContentType    string         `db:"content_type" json:"content_type"`
	StorageLocator string         `db:"storage_locator" json:"-"`
	Status         DocumentStatus `db:"status" json:"status"`
	ReviewerNotes  string         `db:"reviewer_notes" json:"reviewer_notes,omitempty"`
	UploadedAt     time.Time      `db:"uploaded_at" json:"uploaded_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// Requirement is one entry of the requirement catalog.
type Requirement struct {
	Type            DocumentType `mapstructure:"type" json:"type"`
	Name            string       `mapstructure:"name" json:"name"`
	Description     string       `mapstructure:"description" json:"description"`
	AcceptedFormats []string     `mapstructure:"accepted_formats" json:"accepted_formats"`
	MaxSizeBytes    int64        `mapstructure:"max_size_bytes" json:"max_size_bytes"`
	Required        bool         `mapstructure:"required" json:"required"`
}

// Accepts reports whether format (lowercase extension, no dot) is accepted.
func (r Requirement) Accepts(format string) bool {
	for _, f := range r.AcceptedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// KYCSummary is the aggregate view derived from a user's documents and the
// requirement catalog. It is never stored.
type KYCSummary struct {
	TotalDocuments  int            `json:"total_documents"`
	ApprovedCount   int            `json:"approved_count"`
	PendingCount    int            `json:"pending_count"`
	RejectedCount   int            `json:"rejected_count"`
	Status          KYCStatus      `json:"status"`
	ProgressPercent int            `json:"progress_percent"`
	MissingTypes    []DocumentType `json:"missing_types"`
	CanSubmit       bool           `json:"can_submit"`
}

// Acknowledgement is returned by a successful submission for review.
type Acknowledgement struct {
	SubmittedAt time.Time   `json:"submitted_at"`
	DocumentIDs []uuid.UUID `json:"document_ids"`
	Summary     KYCSummary  `json:"summary"`
}
