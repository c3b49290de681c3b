package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"kycportal/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Document ID",
	"User ID",
	"Document Type",
	"File Name",
	"Content Type",
	"Size (bytes)",
	"Status",
	"Reviewer Notes",
	"Uploaded At",
	"Updated At",
}

// Writer wraps csv.Writer for exporting KYC documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.Document) error {
	for i := range docs {
		if err := w.csv.Write(documentToRow(&docs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func documentToRow(doc *domain.Document) []string {
	return []string{
		doc.ID.String(),
		doc.UserID.String(),
		string(doc.DocumentType),
		doc.FileName,
		doc.ContentType,
		strconv.FormatInt(doc.FileSizeBytes, 10),
		string(doc.Status),
		doc.ReviewerNotes,
		formatTime(doc.UploadedAt),
		formatTime(doc.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// BuildFilename returns the Content-Disposition filename for an export
// taken at now. Format: {prefix}_{YYYY-MM-DD}.csv
func BuildFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.UTC().Format("2006-01-02"))
}
