package kyc_test

import (
	"bytes"
	"time"

	"github.com/google/uuid"

	"kycportal/internal/domain"
	"kycportal/internal/kyc"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func pdfContent() []byte {
	return []byte("%PDF-1.4 test content that is at least a few bytes long for detection purposes")
}

func jpegContent() []byte {
	header := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00}
	return append(header, bytes.Repeat([]byte{0x00}, 100)...)
}

func pngContent() []byte {
	header := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return append(header, bytes.Repeat([]byte{0x00}, 100)...)
}

func fileInput(t domain.DocumentType, name string, content []byte) kyc.UploadInput {
	return kyc.UploadInput{
		DocumentType: t,
		FileName:     name,
		Size:         int64(len(content)),
		Body:         bytes.NewReader(content),
	}
}

func newDoc(t domain.DocumentType, status domain.DocumentStatus, offset time.Duration) domain.Document {
	return domain.Document{
		ID:             uuid.New(),
		DocumentType:   t,
		FileName:       string(t) + ".pdf",
		FileSizeBytes:  1024,
		ContentType:    "application/pdf",
		StorageLocator: "users/x/kyc/" + string(t),
		Status:         status,
		UploadedAt:     baseTime.Add(offset),
		UpdatedAt:      baseTime.Add(offset),
	}
}

func allRequired(status domain.DocumentStatus) []domain.Document {
	return []domain.Document{
		newDoc(domain.DocumentTypeIdentityFront, status, 0),
		newDoc(domain.DocumentTypeProofOfAddress, status, time.Minute),
		newDoc(domain.DocumentTypeBankStatement, status, 2*time.Minute),
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
