package kyc_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycportal/internal/domain"
	"kycportal/internal/kyc"
)

func TestStore_PutReplacesSameType(t *testing.T) {
	s := kyc.NewStore()
	first := newDoc(domain.DocumentTypeIdentityFront, domain.DocumentStatusPending, 0)
	second := newDoc(domain.DocumentTypeIdentityFront, domain.DocumentStatusPending, time.Hour)
	second.FileName = "second.jpg"
	second.FileSizeBytes = 2048

	s.Put(first)
	s.Put(second)

	all := s.ListAll()
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, "second.jpg", all[0].FileName)
	assert.Equal(t, int64(2048), all[0].FileSizeBytes)

	_, err := s.Get(first.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestStore_PutReplacesRejected(t *testing.T) {
	rejected := newDoc(domain.DocumentTypeBankStatement, domain.DocumentStatusRejected, 0)
	s := kyc.NewStore(rejected)

	s.Put(newDoc(domain.DocumentTypeBankStatement, domain.DocumentStatusPending, time.Hour))

	assert.Equal(t, 1, s.Len())
	d, ok := s.ByType(domain.DocumentTypeBankStatement)
	require.True(t, ok)
	assert.Equal(t, domain.DocumentStatusPending, d.Status)
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	a := newDoc(domain.DocumentTypeIdentityFront, domain.DocumentStatusPending, 0)
	b := newDoc(domain.DocumentTypeBankStatement, domain.DocumentStatusPending, time.Minute)
	s := kyc.NewStore(a, b)

	s.Remove(a.ID)
	once := s.ListAll()
	s.Remove(a.ID)
	assert.Equal(t, once, s.ListAll())

	s.Remove(uuid.New())
	assert.Equal(t, 1, s.Len())
}

func TestStore_ListAllOrderedByUploadTime(t *testing.T) {
	late := newDoc(domain.DocumentTypeBankStatement, domain.DocumentStatusPending, 2*time.Hour)
	early := newDoc(domain.DocumentTypeIdentityFront, domain.DocumentStatusPending, 0)
	middle := newDoc(domain.DocumentTypePassport, domain.DocumentStatusPending, time.Hour)
	s := kyc.NewStore(late, early, middle)

	all := s.ListAll()
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{early.ID, middle.ID, late.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})
}

func TestNewStore_SeedKeepsLatestOfType(t *testing.T) {
	older := newDoc(domain.DocumentTypeIdentityFront, domain.DocumentStatusRejected, 0)
	newer := newDoc(domain.DocumentTypeIdentityFront, domain.DocumentStatusPending, time.Hour)
	s := kyc.NewStore(newer, older)

	require.Equal(t, 1, s.Len())
	d, _ := s.ByType(domain.DocumentTypeIdentityFront)
	assert.Equal(t, newer.ID, d.ID)
}

func TestStore_SetStatus(t *testing.T) {
	d := newDoc(domain.DocumentTypeIdentityFront, domain.DocumentStatusPending, 0)
	s := kyc.NewStore(d)
	at := baseTime.Add(48 * time.Hour)

	require.NoError(t, s.SetStatus(d.ID, domain.DocumentStatusUnderReview, at))
	got, err := s.Get(d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusUnderReview, got.Status)
	assert.Equal(t, at, got.UpdatedAt)
	assert.Equal(t, d.UploadedAt, got.UploadedAt)

	assert.ErrorIs(t, s.SetStatus(uuid.New(), domain.DocumentStatusApproved, at), domain.ErrDocumentNotFound)
}
