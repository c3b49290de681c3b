package kyc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kycportal/internal/domain"
	"kycportal/internal/kyc"
)

func TestSummarize_Empty(t *testing.T) {
	sum := kyc.Summarize(nil, kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusNotStarted, sum.Status)
	assert.Equal(t, 0, sum.ProgressPercent)
	assert.Equal(t, 0, sum.TotalDocuments)
	assert.Equal(t, []domain.DocumentType{
		domain.DocumentTypeIdentityFront,
		domain.DocumentTypeProofOfAddress,
		domain.DocumentTypeBankStatement,
	}, sum.MissingTypes)
	assert.False(t, sum.CanSubmit)
}

func TestSummarize_OneRequired(t *testing.T) {
	docs := []domain.Document{newDoc(domain.DocumentTypeIdentityFront, domain.DocumentStatusPending, 0)}
	sum := kyc.Summarize(docs, kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusIncomplete, sum.Status)
	assert.Equal(t, 33, sum.ProgressPercent)
	assert.Equal(t, []domain.DocumentType{
		domain.DocumentTypeProofOfAddress,
		domain.DocumentTypeBankStatement,
	}, sum.MissingTypes)
	assert.Equal(t, 1, sum.PendingCount)
	assert.False(t, sum.CanSubmit)
}

func TestSummarize_TwoRequiredRoundsUp(t *testing.T) {
	docs := []domain.Document{
		newDoc(domain.DocumentTypeIdentityFront, domain.DocumentStatusPending, 0),
		newDoc(domain.DocumentTypeBankStatement, domain.DocumentStatusPending, time.Minute),
	}
	sum := kyc.Summarize(docs, kyc.MustDefaultCatalog())
	assert.Equal(t, 67, sum.ProgressPercent)
}

func TestSummarize_OptionalOnly(t *testing.T) {
	docs := []domain.Document{newDoc(domain.DocumentTypePassport, domain.DocumentStatusPending, 0)}
	sum := kyc.Summarize(docs, kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusIncomplete, sum.Status)
	assert.Equal(t, 0, sum.ProgressPercent)
	assert.Len(t, sum.MissingTypes, 3)
}

func TestSummarize_AllRequiredPending(t *testing.T) {
	sum := kyc.Summarize(allRequired(domain.DocumentStatusPending), kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusIncomplete, sum.Status)
	assert.Equal(t, 100, sum.ProgressPercent)
	assert.Empty(t, sum.MissingTypes)
	assert.True(t, sum.CanSubmit)
}

func TestSummarize_UnderReview(t *testing.T) {
	sum := kyc.Summarize(allRequired(domain.DocumentStatusUnderReview), kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusUnderReview, sum.Status)
	assert.Equal(t, 3, sum.PendingCount)
	assert.False(t, sum.CanSubmit)
}

func TestSummarize_PartiallyReviewedStaysUnderReview(t *testing.T) {
	docs := allRequired(domain.DocumentStatusApproved)
	docs[2].Status = domain.DocumentStatusUnderReview
	sum := kyc.Summarize(docs, kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusUnderReview, sum.Status)
	assert.Equal(t, 2, sum.ApprovedCount)
	assert.Equal(t, 1, sum.PendingCount)
}

func TestSummarize_Approved(t *testing.T) {
	docs := append(allRequired(domain.DocumentStatusApproved),
		newDoc(domain.DocumentTypePassport, domain.DocumentStatusPending, time.Hour))
	sum := kyc.Summarize(docs, kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusApproved, sum.Status)
	assert.Equal(t, 3, sum.ApprovedCount)
	assert.False(t, sum.CanSubmit)
}

func TestSummarize_Rejected(t *testing.T) {
	docs := allRequired(domain.DocumentStatusApproved)
	docs[0].Status = domain.DocumentStatusRejected
	sum := kyc.Summarize(docs, kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusRejected, sum.Status)
	assert.Equal(t, 1, sum.RejectedCount)
	assert.Empty(t, sum.MissingTypes, "a rejected document still fills its slot")
	assert.Equal(t, 100, sum.ProgressPercent)
}

func TestSummarize_RejectedWithPendingReplacementFallsBackToIncomplete(t *testing.T) {
	docs := allRequired(domain.DocumentStatusApproved)
	docs[0].Status = domain.DocumentStatusPending
	docs[1].Status = domain.DocumentStatusRejected
	sum := kyc.Summarize(docs, kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusIncomplete, sum.Status)
	assert.True(t, sum.CanSubmit)
}

func TestSummarize_DeleteAfterApprovalReopensSlot(t *testing.T) {
	docs := allRequired(domain.DocumentStatusApproved)[1:]
	sum := kyc.Summarize(docs, kyc.MustDefaultCatalog())

	assert.Equal(t, domain.KYCStatusIncomplete, sum.Status)
	assert.Equal(t, []domain.DocumentType{domain.DocumentTypeIdentityFront}, sum.MissingTypes)
}

func TestSummarize_CanSubmitGate(t *testing.T) {
	catalog := kyc.MustDefaultCatalog()
	statuses := []domain.DocumentStatus{
		domain.DocumentStatusPending,
		domain.DocumentStatusUnderReview,
		domain.DocumentStatusApproved,
		domain.DocumentStatusRejected,
	}
	for _, a := range statuses {
		for _, b := range statuses {
			for _, n := range []int{1, 2, 3} {
				docs := allRequired(a)[:n]
				docs[0].Status = b
				sum := kyc.Summarize(docs, catalog)

				want := len(sum.MissingTypes) == 0 &&
					sum.Status != domain.KYCStatusUnderReview &&
					sum.Status != domain.KYCStatusApproved
				assert.Equal(t, want, sum.CanSubmit, "statuses %s/%s n=%d", a, b, n)
				if sum.Status == domain.KYCStatusUnderReview || sum.Status == domain.KYCStatusApproved {
					assert.False(t, sum.CanSubmit)
				}
			}
		}
	}
}

func TestSummarize_ProgressMonotonic(t *testing.T) {
	catalog := kyc.MustDefaultCatalog()
	var docs []domain.Document
	last := -1
	for i, r := range catalog.ListRequired() {
		docs = append(docs, newDoc(r.Type, domain.DocumentStatusPending, time.Duration(i)*time.Minute))
		p := kyc.Summarize(docs, catalog).ProgressPercent
		assert.GreaterOrEqual(t, p, last)
		assert.LessOrEqual(t, p, 100)
		last = p
	}
	assert.Equal(t, 100, last)
}
