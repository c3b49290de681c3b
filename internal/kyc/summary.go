package kyc

import (
	"math"

	"kycportal/internal/domain"
)

// Summarize derives the aggregate KYC view from docs and the catalog.
// A rejected document still fills its type's slot; the user has to replace
// or delete it to reopen the slot.
func Summarize(docs []domain.Document, catalog *Catalog) domain.KYCSummary {
	required := catalog.ListRequired()
	requiredSet := make(map[domain.DocumentType]bool, len(required))
	for _, r := range required {
		requiredSet[r.Type] = true
	}

	sum := domain.KYCSummary{
		TotalDocuments: len(docs),
		MissingTypes:   []domain.DocumentType{},
	}
	uploaded := make(map[domain.DocumentType]bool, len(docs))
	for _, d := range docs {
		uploaded[d.DocumentType] = true
		switch d.Status {
		case domain.DocumentStatusApproved:
			sum.ApprovedCount++
		case domain.DocumentStatusRejected:
			sum.RejectedCount++
		case domain.DocumentStatusPending, domain.DocumentStatusUnderReview:
			sum.PendingCount++
		}
	}

	present := 0
	for _, r := range required {
		if uploaded[r.Type] {
			present++
		} else {
			sum.MissingTypes = append(sum.MissingTypes, r.Type)
		}
	}
	if len(required) > 0 {
		sum.ProgressPercent = clampPercent(int(math.Round(100 * float64(present) / float64(len(required)))))
	}

	sum.Status = deriveStatus(docs, requiredSet, len(sum.MissingTypes))
	sum.CanSubmit = len(sum.MissingTypes) == 0 &&
		sum.Status != domain.KYCStatusUnderReview &&
		sum.Status != domain.KYCStatusApproved
	return sum
}

func deriveStatus(docs []domain.Document, required map[domain.DocumentType]bool, missing int) domain.KYCStatus {
	if len(docs) == 0 {
		return domain.KYCStatusNotStarted
	}
	if missing > 0 {
		return domain.KYCStatusIncomplete
	}

	var anyUnderReview, anyRequiredRejected, anyRequiredOpen bool
	allRequiredApproved := true
	for _, d := range docs {
		if d.Status == domain.DocumentStatusUnderReview {
			anyUnderReview = true
		}
		if !required[d.DocumentType] {
			continue
		}
		switch d.Status {
		case domain.DocumentStatusApproved:
		case domain.DocumentStatusRejected:
			anyRequiredRejected = true
			allRequiredApproved = false
		default:
			anyRequiredOpen = true
			allRequiredApproved = false
		}
	}

	switch {
	case anyUnderReview:
		return domain.KYCStatusUnderReview
	case allRequiredApproved:
		return domain.KYCStatusApproved
	case anyRequiredRejected && !anyRequiredOpen:
		return domain.KYCStatusRejected
	default:
		return domain.KYCStatusIncomplete
	}
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
