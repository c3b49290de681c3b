package domain

// DocumentType is a fixed category of KYC evidence.
type DocumentType string

const (
	DocumentTypeIdentityFront  DocumentType = "identity_front"
	DocumentTypeIdentityBack   DocumentType = "identity_back"
	DocumentTypePassport       DocumentType = "passport"
	DocumentTypeDriverLicense  DocumentType = "driver_license"
	DocumentTypeUtilityBill    DocumentType = "utility_bill"
	DocumentTypeBankStatement  DocumentType = "bank_statement"
	DocumentTypeProofOfAddress DocumentType = "proof_of_address"
)

var knownDocumentTypes = map[DocumentType]bool{
	DocumentTypeIdentityFront:  true,
	DocumentTypeIdentityBack:   true,
	DocumentTypePassport:       true,
	DocumentTypeDriverLicense:  true,
	DocumentTypeUtilityBill:    true,
	DocumentTypeBankStatement:  true,
	DocumentTypeProofOfAddress: true,
}

// Valid reports whether t belongs to the document type enumeration.
func (t DocumentType) Valid() bool {
	return knownDocumentTypes[t]
}

// DocumentStatus represents the review lifecycle of a single document.
type DocumentStatus string

const (
	DocumentStatusPending     DocumentStatus = "pending"
	DocumentStatusUnderReview DocumentStatus = "under_review"
	DocumentStatusApproved    DocumentStatus = "approved"
	DocumentStatusRejected    DocumentStatus = "rejected"
)

// KYCStatus is the aggregate verification status of one user.
type KYCStatus string

const (
	KYCStatusNotStarted  KYCStatus = "not_started"
	KYCStatusIncomplete  KYCStatus = "incomplete"
	KYCStatusUnderReview KYCStatus = "under_review"
	KYCStatusApproved    KYCStatus = "approved"
	KYCStatusRejected    KYCStatus = "rejected"
)

// FormatContentTypes maps an accepted file format (extension without dot)
// to the MIME type its content must sniff as.
var FormatContentTypes = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// UserRole defines what the authenticated caller may do.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)
