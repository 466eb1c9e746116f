package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Media kinds stored in property_media.file_type.
const (
	FileTypeImage     = "image"
	FileTypeDocument  = "document"
	FileTypeVideo     = "video"
	FileTypeFloorplan = "floorplan"
)

// MediaAsset is one uploaded file attached to a property.
// For images the Caption column carries the thumbnail's public URL.
type MediaAsset struct {
	ID           uuid.UUID
	PropertyID   uuid.UUID
	FileType     string
	FileURL      string
	FileName     sql.NullString
	Caption      sql.NullString
	DisplayOrder int
	FileSize     sql.NullInt64
	CreatedAt    time.Time
	UploadedBy   sql.NullString
}

// Closed enum for client_documents.document_type.
const (
	DocumentTypeID               = "id"
	DocumentTypeProofOfIncome    = "proof_of_income"
	DocumentTypeBankStatement    = "bank_statement"
	DocumentTypeEmploymentLetter = "employment_letter"
	DocumentTypeReference        = "reference"
	DocumentTypeContract         = "contract"
	DocumentTypeOther            = "other"
)

func IsValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeID, DocumentTypeProofOfIncome, DocumentTypeBankStatement,
		DocumentTypeEmploymentLetter, DocumentTypeReference, DocumentTypeContract,
		DocumentTypeOther:
		return true
	}
	return false
}

// ClientDocument is a file attached to a client. Structurally parallel to
// MediaAsset but with a typed document classification instead of a caption.
type ClientDocument struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	FileName     string
	FileURL      string
	FileSize     sql.NullInt64
	FileType     sql.NullString
	DocumentType string
	Description  sql.NullString
	DisplayOrder int
	UploadDate   time.Time
	UploadedBy   sql.NullString
}
