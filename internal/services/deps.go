package services

import (
	"github.com/google/uuid"
	"realty-crm-backend/internal/models"
)

// ObjectStorage is the slice of the storage client the media pipeline uses.
type ObjectStorage interface {
	UploadFile(bucket, path string, data []byte, contentType string) (string, error)
	RemoveFiles(bucket string, paths []string) error
	DeleteFolder(bucket, prefix string) error
}

// MediaStore is the property_media metadata access the pipeline uses.
type MediaStore interface {
	CreateMediaAsset(asset *models.MediaAsset) error
	GetMediaAsset(mediaID uuid.UUID) (*models.MediaAsset, error)
	ListMediaAssets(propertyID uuid.UUID) ([]models.MediaAsset, error)
	UpdateMediaDisplayOrder(mediaID uuid.UUID, displayOrder int) error
	UpdateMediaCaption(mediaID uuid.UUID, caption string) error
	DeleteMediaAsset(mediaID uuid.UUID) error
	DeletePropertyMedia(propertyID uuid.UUID) error
}

// ClientDocumentStore is the client_documents metadata access.
type ClientDocumentStore interface {
	CreateClientDocument(doc *models.ClientDocument) error
	GetClientDocument(documentID uuid.UUID) (*models.ClientDocument, error)
	ListClientDocuments(clientID uuid.UUID) ([]models.ClientDocument, error)
	DeleteClientDocument(documentID uuid.UUID) error
	DeleteClientDocuments(clientID uuid.UUID) error
}

// EventPublisher notifies other sessions about media changes. Implementations
// are best-effort; publish errors are ignored by callers.
type EventPublisher interface {
	PublishPropertyEvent(propertyID uuid.UUID, event string, payload map[string]interface{}) error
	PublishClientEvent(clientID uuid.UUID, event string, payload map[string]interface{}) error
}

// SignedURLCreator requests time-boxed download links from the object store.
type SignedURLCreator interface {
	CreateSignedURL(bucket, path string, expiresInSeconds int) (string, error)
}
