package services

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"realty-crm-backend/internal/models"
	"realty-crm-backend/internal/supabase"
)

// Object key prefix inside the clients bucket.
const clientDocumentsPrefix = "client-documents"

// DocumentService manages client documents: plain uploads, append-only
// ordering, typed classification, no thumbnails.
type DocumentService struct {
	storage ObjectStorage
	store   ClientDocumentStore
	events  EventPublisher
	bucket  string
	locks   *entityLocks
}

func NewDocumentService(
	storage ObjectStorage,
	store ClientDocumentStore,
	events EventPublisher,
	bucket string,
) *DocumentService {
	return &DocumentService{
		storage: storage,
		store:   store,
		events:  events,
		bucket:  bucket,
		locks:   newEntityLocks(),
	}
}

// Upload stores one client document and records its metadata row. The row's
// display_order is append-only (current document count), never reindexed on
// delete.
func (s *DocumentService) Upload(clientID uuid.UUID, userID, filename, documentType, description string, data []byte) (*models.ClientDocument, error) {
	if !models.IsValidDocumentType(documentType) {
		return nil, fmt.Errorf("invalid document type: %s", documentType)
	}

	unlock := s.locks.Lock(clientID)
	defer unlock()

	path := fmt.Sprintf("%s/%s/%d_%s", clientDocumentsPrefix, clientID.String(),
		nowUnixMilli(), sanitizeFileName(filename))

	fileURL, err := s.storage.UploadFile(s.bucket, path, data, contentTypeForFilename(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	doc := &models.ClientDocument{
		ClientID:     clientID,
		FileName:     filename,
		FileURL:      fileURL,
		FileSize:     sql.NullInt64{Int64: int64(len(data)), Valid: true},
		FileType:     sql.NullString{String: contentTypeForFilename(filename), Valid: true},
		DocumentType: documentType,
		Description:  sql.NullString{String: description, Valid: description != ""},
		UploadedBy:   sql.NullString{String: userID, Valid: userID != ""},
	}

	if err := s.store.CreateClientDocument(doc); err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishClientEvent(clientID, "document_added",
			supabase.DocumentAddedPayload(clientID, doc.ID, doc.FileName))
	}

	return doc, nil
}

func (s *DocumentService) List(clientID uuid.UUID) ([]models.ClientDocument, error) {
	return s.store.ListClientDocuments(clientID)
}

func (s *DocumentService) Get(documentID uuid.UUID) (*models.ClientDocument, error) {
	return s.store.GetClientDocument(documentID)
}

// Delete removes the metadata row; storage removal is best-effort and its
// failure only logged, so the object store may diverge from the table.
func (s *DocumentService) Delete(documentID uuid.UUID) error {
	doc, err := s.store.GetClientDocument(documentID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(doc.ClientID)
	defer unlock()

	if _, path, _, err := ParseObjectURL(doc.FileURL, s.bucket); err == nil {
		if err := s.storage.RemoveFiles(s.bucket, []string{path}); err != nil {
			log.Printf("storage removal failed for document %s: %v", documentID, err)
		}
	}

	return s.store.DeleteClientDocument(documentID)
}

// DeleteAllForClient clears a client's documents before the client row is
// deleted.
func (s *DocumentService) DeleteAllForClient(clientID uuid.UUID) error {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	folder := fmt.Sprintf("%s/%s/", clientDocumentsPrefix, clientID.String())
	if err := s.storage.DeleteFolder(s.bucket, folder); err != nil {
		log.Printf("storage cleanup failed for client %s under %s: %v", clientID, folder, err)
	}

	return s.store.DeleteClientDocuments(clientID)
}
