package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"realty-crm-backend/internal/config"
	"realty-crm-backend/internal/middleware"
	"realty-crm-backend/internal/models"
	"realty-crm-backend/internal/services"
	"realty-crm-backend/internal/supabase"
)

type DocumentsHandler struct {
	cfg             *config.Config
	dbClient        *supabase.DatabaseClient
	mediaService    *services.MediaService
	documentService *services.DocumentService
	downloadService *services.DownloadService
}

func NewDocumentsHandler(
	cfg *config.Config,
	dbClient *supabase.DatabaseClient,
	mediaService *services.MediaService,
	documentService *services.DocumentService,
	downloadService *services.DownloadService,
) *DocumentsHandler {
	return &DocumentsHandler{
		cfg:             cfg,
		dbClient:        dbClient,
		mediaService:    mediaService,
		documentService: documentService,
		downloadService: downloadService,
	}
}

// UploadPropertyDocument godoc
// @Summary     Upload a property document
// @Description Uploads a document for a property as-is (no optimization). Files above the configured size cap are rejected before any upload attempt.
// @Tags        documents
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       property_id path string true "Property ID (UUID)"
// @Param       file formData file true "Document file"
// @Success     200 {object} models.MediaResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /properties/{property_id}/documents [post]
func (h *DocumentsHandler) UploadPropertyDocument(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid property id"})
		return
	}

	if _, err := h.dbClient.GetProperty(propertyID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "property not found",
			Message: err.Error(),
		})
		return
	}

	files, err := multipartFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no files uploaded",
			Message: err.Error(),
		})
		return
	}
	file := files[0]

	// Size cap is enforced before the upload is attempted
	if file.Size > h.cfg.MaxDocumentBytes {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "file too large",
			Message: fmt.Sprintf("%s is %d bytes, limit is %d", file.Filename, file.Size, h.cfg.MaxDocumentBytes),
		})
		return
	}

	data, err := readMultipartFile(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}

	asset, err := h.mediaService.UploadDocument(propertyID, userID.String(), file.Filename, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload document",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toMediaResponse(asset))
}

// ListPropertyDocuments godoc
// @Summary     List property documents
// @Tags        documents
// @Produce     json
// @Security    Bearer
// @Param       property_id path string true "Property ID (UUID)"
// @Success     200 {object} models.MediaListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /properties/{property_id}/documents [get]
func (h *DocumentsHandler) ListPropertyDocuments(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	propertyID, err := uuid.Parse(c.Param("property_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid property id"})
		return
	}

	if _, err := h.dbClient.GetProperty(propertyID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "property not found",
			Message: err.Error(),
		})
		return
	}

	assets, err := h.mediaService.List(propertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list documents",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.MediaResponse, 0)
	for i := range assets {
		if assets[i].FileType != models.FileTypeImage {
			responses = append(responses, toMediaResponse(&assets[i]))
		}
	}

	c.JSON(http.StatusOK, models.MediaListResponse{Media: responses})
}

// UploadClientDocument godoc
// @Summary     Upload a client document
// @Description Uploads a document for a client with a typed classification. Files above the configured size cap are rejected before any upload attempt.
// @Tags        documents
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       client_id path string true "Client ID (UUID)"
// @Param       file formData file true "Document file"
// @Param       document_type formData string false "One of: id, proof_of_income, bank_statement, employment_letter, reference, contract, other"
// @Param       description formData string false "Free-form description"
// @Success     200 {object} models.DocumentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /clients/{client_id}/documents [post]
func (h *DocumentsHandler) UploadClientDocument(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	clientID, err := uuid.Parse(c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid client id"})
		return
	}

	if _, err := h.dbClient.GetClient(clientID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "client not found",
			Message: err.Error(),
		})
		return
	}

	files, err := multipartFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no files uploaded",
			Message: err.Error(),
		})
		return
	}
	file := files[0]

	if file.Size > h.cfg.MaxDocumentBytes {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "file too large",
			Message: fmt.Sprintf("%s is %d bytes, limit is %d", file.Filename, file.Size, h.cfg.MaxDocumentBytes),
		})
		return
	}

	documentType := c.PostForm("document_type")
	if documentType == "" {
		documentType = models.DocumentTypeOther
	}
	description := c.PostForm("description")

	data, err := readMultipartFile(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}

	doc, err := h.documentService.Upload(clientID, userID.String(), file.Filename, documentType, description, data)
	if err != nil {
		status := http.StatusInternalServerError
		if !models.IsValidDocumentType(documentType) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "failed to upload document",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// ListClientDocuments godoc
// @Summary     List client documents
// @Tags        documents
// @Produce     json
// @Security    Bearer
// @Param       client_id path string true "Client ID (UUID)"
// @Success     200 {object} models.DocumentListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /clients/{client_id}/documents [get]
func (h *DocumentsHandler) ListClientDocuments(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	clientID, err := uuid.Parse(c.Param("client_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid client id"})
		return
	}

	if _, err := h.dbClient.GetClient(clientID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "client not found",
			Message: err.Error(),
		})
		return
	}

	docs, err := h.documentService.List(clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list documents",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = toDocumentResponse(&docs[i])
	}

	c.JSON(http.StatusOK, models.DocumentListResponse{Documents: responses})
}

// DeleteClientDocument godoc
// @Summary     Delete a client document
// @Description Deletes the metadata row. Storage removal is best-effort; a failure there does not block the row deletion.
// @Tags        documents
// @Produce     json
// @Security    Bearer
// @Param       document_id path string true "Document ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /client-documents/{document_id} [delete]
func (h *DocumentsHandler) DeleteClientDocument(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	doc, failed := h.ownedDocument(c)
	if failed {
		return
	}

	if err := h.documentService.Delete(doc.ID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete document",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "document deleted successfully"})
}

// DownloadClientDocument godoc
// @Summary     Resolve a client document download URL
// @Description Returns a time-boxed signed URL for the document. When signing fails on a public URL the original link is returned unsigned.
// @Tags        documents
// @Produce     json
// @Security    Bearer
// @Param       document_id path string true "Document ID (UUID)"
// @Success     200 {object} models.DownloadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /client-documents/{document_id}/download [get]
func (h *DocumentsHandler) DownloadClientDocument(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	doc, failed := h.ownedDocument(c)
	if failed {
		return
	}

	resolved, signed, err := h.downloadService.Resolve(doc.FileURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to resolve download url",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.DownloadResponse{URL: resolved, Signed: signed})
}

func (h *DocumentsHandler) ownedDocument(c *gin.Context) (*models.ClientDocument, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return nil, true
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return nil, true
	}

	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid document id"})
		return nil, true
	}

	doc, err := h.documentService.Get(documentID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "document not found",
			Message: err.Error(),
		})
		return nil, true
	}

	if _, err := h.dbClient.GetClient(doc.ClientID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "document not found",
			Message: err.Error(),
		})
		return nil, true
	}

	return doc, false
}

func toDocumentResponse(doc *models.ClientDocument) models.DocumentResponse {
	response := models.DocumentResponse{
		ID:           doc.ID.String(),
		OwnerID:      doc.ClientID.String(),
		FileName:     doc.FileName,
		FileURL:      doc.FileURL,
		DocumentType: doc.DocumentType,
		DisplayOrder: doc.DisplayOrder,
		UploadDate:   doc.UploadDate,
	}
	if doc.FileSize.Valid {
		response.FileSize = doc.FileSize.Int64
	}
	if doc.Description.Valid {
		response.Description = doc.Description.String
	}
	return response
}
