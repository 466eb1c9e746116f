package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"realty-crm-backend/internal/middleware"
	"realty-crm-backend/internal/models"
	"realty-crm-backend/internal/services"
	"realty-crm-backend/internal/supabase"
)

type MediaHandler struct {
	dbClient        *supabase.DatabaseClient
	mediaService    *services.MediaService
	downloadService *services.DownloadService
}

func NewMediaHandler(dbClient *supabase.DatabaseClient, mediaService *services.MediaService, downloadService *services.DownloadService) *MediaHandler {
	return &MediaHandler{
		dbClient:        dbClient,
		mediaService:    mediaService,
		downloadService: downloadService,
	}
}

// UploadImages godoc
// @Summary     Upload property images
// @Description Uploads one or more images for a property. Each image is optimized to the configured byte budget, gets a 150x150 thumbnail, and is processed strictly in order. Files that fail do not roll back files already persisted.
// @Tags        media
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       property_id path string true "Property ID (UUID)"
// @Param       images formData file true "Image files (multiple allowed)"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /properties/{property_id}/images [post]
func (h *MediaHandler) UploadImages(c *gin.Context) {
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

	// Verify property belongs to user
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

	uploads := make([]services.ImageUpload, 0, len(files))
	readErrors := make([]models.UploadErrorInfo, 0)
	for _, file := range files {
		data, err := readMultipartFile(file)
		if err != nil {
			readErrors = append(readErrors, models.UploadErrorInfo{
				Filename: file.Filename,
				Error:    err.Error(),
				Stage:    "file_read",
			})
			continue
		}
		uploads = append(uploads, services.ImageUpload{Filename: file.Filename, Data: data})
	}

	result := h.mediaService.UploadImages(propertyID, userID.String(), uploads)
	result.Errors = append(readErrors, result.Errors...)

	if len(result.Uploaded) == 0 {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload files",
			Message: fmt.Sprintf("all %d files failed: %v", len(files), result.Errors),
		})
		return
	}

	uploaded := make([]models.MediaResponse, len(result.Uploaded))
	for i := range result.Uploaded {
		uploaded[i] = toMediaResponse(&result.Uploaded[i])
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		PropertyID: propertyID.String(),
		Uploaded:   uploaded,
		Errors:     result.Errors,
	})
}

// ListImages godoc
// @Summary     List property media
// @Description Returns a property's media in display order, ties broken by creation time
// @Tags        media
// @Produce     json
// @Security    Bearer
// @Param       property_id path string true "Property ID (UUID)"
// @Success     200 {object} models.MediaListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /properties/{property_id}/images [get]
func (h *MediaHandler) ListImages(c *gin.Context) {
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
			Error:   "failed to list media",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.MediaResponse, len(assets))
	for i := range assets {
		responses[i] = toMediaResponse(&assets[i])
	}

	c.JSON(http.StatusOK, models.MediaListResponse{Media: responses})
}

// ReorderImages godoc
// @Summary     Reorder property media
// @Description Persists the given permutation as 0-based display_order values. On partial failure the server's last known-good order is returned with the error.
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       property_id path string true "Property ID (UUID)"
// @Param       order body models.ReorderRequest true "Media IDs in the desired order"
// @Success     200 {object} models.MediaListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /properties/{property_id}/images/order [put]
func (h *MediaHandler) ReorderImages(c *gin.Context) {
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

	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	mediaIDs := make([]uuid.UUID, len(req.MediaIDs))
	for i, idStr := range req.MediaIDs {
		mediaID, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid media id",
				Message: idStr,
			})
			return
		}
		mediaIDs[i] = mediaID
	}

	assets, err := h.mediaService.Reorder(propertyID, mediaIDs)
	if err != nil {
		// assets, when present, hold the re-fetched server order
		responses := make([]models.MediaResponse, len(assets))
		for i := range assets {
			responses[i] = toMediaResponse(&assets[i])
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to reorder media",
			"message": err.Error(),
			"media":   responses,
		})
		return
	}

	responses := make([]models.MediaResponse, len(assets))
	for i := range assets {
		responses[i] = toMediaResponse(&assets[i])
	}

	c.JSON(http.StatusOK, models.MediaListResponse{Media: responses})
}

// UpdateCaption godoc
// @Summary     Update a media caption
// @Tags        media
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       media_id path string true "Media ID (UUID)"
// @Param       caption body models.UpdateCaptionRequest true "Caption"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /media/{media_id}/caption [patch]
func (h *MediaHandler) UpdateCaption(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	asset, userErr := h.ownedAsset(c)
	if userErr {
		return
	}

	var req models.UpdateCaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.mediaService.UpdateCaption(asset.ID, req.Caption); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update caption",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "caption updated"})
}

// DeleteMedia godoc
// @Summary     Delete a media asset
// @Description Deletes the metadata row. Removal of the storage objects is best-effort and may leave orphans; the row is removed either way.
// @Tags        media
// @Produce     json
// @Security    Bearer
// @Param       media_id path string true "Media ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /media/{media_id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	asset, userErr := h.ownedAsset(c)
	if userErr {
		return
	}

	if _, err := h.mediaService.Delete(asset.ID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete media",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "media deleted successfully"})
}

// DownloadMedia godoc
// @Summary     Resolve a download URL
// @Description For document-type assets returns a time-boxed signed URL; when signing fails on a public URL the original link is returned unsigned. Images resolve to their public URL directly.
// @Tags        media
// @Produce     json
// @Security    Bearer
// @Param       media_id path string true "Media ID (UUID)"
// @Success     200 {object} models.DownloadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /media/{media_id}/download [get]
func (h *MediaHandler) DownloadMedia(c *gin.Context) {
	if h.dbClient == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "database not available"})
		return
	}

	asset, userErr := h.ownedAsset(c)
	if userErr {
		return
	}

	// Images are rendered from their public URL; only documents get signed
	if asset.FileType == models.FileTypeImage {
		c.JSON(http.StatusOK, models.DownloadResponse{URL: asset.FileURL, Signed: false})
		return
	}

	resolved, signed, err := h.downloadService.Resolve(asset.FileURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to resolve download url",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.DownloadResponse{URL: resolved, Signed: signed})
}

// ownedAsset loads the media asset from the media_id path parameter and
// verifies the asset's property belongs to the authenticated user. On failure
// it writes the error response and reports true.
func (h *MediaHandler) ownedAsset(c *gin.Context) (*models.MediaAsset, bool) {
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

	mediaID, err := uuid.Parse(c.Param("media_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid media id"})
		return nil, true
	}

	asset, err := h.dbClient.GetMediaAsset(mediaID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "media not found",
			Message: err.Error(),
		})
		return nil, true
	}

	if _, err := h.dbClient.GetProperty(asset.PropertyID, userID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "media not found",
			Message: err.Error(),
		})
		return nil, true
	}

	return asset, false
}

// multipartFiles extracts the uploaded files, trying the field names clients
// commonly use.
func multipartFiles(c *gin.Context) ([]*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	form := c.Request.MultipartForm
	if form == nil {
		return nil, fmt.Errorf("multipart form is nil")
	}

	fieldNames := []string{"images", "image", "files", "file", "documents", "document"}
	for _, fieldName := range fieldNames {
		if f := form.File[fieldName]; len(f) > 0 {
			return f, nil
		}
	}

	available := make([]string, 0, len(form.File))
	for fieldName := range form.File {
		available = append(available, fieldName)
	}
	return nil, fmt.Errorf("please provide files with one of these field names: %v. Available fields in request: %v", fieldNames, available)
}

func readMultipartFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file data: %w", err)
	}
	return data, nil
}

func toMediaResponse(asset *models.MediaAsset) models.MediaResponse {
	response := models.MediaResponse{
		ID:           asset.ID.String(),
		PropertyID:   asset.PropertyID.String(),
		FileType:     asset.FileType,
		FileURL:      asset.FileURL,
		DisplayOrder: asset.DisplayOrder,
		CreatedAt:    asset.CreatedAt,
	}
	if asset.FileName.Valid {
		response.FileName = asset.FileName.String
	}
	if asset.FileSize.Valid {
		response.FileSize = asset.FileSize.Int64
	}
	if asset.Caption.Valid {
		// images smuggle the thumbnail URL through the caption column
		if asset.FileType == models.FileTypeImage {
			response.ThumbnailURL = asset.Caption.String
		} else {
			response.Caption = asset.Caption.String
		}
	}
	return response
}
