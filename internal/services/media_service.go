package services

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"realty-crm-backend/internal/models"
	"realty-crm-backend/internal/optimizer"
	"realty-crm-backend/internal/supabase"
)

// Object key prefixes inside the properties bucket.
const (
	propertyImagesPrefix    = "property-images"
	propertyDocumentsPrefix = "property-documents"
)

// ImageUpload is one picked file in an upload batch.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// BatchResult collects per-file outcomes of a sequential upload batch. Files
// that failed do not roll back files already persisted before them.
type BatchResult struct {
	Uploaded []models.MediaAsset
	Errors   []models.UploadErrorInfo
}

// MediaService implements the property media pipeline: optimize, upload,
// record metadata, reorder and delete.
type MediaService struct {
	storage     ObjectStorage
	store       MediaStore
	events      EventPublisher
	optimizer   *optimizer.Optimizer
	bucket      string
	targetBytes int64
	locks       *entityLocks
}

func NewMediaService(
	storage ObjectStorage,
	store MediaStore,
	events EventPublisher,
	opt *optimizer.Optimizer,
	bucket string,
	targetBytes int64,
) *MediaService {
	return &MediaService{
		storage:     storage,
		store:       store,
		events:      events,
		optimizer:   opt,
		bucket:      bucket,
		targetBytes: targetBytes,
		locks:       newEntityLocks(),
	}
}

// UploadImages processes a batch strictly in order: each file is optimized,
// uploaded and recorded before the next one starts. The property's lock is
// held for the whole batch so overlapping batches cannot interleave.
func (s *MediaService) UploadImages(propertyID uuid.UUID, userID string, files []ImageUpload) *BatchResult {
	unlock := s.locks.Lock(propertyID)
	defer unlock()

	result := &BatchResult{}
	for _, file := range files {
		asset, stage, err := s.uploadImage(propertyID, userID, file)
		if err != nil {
			result.Errors = append(result.Errors, models.UploadErrorInfo{
				Filename: file.Filename,
				Error:    err.Error(),
				Stage:    stage,
			})
			continue
		}
		result.Uploaded = append(result.Uploaded, *asset)
	}

	return result
}

func (s *MediaService) uploadImage(propertyID uuid.UUID, userID string, file ImageUpload) (*models.MediaAsset, string, error) {
	opt, err := s.optimizer.Optimize(file.Data, s.targetBytes)
	if err != nil {
		return nil, "optimize", err
	}

	thumb, err := s.optimizer.Thumbnail(opt.Data)
	if err != nil {
		return nil, "optimize", err
	}

	base := objectKeyBase(propertyImagesPrefix, propertyID)
	mainPath := base + "_main.jpg"
	thumbPath := base + "_thumb.jpg"

	mainURL, err := s.storage.UploadFile(s.bucket, mainPath, opt.Data, "image/jpeg")
	if err != nil {
		return nil, "upload_main", err
	}

	thumbURL, err := s.storage.UploadFile(s.bucket, thumbPath, thumb, "image/jpeg")
	if err != nil {
		// Compensating delete: a main object without its thumbnail must not
		// survive the failure.
		if rmErr := s.storage.RemoveFiles(s.bucket, []string{mainPath}); rmErr != nil {
			log.Printf("failed to remove main object %s after thumbnail failure: %v", mainPath, rmErr)
		}
		return nil, "upload_thumbnail", err
	}

	asset := &models.MediaAsset{
		PropertyID: propertyID,
		FileType:   models.FileTypeImage,
		FileURL:    mainURL,
		FileName:   sql.NullString{String: file.Filename, Valid: file.Filename != ""},
		// the caption column carries the thumbnail URL for images
		Caption:    sql.NullString{String: thumbURL, Valid: true},
		FileSize:   sql.NullInt64{Int64: int64(len(opt.Data)), Valid: true},
		UploadedBy: sql.NullString{String: userID, Valid: userID != ""},
	}

	if err := s.store.CreateMediaAsset(asset); err != nil {
		// The uploaded objects are left behind; a reconciliation sweep owns
		// orphans, not this path.
		return nil, "database", err
	}

	if s.events != nil {
		_ = s.events.PublishPropertyEvent(propertyID, "asset_added",
			supabase.AssetAddedPayload(propertyID, asset.ID, asset.FileURL))
	}

	return asset, "", nil
}

// UploadDocument uploads a property document as-is, without any optimization
// pass or thumbnail.
func (s *MediaService) UploadDocument(propertyID uuid.UUID, userID, filename string, data []byte) (*models.MediaAsset, error) {
	unlock := s.locks.Lock(propertyID)
	defer unlock()

	path := fmt.Sprintf("%s/%s/%d_%s", propertyDocumentsPrefix, propertyID.String(),
		nowUnixMilli(), sanitizeFileName(filename))

	fileURL, err := s.storage.UploadFile(s.bucket, path, data, contentTypeForFilename(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	asset := &models.MediaAsset{
		PropertyID: propertyID,
		FileType:   models.FileTypeDocument,
		FileURL:    fileURL,
		FileName:   sql.NullString{String: filename, Valid: filename != ""},
		FileSize:   sql.NullInt64{Int64: int64(len(data)), Valid: true},
		UploadedBy: sql.NullString{String: userID, Valid: userID != ""},
	}

	if err := s.store.CreateMediaAsset(asset); err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishPropertyEvent(propertyID, "asset_added",
			supabase.AssetAddedPayload(propertyID, asset.ID, asset.FileURL))
	}

	return asset, nil
}

// List returns the property's assets in display order.
func (s *MediaService) List(propertyID uuid.UUID) ([]models.MediaAsset, error) {
	return s.store.ListMediaAssets(propertyID)
}

// Reorder persists the given permutation as 0-based display_order values, one
// independent update per row. If any update fails the server's state is
// re-fetched and returned alongside a single aggregate error; no individual
// update is retried.
func (s *MediaService) Reorder(propertyID uuid.UUID, mediaIDs []uuid.UUID) ([]models.MediaAsset, error) {
	unlock := s.locks.Lock(propertyID)
	defer unlock()

	var failures int
	var firstErr error
	for i, mediaID := range mediaIDs {
		if err := s.store.UpdateMediaDisplayOrder(mediaID, i); err != nil {
			failures++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	assets, fetchErr := s.store.ListMediaAssets(propertyID)

	if firstErr != nil {
		aggregate := fmt.Errorf("reorder failed for %d of %d assets: %w", failures, len(mediaIDs), firstErr)
		if fetchErr != nil {
			return nil, aggregate
		}
		// assets reflect the last known-good server state, not the local order
		return assets, aggregate
	}
	if fetchErr != nil {
		return nil, fetchErr
	}

	if s.events != nil {
		ids := make([]string, len(mediaIDs))
		for i, id := range mediaIDs {
			ids[i] = id.String()
		}
		_ = s.events.PublishPropertyEvent(propertyID, "order_changed",
			supabase.OrderChangedPayload(propertyID, ids))
	}

	return assets, nil
}

// UpdateCaption sets the free-form caption of a non-image asset, or replaces
// the stored thumbnail URL if called on an image.
func (s *MediaService) UpdateCaption(mediaID uuid.UUID, caption string) error {
	return s.store.UpdateMediaCaption(mediaID, caption)
}

// Delete removes an asset's metadata row. Removal of the underlying storage
// objects is best-effort: a storage failure is logged and the row is deleted
// anyway, so storage and metadata are allowed to diverge.
func (s *MediaService) Delete(mediaID uuid.UUID) (*models.MediaAsset, error) {
	asset, err := s.store.GetMediaAsset(mediaID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(asset.PropertyID)
	defer unlock()

	if paths := s.objectPaths(asset); len(paths) > 0 {
		if err := s.storage.RemoveFiles(s.bucket, paths); err != nil {
			log.Printf("storage removal failed for media %s: %v", mediaID, err)
		}
	}

	if err := s.store.DeleteMediaAsset(mediaID); err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishPropertyEvent(asset.PropertyID, "asset_removed",
			supabase.AssetRemovedPayload(asset.PropertyID, mediaID))
	}

	return asset, nil
}

// DeleteAllForProperty clears a property's media before the property row is
// deleted. Storage cleanup is best-effort; row deletion is not.
func (s *MediaService) DeleteAllForProperty(propertyID uuid.UUID) error {
	unlock := s.locks.Lock(propertyID)
	defer unlock()

	for _, prefix := range []string{propertyImagesPrefix, propertyDocumentsPrefix} {
		folder := fmt.Sprintf("%s/%s/", prefix, propertyID.String())
		if err := s.storage.DeleteFolder(s.bucket, folder); err != nil {
			log.Printf("storage cleanup failed for property %s under %s: %v", propertyID, folder, err)
		}
	}

	return s.store.DeletePropertyMedia(propertyID)
}

// objectPaths derives the storage keys of an asset's objects (main plus
// thumbnail for images) from its stored URLs.
func (s *MediaService) objectPaths(asset *models.MediaAsset) []string {
	var paths []string
	if _, path, _, err := ParseObjectURL(asset.FileURL, s.bucket); err == nil {
		paths = append(paths, path)
	}
	if asset.FileType == models.FileTypeImage && asset.Caption.Valid {
		if _, path, _, err := ParseObjectURL(asset.Caption.String, s.bucket); err == nil {
			paths = append(paths, path)
		}
	}
	return paths
}
