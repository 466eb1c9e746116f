package services_test

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"realty-crm-backend/internal/models"
	"realty-crm-backend/internal/optimizer"
	"realty-crm-backend/internal/services"
)

// stubCodec always succeeds on the first pass so pipeline tests don't depend
// on real image encoding.
type stubCodec struct{}

func (stubCodec) Decode(data []byte) (image.Image, int, int, error) {
	if len(data) == 0 {
		return nil, 0, 0, errors.New("empty image")
	}
	return nil, 640, 480, nil
}

func (stubCodec) Resize(img image.Image, width, height int) image.Image { return img }

func (stubCodec) Encode(img image.Image, quality float64) ([]byte, error) {
	return []byte("encoded"), nil
}

// fakeStorage records uploads and removals and can fail uploads whose path
// matches a configured suffix.
type fakeStorage struct {
	uploads      []string
	removed      []string
	deletedDirs  []string
	failSuffix   string
	removeErr    error
	deleteDirErr error
}

func (f *fakeStorage) UploadFile(bucket, path string, data []byte, contentType string) (string, error) {
	if f.failSuffix != "" && strings.HasSuffix(path, f.failSuffix) {
		return "", errors.New("storage rejected upload")
	}
	f.uploads = append(f.uploads, path)
	return fmt.Sprintf("https://supabase.test/storage/v1/object/public/%s/%s", bucket, path), nil
}

func (f *fakeStorage) RemoveFiles(bucket string, paths []string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, paths...)
	return nil
}

func (f *fakeStorage) DeleteFolder(bucket, prefix string) error {
	if f.deleteDirErr != nil {
		return f.deleteDirErr
	}
	f.deletedDirs = append(f.deletedDirs, prefix)
	return nil
}

// fakeMediaStore mimics the database client's ordering semantics in memory.
type fakeMediaStore struct {
	assets     []models.MediaAsset
	createErr  error
	failOrders map[uuid.UUID]error
	orderCalls []uuid.UUID
	deleteErr  error
}

func (f *fakeMediaStore) CreateMediaAsset(asset *models.MediaAsset) error {
	if f.createErr != nil {
		return f.createErr
	}
	asset.ID = uuid.New()
	asset.DisplayOrder = 0
	for _, a := range f.assets {
		if a.PropertyID == asset.PropertyID && a.DisplayOrder >= asset.DisplayOrder {
			asset.DisplayOrder = a.DisplayOrder + 1
		}
	}
	f.assets = append(f.assets, *asset)
	return nil
}

func (f *fakeMediaStore) GetMediaAsset(mediaID uuid.UUID) (*models.MediaAsset, error) {
	for i := range f.assets {
		if f.assets[i].ID == mediaID {
			a := f.assets[i]
			return &a, nil
		}
	}
	return nil, errors.New("media asset not found")
}

func (f *fakeMediaStore) ListMediaAssets(propertyID uuid.UUID) ([]models.MediaAsset, error) {
	var out []models.MediaAsset
	for _, a := range f.assets {
		if a.PropertyID == propertyID {
			out = append(out, a)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].DisplayOrder < out[i].DisplayOrder {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeMediaStore) UpdateMediaDisplayOrder(mediaID uuid.UUID, displayOrder int) error {
	f.orderCalls = append(f.orderCalls, mediaID)
	if err, ok := f.failOrders[mediaID]; ok {
		return err
	}
	for i := range f.assets {
		if f.assets[i].ID == mediaID {
			f.assets[i].DisplayOrder = displayOrder
			return nil
		}
	}
	return errors.New("media asset not found")
}

func (f *fakeMediaStore) UpdateMediaCaption(mediaID uuid.UUID, caption string) error {
	for i := range f.assets {
		if f.assets[i].ID == mediaID {
			f.assets[i].Caption.String = caption
			f.assets[i].Caption.Valid = true
			return nil
		}
	}
	return errors.New("media asset not found")
}

func (f *fakeMediaStore) DeleteMediaAsset(mediaID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.assets {
		if f.assets[i].ID == mediaID {
			f.assets = append(f.assets[:i], f.assets[i+1:]...)
			return nil
		}
	}
	return errors.New("media asset not found")
}

func (f *fakeMediaStore) DeletePropertyMedia(propertyID uuid.UUID) error {
	kept := f.assets[:0]
	for _, a := range f.assets {
		if a.PropertyID != propertyID {
			kept = append(kept, a)
		}
	}
	f.assets = kept
	return nil
}

func newMediaService(storage *fakeStorage, store *fakeMediaStore) *services.MediaService {
	opt := optimizer.New(stubCodec{}, 800)
	return services.NewMediaService(storage, store, nil, opt, "properties", 512000)
}

func TestUploadImages_KeysAndOrdering(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	result := svc.UploadImages(propertyID, "user-1", []services.ImageUpload{
		{Filename: "a.jpg", Data: []byte("aaa")},
		{Filename: "b.jpg", Data: []byte("bbb")},
	})

	require.Empty(t, result.Errors)
	require.Len(t, result.Uploaded, 2)

	// each file produces a main and a thumbnail object under the property's prefix
	require.Len(t, storage.uploads, 4)
	prefix := "property-images/" + propertyID.String() + "/"
	assert.True(t, strings.HasPrefix(storage.uploads[0], prefix))
	assert.True(t, strings.HasSuffix(storage.uploads[0], "_main.jpg"))
	assert.True(t, strings.HasSuffix(storage.uploads[1], "_thumb.jpg"))
	assert.Equal(t,
		strings.TrimSuffix(storage.uploads[0], "_main.jpg"),
		strings.TrimSuffix(storage.uploads[1], "_thumb.jpg"))

	// sequential batch: orders are assigned one past the previous maximum
	assert.Equal(t, 0, result.Uploaded[0].DisplayOrder)
	assert.Equal(t, 1, result.Uploaded[1].DisplayOrder)

	// the caption column carries the thumbnail URL
	first := result.Uploaded[0]
	require.True(t, first.Caption.Valid)
	assert.Contains(t, first.Caption.String, "_thumb.jpg")
	assert.Contains(t, first.FileURL, "_main.jpg")
	assert.Equal(t, models.FileTypeImage, first.FileType)
}

func TestUploadImages_ThumbnailFailureRemovesMainObject(t *testing.T) {
	storage := &fakeStorage{failSuffix: "_thumb.jpg"}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	result := svc.UploadImages(propertyID, "user-1", []services.ImageUpload{
		{Filename: "a.jpg", Data: []byte("aaa")},
	})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "upload_thumbnail", result.Errors[0].Stage)
	assert.Empty(t, result.Uploaded)
	assert.Empty(t, store.assets)

	// the orphaned main object was removed by the compensating delete
	require.Len(t, storage.removed, 1)
	assert.True(t, strings.HasSuffix(storage.removed[0], "_main.jpg"))
}

func TestUploadImages_MetadataFailureLeavesObjectsBehind(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{createErr: errors.New("insert failed")}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	result := svc.UploadImages(propertyID, "user-1", []services.ImageUpload{
		{Filename: "a.jpg", Data: []byte("aaa")},
	})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "database", result.Errors[0].Stage)

	// no compensation after the metadata stage: both objects stay uploaded
	assert.Len(t, storage.uploads, 2)
	assert.Empty(t, storage.removed)
}

func TestUploadImages_BatchContinuesPastFailures(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	result := svc.UploadImages(propertyID, "user-1", []services.ImageUpload{
		{Filename: "good1.jpg", Data: []byte("aaa")},
		{Filename: "broken.jpg", Data: nil},
		{Filename: "good2.jpg", Data: []byte("ccc")},
	})

	// the broken file fails at decode but the files after it still upload
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "broken.jpg", result.Errors[0].Filename)
	assert.Equal(t, "optimize", result.Errors[0].Stage)
	require.Len(t, result.Uploaded, 2)
	assert.Equal(t, 0, result.Uploaded[0].DisplayOrder)
	assert.Equal(t, 1, result.Uploaded[1].DisplayOrder)
}

func TestReorder_PersistsZeroBasedOrder(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	result := svc.UploadImages(propertyID, "user-1", []services.ImageUpload{
		{Filename: "a.jpg", Data: []byte("a")},
		{Filename: "b.jpg", Data: []byte("b")},
		{Filename: "c.jpg", Data: []byte("c")},
	})
	require.Len(t, result.Uploaded, 3)

	reversed := []uuid.UUID{
		result.Uploaded[2].ID,
		result.Uploaded[1].ID,
		result.Uploaded[0].ID,
	}

	assets, err := svc.Reorder(propertyID, reversed)
	require.NoError(t, err)
	require.Len(t, assets, 3)

	for i, id := range reversed {
		assert.Equal(t, id, assets[i].ID)
		assert.Equal(t, i, assets[i].DisplayOrder)
	}
}

func TestReorder_FailureReturnsServerStateWithoutRetry(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	result := svc.UploadImages(propertyID, "user-1", []services.ImageUpload{
		{Filename: "a.jpg", Data: []byte("a")},
		{Filename: "b.jpg", Data: []byte("b")},
		{Filename: "c.jpg", Data: []byte("c")},
	})
	require.Len(t, result.Uploaded, 3)

	failing := result.Uploaded[1].ID
	store.failOrders = map[uuid.UUID]error{failing: errors.New("row locked")}

	order := []uuid.UUID{
		result.Uploaded[2].ID,
		failing,
		result.Uploaded[0].ID,
	}

	assets, err := svc.Reorder(propertyID, order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reorder failed for 1 of 3 assets")

	// every update ran exactly once; the failing one was not retried
	assert.Equal(t, order, store.orderCalls)

	// the returned assets are the re-fetched server state, which still holds
	// the updates that did succeed
	require.Len(t, assets, 3)
	for _, a := range assets {
		switch a.ID {
		case result.Uploaded[2].ID:
			assert.Equal(t, 0, a.DisplayOrder)
		case failing:
			assert.Equal(t, 1, a.DisplayOrder)
		case result.Uploaded[0].ID:
			assert.Equal(t, 2, a.DisplayOrder)
		}
	}
}

func TestDelete_RemovesBothObjectsAndRow(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	result := svc.UploadImages(propertyID, "user-1", []services.ImageUpload{
		{Filename: "a.jpg", Data: []byte("a")},
	})
	require.Len(t, result.Uploaded, 1)
	mediaID := result.Uploaded[0].ID

	deleted, err := svc.Delete(mediaID)
	require.NoError(t, err)
	assert.Equal(t, mediaID, deleted.ID)
	assert.Empty(t, store.assets)

	require.Len(t, storage.removed, 2)
	assert.True(t, strings.HasSuffix(storage.removed[0], "_main.jpg"))
	assert.True(t, strings.HasSuffix(storage.removed[1], "_thumb.jpg"))
}

func TestDelete_StorageFailureStillDeletesRow(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	result := svc.UploadImages(propertyID, "user-1", []services.ImageUpload{
		{Filename: "a.jpg", Data: []byte("a")},
	})
	require.Len(t, result.Uploaded, 1)

	storage.removeErr = errors.New("storage unavailable")

	_, err := svc.Delete(result.Uploaded[0].ID)
	require.NoError(t, err)

	// metadata wins: the row is gone even though the objects may linger
	assert.Empty(t, store.assets)
	assert.Empty(t, storage.removed)
}

func TestUploadDocument_NoOptimizationPass(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	data := []byte("%PDF-1.4 raw bytes")
	asset, err := svc.UploadDocument(propertyID, "user-1", "contract.pdf", data)
	require.NoError(t, err)

	require.Len(t, storage.uploads, 1)
	assert.True(t, strings.HasPrefix(storage.uploads[0], "property-documents/"+propertyID.String()+"/"))
	assert.Contains(t, storage.uploads[0], "contract.pdf")
	assert.Equal(t, models.FileTypeDocument, asset.FileType)
	require.True(t, asset.FileSize.Valid)
	assert.Equal(t, int64(len(data)), asset.FileSize.Int64)
	assert.False(t, asset.Caption.Valid)
}

func TestDeleteAllForProperty_ClearsBothPrefixesAndRows(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	result := svc.UploadImages(propertyID, "user-1", []services.ImageUpload{
		{Filename: "a.jpg", Data: []byte("a")},
	})
	require.Len(t, result.Uploaded, 1)

	require.NoError(t, svc.DeleteAllForProperty(propertyID))

	assert.Empty(t, store.assets)
	assert.Equal(t, []string{
		"property-images/" + propertyID.String() + "/",
		"property-documents/" + propertyID.String() + "/",
	}, storage.deletedDirs)
}

func TestUpdateCaption(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeMediaStore{}
	svc := newMediaService(storage, store)
	propertyID := uuid.New()

	asset, err := svc.UploadDocument(propertyID, "user-1", "floorplan.pdf", []byte("pdf"))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateCaption(asset.ID, "ground floor"))

	stored, err := store.GetMediaAsset(asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "ground floor", stored.Caption.String)
}
