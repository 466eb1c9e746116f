package supabase

import (
	"bytes"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// Cache-control applied to every uploaded object, in seconds.
const objectCacheControl = "3600"

type StorageClient struct {
	client  *storage.Client
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// UploadFile writes an object and returns its public URL. Uploads never
// overwrite: a key collision is an error.
func (s *StorageClient) UploadFile(bucket, path string, data []byte, contentType string) (string, error) {
	upsert := false
	cacheControl := objectCacheControl
	_, err := s.client.UploadFile(bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.PublicURL(bucket, path), nil
}

func (s *StorageClient) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}

func (s *StorageClient) RemoveFiles(bucket string, paths []string) error {
	_, err := s.client.RemoveFile(bucket, paths)
	return err
}

func (s *StorageClient) DownloadFile(bucket, path string) ([]byte, error) {
	data, err := s.client.DownloadFile(bucket, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download object: %w", err)
	}

	return data, nil
}

// CreateSignedURL requests a time-boxed download link for an object.
func (s *StorageClient) CreateSignedURL(bucket, path string, expiresInSeconds int) (string, error) {
	resp, err := s.client.CreateSignedUrl(bucket, path, expiresInSeconds)
	if err != nil {
		return "", fmt.Errorf("failed to create signed url: %w", err)
	}

	return resp.SignedURL, nil
}

// DeleteFolder removes every object under the given prefix. Used for manual
// cascade cleanup when a parent entity is deleted.
func (s *StorageClient) DeleteFolder(bucket, prefix string) error {
	files, err := s.client.ListFiles(bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list objects: %w", err)
	}

	if len(files) > 0 {
		paths := make([]string, len(files))
		for i, file := range files {
			paths[i] = prefix + file.Name
		}
		if _, err := s.client.RemoveFile(bucket, paths); err != nil {
			return fmt.Errorf("failed to delete objects: %w", err)
		}
	}

	return nil
}
