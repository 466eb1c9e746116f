package services

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseObjectURL extracts the (bucket, objectPath) pair from a stored storage
// URL. URLs carrying a "/public/" segment name their bucket explicitly; for
// anything else the default bucket is assumed and the trailing path is treated
// as the object key.
func ParseObjectURL(rawURL, defaultBucket string) (bucket, objectPath string, isPublic bool, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", false, fmt.Errorf("failed to parse object url: %w", err)
	}

	const publicSegment = "/public/"
	if idx := strings.Index(u.Path, publicSegment); idx >= 0 {
		rest := u.Path[idx+len(publicSegment):]
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", "", false, fmt.Errorf("object url has no bucket/path after public segment: %s", rawURL)
		}
		return parts[0], parts[1], true, nil
	}

	path := strings.TrimPrefix(u.Path, "/")
	if path == "" {
		return "", "", false, fmt.Errorf("object url has an empty path: %s", rawURL)
	}

	return defaultBucket, path, false, nil
}

// DownloadService turns stored object URLs into time-boxed signed download
// links.
type DownloadService struct {
	signer        SignedURLCreator
	defaultBucket string
	ttlSeconds    int
}

func NewDownloadService(signer SignedURLCreator, defaultBucket string, ttlSeconds int) *DownloadService {
	return &DownloadService{
		signer:        signer,
		defaultBucket: defaultBucket,
		ttlSeconds:    ttlSeconds,
	}
}

// Resolve returns a signed URL for the stored URL. When signing fails and the
// stored URL already was a public link, the original URL is returned unsigned
// instead of failing the download; for non-public URLs the signing error
// propagates. The boolean reports whether the returned URL is signed.
func (s *DownloadService) Resolve(storedURL string) (string, bool, error) {
	bucket, objectPath, isPublic, err := ParseObjectURL(storedURL, s.defaultBucket)
	if err != nil {
		return "", false, err
	}

	signed, err := s.signer.CreateSignedURL(bucket, objectPath, s.ttlSeconds)
	if err != nil {
		if isPublic {
			return storedURL, false, nil
		}
		return "", false, fmt.Errorf("failed to sign download url: %w", err)
	}

	return signed, true, nil
}
