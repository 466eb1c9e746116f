package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// objectKeyBase builds a collision-resistant key under the owner's prefix:
// <prefix>/<ownerID>/<unix-millis>_<random>.
func objectKeyBase(prefix string, ownerID uuid.UUID) string {
	suffix := strings.SplitN(uuid.New().String(), "-", 2)[0]
	return fmt.Sprintf("%s/%s/%d_%s", prefix, ownerID.String(), time.Now().UnixMilli(), suffix)
}

func nowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// sanitizeFileName keeps object keys safe: anything outside [A-Za-z0-9._-]
// becomes an underscore.
func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

func contentTypeForFilename(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".doc"):
		return "application/msword"
	case strings.HasSuffix(lower, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
