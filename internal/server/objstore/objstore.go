// Package objstore is the object-storage contract used by the media pipeline:
// download-to-temp, upload-from-temp, and signed read-URL issuance.
package objstore

import (
	"context"
	"time"
)

type Store interface {
	// Download fetches the object at key into the local file dst.
	Download(ctx context.Context, key, dst string) error

	// Upload stores the local file src at key with the given content type.
	Upload(ctx context.Context, key, src, contentType string) error

	// PresignGet issues a read URL for key valid for the given duration.
	PresignGet(ctx context.Context, key string, validity time.Duration) (string, error)
}
