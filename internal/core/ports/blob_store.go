package ports

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by Load when no blob exists for a partition.
var ErrBlobNotFound = errors.New("no blob stored for partition")

// BlobStore persists one serialized record per store partition, keyed by
// partition name. Implementations must treat the value as opaque bytes.
type BlobStore interface {
	Save(ctx context.Context, partition string, blob []byte) error
	Load(ctx context.Context, partition string) ([]byte, error)
}
