package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/supfront/commerce-system/internal/core/ports"
)

// PartitionStore persists store partition blobs in Redis.
// Key format: store:<partition>
type PartitionStore struct {
	client *redis.Client
}

// NewPartitionStore creates a PartitionStore wrapping the given Redis client.
func NewPartitionStore(client *redis.Client) *PartitionStore {
	return &PartitionStore{client: client}
}

// Save writes the partition's blob. Blobs have no TTL; they survive until the
// next write for the same partition.
func (p *PartitionStore) Save(ctx context.Context, partition string, blob []byte) error {
	if err := p.client.Set(ctx, p.key(partition), blob, 0).Err(); err != nil {
		return fmt.Errorf("save partition %q: %w", partition, err)
	}
	return nil
}

// Load reads the partition's blob, or ports.ErrBlobNotFound when the
// partition has never been persisted.
func (p *PartitionStore) Load(ctx context.Context, partition string) ([]byte, error) {
	raw, err := p.client.Get(ctx, p.key(partition)).Bytes()
	if err == redis.Nil {
		return nil, ports.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load partition %q: %w", partition, err)
	}
	return raw, nil
}

func (p *PartitionStore) key(partition string) string {
	return "store:" + partition
}
