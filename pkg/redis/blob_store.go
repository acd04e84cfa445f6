package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/kv"
)

// BlobStore adapts the client to kv.Store. Blobs never expire.
type BlobStore struct {
	client *Client
}

// Blobs returns a kv.Store view over the client's blob namespace.
func (c *Client) Blobs() *BlobStore {
	return &BlobStore{client: c}
}

// Driver returns the blob driver identifier.
func (b *BlobStore) Driver() enums.StorageDriver { return enums.StorageDriverRedis }

func (b *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := b.client.Get(ctx, b.client.BlobKey(key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (b *BlobStore) Set(ctx context.Context, key string, value []byte) error {
	return b.client.Set(ctx, b.client.BlobKey(key), value, 0)
}

func (b *BlobStore) Remove(ctx context.Context, key string) error {
	return b.client.Del(ctx, b.client.BlobKey(key))
}
