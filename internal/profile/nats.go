package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/fivetwenty-io/mas-client/internal/constants"
)

// NATSBucketConfig configures the NATS JetStream profile backend.
type NATSBucketConfig struct {
	URL     string        `mapstructure:"url"`
	Bucket  string        `mapstructure:"bucket"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Creds is an optional path to a NATS credentials file.
	Creds string `mapstructure:"creds"`
}

// NewNATSStore connects to NATS and opens (creating if needed) the
// profile bucket.
func NewNATSStore(ctx context.Context, config *NATSBucketConfig) (*BucketStore, error) {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.NATSConnectTimeout
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.DefaultProfileBucket
	}

	opts := []nats.Option{
		nats.Name("mas-cli"),
		nats.Timeout(timeout),
	}
	if config.Creds != "" {
		opts = append(opts, nats.UserCredentials(config.Creds))
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "MAS server profiles",
		History:     1,
	})
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("opening key-value bucket %q: %w", bucket, err)
	}

	return NewBucketStore(&jetStreamBucket{kv: kv}, func() error {
		return nc.Drain()
	}), nil
}

// jetStreamBucket adapts a JetStream key-value bucket to Bucket.
type jetStreamBucket struct {
	kv jetstream.KeyValue
}

func (b *jetStreamBucket) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := b.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, constants.ErrServerNotFound
		}

		return nil, fmt.Errorf("getting %s: %w", key, err)
	}

	return entry.Value(), nil
}

func (b *jetStreamBucket) Put(ctx context.Context, key string, value []byte) error {
	if _, err := b.kv.Put(ctx, key, value); err != nil {
		return fmt.Errorf("putting %s: %w", key, err)
	}

	return nil
}

func (b *jetStreamBucket) Delete(ctx context.Context, key string) error {
	if err := b.kv.Purge(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

func (b *jetStreamBucket) Keys(ctx context.Context) ([]string, error) {
	lister, err := b.kv.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}

	defer func() { _ = lister.Stop() }()

	var keys []string
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	return keys, nil
}
