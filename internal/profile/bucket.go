package profile

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// Bucket is a minimal key-value store. Get returns
// constants.ErrServerNotFound for a missing key.
type Bucket interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// BucketStore implements Store over a Bucket. Profiles are stored as YAML
// under a key derived from the profile name.
type BucketStore struct {
	bucket Bucket
	close  func() error
}

// NewBucketStore creates a store over bucket. closeFn may be nil.
func NewBucketStore(bucket Bucket, closeFn func() error) *BucketStore {
	return &BucketStore{bucket: bucket, close: closeFn}
}

// NewMemoryStore creates a store that lives in process memory.
func NewMemoryStore() *BucketStore {
	return NewBucketStore(newMemoryBucket(), nil)
}

// Key names are restricted in NATS, so profile names are encoded.
func profileKey(name string) string {
	return "srv." + base64.RawURLEncoding.EncodeToString([]byte(name))
}

func isProfileKey(key string) bool {
	return strings.HasPrefix(key, "srv.")
}

// Get implements Store.
func (s *BucketStore) Get(ctx context.Context, name string) (*mas.Server, error) {
	raw, err := s.bucket.Get(ctx, profileKey(name))
	if err != nil {
		if errors.Is(err, constants.ErrServerNotFound) {
			return nil, fmt.Errorf("%w: %s", constants.ErrServerNotFound, name)
		}

		return nil, fmt.Errorf("reading profile %q: %w", name, err)
	}

	var server mas.Server
	if err := yaml.Unmarshal(raw, &server); err != nil {
		return nil, fmt.Errorf("decoding profile %q: %w", name, err)
	}

	return &server, nil
}

// Put implements Store.
func (s *BucketStore) Put(ctx context.Context, server *mas.Server) error {
	profile, err := normalizeProfile(server)
	if err != nil {
		return err
	}

	raw, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile %q: %w", profile.Name, err)
	}

	if err := s.bucket.Put(ctx, profileKey(profile.Name), raw); err != nil {
		return fmt.Errorf("writing profile %q: %w", profile.Name, err)
	}

	return nil
}

// Delete implements Store. Deleting the current profile clears the selection.
func (s *BucketStore) Delete(ctx context.Context, name string) error {
	if _, err := s.Get(ctx, name); err != nil {
		return err
	}

	if err := s.bucket.Delete(ctx, profileKey(name)); err != nil {
		return fmt.Errorf("deleting profile %q: %w", name, err)
	}

	current, err := s.bucket.Get(ctx, constants.CurrentProfileKey)
	if err == nil && string(current) == name {
		if err := s.bucket.Delete(ctx, constants.CurrentProfileKey); err != nil {
			return fmt.Errorf("clearing current profile: %w", err)
		}
	}

	return nil
}

// List implements Store.
func (s *BucketStore) List(ctx context.Context) ([]*mas.Server, error) {
	keys, err := s.bucket.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	servers := make([]*mas.Server, 0, len(keys))

	for _, key := range keys {
		if !isProfileKey(key) {
			continue
		}

		raw, err := s.bucket.Get(ctx, key)
		if err != nil {
			if errors.Is(err, constants.ErrServerNotFound) {
				continue
			}

			return nil, fmt.Errorf("reading profile: %w", err)
		}

		var server mas.Server
		if err := yaml.Unmarshal(raw, &server); err != nil {
			return nil, fmt.Errorf("decoding profile: %w", err)
		}

		servers = append(servers, &server)
	}

	sortProfiles(servers)

	return servers, nil
}

// Current implements Store.
func (s *BucketStore) Current(ctx context.Context) (*mas.Server, error) {
	name, err := s.bucket.Get(ctx, constants.CurrentProfileKey)
	if err != nil {
		return nil, fmt.Errorf("current profile: %w", err)
	}

	return s.Get(ctx, string(name))
}

// Use implements Store.
func (s *BucketStore) Use(ctx context.Context, name string) error {
	if _, err := s.Get(ctx, name); err != nil {
		return err
	}

	if err := s.bucket.Put(ctx, constants.CurrentProfileKey, []byte(name)); err != nil {
		return fmt.Errorf("selecting profile %q: %w", name, err)
	}

	return nil
}

// Close implements Store.
func (s *BucketStore) Close() error {
	if s.close == nil {
		return nil
	}

	return s.close()
}

type memoryBucket struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func newMemoryBucket() *memoryBucket {
	return &memoryBucket{items: make(map[string][]byte)}
}

func (b *memoryBucket) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.items[key]
	if !ok {
		return nil, constants.ErrServerNotFound
	}

	return append([]byte(nil), value...), nil
}

func (b *memoryBucket) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items[key] = append([]byte(nil), value...)

	return nil
}

func (b *memoryBucket) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.items, key)

	return nil
}

func (b *memoryBucket) Keys(_ context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.items))
	for key := range b.items {
		keys = append(keys, key)
	}

	return keys, nil
}
