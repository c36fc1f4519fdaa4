// Package profile persists named MAS server profiles and tracks which one
// is current.
package profile

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// StoreType selects the profile backend.
type StoreType string

const (
	// StoreTypeMemory keeps profiles in process memory.
	StoreTypeMemory StoreType = "memory"

	// StoreTypeFile keeps profiles in a YAML file.
	StoreTypeFile StoreType = "file"

	// StoreTypeNATS keeps profiles in a NATS JetStream key-value bucket.
	StoreTypeNATS StoreType = "nats"
)

// Store persists server profiles by name.
type Store interface {
	Get(ctx context.Context, name string) (*mas.Server, error)
	Put(ctx context.Context, server *mas.Server) error
	Delete(ctx context.Context, name string) error
	// List returns all profiles sorted by name.
	List(ctx context.Context) ([]*mas.Server, error)
	// Current returns the selected profile, or ErrServerNotFound.
	Current(ctx context.Context) (*mas.Server, error)
	// Use selects an existing profile.
	Use(ctx context.Context, name string) error
	Close() error
}

// StoreConfig configures a profile backend.
type StoreConfig struct {
	Type StoreType         `mapstructure:"type"`
	Path string            `mapstructure:"path"`
	NATS *NATSBucketConfig `mapstructure:"nats"`
}

// DefaultStoreConfig keeps profiles in dir/servers.yml.
func DefaultStoreConfig(dir string) *StoreConfig {
	return &StoreConfig{
		Type: StoreTypeFile,
		Path: filepath.Join(dir, "servers.yml"),
	}
}

// NewStoreFromConfig creates a profile store from configuration.
func NewStoreFromConfig(ctx context.Context, config *StoreConfig) (Store, error) {
	if config == nil {
		return NewMemoryStore(), nil
	}

	switch config.Type {
	case StoreTypeMemory, "":
		return NewMemoryStore(), nil

	case StoreTypeFile:
		if config.Path == "" {
			return nil, constants.ErrStorePathRequired
		}

		return NewFileStore(config.Path), nil

	case StoreTypeNATS:
		if config.NATS == nil || config.NATS.URL == "" {
			return nil, constants.ErrNATSURLRequired
		}

		store, err := NewNATSStore(ctx, config.NATS)
		if err != nil {
			return nil, err
		}

		return store, nil

	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownStoreType, config.Type)
	}
}

func normalizeProfile(server *mas.Server) (*mas.Server, error) {
	if server == nil || strings.TrimSpace(server.Name) == "" {
		return nil, constants.ErrServerNameRequired
	}

	clone := *server
	clone.ApplyDefaults()

	if err := clone.Validate(); err != nil {
		return nil, fmt.Errorf("server %q: %w", clone.Name, err)
	}

	return &clone, nil
}

func sortProfiles(servers []*mas.Server) {
	slices.SortFunc(servers, func(a, b *mas.Server) int {
		return strings.Compare(a.Name, b.Name)
	})
}
