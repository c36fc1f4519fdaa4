package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/mas-client/internal/constants"
	"github.com/fivetwenty-io/mas-client/pkg/mas"
)

// fileDocument is the on-disk layout of a FileStore.
type fileDocument struct {
	Current string        `yaml:"current,omitempty"`
	Servers []*mas.Server `yaml:"servers"`
}

// FileStore keeps profiles in a YAML file readable only by its owner.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file is created on the
// first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (*fileDocument, error) {
	doc := &fileDocument{}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	if err := yaml.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	return doc, nil
}

func (s *FileStore) save(doc *fileDocument) error {
	if err := os.MkdirAll(filepath.Dir(s.path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	sortProfiles(doc.Servers)

	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding profiles: %w", err)
	}

	if err := os.WriteFile(s.path, raw, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}

	return nil
}

func (d *fileDocument) find(name string) int {
	for i, server := range d.Servers {
		if server.Name == name {
			return i
		}
	}

	return -1
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, name string) (*mas.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	i := doc.find(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", constants.ErrServerNotFound, name)
	}

	return doc.Servers[i], nil
}

// Put implements Store.
func (s *FileStore) Put(_ context.Context, server *mas.Server) error {
	profile, err := normalizeProfile(server)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	if i := doc.find(profile.Name); i >= 0 {
		doc.Servers[i] = profile
	} else {
		doc.Servers = append(doc.Servers, profile)
	}

	return s.save(doc)
}

// Delete implements Store.
func (s *FileStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	i := doc.find(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", constants.ErrServerNotFound, name)
	}

	doc.Servers = append(doc.Servers[:i], doc.Servers[i+1:]...)
	if doc.Current == name {
		doc.Current = ""
	}

	return s.save(doc)
}

// List implements Store.
func (s *FileStore) List(_ context.Context) ([]*mas.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	sortProfiles(doc.Servers)

	return doc.Servers, nil
}

// Current implements Store.
func (s *FileStore) Current(ctx context.Context) (*mas.Server, error) {
	s.mu.Lock()
	doc, err := s.load()
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if doc.Current == "" {
		return nil, fmt.Errorf("current profile: %w", constants.ErrServerNotFound)
	}

	return s.Get(ctx, doc.Current)
}

// Use implements Store.
func (s *FileStore) Use(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	if doc.find(name) < 0 {
		return fmt.Errorf("%w: %s", constants.ErrServerNotFound, name)
	}

	doc.Current = name

	return s.save(doc)
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}
