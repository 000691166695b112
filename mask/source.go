// Package mask resolves the reference binary a rewrite is masked against.
package mask

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
)

// ErrNotFound is returned when no resource is registered under a name
var ErrNotFound = errors.New("mask resource not found")

// Source supplies mask binary bytes keyed by resource name
type Source interface {
	Open(ctx context.Context, name string) ([]byte, error)
}

// Resources is a static, in-process set of mask binaries
type Resources map[string][]byte

// Open returns resource bytes
func (r Resources) Open(_ context.Context, name string) ([]byte, error) {
	data, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, name)
	}
	return data, nil
}

// Storage resolves mask binaries from storage locations
type Storage struct {
	fs        afs.Service
	locations map[string]string
}

// NewStorage creates storage source; locations maps resource name to URL
func NewStorage(fs afs.Service, locations map[string]string) *Storage {
	if fs == nil {
		fs = afs.New()
	}
	return &Storage{fs: fs, locations: locations}
}

// Open downloads resource bytes
func (s *Storage) Open(ctx context.Context, name string) ([]byte, error) {
	location, ok := s.locations[name]
	if !ok || location == "" {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, name)
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load mask resource %v from %v: %w", name, location, err)
	}
	return data, nil
}
