package cache

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/viant/afs"
)

// Store persists fingerprints next to rewritten artifacts
type Store struct {
	fs afs.Service
}

// NewStore creates fingerprint store
func NewStore(fs afs.Service) *Store {
	if fs == nil {
		fs = afs.New()
	}
	return &Store{fs: fs}
}

// Location returns fingerprint sidecar location for an artifact
func Location(artifactURL string) string {
	return artifactURL + Extension
}

// Load returns persisted fingerprint for an artifact, found is false when none was persisted
func (s *Store) Load(ctx context.Context, artifactURL string) (string, bool, error) {
	location := Location(artifactURL)
	ok, err := s.fs.Exists(ctx, location)
	if err != nil {
		return "", false, fmt.Errorf("failed to check fingerprint %v: %w", location, err)
	}
	if !ok {
		return "", false, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return "", false, fmt.Errorf("failed to load fingerprint %v: %w", location, err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// Save persists fingerprint for an artifact
func (s *Store) Save(ctx context.Context, artifactURL string, digest Digest) error {
	location := Location(artifactURL)
	if err := s.fs.Upload(ctx, location, os.FileMode(0644), strings.NewReader(digest.String())); err != nil {
		return fmt.Errorf("failed to save fingerprint %v: %w", location, err)
	}
	return nil
}

// Gate compares the new fingerprint with the persisted one
func (s *Store) Gate(ctx context.Context, artifactURL string, digest Digest) (bool, error) {
	previous, found, err := s.Load(ctx, artifactURL)
	if err != nil {
		return false, err
	}
	return ShouldSkip(digest, previous, found), nil
}
