// Package cache gates the rewrite behind a content fingerprint of its inputs.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
)

// Extension is appended to the rewritten artifact path to form the fingerprint sidecar path
const Extension = ".md5"

// Digest is a content fingerprint
type Digest [md5.Size]byte

// String returns lowercase hexadecimal encoding
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Fingerprint digests, in order, tool version, mask bytes and target bytes
func Fingerprint(version string, mask, target []byte) Digest {
	builder := NewBuilder()
	builder.WriteString(version)
	builder.Write(mask)
	builder.Write(target)
	return builder.Sum()
}

// Builder feeds fingerprint inputs incrementally
type Builder struct {
	hash hash.Hash
}

// NewBuilder creates fingerprint builder
func NewBuilder() *Builder {
	return &Builder{hash: md5.New()}
}

// Write feeds raw bytes
func (b *Builder) Write(data []byte) {
	b.hash.Write(data)
}

// WriteString feeds UTF-8 encoded text
func (b *Builder) WriteString(text string) {
	b.hash.Write([]byte(text))
}

// Sum finalizes the digest
func (b *Builder) Sum() Digest {
	var digest Digest
	copy(digest[:], b.hash.Sum(nil))
	return digest
}

// ShouldSkip returns true when a previous fingerprint was persisted and equals the new one
func ShouldSkip(digest Digest, previous string, found bool) bool {
	return found && previous == digest.String()
}
