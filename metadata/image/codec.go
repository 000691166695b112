// Package image provides a reference codec for the module view.
//
// An image is a deterministic YAML document followed by a highwayhash-64 integrity trailer.
// Reading and writing never recover from partial errors: every problem found is collected and
// reported as one AggregateError, so a half-read module is never rewritten and a half-built
// image is never returned.
package image

import (
	"github.com/viant/publicizer/metadata"
)

// Codec reads and writes module images
type Codec struct{}

// New creates image codec
func New() *Codec {
	return &Codec{}
}

// Read decodes module
func (c *Codec) Read(data []byte) (*metadata.Module, error) {
	return Read(data)
}

// Write encodes module
func (c *Codec) Write(module *metadata.Module) ([]byte, error) {
	return Write(module)
}
