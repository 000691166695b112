package task

import (
	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/publicizer/mask"
)

type Option func(*Task)

// WithFS sets storage service
func WithFS(fs afs.Service) Option {
	return func(t *Task) {
		t.fs = fs
	}
}

// WithCodec sets module codec
func WithCodec(codec Codec) Option {
	return func(t *Task) {
		t.codec = codec
	}
}

// WithMaskSource sets mask binary source
func WithMaskSource(source mask.Source) Option {
	return func(t *Task) {
		t.mask = source
	}
}

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Task) {
		t.logger = logger
	}
}

// WithVersion sets tool version keying the fingerprint
func WithVersion(version string) Option {
	return func(t *Task) {
		t.version = version
	}
}
