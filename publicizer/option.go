package publicizer

import (
	"github.com/rs/zerolog"
)

type Option func(*Publicizer)

// WithExceptions sets exception table consulted for rewritten methods and fields
func WithExceptions(table ExceptionTable) Option {
	return func(p *Publicizer) {
		p.exceptions = table
	}
}

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Publicizer) {
		p.logger = logger
	}
}

// WithoutMemberMask disables filtering of methods and fields by mask member identities
func WithoutMemberMask() Option {
	return func(p *Publicizer) {
		p.memberMask = false
	}
}
