// Package publicizer widens accessibility of types, methods and fields of a module to public.
//
// Only declarations that exist, by full name, in a mask module are touched. Every rewritten
// declaration gets an OrigVisibilityAttribute recording its original access bits, and members
// listed in the exception table are additionally marked obsolete.
package publicizer

import (
	"github.com/rs/zerolog"
	"github.com/viant/publicizer/metadata"
)

// Publicizer rewrites module accessibility against a mask module
type Publicizer struct {
	exceptions ExceptionTable
	logger     zerolog.Logger
	memberMask bool
}

// Change records a single rewrite
type Change struct {
	Kind       MemberKind
	Identity   string
	Original   uint32
	Deprecated bool
}

// Report summarises a rewrite pass
type Report struct {
	Matched    int
	Types      int
	Methods    int
	Fields     int
	Deprecated int
	Changes    []*Change
}

// Rewritten returns total number of rewritten declarations
func (r *Report) Rewritten() int {
	return r.Types + r.Methods + r.Fields
}

func (r *Report) add(change *Change) {
	switch change.Kind {
	case KindType:
		r.Types++
	case KindMethod:
		r.Methods++
	case KindField:
		r.Fields++
	}
	if change.Deprecated {
		r.Deprecated++
	}
	r.Changes = append(r.Changes, change)
}

// New creates a publicizer
func New(options ...Option) *Publicizer {
	p := &Publicizer{
		exceptions: ExceptionTable{},
		logger:     zerolog.Nop(),
		memberMask: true,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Publicize rewrites target module in place for every type matched in the mask module
func (p *Publicizer) Publicize(target, mask *metadata.Module) *Report {
	mapping := Match(target, mask)
	report := &Report{Matched: mapping.Len()}
	pass := &pass{
		Publicizer: p,
		module:     target,
		carriers:   NewCarriers(target),
		report:     report,
		methods:    methodPolicy(false),
		accessors:  methodPolicy(true),
	}
	for _, pair := range mapping.Pairs {
		pass.publicizeType(pair)
	}
	return report
}

type pass struct {
	*Publicizer
	module    *metadata.Module
	carriers  *Carriers
	report    *Report
	methods   *policy[*metadata.Method]
	accessors *policy[*metadata.Method]
}

func (p *pass) publicizeType(pair *Pair) {
	t := pair.Target
	if original, ok := typePolicy.apply(t, p.carriers); ok {
		p.record(KindType, string(pair.Identity), original, false)
	}

	for _, method := range t.Methods {
		if p.memberMask && !pair.Methods.Allows(MemberIdentity(method.FullName())) {
			continue
		}
		p.publicizeMethod(pair.Identity, method, p.methods)
	}
	for _, property := range t.Properties {
		if property.GetMethod != nil {
			p.publicizeMethod(pair.Identity, property.GetMethod, p.accessors)
		}
		if property.SetMethod != nil {
			p.publicizeMethod(pair.Identity, property.SetMethod, p.accessors)
		}
	}

	eventNames := make(map[string]bool, len(t.Events))
	for _, event := range t.Events {
		eventNames[event.Name] = true
	}
	fields := fieldPolicy(eventNames)
	for _, field := range t.Fields {
		if p.memberMask && !pair.Fields.Allows(MemberIdentity(field.FullName())) {
			continue
		}
		original, ok := fields.apply(field, p.carriers)
		if !ok {
			continue
		}
		deprecated := p.deprecate(pair.Identity, field.Name, func(attribute *metadata.CustomAttribute) {
			field.CustomAttributes = append(field.CustomAttributes, attribute)
		})
		p.record(KindField, field.FullName(), original, deprecated)
	}
}

func (p *pass) publicizeMethod(typeIdentity TypeIdentity, method *metadata.Method, rule *policy[*metadata.Method]) {
	original, ok := rule.apply(method, p.carriers)
	if !ok {
		return
	}
	deprecated := p.deprecate(typeIdentity, method.Name, func(attribute *metadata.CustomAttribute) {
		method.CustomAttributes = append(method.CustomAttributes, attribute)
	})
	p.record(KindMethod, method.FullName(), original, deprecated)
}

func (p *pass) deprecate(typeIdentity TypeIdentity, name string, annotate func(*metadata.CustomAttribute)) bool {
	exception, ok := p.exceptions.Lookup(typeIdentity, name)
	if !ok {
		return false
	}
	annotate(obsoleteAnnotation(p.module, exception))
	p.logger.Info().
		Str("type", string(typeIdentity)).
		Str("member", name).
		Str("severity", string(exception.Severity)).
		Msg("marked publicized member obsolete")
	return true
}

func (p *pass) record(kind MemberKind, identity string, original uint32, deprecated bool) {
	p.report.add(&Change{Kind: kind, Identity: identity, Original: original, Deprecated: deprecated})
	p.logger.Debug().
		Str("kind", string(kind)).
		Str("identity", identity).
		Uint32("original", original).
		Msg("publicized")
}
