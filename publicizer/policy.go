package publicizer

import (
	"github.com/viant/publicizer/metadata"
)

// policy describes accessibility rewrite of one member kind.
// A member is visited once: it is either skipped or rewritten to the kind's public value.
type policy[M any] struct {
	kind     MemberKind
	eligible func(M) bool
	current  func(M) uint32 // masked access value
	public   func(M) uint32
	set      func(M, uint32) // replaces masked access value
	annotate func(M, *metadata.CustomAttribute)
}

// apply rewrites eligible member and records its original access value
func (p *policy[M]) apply(member M, carriers *Carriers) (uint32, bool) {
	if !p.eligible(member) {
		return 0, false
	}
	original := p.current(member)
	p.set(member, p.public(member))
	p.annotate(member, carriers.Annotation(p.kind, original))
	return original, true
}

var typePolicy = &policy[*metadata.Type]{
	kind: KindType,
	eligible: func(t *metadata.Type) bool {
		if t.IsNested() {
			return !t.IsNestedPublic()
		}
		return !t.IsPublic()
	},
	current: func(t *metadata.Type) uint32 {
		return uint32(t.Attributes.Visibility())
	},
	public: func(t *metadata.Type) uint32 {
		if t.IsNested() {
			return uint32(metadata.TypeNestedPublic)
		}
		return uint32(metadata.TypePublic)
	},
	set: func(t *metadata.Type, value uint32) {
		t.Attributes = t.Attributes&^metadata.TypeVisibilityMask | metadata.TypeAttributes(value)
	},
	annotate: func(t *metadata.Type, attribute *metadata.CustomAttribute) {
		t.CustomAttributes = append(t.CustomAttributes, attribute)
	},
}

// methodPolicy returns method rule; property accessors ignore compiler generated marker
func methodPolicy(ignoreCompilerGenerated bool) *policy[*metadata.Method] {
	return &policy[*metadata.Method]{
		kind: KindMethod,
		eligible: func(m *metadata.Method) bool {
			if m.IsCompilerControlled() {
				return false
			}
			if !ignoreCompilerGenerated && m.IsCompilerGenerated() {
				return false
			}
			return !m.IsPublic()
		},
		current: func(m *metadata.Method) uint32 {
			return uint32(m.Attributes.Access())
		},
		public: func(*metadata.Method) uint32 {
			return uint32(metadata.MethodPublic)
		},
		set: func(m *metadata.Method, value uint32) {
			m.Attributes = m.Attributes&^metadata.MethodMemberAccessMask | metadata.MethodAttributes(value)
		},
		annotate: func(m *metadata.Method, attribute *metadata.CustomAttribute) {
			m.CustomAttributes = append(m.CustomAttributes, attribute)
		},
	}
}

// fieldPolicy returns field rule; fields named after a declared event are event backing stores
func fieldPolicy(eventNames map[string]bool) *policy[*metadata.Field] {
	return &policy[*metadata.Field]{
		kind: KindField,
		eligible: func(f *metadata.Field) bool {
			if f.IsPrivateScope() || f.IsPublic() {
				return false
			}
			if eventNames[f.Name] {
				return false
			}
			return !f.IsCompilerGenerated()
		},
		current: func(f *metadata.Field) uint32 {
			return uint32(f.Attributes.Access())
		},
		public: func(*metadata.Field) uint32 {
			return uint32(metadata.FieldPublic)
		},
		set: func(f *metadata.Field, value uint32) {
			f.Attributes = f.Attributes&^metadata.FieldAccessMask | metadata.FieldAttributes(value)
		},
		annotate: func(f *metadata.Field, attribute *metadata.CustomAttribute) {
			f.CustomAttributes = append(f.CustomAttributes, attribute)
		},
	}
}
