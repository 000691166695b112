package publicizer

import (
	"github.com/viant/publicizer/metadata"
)

// TypeIdentity is a fully qualified type name, i.e. "Ns.Outer+Inner"
type TypeIdentity string

// MemberIdentity is a fully qualified member signature, i.e. "System.Void Ns.Type::Update(System.Single)"
type MemberIdentity string

// MemberSet is a set of member identities; a nil set is absent and allows everything
type MemberSet map[MemberIdentity]bool

// Allows returns true if identity passes the set
func (s MemberSet) Allows(identity MemberIdentity) bool {
	if s == nil {
		return true
	}
	return s[identity]
}

// Pair represents target and mask types sharing identity
type Pair struct {
	Identity TypeIdentity
	Target   *metadata.Type
	Mask     *metadata.Type
	Methods  MemberSet // Mask method identities, nil when mask does not constrain methods
	Fields   MemberSet // Mask field identities, nil when mask does not constrain fields
}

// Mapping holds matched types in target declaration order
type Mapping struct {
	Pairs []*Pair
	index map[TypeIdentity]int
}

// Get returns pair for identity
func (m *Mapping) Get(identity TypeIdentity) *Pair {
	if idx, ok := m.index[identity]; ok {
		return m.Pairs[idx]
	}
	return nil
}

// Len returns number of matched types
func (m *Mapping) Len() int {
	return len(m.Pairs)
}

// Match pairs target and mask types by full name; types present in one module only are left out
func Match(target, mask *metadata.Module) *Mapping {
	maskTypes := make(map[TypeIdentity]*metadata.Type)
	for _, t := range mask.AllTypes() {
		maskTypes[TypeIdentity(t.FullName())] = t
	}
	mapping := &Mapping{index: make(map[TypeIdentity]int)}
	for _, t := range target.AllTypes() {
		identity := TypeIdentity(t.FullName())
		maskType, ok := maskTypes[identity]
		if !ok {
			continue
		}
		if _, ok := mapping.index[identity]; ok {
			continue
		}
		mapping.Pairs = append(mapping.Pairs, &Pair{
			Identity: identity,
			Target:   t,
			Mask:     maskType,
			Methods:  methodSet(maskType),
			Fields:   fieldSet(maskType),
		})
		mapping.index[identity] = len(mapping.Pairs) - 1
	}
	return mapping
}

func methodSet(t *metadata.Type) MemberSet {
	if t.Methods == nil {
		return nil
	}
	result := make(MemberSet, len(t.Methods))
	for _, method := range t.Methods {
		result[MemberIdentity(method.FullName())] = true
	}
	return result
}

func fieldSet(t *metadata.Type) MemberSet {
	if t.Fields == nil {
		return nil
	}
	result := make(MemberSet, len(t.Fields))
	for _, field := range t.Fields {
		result[MemberIdentity(field.FullName())] = true
	}
	return result
}
