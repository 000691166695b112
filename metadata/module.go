package metadata

import (
	"github.com/google/uuid"
)

// CoreLibrary is the default scope used for core type references
const CoreLibrary = "System.Runtime"

// Module represents a loaded binary module with its declarations
type Module struct {
	Name       string    // Module file name
	Assembly   string    // Owning assembly name
	Version    string    // Assembly version
	Mvid       uuid.UUID // Module version id
	CorLib     string    // Scope of core library references
	References []*TypeRef
	Types      []*Type // Top-level types

	typeMap map[string]int // Map of top-level types for quick lookup
	refMap  map[string]int // Map of references for quick lookup
}

// NewModule creates an empty module
func NewModule(name string) *Module {
	return &Module{
		Name:    name,
		CorLib:  CoreLibrary,
		typeMap: make(map[string]int),
		refMap:  make(map[string]int),
	}
}

// AddType adds a top-level type to the module
func (m *Module) AddType(t *Type) {
	if m.typeMap == nil {
		m.typeMap = make(map[string]int)
	}
	t.DeclaringType = nil
	m.Types = append(m.Types, t)
	m.typeMap[t.FullName()] = len(m.Types) - 1
}

// GetType retrieves a top-level type by full name
func (m *Module) GetType(fullName string) *Type {
	if idx, ok := m.typeMap[fullName]; ok && idx < len(m.Types) {
		return m.Types[idx]
	}
	return nil
}

// FindType retrieves any type, including nested ones, by full name
func (m *Module) FindType(fullName string) *Type {
	if t := m.GetType(fullName); t != nil {
		return t
	}
	for _, t := range m.AllTypes() {
		if t.FullName() == fullName {
			return t
		}
	}
	return nil
}

// AllTypes returns all types, with nested types following their declaring type
func (m *Module) AllTypes() []*Type {
	var result []*Type
	var visit func(types []*Type)
	visit = func(types []*Type) {
		for _, t := range types {
			result = append(result, t)
			visit(t.NestedTypes)
		}
	}
	visit(m.Types)
	return result
}

// ImportType returns a reference to an external type, adding it once per module
func (m *Module) ImportType(scope, namespace, name string) *TypeRef {
	if m.refMap == nil {
		m.refMap = make(map[string]int)
		for i, ref := range m.References {
			m.refMap[ref.key()] = i
		}
	}
	ref := &TypeRef{Scope: scope, Namespace: namespace, Name: name}
	if idx, ok := m.refMap[ref.key()]; ok {
		return m.References[idx]
	}
	m.References = append(m.References, ref)
	m.refMap[ref.key()] = len(m.References) - 1
	return ref
}

// ImportCoreType returns a reference to a core library type
func (m *Module) ImportCoreType(namespace, name string) *TypeRef {
	scope := m.CorLib
	if scope == "" {
		scope = CoreLibrary
	}
	return m.ImportType(scope, namespace, name)
}

// TypeRef represents a reference to a type declared in another scope
type TypeRef struct {
	Scope     string // Resolution scope, i.e. assembly name
	Namespace string
	Name      string
}

// FullName returns namespace qualified name
func (r *TypeRef) FullName() string {
	return qualify(r.Namespace, r.Name)
}

func (r *TypeRef) key() string {
	return "[" + r.Scope + "]" + r.FullName()
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
