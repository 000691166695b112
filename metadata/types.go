package metadata

import (
	"strings"
)

// CompilerGeneratedAttribute marks declarations emitted by a compiler
const CompilerGeneratedAttribute = "System.Runtime.CompilerServices.CompilerGeneratedAttribute"

// Type represents a type definition with its members
type Type struct {
	Namespace        string         // Namespace, empty for nested types
	Name             string         // Simple type name
	Attributes       TypeAttributes // Type flags
	BaseType         string         // Full name of the base type
	Fields           []*Field
	Methods          []*Method
	Properties       []*Property
	Events           []*Event
	NestedTypes      []*Type
	CustomAttributes []*CustomAttribute
	DeclaringType    *Type // Enclosing type for nested types

	fieldMap map[string]int // Map of fields for quick lookup
}

// FullName returns the namespace and enclosing type qualified name
func (t *Type) FullName() string {
	if t.DeclaringType != nil {
		return t.DeclaringType.FullName() + "+" + t.Name
	}
	return qualify(t.Namespace, t.Name)
}

// IsNested returns true if type is declared inside another type
func (t *Type) IsNested() bool {
	return t.DeclaringType != nil
}

// IsPublic returns true for top-level public type
func (t *Type) IsPublic() bool {
	return t.Attributes.Visibility() == TypePublic
}

// IsNestedPublic returns true for nested public type
func (t *Type) IsNestedPublic() bool {
	return t.Attributes.Visibility() == TypeNestedPublic
}

// IsCompilerGenerated returns true if type carries compiler generated marker
func (t *Type) IsCompilerGenerated() bool {
	return HasCustomAttribute(t.CustomAttributes, CompilerGeneratedAttribute)
}

// AddNestedType adds a nested type
func (t *Type) AddNestedType(nested *Type) {
	nested.DeclaringType = t
	nested.Namespace = ""
	t.NestedTypes = append(t.NestedTypes, nested)
}

// AddField adds a field to the type
func (t *Type) AddField(field *Field) {
	if t.fieldMap == nil {
		t.fieldMap = make(map[string]int)
	}
	field.DeclaringType = t
	t.Fields = append(t.Fields, field)
	t.fieldMap[field.Name] = len(t.Fields) - 1
}

// GetField retrieves a field by name
func (t *Type) GetField(name string) *Field {
	if idx, ok := t.fieldMap[name]; ok && idx < len(t.Fields) {
		return t.Fields[idx]
	}
	return nil
}

// AddMethod adds a method to the type
func (t *Type) AddMethod(method *Method) {
	method.DeclaringType = t
	t.Methods = append(t.Methods, method)
}

// GetMethod retrieves a method by its full name
func (t *Type) GetMethod(fullName string) *Method {
	for _, method := range t.Methods {
		if method.FullName() == fullName {
			return method
		}
	}
	return nil
}

// FindMethods retrieves all overloads with the given simple name
func (t *Type) FindMethods(name string) []*Method {
	var result []*Method
	for _, method := range t.Methods {
		if method.Name == name {
			result = append(result, method)
		}
	}
	return result
}

// AddProperty adds a property to the type
func (t *Type) AddProperty(property *Property) {
	t.Properties = append(t.Properties, property)
}

// AddEvent adds an event to the type
func (t *Type) AddEvent(event *Event) {
	t.Events = append(t.Events, event)
}

// Field represents a field definition
type Field struct {
	Name             string
	Attributes       FieldAttributes
	Signature        string // Full name of the field type
	CustomAttributes []*CustomAttribute
	DeclaringType    *Type
}

// FullName returns field identity, i.e. "System.Int32 Ns.Type::count"
func (f *Field) FullName() string {
	return f.Signature + " " + declaringName(f.DeclaringType) + "::" + f.Name
}

// IsPublic returns true if field is public
func (f *Field) IsPublic() bool {
	return f.Attributes.Access() == FieldPublic
}

// IsPrivateScope returns true if field is not referenceable at all
func (f *Field) IsPrivateScope() bool {
	return f.Attributes.Access() == FieldPrivateScope
}

// IsCompilerGenerated returns true if field carries compiler generated marker
func (f *Field) IsCompilerGenerated() bool {
	return HasCustomAttribute(f.CustomAttributes, CompilerGeneratedAttribute)
}

// Method represents a method definition
type Method struct {
	Name             string
	Attributes       MethodAttributes
	Signature        *MethodSignature
	Body             *MethodBody
	CustomAttributes []*CustomAttribute
	DeclaringType    *Type
}

// FullName returns method identity, i.e. "System.Void Ns.Type::Update(System.Single)"
func (m *Method) FullName() string {
	return m.Signature.Format(declaringName(m.DeclaringType) + "::" + m.Name)
}

// Identity returns method identity within its declaring type, i.e. "System.Void Update(System.Single)"
func (m *Method) Identity() string {
	return m.Signature.Format(m.Name)
}

// IsPublic returns true if method is public
func (m *Method) IsPublic() bool {
	return m.Attributes.Access() == MethodPublic
}

// IsCompilerControlled returns true if method can not be referenced by name
func (m *Method) IsCompilerControlled() bool {
	return m.Attributes.Access() == MethodCompilerControlled
}

// IsCompilerGenerated returns true if method carries compiler generated marker
func (m *Method) IsCompilerGenerated() bool {
	return HasCustomAttribute(m.CustomAttributes, CompilerGeneratedAttribute)
}

// MethodSignature represents method return and parameter types
type MethodSignature struct {
	HasThis    bool
	ReturnType string
	Parameters []string
}

// Format formats signature around qualified member name
func (s *MethodSignature) Format(name string) string {
	if s == nil {
		return "System.Void " + name + "()"
	}
	return s.ReturnType + " " + name + "(" + strings.Join(s.Parameters, ", ") + ")"
}

// MethodBody represents instruction stream
type MethodBody struct {
	Instructions []*Instruction
}

// Instruction represents single instruction with optional operand
type Instruction struct {
	OpCode  string
	Operand string
}

// Property represents a property with its accessors
type Property struct {
	Name      string
	Signature string // Full name of the property type
	GetMethod *Method
	SetMethod *Method
}

// Event represents an event declaration
type Event struct {
	Name      string
	EventType string
}

func declaringName(t *Type) string {
	if t == nil {
		return ""
	}
	return t.FullName()
}
