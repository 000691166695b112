package metadata

import (
	"strconv"
)

// Element types used by custom attribute arguments
const (
	ElementBoolean = "System.Boolean"
	ElementInt32   = "System.Int32"
	ElementString  = "System.String"
	ElementVoid    = "System.Void"
)

// MemberRef represents a reference to a method, typically an attribute constructor
type MemberRef struct {
	DeclaringType string // Full name of the declaring type
	Name          string
	Signature     *MethodSignature
}

// FullName returns member reference identity
func (r *MemberRef) FullName() string {
	return r.Signature.Format(r.DeclaringType + "::" + r.Name)
}

// Argument represents a fixed custom attribute argument
type Argument struct {
	Type  string // Argument type full name
	Value string // Canonical textual value
}

// Int32Value returns argument value as int32
func (a *Argument) Int32Value() (int32, error) {
	v, err := strconv.ParseInt(a.Value, 10, 32)
	return int32(v), err
}

// BoolValue returns argument value as bool
func (a *Argument) BoolValue() (bool, error) {
	return strconv.ParseBool(a.Value)
}

// IntArgument creates an integral argument of the given enum or primitive type
func IntArgument(typeName string, value int64) *Argument {
	return &Argument{Type: typeName, Value: strconv.FormatInt(value, 10)}
}

// StringArgument creates a string argument
func StringArgument(value string) *Argument {
	return &Argument{Type: ElementString, Value: value}
}

// BoolArgument creates a boolean argument
func BoolArgument(value bool) *Argument {
	return &Argument{Type: ElementBoolean, Value: strconv.FormatBool(value)}
}

// CustomAttribute represents an annotation instance attached to a declaration
type CustomAttribute struct {
	Constructor *MemberRef
	Arguments   []*Argument
}

// AttributeType returns the full name of the attribute type
func (a *CustomAttribute) AttributeType() string {
	if a.Constructor == nil {
		return ""
	}
	return a.Constructor.DeclaringType
}

// HasCustomAttribute returns true if any attribute is of the given type
func HasCustomAttribute(attributes []*CustomAttribute, typeName string) bool {
	return FindCustomAttribute(attributes, typeName) != nil
}

// FindCustomAttribute returns the first attribute of the given type
func FindCustomAttribute(attributes []*CustomAttribute, typeName string) *CustomAttribute {
	for _, attribute := range attributes {
		if attribute.AttributeType() == typeName {
			return attribute
		}
	}
	return nil
}
