package image

// Format identifies the image document
const Format = "publicizer/image"

// FormatVersion is the current image document version
const FormatVersion = 1

type document struct {
	Format     string      `yaml:"format"`
	Version    int         `yaml:"version"`
	Module     moduleNode  `yaml:"module"`
	References []*refNode  `yaml:"references,omitempty"`
	Types      []*typeNode `yaml:"types,omitempty"`
}

type moduleNode struct {
	Name     string `yaml:"name"`
	Assembly string `yaml:"assembly,omitempty"`
	Version  string `yaml:"version,omitempty"`
	Mvid     string `yaml:"mvid"`
	CorLib   string `yaml:"corlib,omitempty"`
}

type refNode struct {
	Scope     string `yaml:"scope"`
	Namespace string `yaml:"namespace,omitempty"`
	Name      string `yaml:"name"`
}

// typeNode member lists are pointers so that an omitted list can be told apart from an empty one
type typeNode struct {
	Namespace        string           `yaml:"namespace,omitempty"`
	Name             string           `yaml:"name"`
	Attributes       uint32           `yaml:"attributes"`
	BaseType         string           `yaml:"baseType,omitempty"`
	CustomAttributes []*attributeNode `yaml:"customAttributes,omitempty"`
	Fields           *[]*fieldNode    `yaml:"fields,omitempty"`
	Methods          *[]*methodNode   `yaml:"methods,omitempty"`
	Properties       []*propertyNode  `yaml:"properties,omitempty"`
	Events           []*eventNode     `yaml:"events,omitempty"`
	NestedTypes      []*typeNode      `yaml:"nestedTypes,omitempty"`
}

type fieldNode struct {
	Name             string           `yaml:"name"`
	Attributes       uint16           `yaml:"attributes"`
	Signature        string           `yaml:"signature"`
	CustomAttributes []*attributeNode `yaml:"customAttributes,omitempty"`
}

type methodNode struct {
	Name             string             `yaml:"name"`
	Attributes       uint16             `yaml:"attributes"`
	Signature        *signatureNode     `yaml:"signature"`
	Body             []*instructionNode `yaml:"body,omitempty"`
	CustomAttributes []*attributeNode   `yaml:"customAttributes,omitempty"`
}

type signatureNode struct {
	HasThis    bool     `yaml:"hasThis,omitempty"`
	ReturnType string   `yaml:"returnType"`
	Parameters []string `yaml:"parameters,omitempty"`
}

type instructionNode struct {
	OpCode  string `yaml:"op"`
	Operand string `yaml:"operand,omitempty"`
}

type propertyNode struct {
	Name      string `yaml:"name"`
	Signature string `yaml:"signature"`
	Get       string `yaml:"get,omitempty"` // Accessor identity within declaring type
	Set       string `yaml:"set,omitempty"`
}

type eventNode struct {
	Name      string `yaml:"name"`
	EventType string `yaml:"eventType"`
}

type attributeNode struct {
	Constructor *memberRefNode  `yaml:"constructor"`
	Arguments   []*argumentNode `yaml:"arguments,omitempty"`
}

type memberRefNode struct {
	DeclaringType string         `yaml:"declaringType"`
	Name          string         `yaml:"name"`
	Signature     *signatureNode `yaml:"signature,omitempty"`
}

type argumentNode struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}
