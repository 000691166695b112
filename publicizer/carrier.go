package publicizer

import (
	"github.com/viant/publicizer/metadata"
)

const (
	// CarrierNamespace is the namespace of the injected original visibility attribute
	CarrierNamespace = "Publicizer"
	// CarrierName is the name of the injected original visibility attribute
	CarrierName = "OrigVisibilityAttribute"

	constructorName = ".ctor"
	reflectionNs    = "System.Reflection"
)

// CarrierFullName is the full name of the injected original visibility attribute
const CarrierFullName = CarrierNamespace + "." + CarrierName

// Carriers lazily declares the original visibility attribute in a module and builds its instances
type Carriers struct {
	module       *metadata.Module
	carrier      *metadata.Type
	constructors map[MemberKind]*metadata.Method
}

// NewCarriers creates carrier builder for the module; nothing is declared until first annotation
func NewCarriers(module *metadata.Module) *Carriers {
	return &Carriers{module: module, constructors: make(map[MemberKind]*metadata.Method)}
}

// Declared returns the carrier type, or nil when no annotation was built yet
func (c *Carriers) Declared() *metadata.Type {
	return c.carrier
}

// Annotation builds original visibility annotation recording value for member kind
func (c *Carriers) Annotation(kind MemberKind, value uint32) *metadata.CustomAttribute {
	constructor := c.ensure(kind)
	return &metadata.CustomAttribute{
		Constructor: &metadata.MemberRef{
			DeclaringType: CarrierFullName,
			Name:          constructorName,
			Signature:     constructor.Signature,
		},
		Arguments: []*metadata.Argument{
			metadata.IntArgument(enumFullName(kind), int64(value)),
		},
	}
}

func (c *Carriers) ensure(kind MemberKind) *metadata.Method {
	if constructor, ok := c.constructors[kind]; ok {
		return constructor
	}
	if c.carrier == nil {
		c.carrier = c.module.GetType(CarrierFullName)
		if c.carrier == nil {
			c.carrier = c.declare()
		}
		for _, k := range kinds {
			if constructor := findConstructor(c.carrier, k); constructor != nil {
				c.constructors[k] = constructor
				continue
			}
			c.constructors[k] = c.addConstructor(k)
		}
	}
	return c.constructors[kind]
}

func (c *Carriers) declare() *metadata.Type {
	base := c.module.ImportCoreType("System", "Attribute")
	carrier := &metadata.Type{
		Namespace:  CarrierNamespace,
		Name:       CarrierName,
		Attributes: metadata.TypeNotPublic | metadata.TypeSealed,
		BaseType:   base.FullName(),
		Methods:    []*metadata.Method{},
	}
	c.module.AddType(carrier)
	return carrier
}

func (c *Carriers) addConstructor(kind MemberKind) *metadata.Method {
	enum := c.module.ImportCoreType(reflectionNs, enumNames[kind])
	baseConstructor := &metadata.MemberRef{
		DeclaringType: c.carrier.BaseType,
		Name:          constructorName,
		Signature:     &metadata.MethodSignature{HasThis: true, ReturnType: metadata.ElementVoid},
	}
	constructor := &metadata.Method{
		Name: constructorName,
		Attributes: metadata.MethodHideBySig | metadata.MethodSpecialName |
			metadata.MethodRTSpecialName | metadata.MethodPublic,
		Signature: &metadata.MethodSignature{
			HasThis:    true,
			ReturnType: metadata.ElementVoid,
			Parameters: []string{enum.FullName()},
		},
		Body: &metadata.MethodBody{
			Instructions: []*metadata.Instruction{
				{OpCode: "ldarg.0"},
				{OpCode: "call", Operand: baseConstructor.FullName()},
				{OpCode: "ret"},
			},
		},
	}
	c.carrier.AddMethod(constructor)
	return constructor
}

func findConstructor(carrier *metadata.Type, kind MemberKind) *metadata.Method {
	for _, method := range carrier.FindMethods(constructorName) {
		if method.Signature == nil || len(method.Signature.Parameters) != 1 {
			continue
		}
		if method.Signature.Parameters[0] == enumFullName(kind) {
			return method
		}
	}
	return nil
}

func enumFullName(kind MemberKind) string {
	return reflectionNs + "." + enumNames[kind]
}

// obsoleteAnnotation builds deprecation annotation carrying reason and error flag
func obsoleteAnnotation(module *metadata.Module, exception Exception) *metadata.CustomAttribute {
	obsolete := module.ImportCoreType("System", "ObsoleteAttribute")
	return &metadata.CustomAttribute{
		Constructor: &metadata.MemberRef{
			DeclaringType: obsolete.FullName(),
			Name:          constructorName,
			Signature: &metadata.MethodSignature{
				HasThis:    true,
				ReturnType: metadata.ElementVoid,
				Parameters: []string{metadata.ElementString, metadata.ElementBoolean},
			},
		},
		Arguments: []*metadata.Argument{
			metadata.StringArgument(exception.Reason),
			metadata.BoolArgument(exception.Severity == SeverityError),
		},
	}
}
