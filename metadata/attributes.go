package metadata

// TypeAttributes represents type definition flags
type TypeAttributes uint32

// Type visibility values, masked by TypeVisibilityMask
const (
	TypeNotPublic         TypeAttributes = 0x0
	TypePublic            TypeAttributes = 0x1
	TypeNestedPublic      TypeAttributes = 0x2
	TypeNestedPrivate     TypeAttributes = 0x3
	TypeNestedFamily      TypeAttributes = 0x4
	TypeNestedAssembly    TypeAttributes = 0x5
	TypeNestedFamANDAssem TypeAttributes = 0x6
	TypeNestedFamORAssem  TypeAttributes = 0x7
	TypeVisibilityMask    TypeAttributes = 0x7
	TypeAbstract          TypeAttributes = 0x80
	TypeSealed            TypeAttributes = 0x100
	TypeSpecialName       TypeAttributes = 0x400
	TypeBeforeFieldInit   TypeAttributes = 0x100000
	TypeRTSpecialName     TypeAttributes = 0x800
	TypeInterface         TypeAttributes = 0x20
	TypeSerializable      TypeAttributes = 0x2000
	TypeSequentialLayout  TypeAttributes = 0x8
	TypeExplicitLayout    TypeAttributes = 0x10
	TypeHasSecurity       TypeAttributes = 0x40000
	TypeImport            TypeAttributes = 0x1000
)

// Visibility returns the visibility bits
func (a TypeAttributes) Visibility() TypeAttributes {
	return a & TypeVisibilityMask
}

// MethodAttributes represents method definition flags
type MethodAttributes uint16

// Method access values, masked by MethodMemberAccessMask
const (
	MethodCompilerControlled MethodAttributes = 0x0
	MethodPrivate            MethodAttributes = 0x1
	MethodFamANDAssem        MethodAttributes = 0x2
	MethodAssembly           MethodAttributes = 0x3
	MethodFamily             MethodAttributes = 0x4
	MethodFamORAssem         MethodAttributes = 0x5
	MethodPublic             MethodAttributes = 0x6
	MethodMemberAccessMask   MethodAttributes = 0x7
	MethodStatic             MethodAttributes = 0x10
	MethodFinal              MethodAttributes = 0x20
	MethodVirtual            MethodAttributes = 0x40
	MethodHideBySig          MethodAttributes = 0x80
	MethodNewSlot            MethodAttributes = 0x100
	MethodAbstract           MethodAttributes = 0x400
	MethodSpecialName        MethodAttributes = 0x800
	MethodRTSpecialName      MethodAttributes = 0x1000
)

// Access returns the member access bits
func (a MethodAttributes) Access() MethodAttributes {
	return a & MethodMemberAccessMask
}

// FieldAttributes represents field definition flags
type FieldAttributes uint16

// Field access values, masked by FieldAccessMask
const (
	FieldPrivateScope  FieldAttributes = 0x0
	FieldPrivate       FieldAttributes = 0x1
	FieldFamANDAssem   FieldAttributes = 0x2
	FieldAssembly      FieldAttributes = 0x3
	FieldFamily        FieldAttributes = 0x4
	FieldFamORAssem    FieldAttributes = 0x5
	FieldPublic        FieldAttributes = 0x6
	FieldAccessMask    FieldAttributes = 0x7
	FieldStatic        FieldAttributes = 0x10
	FieldInitOnly      FieldAttributes = 0x20
	FieldLiteral       FieldAttributes = 0x40
	FieldNotSerialized FieldAttributes = 0x80
	FieldSpecialName   FieldAttributes = 0x200
	FieldRTSpecialName FieldAttributes = 0x400
)

// Access returns the field access bits
func (a FieldAttributes) Access() FieldAttributes {
	return a & FieldAccessMask
}
