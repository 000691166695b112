package publicizer

// MemberKind identifies accessibility domain of a member
type MemberKind string

const (
	KindType   MemberKind = "TYPE"
	KindMethod MemberKind = "METHOD"
	KindField  MemberKind = "FIELD"
)

// enumNames maps member kind to the flags enum recorded by original visibility annotation
var enumNames = map[MemberKind]string{
	KindType:   "TypeAttributes",
	KindMethod: "MethodAttributes",
	KindField:  "FieldAttributes",
}

// kinds lists member kinds in carrier constructor order
var kinds = []MemberKind{KindType, KindMethod, KindField}
