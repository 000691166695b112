package publicizer

// Severity tells downstream consumers how to treat usage of a deprecated member
type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Exception describes why usage of a publicized member is discouraged
type Exception struct {
	Reason   string
	Severity Severity
}

// ExceptionTable maps type identity to member simple name exceptions.
// Overloads share one entry.
type ExceptionTable map[TypeIdentity]map[string]Exception

// Lookup returns exception for a member of a type
func (t ExceptionTable) Lookup(typeIdentity TypeIdentity, memberName string) (Exception, bool) {
	members, ok := t[typeIdentity]
	if !ok {
		return Exception{}, false
	}
	exception, ok := members[memberName]
	return exception, ok
}

// Add registers an exception, replacing any previous one for the same member
func (t ExceptionTable) Add(typeIdentity TypeIdentity, memberName string, exception Exception) {
	members, ok := t[typeIdentity]
	if !ok {
		members = make(map[string]Exception)
		t[typeIdentity] = members
	}
	members[memberName] = exception
}

// Len returns number of member exceptions
func (t ExceptionTable) Len() int {
	count := 0
	for _, members := range t {
		count += len(members)
	}
	return count
}
