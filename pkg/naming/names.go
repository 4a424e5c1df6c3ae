package naming

import "strings"

// BusName is a unique (":1.42") or well-known ("org.example.Service") bus name.
type BusName string

// Validate checks the name, accepting both unique and well-known forms.
func (n BusName) Validate(opts ...BusNameOption) error {
	return ValidateBusName(string(n), opts...)
}

// IsUnique reports whether the name is a bus-assigned unique name.
func (n BusName) IsUnique() bool {
	return strings.HasPrefix(string(n), ":")
}

// MemberName is a method, signal or property name.
type MemberName string

func (n MemberName) Validate() error {
	return ValidateMemberName(string(n))
}

// InterfaceName is a dotted interface name.
type InterfaceName string

func (n InterfaceName) Validate() error {
	return ValidateInterfaceName(string(n))
}

// ErrorName is a dotted error name, e.g. "org.freedesktop.DBus.Error.Failed".
type ErrorName string

func (n ErrorName) Validate() error {
	return ValidateErrorName(string(n))
}

// ObjectPath is a slash-separated object path.
type ObjectPath string

// RootPath is the root object path.
const RootPath ObjectPath = "/"

func (p ObjectPath) Validate() error {
	return ValidateObjectPath(string(p))
}

// Segments returns the path elements. The root path has none.
func (p ObjectPath) Segments() []string {
	trimmed := strings.Trim(string(p), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Parent returns the path with its last element removed. The parent of the
// root path is the root path.
func (p ObjectPath) Parent() ObjectPath {
	idx := strings.LastIndexByte(string(p), '/')
	if idx <= 0 {
		return RootPath
	}
	return p[:idx]
}

// Child appends a single element to the path and validates the result.
// An empty element is rejected as empty; a '/' inside the element is an
// invalid character at its offset in the joined path.
func (p ObjectPath) Child(segment string) (ObjectPath, error) {
	if segment == "" {
		return "", reject(KindPath, ReasonEmpty, segment)
	}
	var child ObjectPath
	if p == RootPath {
		child = ObjectPath("/" + segment)
	} else {
		child = ObjectPath(string(p) + "/" + segment)
	}
	if err := child.Validate(); err != nil {
		return "", err
	}
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		return "", rejectAt(KindPath, ReasonInvalidCharacter, string(child), len(child)-len(segment)+i)
	}
	return child, nil
}
