package naming

import "strings"

// InBusNamespace reports whether name lies in namespace using the
// arg0namespace match rule: name equals namespace or continues it with '.'.
// "com.example" contains "com.example.Foo" but not "com.examplefoo".
// Unique names never belong to a well-known namespace.
func InBusNamespace(namespace, name string) bool {
	if namespace == "" || strings.HasPrefix(name, ":") != strings.HasPrefix(namespace, ":") {
		return false
	}
	if name == namespace {
		return true
	}
	return strings.HasPrefix(name, namespace) && name[len(namespace)] == '.'
}

// InPathNamespace reports whether path lies in namespace using the
// path_namespace match rule: path equals namespace or is below it.
// The root namespace "/" contains every path.
func InPathNamespace(namespace, path string) bool {
	if namespace == "" {
		return false
	}
	if namespace == "/" || path == namespace {
		return true
	}
	return strings.HasPrefix(path, namespace) && path[len(namespace)] == '/'
}
