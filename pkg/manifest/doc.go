// Package manifest describes the naming surface of a D-Bus service (its bus
// name, object paths, interfaces, members and error names) and validates every
// name in it. Manifests are loaded from YAML or from D-Bus introspection XML.
package manifest
