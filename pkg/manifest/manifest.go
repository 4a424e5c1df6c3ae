package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "sigs.k8s.io/json"
	"sigs.k8s.io/yaml"
)

// Format records where a manifest came from.
type Format string

const (
	FormatYAML          Format = "yaml"
	FormatIntrospection Format = "introspection"
)

// Manifest is the naming surface of one D-Bus service.
type Manifest struct {
	// BusName is the well-known name the service owns. Introspection data does
	// not carry it, so it is optional for FormatIntrospection.
	BusName string `json:"busName,omitempty"`
	// Namespace, when set, must contain the bus name, every interface and every
	// error name (arg0namespace semantics).
	Namespace string `json:"namespace,omitempty"`
	// PathNamespace, when set, must contain every object path.
	PathNamespace string   `json:"pathNamespace,omitempty"`
	Objects       []Object `json:"objects,omitempty"`
	Errors        []string `json:"errors,omitempty"`

	Format Format `json:"-"`
	Source string `json:"-"`
}

// Object is one exported object path and the interfaces it implements.
type Object struct {
	Path       string      `json:"path"`
	Interfaces []Interface `json:"interfaces,omitempty"`
}

// Interface lists the members of one interface.
type Interface struct {
	Name       string   `json:"name"`
	Methods    []string `json:"methods,omitempty"`
	Signals    []string `json:"signals,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

// Load reads a manifest file. Files ending in .xml, or whose content starts
// with '<', are parsed as introspection data rooted at "/".
func Load(path string) (*Manifest, error) {
	return LoadWithRoot(path, "/")
}

// LoadWithRoot is Load with the object path an introspection document
// describes. It has no effect on YAML manifests.
func LoadWithRoot(path, root string) (*Manifest, error) {
	if path == "" {
		return nil, errors.New("manifest path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m *Manifest
	if isIntrospection(path, content) {
		m, err = ParseIntrospection(bytes.NewReader(content), root)
	} else {
		m, err = Parse(content)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Source = path
	return m, nil
}

// Parse decodes a YAML (or JSON) manifest. Keys match field names exactly;
// unknown, duplicate and differently cased keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	jsonData, err := yaml.YAMLToJSONStrict(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	var m Manifest
	strictErrs, err := kjson.UnmarshalStrict(jsonData, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(strictErrs) > 0 {
		return nil, fmt.Errorf("failed to parse manifest: %w", errors.Join(strictErrs...))
	}
	m.Format = FormatYAML
	return &m, nil
}

func isIntrospection(path string, content []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(content), []byte("<"))
}

// Names returns the number of names the manifest declares, for reporting.
func (m *Manifest) Names() int {
	n := len(m.Errors)
	if m.BusName != "" {
		n++
	}
	for _, obj := range m.Objects {
		n++
		for _, iface := range obj.Interfaces {
			n += 1 + len(iface.Methods) + len(iface.Signals) + len(iface.Properties)
		}
	}
	return n
}
