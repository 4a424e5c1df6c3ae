package manifest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type introspectNode struct {
	XMLName    xml.Name              `xml:"node"`
	Name       string                `xml:"name,attr"`
	Interfaces []introspectInterface `xml:"interface"`
	Children   []introspectNode      `xml:"node"`
}

type introspectInterface struct {
	Name       string             `xml:"name,attr"`
	Methods    []introspectMember `xml:"method"`
	Signals    []introspectMember `xml:"signal"`
	Properties []introspectMember `xml:"property"`
}

type introspectMember struct {
	Name string `xml:"name,attr"`
}

// ParseIntrospection reads org.freedesktop.DBus.Introspectable XML. Relative
// node names are resolved against root (or against the root node's own name
// when that is absolute); every node becomes an Object, with or without
// interfaces, so that all paths are validated.
func ParseIntrospection(r io.Reader, root string) (*Manifest, error) {
	var node introspectNode
	if err := xml.NewDecoder(r).Decode(&node); err != nil {
		return nil, fmt.Errorf("failed to parse introspection data: %w", err)
	}

	base := root
	switch {
	case strings.HasPrefix(node.Name, "/"):
		base = node.Name
	case node.Name != "":
		base = joinPath(root, node.Name)
	}

	m := &Manifest{Format: FormatIntrospection}
	collectNode(m, node, base)
	return m, nil
}

func collectNode(m *Manifest, node introspectNode, path string) {
	obj := Object{Path: path}
	for _, iface := range node.Interfaces {
		obj.Interfaces = append(obj.Interfaces, Interface{
			Name:       iface.Name,
			Methods:    memberNames(iface.Methods),
			Signals:    memberNames(iface.Signals),
			Properties: memberNames(iface.Properties),
		})
	}
	m.Objects = append(m.Objects, obj)

	for _, child := range node.Children {
		childPath := child.Name
		if !strings.HasPrefix(childPath, "/") {
			childPath = joinPath(path, child.Name)
		}
		collectNode(m, child, childPath)
	}
}

func memberNames(members []introspectMember) []string {
	if len(members) == 0 {
		return nil
	}
	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.Name)
	}
	return names
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}
