package manifest

import (
	"fmt"

	"github.com/telekom/dbusname/pkg/naming"
	"github.com/telekom/dbusname/pkg/utils"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// DefaultSkipInterfaces are the standard interfaces every introspected object
// reports; they live outside any service namespace.
var DefaultSkipInterfaces = []string{"org.freedesktop.DBus.*"}

// ValidateOptions tunes manifest validation.
type ValidateOptions struct {
	// SkipInterfaces holds glob patterns of interface names to ignore,
	// together with their members.
	SkipInterfaces []string
}

// Validate checks every name in the manifest and returns all failures.
func (m *Manifest) Validate(opts ValidateOptions) field.ErrorList {
	var allErrs field.ErrorList

	namespace, nsErrs := m.validateNamespace()
	allErrs = append(allErrs, nsErrs...)
	pathNamespace, pathNsErrs := m.validatePathNamespace()
	allErrs = append(allErrs, pathNsErrs...)

	busNamePath := field.NewPath("busName")
	switch {
	case m.BusName == "" && m.Format == FormatIntrospection:
	case m.BusName == "":
		allErrs = append(allErrs, field.Required(busNamePath, "a well-known bus name is required"))
	default:
		if err := naming.ValidateBusName(m.BusName, naming.WithoutUnique()); err != nil {
			allErrs = append(allErrs, naming.FieldError(busNamePath, err))
		} else {
			allErrs = append(allErrs, checkBusNamespace(busNamePath, namespace, m.BusName)...)
		}
	}

	objectsPath := field.NewPath("objects")
	seenPaths := make(map[string]bool, len(m.Objects))
	for i, obj := range m.Objects {
		objPath := objectsPath.Index(i)
		allErrs = append(allErrs, validateObject(objPath, obj, namespace, pathNamespace, opts)...)
		if seenPaths[obj.Path] {
			allErrs = append(allErrs, field.Duplicate(objPath.Child("path"), obj.Path))
		}
		seenPaths[obj.Path] = true
	}

	errorsPath := field.NewPath("errors")
	seenErrors := make(map[string]bool, len(m.Errors))
	for i, name := range m.Errors {
		p := errorsPath.Index(i)
		if err := naming.ValidateErrorName(name); err != nil {
			allErrs = append(allErrs, naming.FieldError(p, err))
		} else {
			allErrs = append(allErrs, checkBusNamespace(p, namespace, name)...)
		}
		if seenErrors[name] {
			allErrs = append(allErrs, field.Duplicate(p, name))
		}
		seenErrors[name] = true
	}

	return allErrs
}

// validateNamespace returns the namespace to enforce, or "" when it is unset
// or itself invalid. A namespace may be a single element such as "org".
func (m *Manifest) validateNamespace() (string, field.ErrorList) {
	if m.Namespace == "" {
		return "", nil
	}
	err := naming.ValidateBusName(m.Namespace, naming.WithoutUnique())
	if verr, ok := naming.AsValidationError(err); ok && verr.Reason != naming.ReasonMissingSeparator {
		return "", field.ErrorList{naming.FieldError(field.NewPath("namespace"), err)}
	}
	return m.Namespace, nil
}

func (m *Manifest) validatePathNamespace() (string, field.ErrorList) {
	if m.PathNamespace == "" {
		return "", nil
	}
	if err := naming.ValidateObjectPath(m.PathNamespace); err != nil {
		return "", field.ErrorList{naming.FieldError(field.NewPath("pathNamespace"), err)}
	}
	return m.PathNamespace, nil
}

func validateObject(p *field.Path, obj Object, namespace, pathNamespace string, opts ValidateOptions) field.ErrorList {
	var allErrs field.ErrorList

	pathField := p.Child("path")
	if err := naming.ValidateObjectPath(obj.Path); err != nil {
		allErrs = append(allErrs, naming.FieldError(pathField, err))
	} else if pathNamespace != "" && !naming.InPathNamespace(pathNamespace, obj.Path) {
		allErrs = append(allErrs, field.Invalid(pathField, obj.Path, fmt.Sprintf("must be within path namespace %q", pathNamespace)))
	}

	ifacesPath := p.Child("interfaces")
	seen := make(map[string]bool, len(obj.Interfaces))
	for i, iface := range obj.Interfaces {
		if utils.GlobMatchAny(opts.SkipInterfaces, iface.Name) {
			continue
		}
		ifacePath := ifacesPath.Index(i)
		nameField := ifacePath.Child("name")
		if err := naming.ValidateInterfaceName(iface.Name); err != nil {
			allErrs = append(allErrs, naming.FieldError(nameField, err))
		} else {
			allErrs = append(allErrs, checkBusNamespace(nameField, namespace, iface.Name)...)
		}
		if seen[iface.Name] {
			allErrs = append(allErrs, field.Duplicate(nameField, iface.Name))
		}
		seen[iface.Name] = true

		allErrs = append(allErrs, validateMembers(ifacePath.Child("methods"), iface.Methods)...)
		allErrs = append(allErrs, validateMembers(ifacePath.Child("signals"), iface.Signals)...)
		allErrs = append(allErrs, validateMembers(ifacePath.Child("properties"), iface.Properties)...)
	}

	return allErrs
}

func validateMembers(p *field.Path, members []string) field.ErrorList {
	var allErrs field.ErrorList
	seen := make(map[string]bool, len(members))
	for i, name := range members {
		if err := naming.ValidateMemberName(name); err != nil {
			allErrs = append(allErrs, naming.FieldError(p.Index(i), err))
		}
		if seen[name] {
			allErrs = append(allErrs, field.Duplicate(p.Index(i), name))
		}
		seen[name] = true
	}
	return allErrs
}

func checkBusNamespace(p *field.Path, namespace, name string) field.ErrorList {
	if namespace == "" || naming.InBusNamespace(namespace, name) {
		return nil
	}
	return field.ErrorList{field.Invalid(p, name, fmt.Sprintf("must be within namespace %q", namespace))}
}
