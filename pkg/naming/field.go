package naming

import (
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// FieldError converts a validation failure into a field.Error for the given
// path so that D-Bus names embedded in larger documents report like any other
// invalid field. Errors that are not *ValidationError become internal errors.
func FieldError(path *field.Path, err error) *field.Error {
	if err == nil {
		return nil
	}
	verr, ok := AsValidationError(err)
	if !ok {
		return field.InternalError(path, err)
	}
	if verr.Reason == ReasonEmpty {
		return field.Required(path, verr.Detail())
	}
	if verr.Reason == ReasonTooLong {
		return field.TooLong(path, verr.Name, MaxNameLength)
	}
	return field.Invalid(path, verr.Name, verr.Kind.String()+" "+verr.Detail())
}

// ValidateField runs the grammar for kind and returns any failure as a
// single-element ErrorList.
func ValidateField(path *field.Path, kind Kind, value string) field.ErrorList {
	if err := Validate(kind, value); err != nil {
		return field.ErrorList{FieldError(path, err)}
	}
	return nil
}
