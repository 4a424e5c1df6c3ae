package naming

import (
	"github.com/godbus/dbus/v5"
)

// ErrorInvalidArgs is the standard D-Bus error name for bad method arguments.
const ErrorInvalidArgs = "org.freedesktop.DBus.Error.InvalidArgs"

// DBusError wraps a validation failure in a *dbus.Error that a godbus
// exported method can return to its caller. It returns nil for a nil error.
func DBusError(err error) *dbus.Error {
	if err == nil {
		return nil
	}
	return dbus.NewError(ErrorInvalidArgs, []interface{}{err.Error()})
}

// DBus converts the path to the godbus type.
func (p ObjectPath) DBus() dbus.ObjectPath {
	return dbus.ObjectPath(p)
}

// FromDBusPath validates a godbus object path and converts it.
func FromDBusPath(p dbus.ObjectPath) (ObjectPath, error) {
	if err := ValidateObjectPath(string(p)); err != nil {
		return "", err
	}
	return ObjectPath(p), nil
}
