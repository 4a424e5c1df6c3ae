package naming

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

func TestTypedNames(t *testing.T) {
	require.NoError(t, BusName("org.example.App").Validate())
	require.Error(t, BusName(":1.7").Validate(WithoutUnique()))
	assert.True(t, BusName(":1.7").IsUnique())
	assert.False(t, BusName("org.example.App").IsUnique())

	require.NoError(t, MemberName("Frobnicate").Validate())
	require.NoError(t, InterfaceName("org.example.App.Control").Validate())
	require.NoError(t, ErrorName("org.example.App.Error.Busy").Validate())

	verr, ok := AsValidationError(ErrorName("org.example..Busy").Validate())
	require.True(t, ok)
	assert.Equal(t, KindError, verr.Kind)
}

func TestObjectPathHelpers(t *testing.T) {
	tests := []struct {
		path     ObjectPath
		segments []string
		parent   ObjectPath
	}{
		{"/", nil, "/"},
		{"/org", []string{"org"}, "/"},
		{"/org/example/App", []string{"org", "example", "App"}, "/org/example"},
	}
	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			require.NoError(t, tt.path.Validate())
			assert.Equal(t, tt.segments, tt.path.Segments())
			assert.Equal(t, tt.parent, tt.path.Parent())
		})
	}

	child, err := RootPath.Child("org")
	require.NoError(t, err)
	assert.Equal(t, ObjectPath("/org"), child)

	child, err = child.Child("example")
	require.NoError(t, err)
	assert.Equal(t, ObjectPath("/org/example"), child)

	_, err = child.Child("")
	requireReason(t, err, ReasonEmpty)
	_, err = RootPath.Child("")
	requireReason(t, err, ReasonEmpty)

	_, err = ObjectPath("/org").Child("a/b")
	requireReason(t, err, ReasonInvalidCharacter)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "/org/a/b", verr.Name)
	assert.Equal(t, 6, verr.Offset)
	assert.Equal(t, byte('/'), verr.Char)

	_, err = RootPath.Child("a/b")
	requireReason(t, err, ReasonInvalidCharacter)
	_, err = child.Child("a//b")
	requireReason(t, err, ReasonDoubleSlash)
	_, err = child.Child("a/")
	requireReason(t, err, ReasonTrailingSlash)
	_, err = child.Child("not-valid")
	requireReason(t, err, ReasonInvalidCharacter)
}

func TestInBusNamespace(t *testing.T) {
	tests := []struct {
		namespace string
		name      string
		want      bool
	}{
		{"com.example", "com.example", true},
		{"com.example", "com.example.Foo", true},
		{"com.example", "com.example.Foo.Bar", true},
		{"com.example", "com.examplefoo", false},
		{"com.example", "com", false},
		{"com.example", "org.example", false},
		{"com.example", ":1.2", false},
		{":1", ":1.2", true},
		{"", "com.example", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InBusNamespace(tt.namespace, tt.name), "%q in %q", tt.name, tt.namespace)
	}
}

func TestInPathNamespace(t *testing.T) {
	tests := []struct {
		namespace string
		path      string
		want      bool
	}{
		{"/", "/", true},
		{"/", "/anything/below", true},
		{"/org/example", "/org/example", true},
		{"/org/example", "/org/example/App", true},
		{"/org/example", "/org/examples", false},
		{"/org/example", "/org", false},
		{"", "/org", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InPathNamespace(tt.namespace, tt.path), "%q in %q", tt.path, tt.namespace)
	}
}

func TestFieldError(t *testing.T) {
	path := field.NewPath("service", "busName")

	assert.Nil(t, FieldError(path, nil))

	ferr := FieldError(path, ValidateBusName("com..x"))
	require.NotNil(t, ferr)
	assert.Equal(t, field.ErrorTypeInvalid, ferr.Type)
	assert.Equal(t, "service.busName", ferr.Field)
	assert.Equal(t, "com..x", ferr.BadValue)
	assert.Contains(t, ferr.Detail, "must not contain '..'")

	ferr = FieldError(path, ValidateBusName(""))
	assert.Equal(t, field.ErrorTypeRequired, ferr.Type)

	ferr = FieldError(path, ValidateMemberName(string(make([]byte, 300))))
	assert.Equal(t, field.ErrorTypeTooLong, ferr.Type)

	ferr = FieldError(path, assert.AnError)
	assert.Equal(t, field.ErrorTypeInternal, ferr.Type)

	errs := ValidateField(field.NewPath("path"), KindPath, "/a//b")
	require.Len(t, errs, 1)
	assert.Contains(t, errs.ToAggregate().Error(), "contains substring '//'")
	assert.Empty(t, ValidateField(field.NewPath("path"), KindPath, "/a/b"))
}

func TestDBusError(t *testing.T) {
	assert.Nil(t, DBusError(nil))

	derr := DBusError(ValidateInterfaceName("org"))
	require.NotNil(t, derr)
	assert.Equal(t, ErrorInvalidArgs, derr.Name)
	require.Len(t, derr.Body, 1)
	assert.Equal(t, `invalid interface name "org": must contain '.'`, derr.Body[0])
	require.NoError(t, ValidateErrorName(derr.Name))
}

func TestObjectPathDBusConversion(t *testing.T) {
	p := ObjectPath("/org/example")
	assert.Equal(t, dbus.ObjectPath("/org/example"), p.DBus())
	assert.True(t, p.DBus().IsValid())

	got, err := FromDBusPath(dbus.ObjectPath("/org/example"))
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = FromDBusPath(dbus.ObjectPath("org"))
	requireReason(t, err, ReasonBadPathPrefix)
}
