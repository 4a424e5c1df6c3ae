package naming

import (
	"fmt"
	"strings"
)

// MaxNameLength is the maximum length in bytes of bus, interface, error and
// member names. Object paths are unbounded.
const MaxNameLength = 255

// Kind identifies which D-Bus name grammar a string is checked against.
type Kind int

const (
	KindBus Kind = iota + 1
	KindMember
	KindInterface
	KindError
	KindPath
)

var kindLabels = map[Kind]string{
	KindBus:       "bus name",
	KindMember:    "member name",
	KindInterface: "interface name",
	KindError:     "error name",
	KindPath:      "object path",
}

func (k Kind) String() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Short returns the single-word form used on the command line and in metric labels.
func (k Kind) Short() string {
	switch k {
	case KindBus:
		return "bus"
	case KindMember:
		return "member"
	case KindInterface:
		return "interface"
	case KindError:
		return "error"
	case KindPath:
		return "path"
	default:
		return k.String()
	}
}

// MarshalText encodes the kind by its short form.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Short()), nil
}

// ParseKind accepts the short forms (bus, member, interface, error, path) as
// well as the long labels ("bus name", "object path", ...), case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bus", "bus name", "busname", "bus-name":
		return KindBus, nil
	case "member", "member name", "membername", "member-name", "method", "signal", "property":
		return KindMember, nil
	case "interface", "interface name", "interfacename", "interface-name", "iface":
		return KindInterface, nil
	case "error", "error name", "errorname", "error-name":
		return KindError, nil
	case "path", "object path", "objectpath", "object-path":
		return KindPath, nil
	}
	return 0, fmt.Errorf("unknown name kind %q (want bus, member, interface, error or path)", s)
}

// Kinds lists every grammar in a stable order.
func Kinds() []Kind {
	return []Kind{KindBus, KindMember, KindInterface, KindError, KindPath}
}

type busNameOptions struct {
	allowUnique    bool
	allowWellKnown bool
}

// BusNameOption restricts which bus name forms ValidateBusName accepts.
type BusNameOption func(*busNameOptions)

// WithoutUnique rejects unique names (those starting with ':').
func WithoutUnique() BusNameOption {
	return func(o *busNameOptions) { o.allowUnique = false }
}

// WithoutWellKnown rejects well-known names.
func WithoutWellKnown() BusNameOption {
	return func(o *busNameOptions) { o.allowWellKnown = false }
}

// ValidateBusName checks a unique or well-known bus name. Both forms are
// accepted unless restricted with WithoutUnique or WithoutWellKnown.
func ValidateBusName(name string, opts ...BusNameOption) error {
	o := busNameOptions{allowUnique: true, allowWellKnown: true}
	for _, opt := range opts {
		opt(&o)
	}
	return ValidateBusNameFlags(name, o.allowUnique, o.allowWellKnown)
}

// ValidateBusNameFlags is ValidateBusName with the two restrictions as plain booleans.
func ValidateBusNameFlags(name string, allowUnique, allowWellKnown bool) error {
	if name == "" {
		return reject(KindBus, ReasonEmpty, name)
	}

	unique := name[0] == ':'
	if (unique && !allowUnique) || (!unique && !allowWellKnown) {
		err := reject(KindBus, ReasonUniquenessMismatch, name)
		err.unique = unique
		return err
	}

	if len(name) > MaxNameLength {
		return reject(KindBus, ReasonTooLong, name)
	}

	start := 0
	if unique {
		start = 1
	}
	if err := scanDotted(KindBus, name, start, unique, true); err != nil {
		err.unique = unique
		return err
	}
	return nil
}

// ValidateMemberName checks a method, signal or property name.
func ValidateMemberName(name string) error {
	if name == "" {
		return reject(KindMember, ReasonEmpty, name)
	}
	if len(name) > MaxNameLength {
		return reject(KindMember, ReasonTooLong, name)
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case isDigit(c):
			if i == 0 {
				return rejectAt(KindMember, ReasonLeadingDigit, name, i)
			}
		case isAlpha(c) || c == '_':
		default:
			return rejectAt(KindMember, ReasonInvalidCharacter, name, i)
		}
	}
	return nil
}

// ValidateInterfaceName checks an interface name.
func ValidateInterfaceName(name string) error {
	return validateDottedName(KindInterface, name)
}

// ValidateErrorName checks an error name. Error names share the interface
// name grammar; only the kind reported in the error differs.
func ValidateErrorName(name string) error {
	return validateDottedName(KindError, name)
}

func validateDottedName(kind Kind, name string) error {
	if name == "" {
		return reject(kind, ReasonEmpty, name)
	}
	if len(name) > MaxNameLength {
		return reject(kind, ReasonTooLong, name)
	}
	if err := scanDotted(kind, name, 0, false, false); err != nil {
		return err
	}
	return nil
}

// ValidateObjectPath checks an object path. "/" is the only path allowed to
// end with a slash.
func ValidateObjectPath(path string) error {
	if path == "" || path[0] != '/' {
		return reject(KindPath, ReasonBadPathPrefix, path)
	}
	if path == "/" {
		return nil
	}

	last := byte('/')
	for i := 1; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '/':
			if last == '/' {
				return rejectAt(KindPath, ReasonDoubleSlash, path, i)
			}
		case isAlpha(c) || isDigit(c) || c == '_':
		default:
			return rejectAt(KindPath, ReasonInvalidCharacter, path, i)
		}
		last = c
	}

	if last == '/' {
		return rejectAt(KindPath, ReasonTrailingSlash, path, len(path)-1)
	}
	return nil
}

// Validate checks s against the grammar for kind. Bus names accept both forms.
func Validate(kind Kind, s string) error {
	switch kind {
	case KindBus:
		return ValidateBusName(s)
	case KindMember:
		return ValidateMemberName(s)
	case KindInterface:
		return ValidateInterfaceName(s)
	case KindError:
		return ValidateErrorName(s)
	case KindPath:
		return ValidateObjectPath(s)
	}
	return fmt.Errorf("unknown name kind %d", int(kind))
}

// scanDotted walks name[start:] as '.'-separated elements. A zero last byte
// marks the start of the scanned region; a literal NUL never gets that far
// because it fails the character class first.
func scanDotted(kind Kind, name string, start int, digitsMayLead, allowHyphen bool) *ValidationError {
	var last byte
	sawDot := false

	for i := start; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '.':
			sawDot = true
			if last == '.' {
				return rejectAt(kind, ReasonDoubleSeparator, name, i)
			}
			if last == 0 {
				return rejectAt(kind, ReasonLeadingSeparator, name, i)
			}
		case isDigit(c):
			if !digitsMayLead && (last == '.' || last == 0) {
				return rejectAt(kind, ReasonLeadingDigit, name, i)
			}
		case isAlpha(c) || c == '_' || allowHyphen && c == '-':
		default:
			return rejectAt(kind, ReasonInvalidCharacter, name, i)
		}
		last = c
	}

	if last == '.' {
		return rejectAt(kind, ReasonTrailingSeparator, name, len(name)-1)
	}
	if !sawDot {
		return reject(kind, ReasonMissingSeparator, name)
	}
	return nil
}

func reject(kind Kind, reason Reason, name string) *ValidationError {
	return &ValidationError{Kind: kind, Reason: reason, Name: name, Offset: -1}
}

func rejectAt(kind Kind, reason Reason, name string, offset int) *ValidationError {
	return &ValidationError{Kind: kind, Reason: reason, Name: name, Char: name[offset], Offset: offset}
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
