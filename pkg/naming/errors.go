package naming

import (
	"errors"
	"fmt"
	"strconv"
)

// Reason identifies the rule a rejected name violated.
type Reason int

const (
	ReasonEmpty Reason = iota + 1
	ReasonUniquenessMismatch
	ReasonTooLong
	ReasonDoubleSeparator
	ReasonLeadingSeparator
	ReasonTrailingSeparator
	ReasonLeadingDigit
	ReasonInvalidCharacter
	ReasonMissingSeparator
	ReasonBadPathPrefix
	ReasonDoubleSlash
	ReasonTrailingSlash
)

var (
	ErrEmpty              = errors.New("must not be empty")
	ErrUniquenessMismatch = errors.New("uniqueness not allowed")
	ErrTooLong            = errors.New("too long")
	ErrDoubleSeparator    = errors.New("empty element")
	ErrLeadingSeparator   = errors.New("leading separator")
	ErrTrailingSeparator  = errors.New("trailing separator")
	ErrLeadingDigit       = errors.New("element starts with a digit")
	ErrInvalidCharacter   = errors.New("invalid character")
	ErrMissingSeparator   = errors.New("missing separator")
	ErrBadPathPrefix      = errors.New("does not start with '/'")
	ErrDoubleSlash        = errors.New("empty path element")
	ErrTrailingSlash      = errors.New("trailing slash")
)

var reasonInfo = map[Reason]struct {
	code     string
	sentinel error
}{
	ReasonEmpty:              {"empty", ErrEmpty},
	ReasonUniquenessMismatch: {"uniqueness-mismatch", ErrUniquenessMismatch},
	ReasonTooLong:            {"too-long", ErrTooLong},
	ReasonDoubleSeparator:    {"double-separator", ErrDoubleSeparator},
	ReasonLeadingSeparator:   {"leading-separator", ErrLeadingSeparator},
	ReasonTrailingSeparator:  {"trailing-separator", ErrTrailingSeparator},
	ReasonLeadingDigit:       {"leading-digit", ErrLeadingDigit},
	ReasonInvalidCharacter:   {"invalid-character", ErrInvalidCharacter},
	ReasonMissingSeparator:   {"missing-separator", ErrMissingSeparator},
	ReasonBadPathPrefix:      {"bad-path-prefix", ErrBadPathPrefix},
	ReasonDoubleSlash:        {"double-slash", ErrDoubleSlash},
	ReasonTrailingSlash:      {"trailing-slash", ErrTrailingSlash},
}

// String returns the stable kebab-case code used in CLI output and metric labels.
func (r Reason) String() string {
	if info, ok := reasonInfo[r]; ok {
		return info.code
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// MarshalText lets Reason appear as its code in JSON and YAML output.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ValidationError describes why a name was rejected.
// Char and Offset are only meaningful for reasons tied to a single byte;
// Offset is -1 otherwise.
type ValidationError struct {
	Kind   Kind
	Reason Reason
	Name   string
	Char   byte
	Offset int

	// unique records whether a bus name carried the ':' prefix, for messages.
	unique bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Name, e.Detail())
}

// Unwrap returns the sentinel error for the reason, so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	if info, ok := reasonInfo[e.Reason]; ok {
		return info.sentinel
	}
	return nil
}

// Detail is the error message without the "invalid <kind> <name>" prefix.
func (e *ValidationError) Detail() string {
	switch e.Reason {
	case ReasonEmpty:
		return "must not be empty"
	case ReasonUniquenessMismatch:
		if e.unique {
			return "unique names starting with ':' are not allowed here"
		}
		return "only unique names starting with ':' are allowed here"
	case ReasonTooLong:
		return fmt.Sprintf("too long (%d > %d bytes)", len(e.Name), MaxNameLength)
	case ReasonDoubleSeparator:
		return "must not contain '..'"
	case ReasonLeadingSeparator:
		if e.unique {
			return "must not start with ':.'"
		}
		return "must not start with '.'"
	case ReasonTrailingSeparator:
		return "must not end with '.'"
	case ReasonLeadingDigit:
		if e.Kind == KindMember {
			return "must not start with a digit"
		}
		if e.Kind == KindBus {
			return "a digit may not follow '.' except in a unique name starting with ':'"
		}
		return "a digit may not follow '.' or start the name"
	case ReasonInvalidCharacter:
		return fmt.Sprintf("contains invalid character %s at offset %d", strconv.Quote(string([]byte{e.Char})), e.Offset)
	case ReasonMissingSeparator:
		return "must contain '.'"
	case ReasonBadPathPrefix:
		return "does not start with '/'"
	case ReasonDoubleSlash:
		return "contains substring '//'"
	case ReasonTrailingSlash:
		return "ends with '/' and is not just '/'"
	default:
		return e.Reason.String()
	}
}

// AsValidationError extracts a *ValidationError from err, if there is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
