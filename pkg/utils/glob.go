package utils

import (
	"path"
	"strings"
)

// GlobMatch checks if a D-Bus name matches a glob pattern.
// Patterns use path.Match semantics; D-Bus names contain no '/', so "*"
// matches across '.' element boundaries:
//   - "*" matches any sequence of characters
//   - "?" matches any single character
//   - "[...]" matches character classes
//
// Patterns without wildcards are compared exactly. Invalid patterns return
// false and the syntax error.
//
// Examples:
//
//	GlobMatch("*", "org.example.App")                                 → true, nil
//	GlobMatch("org.freedesktop.DBus.*", "org.freedesktop.DBus.Peer") → true, nil
//	GlobMatch("org.example.App", "org.example.App")                  → true, nil
//	GlobMatch("[invalid", "org.example")                             → false, syntax error
func GlobMatch(pattern, value string) (bool, error) {
	if pattern == "*" {
		return true, nil
	}

	if strings.ContainsAny(pattern, "*?[") {
		matched, err := path.Match(pattern, value)
		if err != nil {
			return false, err
		}
		return matched, nil
	}

	return pattern == value, nil
}

// GlobMatchAny checks if any pattern in the list matches the value.
// Patterns that fail to parse are skipped.
func GlobMatchAny(patterns []string, value string) bool {
	for _, pattern := range patterns {
		if matched, _ := GlobMatch(pattern, value); matched {
			return true
		}
	}
	return false
}

// ValidatePatterns returns the first pattern that path.Match cannot parse.
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := GlobMatch(pattern, ""); err != nil {
			return err
		}
	}
	return nil
}
