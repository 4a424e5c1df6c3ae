// Package naming validates the names defined by the D-Bus wire protocol: bus
// names (unique and well-known), member names, interface and error names, and
// object paths. Validation is byte-wise over ASCII character classes and
// reports the first violated rule as a *ValidationError.
package naming
