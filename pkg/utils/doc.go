// Package utils provides shared helpers for the dbusname CLI: logger setup
// and glob matching of D-Bus names.
package utils
