// Package cmd implements the cobra command tree for the dbusname CLI:
// name validation, manifest linting, configuration, version and shell
// completion.
package cmd
