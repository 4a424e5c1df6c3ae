// Package metrics defines Prometheus metrics for dbusname runs, covering
// name validations, rejection reasons and manifest linting, and exports them
// as a node exporter textfile.
package metrics
