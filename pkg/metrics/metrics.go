package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/dbusname/pkg/naming"
)

// Registry holds only dbusname collectors, so textfile exports carry no
// Go runtime or process metrics.
var Registry = prometheus.NewRegistry()

var (
	Validations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dbusname_validations_total",
		Help: "Total number of D-Bus name validations performed",
	}, []string{"kind", "result"})
	Rejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dbusname_rejections_total",
		Help: "Total number of rejected D-Bus names grouped by the violated rule",
	}, []string{"kind", "reason"})
	ManifestsLinted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dbusname_manifests_linted_total",
		Help: "Total number of service manifests linted",
	}, []string{"result"})
	ManifestErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dbusname_manifest_errors_total",
		Help: "Total number of field errors found in linted manifests",
	})
	LastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dbusname_last_run_timestamp_seconds",
		Help: "Unix time of the last dbusname run that wrote metrics",
	})
)

func init() {
	Registry.MustRegister(Validations)
	Registry.MustRegister(Rejections)
	Registry.MustRegister(ManifestsLinted)
	Registry.MustRegister(ManifestErrors)
	Registry.MustRegister(LastRunTimestamp)
}

// ObserveValidation records the outcome of one validation.
func ObserveValidation(kind naming.Kind, err error) {
	if err == nil {
		Validations.WithLabelValues(kind.Short(), "valid").Inc()
		return
	}
	Validations.WithLabelValues(kind.Short(), "invalid").Inc()
	if verr, ok := naming.AsValidationError(err); ok {
		Rejections.WithLabelValues(kind.Short(), verr.Reason.String()).Inc()
	}
}

// ObserveManifest records one linted manifest with the number of field errors
// it produced. A manifest that failed to load is recorded with loadErr.
func ObserveManifest(fieldErrors int, loadErr error) {
	switch {
	case loadErr != nil:
		ManifestsLinted.WithLabelValues("error").Inc()
	case fieldErrors > 0:
		ManifestsLinted.WithLabelValues("invalid").Inc()
		ManifestErrors.Add(float64(fieldErrors))
	default:
		ManifestsLinted.WithLabelValues("valid").Inc()
	}
}

// WriteTextfile writes the registry in the Prometheus text format for the
// node exporter textfile collector. The write is atomic.
func WriteTextfile(path string) error {
	if path == "" {
		return errors.New("metrics textfile path is required")
	}
	LastRunTimestamp.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
