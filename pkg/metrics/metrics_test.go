package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/telekom/dbusname/pkg/naming"
)

func TestObserveValidation(t *testing.T) {
	Validations.Reset()
	Rejections.Reset()
	defer Validations.Reset()
	defer Rejections.Reset()

	ObserveValidation(naming.KindBus, naming.ValidateBusName("org.example.App"))
	ObserveValidation(naming.KindBus, naming.ValidateBusName("org..example"))
	ObserveValidation(naming.KindPath, naming.ValidateObjectPath("/a//b"))

	if v := testutil.ToFloat64(Validations.WithLabelValues("bus", "valid")); v != 1 {
		t.Fatalf("expected 1 valid bus name, got %v", v)
	}
	if v := testutil.ToFloat64(Validations.WithLabelValues("bus", "invalid")); v != 1 {
		t.Fatalf("expected 1 invalid bus name, got %v", v)
	}
	if v := testutil.ToFloat64(Rejections.WithLabelValues("bus", "double-separator")); v != 1 {
		t.Fatalf("expected 1 double-separator rejection, got %v", v)
	}
	if v := testutil.ToFloat64(Rejections.WithLabelValues("path", "double-slash")); v != 1 {
		t.Fatalf("expected 1 double-slash rejection, got %v", v)
	}
}

func TestObserveManifest(t *testing.T) {
	ManifestsLinted.Reset()
	defer ManifestsLinted.Reset()
	before := testutil.ToFloat64(ManifestErrors)

	ObserveManifest(0, nil)
	ObserveManifest(3, nil)
	ObserveManifest(0, os.ErrNotExist)

	require.Equal(t, float64(1), testutil.ToFloat64(ManifestsLinted.WithLabelValues("valid")))
	require.Equal(t, float64(1), testutil.ToFloat64(ManifestsLinted.WithLabelValues("invalid")))
	require.Equal(t, float64(1), testutil.ToFloat64(ManifestsLinted.WithLabelValues("error")))
	require.Equal(t, before+3, testutil.ToFloat64(ManifestErrors))
}

func TestWriteTextfile(t *testing.T) {
	Validations.Reset()
	defer Validations.Reset()
	ObserveValidation(naming.KindMember, nil)

	path := filepath.Join(t.TempDir(), "dbusname.prom")
	require.NoError(t, WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), `dbusname_validations_total{kind="member",result="valid"} 1`)
	require.Contains(t, string(content), "dbusname_last_run_timestamp_seconds")
	require.NotContains(t, string(content), "go_goroutines")

	require.Error(t, WriteTextfile(""))
}

func TestRegistryGathers(t *testing.T) {
	Validations.Reset()
	defer Validations.Reset()
	ObserveValidation(naming.KindInterface, nil)

	count, err := testutil.GatherAndCount(Registry, "dbusname_validations_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
