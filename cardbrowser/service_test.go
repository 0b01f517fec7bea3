package cardbrowser

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewServiceCreatesDefaultCatalog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog", "destinations.yaml")
	svc, err := NewService(Config{CatalogPath: path}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer svc.Close()

	_, err = os.Stat(path)
	require.NoError(t, err)
	require.Len(t, svc.Catalog().Slides, len(DefaultCatalog().Slides))
	require.Len(t, svc.Catalog().Presets, len(DefaultPresets()))
}

func TestServiceReload(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "trips.csv", "name,criteria\nMoab,\"{\"\"Hiking\"\":97}\"\n")
	svc, err := NewService(Config{CatalogPath: path}, nil)
	require.NoError(t, err)
	require.Len(t, svc.Catalog().Slides, 1)
	require.Len(t, svc.Catalog().Criteria, len(DefaultCriteria()), "CSV catalogs use the built-in pills")

	require.NoError(t, os.WriteFile(path, []byte("name,criteria\nA,{}\nB,{}\n"), 0o644))
	cat, err := svc.Reload()
	require.NoError(t, err)
	require.Len(t, cat.Slides, 2)
	require.Len(t, svc.Catalog().Slides, 2)

	require.NoError(t, os.WriteFile(path, []byte("name\nA\n"), 0o644))
	_, err = svc.Reload()
	require.Error(t, err)
	require.Len(t, svc.Catalog().Slides, 2, "a failed reload keeps the previous catalog")
}

func TestServiceRejectsBrokenCatalog(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "trips.yaml", "slides: [")
	_, err := NewService(Config{CatalogPath: path}, nil)
	require.ErrorContains(t, err, "load catalog")
}

func TestUpdateConfigAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "c.yaml")
	svc, err := NewService(Config{CatalogPath: path}, nil)
	require.NoError(t, err)
	got := svc.UpdateConfig(Config{CatalogPath: path, CardWidth: -1})
	require.Equal(t, float32(280), got.CardWidth)
	require.Equal(t, got, svc.Config())
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "nonsense")
	logger.Debug("hidden")
	logger.Info("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
