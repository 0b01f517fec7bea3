package cardbrowser

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	require.True(t, cfg.WatchCatalog)
	require.Equal(t, defaultCatalogFile, cfg.CatalogPath)
	require.Equal(t, DefaultTimings(), cfg.Timings())
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	in := Config{CatalogPath: "trips.csv", SampleDebounceMs: 80, WatchCatalog: false, LogLevel: "debug"}
	require.NoError(t, SaveConfig(path, in))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "trips.csv", out.CatalogPath)
	require.False(t, out.WatchCatalog, "an explicit false survives the round trip")
	require.Equal(t, "debug", out.LogLevel)
	require.Equal(t, 80*time.Millisecond, out.Timings().Sample)
	require.Equal(t, 100*time.Millisecond, out.Timings().Arrows)
}

func TestLoadConfigWithoutWatchKeyEnablesWatching(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeFile(t, "config.json", `{"catalogPath":"x.yaml"}`))
	require.NoError(t, err)
	require.True(t, cfg.WatchCatalog)

	_, err = LoadConfig(writeFile(t, "bad.json", `{`))
	require.ErrorContains(t, err, "decode config")
}

func TestConfigCloneIsDeep(t *testing.T) {
	t.Parallel()

	cfg := Config{Columns: &ColumnCandidates{Name: []string{"title"}}}
	clone := cfg.Clone()
	clone.Columns.Name[0] = "changed"
	require.Equal(t, "title", cfg.Columns.Name[0])
}
