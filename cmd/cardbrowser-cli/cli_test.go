package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCatalog = `
criteria:
  - {slug: safety, label: Safety, category: Essentials}
  - {slug: cost, label: Cost, category: Essentials}
presets:
  - {name: safe, label: Safe, criteria: [safety]}
  - {name: shore, label: Shore, criteria: [safety, beaches]}
slides:
  - {id: a, name: Alpha, region: West, criteria: {Safety: 80, Cost: 60}}
  - {id: b, name: Bravo, region: South, criteria: {Safety: 90}}
  - {id: c, name: Charlie, region: West, criteria: {}}
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	catalog := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalog, []byte(testCatalog), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.json"), "--catalog", catalog}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRankOrdersByScore(t *testing.T) {
	out, err := runCLI(t, "rank", "--criteria", "safety")
	require.NoError(t, err)

	bravo := strings.Index(out, "Bravo")
	alpha := strings.Index(out, "Alpha")
	charlie := strings.Index(out, "Charlie")
	require.True(t, bravo >= 0 && bravo < alpha && alpha < charlie, out)
	require.Contains(t, out, "criteria: Safety")
	require.Contains(t, out, "90")
}

func TestRankWithTagAndLimit(t *testing.T) {
	out, err := runCLI(t, "rank", "--preset", "safe", "--region", "West", "-n", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Alpha")
	require.NotContains(t, out, "Bravo")
	require.NotContains(t, out, "Charlie")
}

func TestRankPresetDropsUnknownCriteria(t *testing.T) {
	out, err := runCLI(t, "rank", "--preset", "shore")
	require.NoError(t, err)
	require.Contains(t, out, "criteria: Safety")
	require.NotContains(t, out, "Beaches")
}

func TestRankTagFlag(t *testing.T) {
	out, err := runCLI(t, "rank", "--tag", "region=South")
	require.NoError(t, err)
	require.Contains(t, out, "region: South")
	require.Contains(t, out, "Bravo")
	require.NotContains(t, out, "Alpha")

	_, err = runCLI(t, "rank", "--tag", "planet=Mars")
	require.ErrorContains(t, err, "invalid --tag")

	_, err = runCLI(t, "rank", "--tag", "region")
	require.ErrorContains(t, err, "invalid --tag")

	_, err = runCLI(t, "rank", "--region", "West", "--tag", "region=South")
	require.ErrorContains(t, err, "conflicting region filters")
}

func TestRankNoMatch(t *testing.T) {
	out, err := runCLI(t, "rank", "--region", "Nowhere")
	require.NoError(t, err)
	require.Contains(t, out, "no cards match")
}

func TestRankUnknownPreset(t *testing.T) {
	_, err := runCLI(t, "rank", "--preset", "missing")
	require.ErrorContains(t, err, `unknown preset "missing"`)
}

func TestExportWritesReport(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "report.html")
	out, err := runCLI(t, "export", "--criteria", "safety", "-o", target, "--title", "Trips")
	require.NoError(t, err)
	require.Contains(t, out, "wrote 3 cards")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(data), "<title>Trips</title>")
	require.Contains(t, string(data), "Bravo")
}

func TestPresetsListsCatalog(t *testing.T) {
	out, err := runCLI(t, "presets")
	require.NoError(t, err)
	require.Contains(t, out, "safe")
	require.Contains(t, out, "Essentials")
	require.Contains(t, out, "safety, cost")
}
