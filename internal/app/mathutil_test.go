package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCenteredOffset(t *testing.T) {
	t.Parallel()

	require.Equal(t, float32(0), centeredOffset(100, 1000, 400), "cannot scroll before the start")
	require.Equal(t, float32(300), centeredOffset(500, 1000, 400))
	require.Equal(t, float32(600), centeredOffset(950, 1000, 400), "cannot scroll past the end")
	require.Equal(t, float32(0), centeredOffset(500, 300, 400), "content narrower than viewport")
}

func TestLerp(t *testing.T) {
	t.Parallel()

	require.Equal(t, float32(10), lerp(10, 20, 0))
	require.Equal(t, float32(15), lerp(10, 20, 0.5))
	require.Equal(t, float32(20), lerp(10, 20, 1))
}

func TestSnippetAndLabels(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Red rock desert", snippet("  Red   rock\ndesert ", 40))
	require.Equal(t, "Red…", snippet("Red rock desert", 4))
	require.Equal(t, "Essentials", categoryTitle("Essentials", 0))
	require.Equal(t, "Essentials (2)", categoryTitle("Essentials", 2))
	require.Equal(t, "List view", viewToggleLabel(false))
	require.Equal(t, "Map view", viewToggleLabel(true))
}
