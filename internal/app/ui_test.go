package app

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"yashubustudio/cardbrowser/cardbrowser"
)

func TestLogPanelKeepsRecentLines(t *testing.T) {
	t.Parallel()

	p := newLogPanel()
	defer p.stop()

	_, err := p.Write([]byte("first\nsecond\n"))
	require.NoError(t, err)
	require.Equal(t, "first\nsecond", p.text())

	for i := 0; i < maxLogLines+10; i++ {
		_, _ = fmt.Fprintf(p, "line %d\n", i)
	}
	lines := strings.Split(p.text(), "\n")
	require.Len(t, lines, maxLogLines)
	require.Equal(t, fmt.Sprintf("line %d", maxLogLines+9), lines[len(lines)-1])

	p.stop()
	p.stop()
}

func TestTagLine(t *testing.T) {
	t.Parallel()

	slide := cardbrowser.Slide{Region: "West", PopulationBand: "<100K"}
	require.Equal(t, "region: West  ·  population: <100K", tagLine(slide))
	require.Empty(t, tagLine(cardbrowser.Slide{}))
}
