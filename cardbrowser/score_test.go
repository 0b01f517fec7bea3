package cardbrowser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreUnscored(t *testing.T) {
	t.Parallel()

	payload := Payload{"Safety": 80.0}
	_, ok := Score(payload, NewKeySet())
	require.False(t, ok, "no active keys")

	_, ok = Score(nil, NewKeySet("Safety"))
	require.False(t, ok, "absent payload")

	_, ok = Score(payload, NewKeySet("Cost"))
	require.False(t, ok, "no contributing key")

	_, ok = Score(Payload{"Safety": "high", "Cost": nil, "Fun": true}, NewKeySet("Safety", "Cost", "Fun"))
	require.False(t, ok, "non-numeric values do not count")
}

func TestScoreMeanOfContributingKeys(t *testing.T) {
	t.Parallel()

	payload := Payload{"Safety": 80.0, "Cost": 60.0, "Beaches": "n/a"}
	got, ok := Score(payload, NewKeySet("Safety", "Cost", "Beaches", "Hiking"))
	require.True(t, ok)
	require.Equal(t, 70, got)

	got, ok = Score(Payload{"Safety": 80, "Cost": int64(61)}, NewKeySet("Safety", "Cost"))
	require.True(t, ok)
	require.Equal(t, 71, got, "integer weights from YAML count as numbers")
}

func TestScoreRoundsHalfAwayFromZero(t *testing.T) {
	t.Parallel()

	got, ok := Score(Payload{"A": 1.0, "B": 2.0}, NewKeySet("A", "B"))
	require.True(t, ok)
	require.Equal(t, 2, got)

	got, _ = Score(Payload{"A": 2.0, "B": 3.0}, NewKeySet("A", "B"))
	require.Equal(t, 3, got, "2.5 rounds up, not to even")

	got, _ = Score(Payload{"A": 1.0, "B": 1.0, "C": 2.0}, NewKeySet("A", "B", "C"))
	require.Equal(t, 1, got, "1.33 rounds down")

	got, _ = Score(Payload{"A": -1.0, "B": -2.0}, NewKeySet("A", "B"))
	require.Equal(t, -2, got)
}

func TestScoreOutOfRangeMeanIsUnscored(t *testing.T) {
	t.Parallel()

	_, ok := Score(Payload{"A": 1e19}, NewKeySet("A"))
	require.False(t, ok, "mean above the int range")

	_, ok = Score(Payload{"A": -1e19}, NewKeySet("A"))
	require.False(t, ok, "mean below the int range")

	_, ok = Score(Payload{"A": 1e308, "B": 1e308}, NewKeySet("A", "B"))
	require.False(t, ok, "finite weights whose sum overflows")

	got, ok := Score(Payload{"A": 1e308, "B": -1e308}, NewKeySet("A", "B"))
	require.True(t, ok)
	require.Equal(t, 0, got, "opposite extremes average without overflowing")

	_, ok = Score(Payload{"A": float32(math.Inf(1))}, NewKeySet("A"))
	require.False(t, ok, "infinite float32")

	got, ok = Score(ParseCriteriaPayload(`{"A": 1e19}`), NewKeySet("A"))
	require.False(t, ok)
	require.Equal(t, NoScoreText, ScoreText(got, ok))
}

func TestScoreIsIdempotent(t *testing.T) {
	t.Parallel()

	payload := Payload{"A": 0.1, "B": 0.2, "C": 0.7, "D": 99.5}
	active := NewKeySet("A", "B", "C", "D")
	first, _ := Score(payload, active)
	for i := 0; i < 50; i++ {
		got, ok := Score(payload, active)
		require.True(t, ok)
		require.Equal(t, first, got)
	}
}

func TestScoreText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "-", ScoreText(0, false))
	require.Equal(t, "0", ScoreText(0, true))
	require.Equal(t, "85", ScoreValue{Value: 85, OK: true}.Text())
}
