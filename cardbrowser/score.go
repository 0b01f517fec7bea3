package cardbrowser

import (
	"maps"
	"math"
	"slices"
	"strconv"
)

// NoScoreText is displayed in place of a score when a slide is unscored.
const NoScoreText = "-"

// ScoreValue is a displayed match score; OK is false when the slide is unscored.
type ScoreValue struct {
	Value int
	OK    bool
}

// Text renders the score for the score box.
func (s ScoreValue) Text() string {
	return ScoreText(s.Value, s.OK)
}

// ScoreText renders a score or the placeholder for "no score".
func ScoreText(score int, ok bool) string {
	if !ok {
		return NoScoreText
	}
	return strconv.Itoa(score)
}

// Score computes the mean weight of the active keys present in the payload.
// Keys that are absent or hold a non-numeric value are skipped. The mean is
// rounded half away from zero, so {A:1, B:2} scores 2. A mean that does not
// fit in an int leaves the slide unscored.
func Score(payload Payload, active KeySet) (int, bool) {
	if payload == nil || len(active) == 0 {
		return 0, false
	}
	var mean float64
	count := 0
	// Sorted so the running mean is identical across calls.
	for _, key := range slices.Sorted(maps.Keys(active)) {
		v, ok := payload[string(key)]
		if !ok {
			continue
		}
		n, ok := numericWeight(v)
		if !ok {
			continue
		}
		count++
		mean += n/float64(count) - mean/float64(count)
	}
	if count == 0 {
		return 0, false
	}
	r := math.Round(mean)
	if math.IsNaN(r) || r < math.MinInt || r >= -math.MinInt {
		return 0, false
	}
	return int(r), true
}

func numericWeight(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
