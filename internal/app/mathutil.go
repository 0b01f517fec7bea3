package app

// clampOffset keeps a scroll offset inside the scrollable range.
func clampOffset(offset, content, viewport float32) float32 {
	limit := content - viewport
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > limit {
		return limit
	}
	return offset
}

// centeredOffset returns the offset that puts center in the middle of the viewport.
func centeredOffset(center, content, viewport float32) float32 {
	return clampOffset(center-viewport/2, content, viewport)
}

func lerp(from, to, t float32) float32 {
	return from + (to-from)*t
}
