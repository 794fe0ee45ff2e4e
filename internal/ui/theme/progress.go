package theme

import "strings"

// ProgressBar renders done/total as a fixed-width bar.
func ProgressBar(done, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	filled = min(max(filled, 0), width)
	return ProgressFilled.Render(strings.Repeat("#", filled)) +
		ProgressEmpty.Render(strings.Repeat("-", width-filled))
}
