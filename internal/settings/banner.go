// internal/settings/banner.go
package settings

import "time"

// BannerHeight is the notification bar height in pixels when active.
const BannerHeight = 40

const (
	minMarquee = 15 * time.Second
	maxMarquee = 60 * time.Second
)

// MarqueeDuration computes how long one scroll pass of the notification
// banner should take: one character per 0.2s, stretched for mobile
// viewports and for long messages, clamped to [15s, 60s].
func MarqueeDuration(text string, mobile bool) time.Duration {
	base := time.Duration(len(text)) * 200 * time.Millisecond

	factor := 1.0
	if mobile {
		factor *= 1.5
	}
	if len(text) > 50 {
		factor *= 1.3
	}

	d := time.Duration(float64(base) * factor)
	if d < minMarquee {
		return minMarquee
	}
	if d > maxMarquee {
		return maxMarquee
	}
	return d
}
