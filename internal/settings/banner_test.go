// internal/settings/banner_test.go
package settings

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarqueeDurationClampsShortText(t *testing.T) {
	assert.Equal(t, 15*time.Second, MarqueeDuration("hi", false))
	assert.Equal(t, 15*time.Second, MarqueeDuration("", false))
}

func TestMarqueeDurationClampsLongText(t *testing.T) {
	assert.Equal(t, 60*time.Second, MarqueeDuration(strings.Repeat("x", 500), false))
}

func TestMarqueeDurationScalesWithLength(t *testing.T) {
	// 100 chars: 100 * 0.2s * 1.3 long-text factor = 26s.
	assert.Equal(t, 26*time.Second, MarqueeDuration(strings.Repeat("x", 100), false))
}

func TestMarqueeDurationMobileFactor(t *testing.T) {
	// 100 chars on mobile: 20s * 1.5 * 1.3 = 39s.
	assert.Equal(t, 39*time.Second, MarqueeDuration(strings.Repeat("x", 100), true))
}
