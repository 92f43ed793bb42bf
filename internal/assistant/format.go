// ABOUTME: User-facing formatting conventions shared across response builders.
// ABOUTME: Floats drop trailing ".0", the default unit is implied, deltas carry glyphs.
package assistant

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/harperreed/repbot/internal/models"
)

// deltaEpsilon is the smallest delta worth showing.
const deltaEpsilon = 0.1

// trimFloat renders a float without a trailing ".0" (135.0 -> "135",
// 32.5 -> "32.5").
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatWeight renders a weight, omitting the unit suffix when it is the
// default.
func formatWeight(weight float64, unit string) string {
	if unit == "" || unit == models.DefaultWeightUnit {
		return trimFloat(weight)
	}
	return trimFloat(weight) + " " + unit
}

// formatDate renders a timestamp as abbreviated month and unpadded day.
func formatDate(t time.Time) string {
	return t.Format("Jan 2")
}

// formatDelta renders a change as an arrow glyph plus magnitude, or "" when
// the change is too small to matter.
func formatDelta(current, previous float64) string {
	diff := current - previous
	if math.Abs(diff) < deltaEpsilon {
		return ""
	}
	glyph := "↑"
	if diff < 0 {
		glyph = "↓"
	}
	return fmt.Sprintf("%s %s", glyph, trimFloat(math.Abs(diff)))
}
