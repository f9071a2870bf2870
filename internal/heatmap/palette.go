// Package heatmap maps consensus scores onto the five-step color scale and
// lays selected candidates out as a skill-aligned grid.
package heatmap

import "math"

const (
	// MinScore and MaxScore bound the consensus score scale.
	MinScore = 0
	MaxScore = 4

	// DefaultColor is used for missing, fractional or out-of-range scores.
	DefaultColor = "#ECFFF1"
)

var palette = [MaxScore + 1]string{
	"#ECFFF1",
	"#F8F8A7",
	"#A6D96A",
	"#1A9641",
	"#003F0B",
}

// Level is a single entry of the color scale.
type Level struct {
	Score int    `json:"score"`
	Color string `json:"color"`
}

// Color returns the cell color for a score. known is false when the
// candidate has no entry for the skill.
func Color(score float64, known bool) string {
	if !known || score != math.Trunc(score) || score < MinScore || score > MaxScore {
		return DefaultColor
	}
	return palette[int(score)]
}

// Dark reports whether text drawn over the color of score should be light.
func Dark(score float64, known bool) bool {
	c := Color(score, known)
	return c == palette[3] || c == palette[4]
}

// Legend returns the scale from the palest to the darkest color.
func Legend() []Level {
	levels := make([]Level, 0, len(palette))
	for score, color := range palette {
		levels = append(levels, Level{Score: score, Color: color})
	}
	return levels
}
