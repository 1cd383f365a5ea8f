// Package tier buckets a 0..100 score into presentation tiers
// Lower bounds are inclusive: 90 top, 80 good, 60 passing, anything below needs revision
package tier

// Tier is a discrete presentation bucket
type Tier string

const (
	// Top is score >= 90
	Top Tier = "top"

	// Good is 80 <= score < 90
	Good Tier = "good"

	// Passing is 60 <= score < 80
	Passing Tier = "passing"

	// NeedsRevision is score < 60
	NeedsRevision Tier = "needs_revision"
)

// Of returns the tier for score. Out of range scores fall into the nearest end
func Of(score int) Tier {
	switch {
	case score >= 90:
		return Top
	case score >= 80:
		return Good
	case score >= 60:
		return Passing
	default:
		return NeedsRevision
	}
}

// Label is the fixed human label for the tier
func (t Tier) Label() string {
	switch t {
	case Top:
		return "Excellent!"
	case Good:
		return "Good!"
	case Passing:
		return "Not bad"
	default:
		return "Needs revision"
	}
}

// Marker is the fixed emoji marker for the tier
func (t Tier) Marker() string {
	switch t {
	case Top:
		return "🏆"
	case Good:
		return "⭐"
	case Passing:
		return "👍"
	default:
		return "📚"
	}
}
