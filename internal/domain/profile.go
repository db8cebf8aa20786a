package domain

import (
	"strings"

	"github.com/samber/lo"
)

// Normalize trims the profile fields and turns Interests into a set, keeping first-seen order.
func (p UserProfile) Normalize() UserProfile {
	p.HomeCity = strings.TrimSpace(p.HomeCity)
	p.TravelStyle = strings.TrimSpace(p.TravelStyle)
	p.TripPace = strings.TrimSpace(p.TripPace)

	tags := lo.Map(p.Interests, func(s string, _ int) string { return strings.TrimSpace(s) })
	p.Interests = lo.Uniq(lo.Compact(tags))
	return p
}
