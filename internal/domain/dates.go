package domain

import "time"

// MaxTripDays is the longest trip, in days, that Validate accepts and
// DatesBetween expands.
const MaxTripDays = 3 * 366

// DatesBetween lists every day from start to end inclusive, formatted yyyy-MM-dd.
// A start after end yields only the start date; unparsable input yields nothing.
// At most MaxTripDays dates are returned.
func DatesBetween(start, end string) []string {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return []string{}
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return []string{}
	}
	if s.After(e) {
		return []string{s.Format(DateLayout)}
	}

	var dates []string
	for d := s; !d.After(e) && len(dates) < MaxTripDays; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// Timeline splits trips relative to a given day.
type Timeline struct {
	Current  *Trip  `json:"current"`
	Upcoming []Trip `json:"upcoming"`
	Past     []Trip `json:"past"`
}

// ClassifyTrips places each trip as current (today within its dates), upcoming,
// or past. When several trips cover today the last one wins. Trips with
// unparsable dates are left out.
func ClassifyTrips(trips []Trip, today time.Time) Timeline {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	tl := Timeline{Upcoming: []Trip{}, Past: []Trip{}}
	for _, t := range trips {
		start, err := time.Parse(DateLayout, t.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(DateLayout, t.EndDate)
		if err != nil {
			continue
		}

		switch {
		case !day.Before(start) && !day.After(end):
			cur := t
			tl.Current = &cur
		case start.After(day):
			tl.Upcoming = append(tl.Upcoming, t)
		default:
			tl.Past = append(tl.Past, t)
		}
	}
	return tl
}
