// Package effort summarises segment efforts exported from a fitness
// platform, either as a timeline or per athlete.
package effort

import (
	"cmp"
	"slices"
	"time"
)

// Effort is one timed pass over a platform segment.
type Effort struct {
	ActivityID  string        `json:"activity_id"`
	AthleteID   string        `json:"athlete_id,omitempty"`
	AthleteName string        `json:"athlete_name,omitempty"`
	Start       time.Time     `json:"start"`
	Elapsed     time.Duration `json:"elapsed"`
}

// ActivityURL links to the activity on Strava.
func (e Effort) ActivityURL() string {
	return "https://www.strava.com/activities/" + e.ActivityID
}

// FilterRange keeps efforts with from <= Start <= to. A zero bound is open.
func FilterRange(efforts []Effort, from, to time.Time) []Effort {
	var out []Effort
	for _, e := range efforts {
		if !from.IsZero() && e.Start.Before(from) {
			continue
		}
		if !to.IsZero() && e.Start.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// DateSummary is the timeline view: newest first, with the fastest effort.
type DateSummary struct {
	Count   int       `json:"count"`
	First   time.Time `json:"first"`
	Last    time.Time `json:"last"`
	Fastest Effort    `json:"fastest"`
	Recent  []Effort  `json:"recent"`
}

// ByDate sorts a copy of efforts newest first and keeps the recent most
// recent ones. recent <= 0 keeps them all.
func ByDate(efforts []Effort, recent int) DateSummary {
	if len(efforts) == 0 {
		return DateSummary{}
	}

	sorted := slices.Clone(efforts)
	slices.SortStableFunc(sorted, func(a, b Effort) int {
		return b.Start.Compare(a.Start)
	})

	if recent <= 0 || recent > len(sorted) {
		recent = len(sorted)
	}
	return DateSummary{
		Count:   len(sorted),
		First:   sorted[len(sorted)-1].Start,
		Last:    sorted[0].Start,
		Fastest: fastest(sorted),
		Recent:  sorted[:recent],
	}
}

// AthleteSummary is one athlete's attempts.
type AthleteSummary struct {
	AthleteID string `json:"athlete_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Fastest   Effort `json:"fastest"`
}

// ByAthlete groups efforts by athlete, most attempts first. Ties are broken
// by athlete ID so the order is stable.
func ByAthlete(efforts []Effort) []AthleteSummary {
	groups := make(map[string][]Effort)
	names := make(map[string]string)
	for _, e := range efforts {
		groups[e.AthleteID] = append(groups[e.AthleteID], e)
		if names[e.AthleteID] == "" {
			names[e.AthleteID] = e.AthleteName
		}
	}

	out := make([]AthleteSummary, 0, len(groups))
	for id, list := range groups {
		out = append(out, AthleteSummary{
			AthleteID: id,
			Name:      names[id],
			Count:     len(list),
			Fastest:   fastest(list),
		})
	}
	slices.SortFunc(out, func(a, b AthleteSummary) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.AthleteID, b.AthleteID)
	})
	return out
}

// fastest returns the shortest effort; the earliest in list order wins ties.
func fastest(list []Effort) Effort {
	best := list[0]
	for _, e := range list[1:] {
		if e.Elapsed < best.Elapsed {
			best = e
		}
	}
	return best
}
