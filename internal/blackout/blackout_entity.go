package blackout

import "time"

const (
	RestrictionNoLeave    = "no-leave"
	RestrictionRestricted = "restricted"
)

// Period is a company-wide date range during which leave is disallowed or
// restricted. Read-only reference data for the validator.
type Period struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Reason           string `json:"reason"`
	RestrictionLevel string `json:"restrictionLevel"`
}

// Overlaps reports whether [start,end] intersects the period, boundaries
// inclusive on both sides. Periods with unparseable dates never match.
func (p Period) Overlaps(start, end time.Time) bool {
	ps, err := time.Parse("2006-01-02", p.StartDate)
	if err != nil {
		return false
	}
	pe, err := time.Parse("2006-01-02", p.EndDate)
	if err != nil {
		return false
	}
	return !start.After(pe) && !end.Before(ps)
}

// Defaults is the seed registry used whenever the upstream blackout endpoint
// is unreachable.
func Defaults() []Period {
	return []Period{
		{
			ID:               "1",
			Name:             "Year-End Closing",
			StartDate:        "2023-12-25",
			EndDate:          "2024-01-02",
			Reason:           "Company-wide shutdown",
			RestrictionLevel: RestrictionNoLeave,
		},
		{
			ID:               "2",
			Name:             "Audit Period",
			StartDate:        "2024-01-15",
			EndDate:          "2024-01-30",
			Reason:           "Financial audit",
			RestrictionLevel: RestrictionRestricted,
		},
	}
}
