package leave

import (
	"fmt"
	"strings"

	"github.com/renzojacob/IntelliHRTrack/internal/balance"
	"github.com/renzojacob/IntelliHRTrack/internal/blackout"
)

// Validate checks a candidate request against the current balance snapshot
// and blackout registry. Every applicable rule runs; the result is the full
// list of human-readable errors, empty when the candidate is acceptable.
// Pure: no side effects, no clock, no I/O.
func Validate(c Candidate, balances []balance.Balance, blackouts []blackout.Period) []string {
	var errs []string

	if c.Type == "" {
		errs = append(errs, "Please select a leave type")
	}
	if c.StartDate == "" {
		errs = append(errs, "Start date is required")
	}
	if c.EndDate == "" {
		errs = append(errs, "End date is required")
	}
	if strings.TrimSpace(c.Reason) == "" {
		errs = append(errs, "Reason is required")
	}

	if c.StartDate != "" && c.EndDate != "" {
		start, startErr := parseDate(c.StartDate)
		end, endErr := parseDate(c.EndDate)
		if startErr == nil && endErr == nil {
			if end.Before(start) {
				errs = append(errs, "End date cannot be before start date")
			}

			for _, period := range blackouts {
				if period.Overlaps(start, end) {
					errs = append(errs, fmt.Sprintf("Selected dates conflict with blackout period: %s", period.Name))
				}
			}

			if c.Type != "" {
				if b, ok := findBalance(balances, c.Type); ok {
					requested := DaysInclusive(start, end)
					if requested > b.Remaining {
						errs = append(errs, fmt.Sprintf(
							"Insufficient %s balance. Requested: %d, Available: %d",
							c.Type, requested, b.Remaining,
						))
					}
				}
			}
		}
	}

	return errs
}

// findBalance matches by case-insensitive substring, not exact equality:
// a "Vacation" candidate matches the "Vacation Leave" bucket.
func findBalance(balances []balance.Balance, leaveType string) (balance.Balance, bool) {
	needle := strings.ToLower(leaveType)
	for _, b := range balances {
		if strings.Contains(strings.ToLower(b.Type), needle) {
			return b, true
		}
	}
	return balance.Balance{}, false
}
