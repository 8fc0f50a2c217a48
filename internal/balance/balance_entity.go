package balance

// Balance is one leave-type bucket of the employee's yearly entitlement.
// It is reference data for validation: nothing in this service mutates it,
// the upstream HR backend owns the numbers.
type Balance struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
	MaxDays   int    `json:"maxDays"`
}

// Defaults is the seed snapshot used whenever the upstream balance endpoint
// is unreachable.
func Defaults() []Balance {
	return []Balance{
		{Type: "Vacation Leave", Total: 15, Used: 9, Remaining: 6, MaxDays: 15},
		{Type: "Sick Leave", Total: 10, Used: 3, Remaining: 7, MaxDays: 10},
		{Type: "Emergency Leave", Total: 5, Used: 1, Remaining: 4, MaxDays: 5},
		{Type: "Personal Days", Total: 5, Used: 2, Remaining: 3, MaxDays: 5},
	}
}
