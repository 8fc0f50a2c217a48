package leave

import (
	"fmt"
	"time"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusDeclined  = "declined"
	StatusCancelled = "cancelled"
)

const (
	TypeVacation         = "Vacation Leave"
	TypeSick             = "Sick Leave"
	TypeEmergency        = "Emergency Leave"
	TypeOfficialBusiness = "Official Business"
	TypePersonalDays     = "Personal Days"
)

const dateLayout = "2006-01-02"

// DefaultApprover is shown until the backend assigns a real approver.
const DefaultApprover = "Pending Assignment"

// Request is one leave request as the panel holds it. Status moves to
// approved/declined only by mirroring a server confirmation; cancellation
// removes the entry instead of keeping a cancelled tombstone.
type Request struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	TotalDays   int       `json:"total_days"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason"`
	Approver    string    `json:"approver"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Candidate carries the editable form fields of a request before it exists.
type Candidate struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func parseDate(v string) (time.Time, error) {
	return time.Parse(dateLayout, v)
}

// DaysInclusive counts calendar days from start to end, both ends counted.
// start == end yields 1.
func DaysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// datesLabel renders the human range shown in the request list,
// e.g. "Dec 20 - 23, 2023" or "Nov 15, 2023".
func datesLabel(start, end time.Time) string {
	if start.Equal(end) {
		return start.Format("Jan 2, 2006")
	}
	if start.Year() == end.Year() && start.Month() == end.Month() {
		return fmt.Sprintf("%s - %d, %d", start.Format("Jan 2"), end.Day(), end.Year())
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// SeedRequests is the offline sample sequence shown before the first
// successful reconciliation replaces it.
func SeedRequests() []Request {
	return []Request{
		{
			ID:          "1",
			Type:        TypeVacation,
			StartDate:   "2023-12-20",
			EndDate:     "2023-12-23",
			TotalDays:   4,
			Status:      StatusPending,
			Reason:      "Family vacation",
			Approver:    "Sarah Johnson",
			SubmittedAt: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Type:        TypeSick,
			StartDate:   "2023-11-15",
			EndDate:     "2023-11-15",
			TotalDays:   1,
			Status:      StatusApproved,
			Reason:      "Medical appointment",
			Approver:    "Sarah Johnson",
			SubmittedAt: time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}
