package leave

import (
	"fmt"
	"time"
)

// SubmitLeaveRequest deliberately carries no binding tags: required-field
// checks belong to the domain validator so that every applicable error is
// returned at once, not just the first binding failure.
type SubmitLeaveRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type CancelLeaveRequest struct {
	Confirm bool `json:"confirm"`
}

type UpdateLeaveStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=approved declined"`
	Remarks string `json:"remarks"`
}

type LeaveResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Dates       string `json:"dates"`
	Duration    string `json:"duration"`
	TotalDays   int    `json:"total_days"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	Approver    string `json:"approver"`
	SubmittedAt string `json:"submitted_at"`
}

type CancelLeaveResponse struct {
	Cancelled bool `json:"cancelled"`
}

type ReconcileResponse struct {
	Replaced bool `json:"replaced"`
}

func mapToResponse(r Request) LeaveResponse {
	resp := LeaveResponse{
		ID:          r.ID,
		Type:        r.Type,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		TotalDays:   r.TotalDays,
		Status:      r.Status,
		Reason:      r.Reason,
		Approver:    r.Approver,
		SubmittedAt: r.SubmittedAt.Format(time.RFC3339),
	}
	if r.TotalDays == 1 {
		resp.Duration = "1 day"
	} else {
		resp.Duration = fmt.Sprintf("%d days", r.TotalDays)
	}
	if start, err := parseDate(r.StartDate); err == nil {
		if end, err := parseDate(r.EndDate); err == nil {
			resp.Dates = datesLabel(start, end)
		}
	}
	return resp
}

func mapToListResponse(reqs []Request) []LeaveResponse {
	resp := make([]LeaveResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = mapToResponse(r)
	}
	return resp
}
