package leave

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NormalizeRecords converts a raw my-leaves payload into canonical requests.
// The backend's field naming is not stable, so this function is the single
// decoding boundary: it accepts either a bare array or an object with a
// "requests" field, and resolves each concept through a fixed fallback order.
//
//	start:       startDate > start_date > from
//	end:         endDate > end_date > to
//	type:        type > leaveType > leave_type > name   (default "Leave")
//	reason:      reason > notes
//	approver:    approver > manager                     (default "Pending Assignment")
//	status:      status                                 (default pending)
//	submitted:   submittedAt > submitted_at             (default now)
//	total days:  duration, else computed from the parsed start/end gap
func NormalizeRecords(raw json.RawMessage, now time.Time) ([]Request, error) {
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	normalized := make([]Request, 0, len(records))
	for _, rec := range records {
		normalized = append(normalized, normalizeRecord(rec, now))
	}
	return normalized, nil
}

func decodeRecords(raw json.RawMessage) ([]map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var wrapper struct {
		Requests []map[string]any `json:"requests"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("decode leave records: %w", err)
	}
	return wrapper.Requests, nil
}

func normalizeRecord(rec map[string]any, now time.Time) Request {
	start := firstString(rec, "startDate", "start_date", "from")
	end := firstString(rec, "endDate", "end_date", "to")

	r := Request{
		ID:        firstString(rec, "id"),
		Type:      firstString(rec, "type", "leaveType", "leave_type", "name"),
		StartDate: start,
		EndDate:   end,
		TotalDays: recordDays(rec, start, end),
		Status:    strings.ToLower(firstString(rec, "status")),
		Reason:    firstString(rec, "reason", "notes"),
		Approver:  firstString(rec, "approver", "manager"),
	}

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Type == "" {
		r.Type = "Leave"
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.Approver == "" {
		r.Approver = DefaultApprover
	}

	r.SubmittedAt = now
	if v := firstString(rec, "submittedAt", "submitted_at"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			r.SubmittedAt = ts
		} else if ts, err := parseDate(v); err == nil {
			r.SubmittedAt = ts
		}
	}

	return r
}

func recordDays(rec map[string]any, start, end string) int {
	if v, ok := rec["duration"]; ok {
		switch d := v.(type) {
		case float64:
			if d > 0 {
				return int(d)
			}
		case string:
			// "4 days" style labels from older backends
			var n int
			if _, err := fmt.Sscanf(d, "%d", &n); err == nil && n > 0 {
				return n
			}
		}
	}
	return daysBetween(start, end)
}

// daysBetween mirrors DaysInclusive over unparsed dates, clamping to zero on
// bad input so a malformed record never yields a negative duration.
func daysBetween(start, end string) int {
	s, err := parseDate(start)
	if err != nil {
		return 0
	}
	e, err := parseDate(end)
	if err != nil {
		return 0
	}
	if days := DaysInclusive(s, e); days > 0 {
		return days
	}
	return 0
}

// firstString walks keys in fallback order and returns the first value that
// renders to a non-empty string. Numeric ids are stringified.
func firstString(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			if s == float64(int64(s)) {
				return fmt.Sprintf("%d", int64(s))
			}
			return fmt.Sprintf("%v", s)
		}
	}
	return ""
}
