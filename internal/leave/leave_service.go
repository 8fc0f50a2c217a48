package leave

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/renzojacob/IntelliHRTrack/internal/balance"
	"github.com/renzojacob/IntelliHRTrack/internal/blackout"
	leaveerrors "github.com/renzojacob/IntelliHRTrack/internal/leave/errors"
	"github.com/renzojacob/IntelliHRTrack/internal/shared/apperror"
	"github.com/renzojacob/IntelliHRTrack/internal/shared/contextutil"
	"github.com/renzojacob/IntelliHRTrack/internal/upstream"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ValidationError carries the full list of rule failures for one candidate.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "leave request validation failed: " + strings.Join(e.Errors, "; ")
}

// Backend is the slice of the upstream client this service depends on.
type Backend interface {
	MyLeaves(ctx context.Context) (json.RawMessage, error)
	Apply(ctx context.Context, payload upstream.ApplyPayload) error
	UpdateStatus(ctx context.Context, leaveID string, update upstream.StatusUpdate) error
}

type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context) []LeaveResponse
	Cancel(ctx context.Context, id string, confirm bool) bool
	ExtractForEdit(ctx context.Context, id string) (Candidate, error)
	Reconcile(ctx context.Context) bool
	Decide(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	Balances(ctx context.Context) []balance.Balance
	BlackoutPeriods(ctx context.Context) []blackout.Period
}

type service struct {
	store     *Store
	balances  balance.Source
	blackouts blackout.Source
	backend   Backend
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	store *Store,
	balances balance.Source,
	blackouts blackout.Source,
	backend Backend,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		store:     store,
		balances:  balances,
		blackouts: blackouts,
		backend:   backend,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

// Submit runs the form state machine: validate, construct, prepend, reset.
// A rejected candidate creates nothing and returns every failed rule.
// The upstream POST follows the local-first-submit policy: it runs detached
// and its failure is logged, never surfaced; the local sequence already
// holds the pending request either way.
func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	candidate := Candidate{
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}
	errs := Validate(candidate, s.balances.Snapshot(ctx), s.blackouts.Snapshot(ctx))
	if len(errs) > 0 {
		s.logger.Warn("submit leave rejected",
			zap.String("request_id", rid),
			zap.Strings("errors", errs),
		)
		return LeaveResponse{}, &ValidationError{Errors: errs}
	}

	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)

	created := Request{
		ID:          uuid.New().String(),
		Type:        req.Type,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TotalDays:   DaysInclusive(start, end),
		Status:      StatusPending,
		Reason:      req.Reason,
		Approver:    DefaultApprover,
		SubmittedAt: time.Now().UTC(),
	}
	s.store.Create(created)

	go s.applyUpstream(created)

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", created.ID),
		zap.Int("total_days", created.TotalDays),
	)
	return mapToResponse(created), nil
}

func (s *service) applyUpstream(r Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := s.backend.Apply(ctx, upstream.ApplyPayload{
		LeaveType: r.Type,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Reason:    r.Reason,
	})
	if err != nil {
		s.logger.Warn("submit leave upstream apply failed",
			zap.String("leave_id", r.ID),
			zap.Error(err),
		)
	}
}

func (s *service) List(ctx context.Context) []LeaveResponse {
	return mapToListResponse(s.store.Snapshot())
}

// Cancel deletes a pending request. confirm=false models the user declining
// the confirmation prompt: a successful no-op, not an error. An unknown or
// non-pending id is likewise a silent no-op.
func (s *service) Cancel(ctx context.Context, id string, confirm bool) bool {
	if !confirm {
		s.logger.Debug("cancel leave not confirmed", zap.String("leave_id", id))
		return false
	}
	cancelled := s.store.Cancel(id)
	if cancelled {
		s.logger.Info("cancel leave success", zap.String("leave_id", id))
	} else {
		s.logger.Debug("cancel leave no-op", zap.String("leave_id", id))
	}
	return cancelled
}

// ExtractForEdit pulls a pending request out of the sequence and hands its
// editable fields back for form pre-fill. The original entry is gone after
// this; the edited draft re-enters through Submit as a new request.
func (s *service) ExtractForEdit(ctx context.Context, id string) (Candidate, error) {
	draft, err := s.store.ExtractForEdit(id)
	if err != nil {
		s.logger.Debug("extract leave for edit refused",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return Candidate{}, err
	}
	s.logger.Info("extract leave for edit", zap.String("leave_id", id))
	return draft, nil
}

// Reconcile fetches the authoritative sequence from the backend and replaces
// the local one when the result is non-empty. Policy retain-last-on-fetch-error:
// any fetch or decode failure keeps the current sequence and surfaces nothing.
// Concurrent triggers collapse into a single upstream fetch. A reconcile whose
// context was cancelled mid-flight (teardown) never applies its result.
func (s *service) Reconcile(ctx context.Context) bool {
	replaced, _, _ := s.sf.Do("reconcile", func() (any, error) {
		raw, err := s.backend.MyLeaves(ctx)
		if err != nil {
			s.logger.Debug("reconcile fetch failed, retaining local sequence", zap.Error(err))
			return false, nil
		}

		normalized, err := NormalizeRecords(raw, time.Now().UTC())
		if err != nil {
			s.logger.Debug("reconcile payload unusable, retaining local sequence", zap.Error(err))
			return false, nil
		}
		if len(normalized) == 0 {
			return false, nil
		}
		if ctx.Err() != nil {
			return false, nil
		}

		s.store.Replace(normalized)
		s.logger.Info("reconcile replaced local sequence", zap.Int("count", len(normalized)))
		return true, nil
	})
	return replaced.(bool)
}

// Decide applies an admin approve/decline. The local mirror changes only
// after the backend confirms; a failed PUT leaves the request pending.
func (s *service) Decide(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	if req.Status != StatusApproved && req.Status != StatusDeclined {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	current, ok := s.store.Get(id)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if current.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	err := s.backend.UpdateStatus(ctx, id, upstream.StatusUpdate{
		Status:  req.Status,
		Remarks: req.Remarks,
	})
	if err != nil {
		s.logger.Error("decide leave upstream update failed",
			zap.String("leave_id", id),
			zap.String("status", req.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, apperror.Wrap(err, apperror.CodeUpstreamError, "failed to update leave status", http.StatusBadGateway)
	}

	updated, ok := s.store.SetDecision(id, req.Status, "")
	if !ok {
		// The request changed between the check and the mirror; the server
		// copy is still authoritative, the next reconcile settles it.
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(updated), nil
}

func (s *service) Balances(ctx context.Context) []balance.Balance {
	return s.balances.Snapshot(ctx)
}

func (s *service) BlackoutPeriods(ctx context.Context) []blackout.Period {
	return s.blackouts.Snapshot(ctx)
}
