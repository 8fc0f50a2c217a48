package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/renzojacob/IntelliHRTrack/internal/balance"
	"github.com/renzojacob/IntelliHRTrack/internal/blackout"
	"github.com/renzojacob/IntelliHRTrack/internal/leave"
	leaveerrors "github.com/renzojacob/IntelliHRTrack/internal/leave/errors"
	"github.com/renzojacob/IntelliHRTrack/internal/upstream"

	"github.com/stretchr/testify/assert"
)

type fakeBackend struct {
	myLeavesFn     func(ctx context.Context) (json.RawMessage, error)
	applyFn        func(ctx context.Context, payload upstream.ApplyPayload) error
	updateStatusFn func(ctx context.Context, leaveID string, update upstream.StatusUpdate) error

	applied chan upstream.ApplyPayload
}

func (f *fakeBackend) MyLeaves(ctx context.Context) (json.RawMessage, error) {
	if f.myLeavesFn != nil {
		return f.myLeavesFn(ctx)
	}
	return nil, errors.New("unreachable")
}

func (f *fakeBackend) Apply(ctx context.Context, payload upstream.ApplyPayload) error {
	var err error
	if f.applyFn != nil {
		err = f.applyFn(ctx, payload)
	}
	if f.applied != nil {
		f.applied <- payload
	}
	return err
}

func (f *fakeBackend) UpdateStatus(ctx context.Context, leaveID string, update upstream.StatusUpdate) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, leaveID, update)
	}
	return nil
}

type leaveServiceDeps struct {
	store   *leave.Store
	backend *fakeBackend
	service leave.Service
}

func setupLeaveServiceTest(t *testing.T, seed []leave.Request) *leaveServiceDeps {
	t.Helper()

	store := leave.NewStore(seed)
	backend := &fakeBackend{applied: make(chan upstream.ApplyPayload, 1)}
	svc := leave.NewService(
		store,
		balance.NewStaticSource(testBalances()),
		blackout.NewStaticSource(testBlackouts()),
		backend,
	)
	return &leaveServiceDeps{store: store, backend: backend, service: svc}
}

func waitForApply(t *testing.T, backend *fakeBackend) upstream.ApplyPayload {
	t.Helper()
	select {
	case p := <-backend.applied:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("upstream apply was never called")
		return upstream.ApplyPayload{}
	}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid candidate is created pending and prepended", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.SeedRequests())

		resp, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			Type:      leave.TypeSick,
			StartDate: "2024-03-04",
			EndDate:   "2024-03-05",
			Reason:    "Flu",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 2, resp.TotalDays)
		assert.Equal(t, "2 days", resp.Duration)
		assert.Equal(t, leave.DefaultApprover, resp.Approver)

		seq := deps.store.Snapshot()
		assert.Equal(t, resp.ID, seq[0].ID)

		payload := waitForApply(t, deps.backend)
		assert.Equal(t, upstream.ApplyPayload{
			LeaveType: leave.TypeSick,
			StartDate: "2024-03-04",
			EndDate:   "2024-03-05",
			Reason:    "Flu",
		}, payload)
	})

	t.Run("two submissions keep newest first", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, nil)

		first, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			Type: leave.TypeSick, StartDate: "2024-03-04", EndDate: "2024-03-04", Reason: "A",
		})
		assert.NoError(t, err)
		waitForApply(t, deps.backend)

		second, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			Type: leave.TypeSick, StartDate: "2024-03-06", EndDate: "2024-03-06", Reason: "B",
		})
		assert.NoError(t, err)
		waitForApply(t, deps.backend)

		seq := deps.store.Snapshot()
		assert.Equal(t, second.ID, seq[0].ID)
		assert.Equal(t, first.ID, seq[1].ID)
	})

	t.Run("rejected candidate creates nothing and returns every error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, nil)

		_, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{})

		var vErr *leave.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{
			"Please select a leave type",
			"Start date is required",
			"End date is required",
			"Reason is required",
		}, vErr.Errors)
		assert.Equal(t, 0, deps.store.Len())
	})

	t.Run("upstream apply failure does not undo the local create", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, nil)
		deps.backend.applyFn = func(ctx context.Context, payload upstream.ApplyPayload) error {
			return errors.New("backend down")
		}

		resp, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			Type: leave.TypeSick, StartDate: "2024-03-04", EndDate: "2024-03-04", Reason: "Flu",
		})

		assert.NoError(t, err)
		waitForApply(t, deps.backend)
		assert.Equal(t, 1, deps.store.Len())
		assert.Equal(t, resp.ID, deps.store.Snapshot()[0].ID)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed cancel removes the pending entry", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, []leave.Request{pendingRequest("a")})

		cancelled := deps.service.Cancel(ctx, "a", true)

		assert.True(t, cancelled)
		assert.Equal(t, 0, deps.store.Len())
	})

	t.Run("declined confirmation is a no-op", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, []leave.Request{pendingRequest("a")})

		cancelled := deps.service.Cancel(ctx, "a", false)

		assert.False(t, cancelled)
		assert.Equal(t, 1, deps.store.Len())
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		approved := pendingRequest("a")
		approved.Status = leave.StatusApproved
		deps := setupLeaveServiceTest(t, []leave.Request{approved})

		cancelled := deps.service.Cancel(ctx, "a", true)

		assert.False(t, cancelled)
		assert.Equal(t, 1, deps.store.Len())
	})
}

func TestLeaveService_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("non-empty payload replaces the local sequence", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, leave.SeedRequests())
		deps.backend.myLeavesFn = func(ctx context.Context) (json.RawMessage, error) {
			return json.RawMessage(`[{"id":"srv-1","type":"Sick Leave","start_date":"2024-03-01","end_date":"2024-03-02","status":"approved"}]`), nil
		}

		replaced := deps.service.Reconcile(ctx)

		assert.True(t, replaced)
		seq := deps.store.Snapshot()
		assert.Len(t, seq, 1)
		assert.Equal(t, "srv-1", seq[0].ID)
		assert.Equal(t, leave.StatusApproved, seq[0].Status)
	})

	t.Run("fetch failure retains the local sequence unchanged", func(t *testing.T) {
		seed := leave.SeedRequests()
		deps := setupLeaveServiceTest(t, seed)
		deps.backend.myLeavesFn = func(ctx context.Context) (json.RawMessage, error) {
			return nil, errors.New("connection refused")
		}

		replaced := deps.service.Reconcile(ctx)

		assert.False(t, replaced)
		assert.Equal(t, seed, deps.store.Snapshot())
	})

	t.Run("empty payload retains the local sequence", func(t *testing.T) {
		seed := leave.SeedRequests()
		deps := setupLeaveServiceTest(t, seed)
		deps.backend.myLeavesFn = func(ctx context.Context) (json.RawMessage, error) {
			return json.RawMessage(`[]`), nil
		}

		replaced := deps.service.Reconcile(ctx)

		assert.False(t, replaced)
		assert.Equal(t, seed, deps.store.Snapshot())
	})

	t.Run("result arriving after teardown is not applied", func(t *testing.T) {
		seed := leave.SeedRequests()
		deps := setupLeaveServiceTest(t, seed)

		cancelCtx, cancel := context.WithCancel(context.Background())
		deps.backend.myLeavesFn = func(ctx context.Context) (json.RawMessage, error) {
			cancel() // teardown happens while the fetch is in flight
			return json.RawMessage(`[{"id":"late","start_date":"2024-03-01","end_date":"2024-03-01"}]`), nil
		}

		replaced := deps.service.Reconcile(cancelCtx)

		assert.False(t, replaced)
		assert.Equal(t, seed, deps.store.Snapshot())
	})
}

func TestLeaveService_ExtractForEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("pending entry yields a draft and leaves the sequence without it", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, []leave.Request{pendingRequest("a")})

		draft, err := deps.service.ExtractForEdit(ctx, "a")

		assert.NoError(t, err)
		assert.Equal(t, leave.TypeVacation, draft.Type)
		assert.Equal(t, 0, deps.store.Len())
	})

	t.Run("approved entry is refused", func(t *testing.T) {
		approved := pendingRequest("a")
		approved.Status = leave.StatusApproved
		deps := setupLeaveServiceTest(t, []leave.Request{approved})

		_, err := deps.service.ExtractForEdit(ctx, "a")

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
		assert.Equal(t, 1, deps.store.Len())
	})
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("approval mirrors locally after the backend confirms", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, []leave.Request{pendingRequest("a")})

		var gotUpdate upstream.StatusUpdate
		deps.backend.updateStatusFn = func(ctx context.Context, leaveID string, update upstream.StatusUpdate) error {
			assert.Equal(t, "a", leaveID)
			gotUpdate = update
			return nil
		}

		resp, err := deps.service.Decide(ctx, "a", leave.UpdateLeaveStatusRequest{
			Status:  leave.StatusApproved,
			Remarks: "Enjoy",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, upstream.StatusUpdate{Status: "approved", Remarks: "Enjoy"}, gotUpdate)
		assert.Equal(t, leave.StatusApproved, deps.store.Snapshot()[0].Status)
	})

	t.Run("backend failure leaves the request pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, []leave.Request{pendingRequest("a")})
		deps.backend.updateStatusFn = func(ctx context.Context, leaveID string, update upstream.StatusUpdate) error {
			return errors.New("backend down")
		}

		_, err := deps.service.Decide(ctx, "a", leave.UpdateLeaveStatusRequest{Status: leave.StatusDeclined})

		assert.Error(t, err)
		assert.Equal(t, leave.StatusPending, deps.store.Snapshot()[0].Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, nil)

		_, err := deps.service.Decide(ctx, "missing", leave.UpdateLeaveStatusRequest{Status: leave.StatusApproved})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("already decided request is refused", func(t *testing.T) {
		approved := pendingRequest("a")
		approved.Status = leave.StatusApproved
		deps := setupLeaveServiceTest(t, []leave.Request{approved})

		_, err := deps.service.Decide(ctx, "a", leave.UpdateLeaveStatusRequest{Status: leave.StatusDeclined})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
	})

	t.Run("cancelled status is not a valid decision", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, []leave.Request{pendingRequest("a")})

		_, err := deps.service.Decide(ctx, "a", leave.UpdateLeaveStatusRequest{Status: leave.StatusCancelled})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDecision)
	})
}
