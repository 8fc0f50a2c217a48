package upstream_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/renzojacob/IntelliHRTrack/internal/upstream"

	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return upstream.NewClient(srv.URL, 2*time.Second)
}

func TestClient_MyLeaves(t *testing.T) {
	t.Run("returns the raw payload untouched", func(t *testing.T) {
		payload := `[{"id":"1","start_date":"2024-03-01","end_date":"2024-03-02"}]`
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/v1/leaves/employee/my-leaves", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, payload)
		})

		raw, err := client.MyLeaves(context.Background())

		assert.NoError(t, err)
		assert.JSONEq(t, payload, string(raw))
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.MyLeaves(context.Background())

		assert.Error(t, err)
	})
}

func TestClient_Apply(t *testing.T) {
	var got upstream.ApplyPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/leaves/employee/apply", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Apply(context.Background(), upstream.ApplyPayload{
		LeaveType: "Sick Leave",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-02",
		Reason:    "Flu",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Sick Leave", got.LeaveType)
	assert.Equal(t, "2024-03-01", got.StartDate)
}

func TestClient_UpdateStatus(t *testing.T) {
	var got upstream.StatusUpdate
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/leaves/admin/abc/status", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	err := client.UpdateStatus(context.Background(), "abc", upstream.StatusUpdate{
		Status:  "declined",
		Remarks: "Blackout window",
	})

	assert.NoError(t, err)
	assert.Equal(t, "declined", got.Status)
	assert.Equal(t, "Blackout window", got.Remarks)
}

func TestClient_Balances(t *testing.T) {
	t.Run("decodes the balance list", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/leaves/employee/balance", r.URL.Path)
			io.WriteString(w, `[{"type":"Vacation Leave","total":15,"used":9,"remaining":6,"maxDays":15}]`)
		})

		balances, err := client.Balances(context.Background())

		assert.NoError(t, err)
		assert.Len(t, balances, 1)
		assert.Equal(t, "Vacation Leave", balances[0].Type)
		assert.Equal(t, 6, balances[0].Remaining)
	})

	t.Run("garbage payload is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `not json`)
		})

		_, err := client.Balances(context.Background())

		assert.Error(t, err)
	})
}

func TestClient_BlackoutPeriods(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/leaves/admin/blackout-periods", r.URL.Path)
		io.WriteString(w, `[{"id":"1","name":"Year-End Closing","startDate":"2023-12-25","endDate":"2024-01-02","restrictionLevel":"no-leave"}]`)
	})

	periods, err := client.BlackoutPeriods(context.Background())

	assert.NoError(t, err)
	assert.Len(t, periods, 1)
	assert.Equal(t, "Year-End Closing", periods[0].Name)
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.MyLeaves(ctx)

	assert.Error(t, err)
}
