package leave

import (
	"sync"

	leaveerrors "github.com/renzojacob/IntelliHRTrack/internal/leave/errors"
)

// Store owns the ordered leave request sequence. Insertion order is the
// display order: newest first. The store is the only writer of the sequence;
// the mutex exists because HTTP handlers run concurrently, not because the
// domain has more than one logical owner.
type Store struct {
	mu  sync.RWMutex
	seq []Request
}

func NewStore(seed []Request) *Store {
	s := &Store{}
	if len(seed) > 0 {
		s.seq = append(s.seq, seed...)
	}
	return s
}

// Create prepends the request to the sequence. The caller is responsible for
// handing over a fully built request: fresh id, pending status, computed
// total days, submission timestamp.
func (s *Store) Create(r Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = append([]Request{r}, s.seq...)
}

// Cancel removes the request if it exists and is still pending. Cancellation
// is deletion: no cancelled tombstone stays behind. Returns false as a
// silent no-op when the id is unknown or the request is no longer pending.
func (s *Store) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.seq {
		if r.ID == id {
			if r.Status != StatusPending {
				return false
			}
			s.seq = append(s.seq[:i], s.seq[i+1:]...)
			return true
		}
	}
	return false
}

// ExtractForEdit returns the editable fields of a pending request and
// atomically removes the entry: editing is a destructive re-draft, the
// resubmission comes back through Create as a new pending request.
func (s *Store) ExtractForEdit(id string) (Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.seq {
		if r.ID == id {
			if r.Status != StatusPending {
				return Candidate{}, leaveerrors.ErrLeaveNotPending
			}
			draft := Candidate{
				Type:      r.Type,
				StartDate: r.StartDate,
				EndDate:   r.EndDate,
				Reason:    r.Reason,
			}
			s.seq = append(s.seq[:i], s.seq[i+1:]...)
			return draft, nil
		}
	}
	return Candidate{}, leaveerrors.ErrLeaveNotFound
}

// SetDecision mirrors a server-confirmed approve/decline onto a pending
// request. Returns the updated request, or false when the id is unknown or
// the request is not pending.
func (s *Store) SetDecision(id, status, approver string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.seq {
		if r.ID == id {
			if r.Status != StatusPending {
				return Request{}, false
			}
			s.seq[i].Status = status
			if approver != "" {
				s.seq[i].Approver = approver
			}
			return s.seq[i], true
		}
	}
	return Request{}, false
}

// Get returns a request by id.
func (s *Store) Get(id string) (Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.seq {
		if r.ID == id {
			return r, true
		}
	}
	return Request{}, false
}

// Replace swaps the whole sequence for an authoritative server snapshot.
func (s *Store) Replace(reqs []Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = append([]Request(nil), reqs...)
}

// Snapshot returns a copy of the sequence in display order.
func (s *Store) Snapshot() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Request(nil), s.seq...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seq)
}
