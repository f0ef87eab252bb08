package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// session owns one shared aggregate state behind a mutex, together with the
// ledger and notifier every mutation needs. Optimistic transforms, rollbacks
// and reconciliations run while holding the lock; the network call never
// does, so mutations on unrelated entities may overlap but no consumer ever
// observes a half-applied transform.
type session[S interface{ Clone() S }] struct {
	mu        sync.Mutex
	state     S
	errMsg    string
	recompute func(S)
	ledger    *Ledger
	notify    Notifier
	log       zerolog.Logger
}

// read runs f on the current state under the lock. f must not retain
// references into the state.
func (s *session[S]) read(f func(S)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.state)
}

// update runs f on the current state under the lock and recomputes the
// derived summary afterwards. Used by the fetch paths; optimistic mutations
// go through run instead.
func (s *session[S]) update(f func(S)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.state)
	s.recompute(s.state)
}

// setError records a store-local error for inline display.
func (s *session[S]) setError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = message
}

// Err returns the error of the last failed operation, or "".
func (s *session[S]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// ClearError resets the store-local error.
func (s *session[S]) ClearError() {
	s.setError("")
}

// mutation describes one optimistic mutation of an aggregate state S whose
// network call produces R.
type mutation[S interface{ Clone() S }, R any] struct {
	op     OperationKind
	entity EntityKind
	tempID int64
	realID int64

	// apply performs the optimistic transform on the live state.
	apply func(S)
	// call performs the network request.
	call func(context.Context) (R, error)
	// reconcile replaces optimistic placeholder data with the server result.
	// It is nil for deletes, where success needs no further state change.
	reconcile func(S, R)
}

// run is the snapshot/rollback protocol every mutating store operation goes
// through:
//
//  1. deep-clone the current state as the rollback snapshot
//  2. apply the optimistic transform and recompute the derived summary
//  3. register a pending operation, then perform the network call
//  4. on success, reconcile the server result into the state
//  5. on failure, restore the snapshot exactly and surface the error
//
// In both outcomes the pending operation is deregistered and the summary
// recomputed, and the error (if any) is returned to the caller after being
// shown as a toast and recorded on the store.
func run[S interface{ Clone() S }, R any](ctx context.Context, s *session[S], m mutation[S, R]) (R, error) {
	s.mu.Lock()
	s.errMsg = ""
	snapshot := s.state.Clone()
	m.apply(s.state)
	s.recompute(s.state)
	s.mu.Unlock()

	opID := s.ledger.Begin(m.op, m.entity, m.tempID, m.realID)

	result, err := m.call(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.recompute(s.state)
		s.errMsg = err.Error()
		s.mu.Unlock()

		s.ledger.End(opID)
		s.notify.ShowError(err.Error())

		s.log.Warn().
			Str("operation", m.op.String()).
			Str("entity", m.entity.String()).
			Int64("id", m.realID).
			Int64("tempId", m.tempID).
			Err(err).
			Msg("mutation rolled back")

		var zero R
		return zero, err
	}

	s.mu.Lock()
	if m.reconcile != nil {
		m.reconcile(s.state, result)
	}
	s.recompute(s.state)
	s.mu.Unlock()

	s.ledger.End(opID)

	s.log.Debug().
		Str("operation", m.op.String()).
		Str("entity", m.entity.String()).
		Int64("id", m.realID).
		Int64("tempId", m.tempID).
		Msg("mutation settled")

	return result, nil
}

// patch assigns *src to *dst when src is set. It keeps the field-patching
// transforms readable.
func patch[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
