package platform

import "sync"

// Session holds the process-wide evaluation state: the last non-null result
// and the last submitted code. One Session lives for the lifetime of its
// engine; there is no teardown.
//
// The engine serializes whole evaluations, so at most one writer is active at
// a time. The mutex here additionally keeps the individual accessors safe for
// callers outside that serialization (status commands, tests).
type Session struct {
	mu             sync.Mutex
	lastResult     Value
	lastSubmission string
	hasSubmission  bool
}

func NewSession() *Session {
	return &Session{}
}

// RecordSubmission stores the raw body of a fresh top-level evaluation.
// Retries never call this.
func (s *Session) RecordSubmission(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSubmission = code
	s.hasSubmission = true
}

// RecordResult overwrites the last result with v, unless v is null. A null
// value leaves the prior result untouched, so the `_` binding always holds
// the last non-null result rather than the last attempt.
func (s *Session) RecordResult(v Value) {
	if v == nil || v.IsNone() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = v
}

// LastResult returns the most recent non-null produced value, or nil.
func (s *Session) LastResult() Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// LastSubmission returns the most recently evaluated submission body, and
// whether one has been recorded yet.
func (s *Session) LastSubmission() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSubmission, s.hasSubmission
}
