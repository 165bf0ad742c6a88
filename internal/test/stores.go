package test

import (
	"context"
	"encoding/json"
	"sync"
)

// RecordStoreStub keeps record sets in memory and records every save so
// tests can assert persistence behaviour.
type RecordStoreStub struct {
	LoadFn func(context.Context, string) (map[string]json.RawMessage, error)
	SaveFn func(context.Context, string, map[string]json.RawMessage) error

	mu        sync.Mutex
	Sets      map[string]map[string]json.RawMessage
	SaveCalls []string
	LoadErr   error
	SaveErr   error
}

// NewRecordStoreStub constructs a stub with initialized sets.
func NewRecordStoreStub() *RecordStoreStub {
	return &RecordStoreStub{Sets: make(map[string]map[string]json.RawMessage)}
}

// Load returns a copy of the stored set, or an empty mapping.
func (s *RecordStoreStub) Load(ctx context.Context, set string) (map[string]json.RawMessage, error) {
	if s.LoadFn != nil {
		return s.LoadFn(ctx, set)
	}
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]json.RawMessage, len(s.Sets[set]))
	for k, v := range s.Sets[set] {
		out[k] = v
	}
	return out, nil
}

// Save stores a copy of the mapping and tracks the call.
func (s *RecordStoreStub) Save(ctx context.Context, set string, records map[string]json.RawMessage) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, set, records)
	}
	if s.SaveErr != nil {
		return s.SaveErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Sets == nil {
		s.Sets = make(map[string]map[string]json.RawMessage)
	}
	stored := make(map[string]json.RawMessage, len(records))
	for k, v := range records {
		stored[k] = append(json.RawMessage(nil), v...)
	}
	s.Sets[set] = stored
	s.SaveCalls = append(s.SaveCalls, set)
	return nil
}

// Saves reports how many times the given set was saved.
func (s *RecordStoreStub) Saves(set string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, call := range s.SaveCalls {
		if call == set {
			n++
		}
	}
	return n
}
