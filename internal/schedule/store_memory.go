package schedule

import (
	"context"
	"sync"

	"github.com/samber/lo"
)

// MemoryStore is the in-process Store used by tests and single-node setups.
type MemoryStore struct {
	mu    sync.RWMutex
	terms map[Term]*termState
}

type termState struct {
	active      string
	generations map[string]Generation
	order       []string // publish order, oldest first
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{terms: make(map[Term]*termState)}
}

func (s *MemoryStore) ActiveGeneration(_ context.Context, term Term) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.terms[term]
	if !ok {
		return "", nil
	}
	return state.active, nil
}

func (s *MemoryStore) ActiveEntries(_ context.Context, term Term) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeEntriesLocked(term), nil
}

func (s *MemoryStore) Publish(_ context.Context, term Term, expectedActive string, generation Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.terms[term]
	if !ok {
		state = &termState{generations: make(map[string]Generation)}
		s.terms[term] = state
	}

	if state.active != expectedActive {
		return ErrPublishConflict
	}

	// Deep-copy so the caller cannot mutate stored history afterwards.
	stored := generation
	stored.Entries = make([]Entry, len(generation.Entries))
	copy(stored.Entries, generation.Entries)

	state.generations[stored.ID] = stored
	state.order = append(state.order, stored.ID)
	state.active = stored.ID
	return nil
}

func (s *MemoryStore) Generations(_ context.Context, term Term) ([]Generation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.terms[term]
	if !ok {
		return nil, nil
	}

	generations := make([]Generation, 0, len(state.order))
	for i := len(state.order) - 1; i >= 0; i-- {
		generation := state.generations[state.order[i]]
		entries := make([]Entry, len(generation.Entries))
		copy(entries, generation.Entries)
		for j := range entries {
			// Superseded generations report their entries as inactive.
			entries[j].IsActive = generation.ID == state.active
		}
		generation.Entries = entries
		generations = append(generations, generation)
	}
	return generations, nil
}

func (s *MemoryStore) EntriesByTeacher(_ context.Context, term Term, teacherID uint64) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Filter(s.activeEntriesLocked(term), func(entry Entry, _ int) bool {
		return entry.TeacherID == teacherID
	}), nil
}

func (s *MemoryStore) EntriesByRoom(_ context.Context, term Term, roomID uint64) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Filter(s.activeEntriesLocked(term), func(entry Entry, _ int) bool {
		return entry.RoomID == roomID
	}), nil
}

func (s *MemoryStore) activeEntriesLocked(term Term) []Entry {
	state, ok := s.terms[term]
	if !ok || state.active == "" {
		return nil
	}

	generation := state.generations[state.active]
	entries := make([]Entry, len(generation.Entries))
	copy(entries, generation.Entries)
	return entries
}
