package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classmesh/timetabler/internal/model"
)

// Materializer turns a feasible solver result into the term's active
// schedule. It is the only component that mutates persisted schedule state.
type Materializer struct {
	store  Store
	logger *zap.Logger
}

func NewMaterializer(store Store, logger *zap.Logger) *Materializer {
	return &Materializer{store: store, logger: logger}
}

// Publish atomically replaces the term's active schedule with the given
// assignments. The previously active generation stays intact in history; on
// any failure, including a lost publish race, it also stays active.
//
// Publishing is idempotent: when the assignments equal the currently active
// entry set, no new generation is created and the active one is returned.
func (m *Materializer) Publish(ctx context.Context, term Term, assignments []model.Assignment) (Generation, error) {
	entries := EntriesFromAssignments(term, assignments)

	expectedActive, err := m.store.ActiveGeneration(ctx, term)
	if err != nil {
		return Generation{}, fmt.Errorf("reading active generation: %w", err)
	}

	if expectedActive != "" {
		activeEntries, err := m.store.ActiveEntries(ctx, term)
		if err != nil {
			return Generation{}, fmt.Errorf("reading active entries: %w", err)
		}
		if SameEntrySet(activeEntries, entries) {
			m.logger.Info("assignment already published, skipping",
				zap.String("term", term.String()),
				zap.String("generation", expectedActive))
			return Generation{ID: expectedActive, Year: term.AcademicYear, Semester: term.Semester, Entries: activeEntries}, nil
		}
	}

	generation := Generation{
		ID:        uuid.NewString(),
		Year:      term.AcademicYear,
		Semester:  term.Semester,
		CreatedAt: time.Now().UTC(),
		Entries:   entries,
	}
	for i := range generation.Entries {
		generation.Entries[i].GenerationID = generation.ID
	}

	if err := m.store.Publish(ctx, term, expectedActive, generation); err != nil {
		return Generation{}, err
	}

	m.logger.Info("schedule published",
		zap.String("term", term.String()),
		zap.String("generation", generation.ID),
		zap.String("superseded", expectedActive),
		zap.Int("entries", len(generation.Entries)))
	return generation, nil
}
