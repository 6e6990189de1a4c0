package schedule

import "context"

// Store keeps every generation ever published per term, plus a pointer to the
// active one. Publishing flips the pointer; history stays queryable. The
// expectedActive argument makes the flip an optimistic compare-and-swap: a
// publisher that read a stale active generation fails with
// ErrPublishConflict instead of clobbering a concurrent publish.
type Store interface {
	// ActiveGeneration returns the active generation ID for the term, or ""
	// when the term has no published schedule.
	ActiveGeneration(ctx context.Context, term Term) (string, error)

	// ActiveEntries returns the entries of the term's active generation.
	ActiveEntries(ctx context.Context, term Term) ([]Entry, error)

	// Publish stores the generation and atomically flips the term's active
	// pointer to it, provided the pointer still equals expectedActive.
	// On ErrPublishConflict nothing is stored and nothing is flipped.
	Publish(ctx context.Context, term Term, expectedActive string, generation Generation) error

	// Generations lists the term's generation history, newest first.
	Generations(ctx context.Context, term Term) ([]Generation, error)

	// EntriesByTeacher returns the teacher's active entries for the term.
	EntriesByTeacher(ctx context.Context, term Term, teacherID uint64) ([]Entry, error)

	// EntriesByRoom returns the room's active entries for the term.
	EntriesByRoom(ctx context.Context, term Term, roomID uint64) ([]Entry, error)
}
