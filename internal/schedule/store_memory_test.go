package schedule

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTerm = Term{AcademicYear: "2025-2026", Semester: 1}

func generationWith(entries ...Entry) Generation {
	id := uuid.NewString()
	for i := range entries {
		entries[i].GenerationID = id
	}
	return Generation{
		ID:       id,
		Year:     testTerm.AcademicYear,
		Semester: testTerm.Semester,
		Entries:  entries,
	}
}

func TestMemoryStorePublishAndRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	active, err := store.ActiveGeneration(ctx, testTerm)
	require.NoError(t, err)
	assert.Empty(t, active)

	generation := generationWith(
		activeEntry(101, 7, 1, 11),
		activeEntry(102, 8, 2, 11),
	)
	require.NoError(t, store.Publish(ctx, testTerm, "", generation))

	active, err = store.ActiveGeneration(ctx, testTerm)
	require.NoError(t, err)
	assert.Equal(t, generation.ID, active)

	entries, err := store.ActiveEntries(ctx, testTerm)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMemoryStorePublishConflict(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := generationWith(activeEntry(101, 7, 1, 11))
	require.NoError(t, store.Publish(ctx, testTerm, "", first))

	// A second publisher that still believes no schedule is active loses.
	stale := generationWith(activeEntry(101, 8, 2, 12))
	err := store.Publish(ctx, testTerm, "", stale)
	assert.ErrorIs(t, err, ErrPublishConflict)

	// The active set is untouched by the failed publish.
	entries, err := store.ActiveEntries(ctx, testTerm)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(7), entries[0].TeacherID)

	// Retrying against the real active generation succeeds.
	require.NoError(t, store.Publish(ctx, testTerm, first.ID, stale))
}

func TestMemoryStoreHistoryPreserved(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := generationWith(activeEntry(101, 7, 1, 11))
	require.NoError(t, store.Publish(ctx, testTerm, "", first))
	second := generationWith(activeEntry(101, 8, 2, 12))
	require.NoError(t, store.Publish(ctx, testTerm, first.ID, second))

	generations, err := store.Generations(ctx, testTerm)
	require.NoError(t, err)
	require.Len(t, generations, 2)

	// Newest first; only the active generation's entries report active.
	assert.Equal(t, second.ID, generations[0].ID)
	assert.True(t, generations[0].Entries[0].IsActive)
	assert.Equal(t, first.ID, generations[1].ID)
	assert.False(t, generations[1].Entries[0].IsActive)
}

func TestMemoryStoreQueries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	generation := generationWith(
		activeEntry(101, 7, 1, 11),
		activeEntry(102, 8, 2, 11),
		activeEntry(103, 7, 2, 12),
	)
	require.NoError(t, store.Publish(ctx, testTerm, "", generation))

	byTeacher, err := store.EntriesByTeacher(ctx, testTerm, 7)
	require.NoError(t, err)
	assert.Len(t, byTeacher, 2)

	byRoom, err := store.EntriesByRoom(ctx, testTerm, 2)
	require.NoError(t, err)
	assert.Len(t, byRoom, 2)

	otherTerm := Term{AcademicYear: "2026-2027", Semester: 2}
	byTeacher, err = store.EntriesByTeacher(ctx, otherTerm, 7)
	require.NoError(t, err)
	assert.Empty(t, byTeacher)
}

func TestMemoryStoreTermsIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Publish(ctx, testTerm, "", generationWith(activeEntry(101, 7, 1, 11))))

	otherTerm := Term{AcademicYear: testTerm.AcademicYear, Semester: 2}
	entries, err := store.ActiveEntries(ctx, otherTerm)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
