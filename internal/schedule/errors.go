package schedule

import "errors"

var (
	// ErrPublishConflict: another generation run published for the same term
	// between this run's read and its publish. The active set is untouched;
	// retrying against the new active generation is safe.
	ErrPublishConflict = errors.New("schedule was published concurrently, retry against the new active generation")

	// ErrNoActiveSchedule: the term has no published schedule.
	ErrNoActiveSchedule = errors.New("no active schedule for the term")
)
