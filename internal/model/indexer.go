package model

// Indexer gives a unique SAT variable to a combination of scheduling
// attributes and vice versa. Indices start at 1 and are contiguous, matching
// DIMACS literal numbering.
type Indexer interface {
	// Returns the SAT variable for a (course, room, slot, teacher) combination
	Index(course, room, slot, teacher uint64) uint64
	// Returns the (course, room, slot, teacher) combination behind a SAT variable
	Attributes(index uint64) (course uint64, room uint64, slot uint64, teacher uint64)
}

func NewIndexer(courses, rooms, slots, teachers uint64) Indexer {
	return &sortedIndexer{
		courses:  courses,
		rooms:    rooms,
		slots:    slots,
		teachers: teachers,
	}
}

type sortedIndexer struct {
	courses  uint64
	rooms    uint64
	slots    uint64
	teachers uint64
}

func (i *sortedIndexer) Index(course, room, slot, teacher uint64) uint64 {
	return 1 + course + i.courses*(room) + i.courses*i.rooms*(slot) + i.courses*i.rooms*i.slots*(teacher)
}

func (i *sortedIndexer) Attributes(index uint64) (course uint64, room uint64, slot uint64, teacher uint64) {
	index--

	course = index % i.courses
	index = index / i.courses

	room = index % i.rooms
	index = index / i.rooms

	slot = index % i.slots
	index = index / i.slots

	teacher = index % i.teachers

	return course, room, slot, teacher
}
