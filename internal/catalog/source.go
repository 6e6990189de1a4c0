package catalog

import "context"

// Source supplies the read-only catalog snapshot a generation run starts
// from. The catalog itself is maintained elsewhere; the scheduler only reads.
type Source interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type staticSource struct {
	snapshot Snapshot
}

// NewStaticSource wraps a fixed snapshot, e.g. one loaded from a JSON file.
func NewStaticSource(snapshot Snapshot) Source {
	return &staticSource{snapshot: snapshot}
}

func (s *staticSource) Snapshot(context.Context) (Snapshot, error) {
	return s.snapshot, nil
}
