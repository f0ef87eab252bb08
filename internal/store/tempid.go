package store

import "sync/atomic"

// TempIDSource issues placeholder IDs for entities created client-side
// before the server has assigned a real ID. The sequence is strictly
// decreasing starting at -1 and shared across all entity kinds, so a temp ID
// is unique in the whole process and can never collide with a real,
// always-positive ID.
//
// The counter is not persisted. Temp IDs never outlive the process, they are
// replaced during reconciliation.
type TempIDSource struct {
	last atomic.Int64
}

// Next returns the next temporary ID.
func (s *TempIDSource) Next() int64 {
	return s.last.Add(-1)
}

// IsTemp reports whether id is a temporary placeholder ID.
func IsTemp(id int64) bool {
	return id < 0
}
