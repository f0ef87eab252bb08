package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Operation is one in-flight mutation. TempID is set for creates, RealID for
// updates and deletes; a create that has both was already reconciled.
type Operation struct {
	Kind      OperationKind
	Entity    EntityKind
	TempID    int64
	RealID    int64
	Timestamp time.Time
}

// Ledger is the process-wide registry of in-flight mutations. It exists so
// the UI can answer "is this entity currently syncing" and disable controls
// accordingly. Entries live exactly from Begin to End and are never
// persisted.
type Ledger struct {
	mu  sync.Mutex
	ops map[uuid.UUID]Operation
}

func NewLedger() *Ledger {
	return &Ledger{
		ops: make(map[uuid.UUID]Operation),
	}
}

// Begin registers a pending operation and returns its ID. Operation IDs are
// freshly generated, so no call can overwrite another.
func (l *Ledger) Begin(kind OperationKind, entity EntityKind, tempID, realID int64) uuid.UUID {
	id := uuid.New()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.ops[id] = Operation{
		Kind:      kind,
		Entity:    entity,
		TempID:    tempID,
		RealID:    realID,
		Timestamp: time.Now(),
	}

	return id
}

// End removes a pending operation. Ending an operation twice is harmless.
func (l *Ledger) End(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.ops, id)
}

// IsSyncing reports whether any pending operation references the entity,
// by either its temporary or its real ID.
func (l *Ledger) IsSyncing(entity EntityKind, id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, op := range l.ops {
		if op.Entity == entity && (op.TempID == id || op.RealID == id) {
			return true
		}
	}

	return false
}

// HasPending reports whether any mutation is currently in flight.
func (l *Ledger) HasPending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.ops) > 0
}
