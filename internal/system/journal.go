package system

import (
	"context"
	"time"

	"github.com/blockgo/server/internal/core/event"
	coresys "github.com/blockgo/server/internal/core/system"
	"github.com/blockgo/server/internal/persist"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JournalWriter stores a batch of lifecycle entries. *persist.JournalRepo
// implements it.
type JournalWriter interface {
	Append(ctx context.Context, entries []persist.JournalEntry) error
}

// JournalSystem records entity and client lifecycle events and writes them
// in batches every interval ticks. Phase 5 (Persist).
type JournalSystem struct {
	writer    JournalWriter
	pending   []persist.JournalEntry
	maxBatch  int
	interval  int // flush every N ticks
	tickCount int
	dropped   int
	now       func() time.Time
	log       *zap.Logger
}

func NewJournalSystem(bus *event.Bus, writer JournalWriter, intervalTicks, maxBatch int, log *zap.Logger) *JournalSystem {
	s := &JournalSystem{
		writer:   writer,
		maxBatch: maxBatch,
		interval: intervalTicks,
		now:      time.Now,
		log:      log,
	}
	event.Subscribe(bus, func(ev event.EntitySpawned) {
		s.record(persist.JournalEntry{
			Event:      persist.JournalSpawn,
			EntityID:   int32(ev.EntityID),
			EntityKind: ev.Kind,
			X:          ev.X,
			Y:          ev.Y,
			Z:          ev.Z,
		})
	})
	event.Subscribe(bus, func(ev event.EntityDespawned) {
		s.record(persist.JournalEntry{
			Event:      persist.JournalDespawn,
			EntityID:   int32(ev.EntityID),
			EntityKind: ev.Kind,
		})
	})
	event.Subscribe(bus, func(ev event.ClientJoined) {
		s.record(persist.JournalEntry{
			Event:       persist.JournalJoin,
			EntityID:    int32(ev.EntityID),
			EntityKind:  "player",
			SessionUUID: parseSessionUUID(ev.SessionUUID),
			Name:        ev.Name,
		})
	})
	event.Subscribe(bus, func(ev event.ClientLeft) {
		s.record(persist.JournalEntry{
			Event:       persist.JournalLeave,
			EntityID:    int32(ev.EntityID),
			EntityKind:  "player",
			SessionUUID: parseSessionUUID(ev.SessionUUID),
			Name:        ev.Name,
		})
	})
	return s
}

func (s *JournalSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *JournalSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Pending is the number of entries not yet written.
func (s *JournalSystem) Pending() int { return len(s.pending) }

// Flush writes everything recorded so far. Called at shutdown as well.
// A failed batch is dropped; the journal is an audit trail, not state.
func (s *JournalSystem) Flush() {
	if len(s.pending) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	batch := s.pending
	s.pending = nil
	if err := s.writer.Append(ctx, batch); err != nil {
		s.log.Error("journal write failed", zap.Int("entries", len(batch)), zap.Error(err))
		return
	}
	if s.dropped > 0 {
		s.log.Warn("journal entries dropped on overflow", zap.Int("dropped", s.dropped))
		s.dropped = 0
	}
	s.log.Debug("journal flushed", zap.Int("entries", len(batch)))
}

func (s *JournalSystem) record(e persist.JournalEntry) {
	if s.maxBatch > 0 && len(s.pending) >= s.maxBatch {
		s.dropped++
		return
	}
	e.RecordedAt = s.now()
	s.pending = append(s.pending, e)
}

func parseSessionUUID(s string) uuid.UUID {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return u
}
