package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Journal event names.
const (
	JournalSpawn   = "spawn"
	JournalDespawn = "despawn"
	JournalJoin    = "join"
	JournalLeave   = "leave"
)

// JournalEntry is one entity or client lifecycle record. It is an audit
// trail only; nothing reads it back into the world.
type JournalEntry struct {
	Event       string
	EntityID    int32
	EntityKind  string
	SessionUUID uuid.UUID // uuid.Nil for non-player events
	Name        string
	X, Y, Z     int32
	RecordedAt  time.Time
}

type JournalRepo struct {
	db *DB
}

func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

const insertJournal = `INSERT INTO entity_journal
	(event, entity_id, entity_kind, session_uuid, name, x, y, z, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// Append writes a batch of entries in a single transaction.
func (r *JournalRepo) Append(ctx context.Context, entries []JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertJournal, journalArgs(e)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("journal insert: %w", err)
	}
	return tx.Commit(ctx)
}

// Prune deletes entries older than the cutoff and returns how many went.
func (r *JournalRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM entity_journal WHERE recorded_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("journal prune: %w", err)
	}
	return tag.RowsAffected(), nil
}

func journalArgs(e JournalEntry) []any {
	return []any{
		e.Event,
		e.EntityID,
		e.EntityKind,
		sessionUUID(e.SessionUUID),
		e.Name,
		e.X, e.Y, e.Z,
		e.RecordedAt,
	}
}

func sessionUUID(u uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: u, Valid: u != uuid.Nil}
}
