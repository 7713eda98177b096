package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncruces/go-sqlite3"

	"github.com/bnema/tabnav/internal/domain/repository"
	"github.com/bnema/tabnav/internal/logging"
)

// StateSlotRepository is a repository.StateSlot over the state_slots table.
// Every row records which instance wrote it so pollers can skip their own writes.
type StateSlotRepository struct {
	db           *sql.DB
	instanceID   string
	maxBytes     int64
	pollInterval time.Duration
}

var _ repository.StateSlot = (*StateSlotRepository)(nil)

// NewStateSlotRepository creates a slot repository. maxBytes of zero means unlimited.
func NewStateSlotRepository(db *sql.DB, instanceID string, maxBytes int64, pollInterval time.Duration) *StateSlotRepository {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &StateSlotRepository{
		db:           db,
		instanceID:   instanceID,
		maxBytes:     maxBytes,
		pollInterval: pollInterval,
	}
}

const (
	getSlotQuery = `SELECT value FROM state_slots WHERE key = ? AND deleted = 0`

	upsertSlotQuery = `
INSERT INTO state_slots (key, value, writer, revision, deleted, updated_at)
VALUES (?, ?, ?, 1, 0, ?)
ON CONFLICT (key) DO UPDATE SET
    value      = excluded.value,
    writer     = excluded.writer,
    revision   = state_slots.revision + 1,
    deleted    = 0,
    updated_at = excluded.updated_at`

	// removal leaves a tombstone so pollers see a new revision
	removeSlotQuery = `
UPDATE state_slots
SET value = '', writer = ?, revision = revision + 1, deleted = 1, updated_at = ?
WHERE key = ? AND deleted = 0`

	revisionQuery = `SELECT value, writer, revision, deleted FROM state_slots WHERE key = ?`
)

func (r *StateSlotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, getSlotQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get state slot: %w", err)
	}
	return value, true, nil
}

func (r *StateSlotRepository) Set(ctx context.Context, key, value string) error {
	if r.maxBytes > 0 && int64(len(value)) > r.maxBytes {
		return fmt.Errorf("state slot %q: %d bytes over %d byte limit: %w",
			key, len(value), r.maxBytes, repository.ErrQuotaExceeded)
	}

	logging.FromContext(ctx).Trace().Str("key", key).Int("bytes", len(value)).Msg("upserting state slot")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin state slot transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			logging.FromContext(ctx).Debug().Err(rollbackErr).Msg("state slot rollback reported non-terminal error")
		}
	}()

	if _, err := tx.ExecContext(ctx, upsertSlotQuery, key, value, r.instanceID, time.Now().UnixMilli()); err != nil {
		return mapWriteError(fmt.Errorf("upsert state slot: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return mapWriteError(fmt.Errorf("commit state slot transaction: %w", err))
	}
	return nil
}

func (r *StateSlotRepository) Remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, removeSlotQuery, r.instanceID, time.Now().UnixMilli(), key); err != nil {
		return fmt.Errorf("remove state slot: %w", err)
	}
	return nil
}

type slotRevision struct {
	value    string
	writer   string
	revision int64
	deleted  bool
}

func (r *StateSlotRepository) revision(ctx context.Context, key string) (slotRevision, error) {
	var rev slotRevision
	err := r.db.QueryRowContext(ctx, revisionQuery, key).Scan(&rev.value, &rev.writer, &rev.revision, &rev.deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return slotRevision{}, nil
	}
	return rev, err
}

// mapWriteError turns SQLITE_FULL into ErrQuotaExceeded.
func mapWriteError(err error) error {
	if errors.Is(err, sqlite3.FULL) {
		return fmt.Errorf("%w: %w", repository.ErrQuotaExceeded, err)
	}
	return err
}
