// Outfitter - Contextual Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/models"
)

// Key layout:
//
//	h/<user>/<created nanos>/<id>  -> JSON HistoryRecord
//	i/<id>                         -> record key
//
// Numbers are zero padded so byte order equals numeric order, and a reverse
// scan of a user's prefix yields created_at DESC, id DESC.
const (
	recordKeyPrefix   = "h/"
	indexKeyPrefix    = "i/"
	sequenceKey       = "seq/history"
	sequenceBandwidth = 100
)

// BadgerRepository is a Repository backed by an embedded BadgerDB.
type BadgerRepository struct {
	db     *badger.DB
	seq    *badger.Sequence
	ownsDB bool
	now    func() time.Time
}

// OpenBadgerRepository opens (or creates) a BadgerDB at path. With inMemory
// set, path is ignored and nothing is written to disk.
func OpenBadgerRepository(path string, inMemory bool) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger history: %w", err)
	}
	repo, err := NewBadgerRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	repo.ownsDB = true
	return repo, nil
}

// NewBadgerRepository wraps an already open BadgerDB. The caller keeps
// ownership of db.
func NewBadgerRepository(db *badger.DB) (*BadgerRepository, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("history sequence: %w", err)
	}
	return &BadgerRepository{
		db:  db,
		seq: seq,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close releases the ID sequence and, when opened by OpenBadgerRepository,
// the database.
func (r *BadgerRepository) Close() error {
	err := r.seq.Release()
	if r.ownsDB {
		if cerr := r.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Ping reports whether the database is usable.
func (r *BadgerRepository) Ping(context.Context) error {
	if r.db.IsClosed() {
		return errors.New("badger history is closed")
	}
	return nil
}

// gcDiscardRatio is the value log discard ratio passed to RunValueLogGC.
const gcDiscardRatio = 0.5

// CollectGarbage rewrites value log files until Badger reports nothing left
// to reclaim. It is a no-op for in-memory databases.
func (r *BadgerRepository) CollectGarbage(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := r.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run value log gc: %w", err)
		}
	}
}

// InsertHistory writes the record and its ID index in one transaction.
func (r *BadgerRepository) InsertHistory(ctx context.Context, rec *models.HistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	next, err := r.seq.Next()
	if err != nil {
		return fmt.Errorf("next history id: %w", err)
	}
	// Sequences start at 0; record IDs start at 1.
	id := int64(next) + 1 //nolint:gosec // G115: sequence stays far below MaxInt64
	createdAt := r.now()

	stored := *rec
	stored.ID = id
	stored.CreatedAt = createdAt
	stored.ItemIDs = append([]int64(nil), rec.ItemIDs...)

	data, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("marshal history record: %w", err)
	}

	key := recordKey(rec.UserID, createdAt, id)
	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set history record: %w", err)
		}
		if err := txn.Set(indexKey(id), key); err != nil {
			return fmt.Errorf("set history index: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	rec.ID = id
	rec.CreatedAt = createdAt
	return nil
}

// ListHistory returns up to limit records for userID, newest first.
func (r *BadgerRepository) ListHistory(ctx context.Context, userID int64, limit int) ([]models.HistoryRecord, error) {
	records := make([]models.HistoryRecord, 0)
	if limit < 1 {
		return records, nil
	}

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = userPrefix(userID)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration must start past the last key under the prefix.
		seek := append(userPrefix(userID), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec models.HistoryRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode history record: %w", err)
			}
			records = append(records, rec)
			if len(records) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateHistoryFeedback sets feedback on one of the user's records. A record
// owned by another user is reported as ErrHistoryNotFound.
func (r *BadgerRepository) UpdateHistoryFeedback(ctx context.Context, userID, historyID int64, feedback models.Feedback, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		idx, err := txn.Get(indexKey(historyID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrHistoryNotFound
		}
		if err != nil {
			return fmt.Errorf("get history index: %w", err)
		}
		key, err := idx.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read history index: %w", err)
		}

		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrHistoryNotFound
		}
		if err != nil {
			return fmt.Errorf("get history record: %w", err)
		}

		var rec models.HistoryRecord
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return fmt.Errorf("decode history record: %w", err)
		}
		if rec.UserID != userID {
			return ErrHistoryNotFound
		}

		fb := feedback
		rec.UserFeedback = &fb
		rec.FeedbackReason = reason
		data, err := json.Marshal(&rec)
		if err != nil {
			return fmt.Errorf("marshal history record: %w", err)
		}
		return txn.Set(key, data)
	})
}

func userPrefix(userID int64) []byte {
	return []byte(fmt.Sprintf("%s%020d/", recordKeyPrefix, userID))
}

func recordKey(userID int64, createdAt time.Time, id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d/%020d/%020d", recordKeyPrefix, userID, createdAt.UnixNano(), id))
}

func indexKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", indexKeyPrefix, id))
}
