// Package store maintains the in-memory mirror of one identity's persisted
// expense collection. The mirror is newest-first and is mutated only after
// the persistence collaborator confirms success, so a failure can never
// leave it diverged from server truth.
package store

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Chidesigner/Expense-tracker/internal/core"
	"github.com/Chidesigner/Expense-tracker/internal/docstore"
	"github.com/Chidesigner/Expense-tracker/internal/events"
	"github.com/Chidesigner/Expense-tracker/internal/log"
)

// clearAllParallelism caps the delete fan-out during a bulk reset.
const clearAllParallelism = 8

// Publisher emits expense mutation events after confirmed writes. A nil
// publisher disables eventing.
type Publisher interface {
	Publish(ctx context.Context, event *events.ExpenseEvent) error
}

// Store mirrors the persisted expense collection for exactly one owner.
// It is not safe for concurrent use; each session owns its store.
type Store struct {
	ownerID   string
	col       docstore.Collection
	publisher Publisher
	logger    *log.Logger

	mirror []core.Expense // newest-first
	loaded bool
}

// New creates a store scoped to ownerID. The publisher may be nil.
func New(ownerID string, col docstore.Collection, publisher Publisher, logger *log.Logger) *Store {
	return &Store{
		ownerID:   ownerID,
		col:       col,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentStore),
	}
}

// OwnerID returns the identity this store is scoped to.
func (s *Store) OwnerID() string {
	return s.ownerID
}

// Expenses returns a copy of the mirror, newest first.
func (s *Store) Expenses() []core.Expense {
	return append([]core.Expense(nil), s.mirror...)
}

// Loaded reports whether an initial Load has succeeded.
func (s *Store) Loaded() bool {
	return s.loaded
}

// Load fetches the owner's records from the collaborator and rebuilds the
// mirror, newest first (ties keep collaborator arrival order). On failure
// the previous mirror is left untouched: stale-but-available beats empty.
// Malformed documents are logged and skipped, never propagated.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	docs, err := s.col.QueryByOwner(ctx, s.ownerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Load failed, keeping previous mirror",
			log.FieldOperation, log.OpLoad, log.FieldOwnerID, s.ownerID, log.FieldError, err)
		return nil, collabErr(log.OpLoad, err)
	}

	expenses := make([]core.Expense, 0, len(docs))
	for _, doc := range docs {
		e, err := docstore.Decode(doc)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping malformed document",
				log.FieldExpenseID, doc.ID, log.FieldError, err)
			continue
		}
		expenses = append(expenses, e)
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})

	s.mirror = expenses
	s.loaded = true
	return s.Expenses(), nil
}

// Create persists a validated expense for the owner and inserts it at the
// head of the mirror; the newest-first invariant holds without a reload.
func (s *Store) Create(ctx context.Context, v core.ValidExpense) (core.Expense, error) {
	doc, err := s.col.Insert(ctx, docstore.Encode(s.ownerID, v))
	if err != nil {
		return core.Expense{}, collabErr(log.OpCreate, err)
	}
	e, err := docstore.Decode(doc)
	if err != nil {
		return core.Expense{}, collabErr(log.OpCreate, err)
	}

	s.mirror = append([]core.Expense{e}, s.mirror...)
	s.logger.InfoContext(ctx, "Expense created",
		log.FieldOperation, log.OpCreate,
		log.FieldExpenseID, e.ID,
		log.FieldOwnerID, s.ownerID,
		log.FieldCategory, string(e.Category),
		log.FieldAmount, e.Amount.Cents)
	s.publish(ctx, events.KindCreated, e.ID)
	return e, nil
}

// Update patches an owned record and updates the mirror in place,
// preserving position. ID, OwnerID and CreatedAt are untouched.
func (s *Store) Update(ctx context.Context, id string, v core.ValidExpense) (core.Expense, error) {
	i, err := s.authorize(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}

	if err := s.col.Update(ctx, id, docstore.PatchFields(v)); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return core.Expense{}, ErrNotFound
		}
		return core.Expense{}, collabErr(log.OpUpdate, err)
	}

	e := s.mirror[i]
	e.Title = v.Title
	e.Amount = v.Amount
	e.Category = v.Category
	e.Date = v.Date
	e.Notes = v.Notes
	s.mirror[i] = e

	s.logger.InfoContext(ctx, "Expense updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldExpenseID, id,
		log.FieldOwnerID, s.ownerID)
	s.publish(ctx, events.KindUpdated, id)
	return e, nil
}

// Delete removes an owned record and its mirror entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	i, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err := s.col.Delete(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return collabErr(log.OpDelete, err)
	}

	s.mirror = append(s.mirror[:i], s.mirror[i+1:]...)
	s.logger.InfoContext(ctx, "Expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldExpenseID, id,
		log.FieldOwnerID, s.ownerID)
	s.publish(ctx, events.KindDeleted, id)
	return nil
}

// ClearAll deletes every record the owner holds. On any failure the error
// is reported and the mirror is left untouched; the caller must not assume
// anything was deleted and recovers with a fresh Load.
func (s *Store) ClearAll(ctx context.Context) error {
	docs, err := s.col.QueryByOwner(ctx, s.ownerID)
	if err != nil {
		return collabErr(log.OpClearAll, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(clearAllParallelism)
	for _, doc := range docs {
		id := doc.ID
		g.Go(func() error {
			if err := s.col.Delete(gctx, id); err != nil && !errors.Is(err, docstore.ErrNotFound) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Bulk delete failed",
			log.FieldOperation, log.OpClearAll, log.FieldOwnerID, s.ownerID, log.FieldError, err)
		return collabErr(log.OpClearAll, err)
	}

	s.mirror = nil
	s.logger.InfoContext(ctx, "All expenses cleared",
		log.FieldOperation, log.OpClearAll,
		log.FieldOwnerID, s.ownerID,
		"deleted", len(docs))
	s.publish(ctx, events.KindCleared, "")
	return nil
}

// authorize confirms the acting identity owns the record before any
// mutation. Returns the mirror index on success.
func (s *Store) authorize(ctx context.Context, id string) (int, error) {
	for i, e := range s.mirror {
		if e.ID == id {
			if e.OwnerID != s.ownerID {
				// cannot happen for a scoped mirror, kept as a tripwire
				return 0, ErrNotOwner
			}
			return i, nil
		}
	}

	// Not in the mirror: either the record does not exist or it belongs to
	// someone else. Probe the collection to tell the two apart.
	doc, err := s.col.Get(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, collabErr("get", err)
	}
	if doc.OwnerID != s.ownerID {
		s.logger.WarnContext(ctx, "Cross-owner mutation rejected",
			log.FieldExpenseID, id, log.FieldOwnerID, s.ownerID)
		return 0, ErrNotOwner
	}
	return 0, ErrNotFound // owned but not mirrored; caller should reload
}

func (s *Store) publish(ctx context.Context, kind, expenseID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewExpenseEvent(kind, expenseID, s.ownerID)); err != nil {
		// eventing is best-effort, the write already succeeded
		s.logger.WarnContext(ctx, "Failed to publish expense event",
			"kind", kind, log.FieldExpenseID, expenseID, log.FieldError, err)
	}
}
