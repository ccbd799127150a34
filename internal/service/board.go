package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jsquie/eighty-six/internal/model"
	"github.com/jsquie/eighty-six/internal/repository"
)

// BoardService handles board business logic: the unresolved-item query and
// the two mutations, plus the pending-action protocol.
type BoardService struct {
	itemRepo repository.ItemRepository
}

// NewBoardService creates a new board service.
// Returns nil if itemRepo is nil (required dependency).
func NewBoardService(itemRepo repository.ItemRepository) *BoardService {
	if itemRepo == nil {
		return nil
	}
	return &BoardService{itemRepo: itemRepo}
}

// ListUnresolved returns the current board, descending by the chosen field.
func (s *BoardService) ListUnresolved(ctx context.Context, sort model.SortField) ([]model.Item, error) {
	return s.itemRepo.ListUnresolved(ctx, sort)
}

// Resolve marks an item restocked on behalf of the given identity.
func (s *BoardService) Resolve(ctx context.Context, id int64, resolvedBy string) error {
	if err := s.itemRepo.Resolve(ctx, id, resolvedBy); err != nil {
		return err
	}
	log.Printf("[BoardService] Item %d resolved by %s", id, resolvedBy)
	return nil
}

// Delete hard-deletes an item from the board.
func (s *BoardService) Delete(ctx context.Context, id int64) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[BoardService] Item %d deleted", id)
	return nil
}

// RecordAction records a (action, item id) event into the session, to be
// applied at the start of the next render cycle.
func (s *BoardService) RecordAction(sess *model.Session, action model.BoardAction, itemID int64) {
	sess.Pending = &model.PendingAction{Action: action, ItemID: itemID}
}

// ApplyPending applies and clears the session's pending mutation. It runs
// before the board query so a freshly resolved item is excluded from the
// same render's list; reversing that order would show the item as still
// unresolved for one extra cycle. The pending event is cleared whether or
// not the mutation succeeds - a failure is terminal for this attempt and
// retrying takes a new click.
func (s *BoardService) ApplyPending(ctx context.Context, sess *model.Session) error {
	pending := sess.Pending
	if pending == nil {
		return nil
	}
	sess.Pending = nil

	switch pending.Action {
	case model.ActionResolve:
		return s.Resolve(ctx, pending.ItemID, sess.Identity())
	case model.ActionDelete:
		return s.Delete(ctx, pending.ItemID)
	default:
		return fmt.Errorf("unknown pending action %q", pending.Action)
	}
}

// Stats returns board counts for the status surface.
func (s *BoardService) Stats(ctx context.Context) (map[string]interface{}, error) {
	return s.itemRepo.Stats(ctx)
}
