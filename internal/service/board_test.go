package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jsquie/eighty-six/internal/model"
)

// fakeItemRepo records mutation calls in order.
type fakeItemRepo struct {
	items      []model.Item
	listErr    error
	resolveErr error

	calls      []string
	resolvedID int64
	resolvedBy string
	deletedID  int64
}

func (f *fakeItemRepo) ListUnresolved(ctx context.Context, sort model.SortField) ([]model.Item, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeItemRepo) Resolve(ctx context.Context, id int64, resolvedBy string) error {
	f.calls = append(f.calls, "resolve")
	if f.resolveErr != nil {
		return f.resolveErr
	}
	f.resolvedID = id
	f.resolvedBy = resolvedBy
	return nil
}

func (f *fakeItemRepo) Delete(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "delete")
	f.deletedID = id
	return nil
}

func (f *fakeItemRepo) Stats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"total_items": int64(len(f.items))}, nil
}

func (f *fakeItemRepo) Close() error { return nil }

func TestNewBoardServiceRequiresRepo(t *testing.T) {
	if NewBoardService(nil) != nil {
		t.Error("NewBoardService accepted a nil repository")
	}
}

func TestRecordActionSetsPendingEvent(t *testing.T) {
	svc := NewBoardService(&fakeItemRepo{})
	sess := &model.Session{ID: "s1"}

	svc.RecordAction(sess, model.ActionResolve, 42)

	if sess.Pending == nil {
		t.Fatal("no pending action recorded")
	}
	if sess.Pending.Action != model.ActionResolve || sess.Pending.ItemID != 42 {
		t.Errorf("pending = %+v", sess.Pending)
	}
}

func TestApplyPendingResolveUsesSessionIdentity(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := NewBoardService(repo)

	sess := &model.Session{ID: "s1"}
	sess.Activate(model.TokenGrant{
		User:      model.User{ID: "u1", Email: "alice@x.com"},
		ExpiresAt: time.Now().Add(time.Hour),
	})
	svc.RecordAction(sess, model.ActionResolve, 7)

	if err := svc.ApplyPending(context.Background(), sess); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
	if repo.resolvedID != 7 || repo.resolvedBy != "alice@x.com" {
		t.Errorf("resolve call = (%d, %q)", repo.resolvedID, repo.resolvedBy)
	}
	if sess.Pending != nil {
		t.Error("pending action not cleared after apply")
	}
}

func TestApplyPendingAnonymousResolver(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := NewBoardService(repo)

	sess := &model.Session{ID: "s1"}
	svc.RecordAction(sess, model.ActionResolve, 3)

	if err := svc.ApplyPending(context.Background(), sess); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
	if repo.resolvedBy != "anonymous" {
		t.Errorf("resolvedBy = %q, want anonymous", repo.resolvedBy)
	}
}

func TestApplyPendingDelete(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := NewBoardService(repo)

	sess := &model.Session{ID: "s1"}
	svc.RecordAction(sess, model.ActionDelete, 9)

	if err := svc.ApplyPending(context.Background(), sess); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
	if repo.deletedID != 9 {
		t.Errorf("deletedID = %d, want 9", repo.deletedID)
	}
}

func TestApplyPendingNoopWithoutEvent(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := NewBoardService(repo)

	if err := svc.ApplyPending(context.Background(), &model.Session{ID: "s1"}); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
	if len(repo.calls) != 0 {
		t.Errorf("repo calls = %v, want none", repo.calls)
	}
}

func TestApplyPendingClearsEventOnFailure(t *testing.T) {
	repo := &fakeItemRepo{resolveErr: errors.New("row gone")}
	svc := NewBoardService(repo)

	sess := &model.Session{ID: "s1"}
	svc.RecordAction(sess, model.ActionResolve, 1)

	if err := svc.ApplyPending(context.Background(), sess); err == nil {
		t.Fatal("ApplyPending swallowed the repository error")
	}
	if sess.Pending != nil {
		t.Error("failed mutation left the pending event in place; a reload would retry it")
	}
}

func TestMutationBeforeQueryOrdering(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := NewBoardService(repo)

	sess := &model.Session{ID: "s1"}
	svc.RecordAction(sess, model.ActionResolve, 5)

	// The render cycle applies the pending mutation first, then queries.
	if err := svc.ApplyPending(context.Background(), sess); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
	if _, err := svc.ListUnresolved(context.Background(), model.DefaultSortField); err != nil {
		t.Fatalf("ListUnresolved: %v", err)
	}

	if len(repo.calls) != 2 || repo.calls[0] != "resolve" || repo.calls[1] != "list" {
		t.Errorf("call order = %v, want [resolve list]", repo.calls)
	}
}
