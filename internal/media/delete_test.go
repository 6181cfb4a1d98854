package media

import (
	"context"
	"errors"
	"testing"
)

type fakeRows struct {
	rows    map[string][]string
	calls   int
	order   *[]string
	deleted [][]string
	err     error
}

func (f *fakeRows) DeleteRows(ctx context.Context, ids []string) ([]DeletedRow, error) {
	f.calls++
	if f.order != nil {
		*f.order = append(*f.order, "rows")
	}
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, ids)
	var out []DeletedRow
	for _, id := range ids {
		if keys, ok := f.rows[id]; ok {
			out = append(out, DeletedRow{ID: id, ObjectKeys: keys})
		}
	}
	return out, nil
}

type fakeObjects struct {
	missing map[string]bool
	failing map[string]bool
	order   *[]string
	removed []string
	err     error
}

func (f *fakeObjects) Remove(ctx context.Context, folder string, keys []string) (RemovalOutcome, error) {
	if f.order != nil {
		*f.order = append(*f.order, "objects")
	}
	if f.err != nil {
		return RemovalOutcome{}, f.err
	}
	var out RemovalOutcome
	for _, key := range keys {
		switch {
		case f.missing[key]:
			out.NotFound = append(out.NotFound, key)
		case f.failing[key]:
			out.Failed = append(out.Failed, key)
		default:
			f.removed = append(f.removed, key)
			out.Removed = append(out.Removed, key)
		}
	}
	return out, nil
}

type fakeSelections struct {
	scope   string
	cleared []string
}

func (f *fakeSelections) ClearConfirmed(scope string, ids []string) {
	f.scope = scope
	f.cleared = append(f.cleared, ids...)
}

func TestDeleteRemovesRowsBeforeObjects(t *testing.T) {
	var order []string
	rows := &fakeRows{rows: map[string][]string{"101": {"hotel-rooms/a"}}, order: &order}
	objects := &fakeObjects{order: &order}
	deleter := NewDeleter(DeleterOptions{Scope: "rooms", Folder: "hotel-rooms", Rows: rows, Objects: objects})

	report, err := deleter.Delete(context.Background(), DeletionRequest{Scope: "rooms", IDs: []string{"101"}})
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if len(order) < 2 || order[0] != "rows" {
		t.Fatalf("rows must be deleted before objects, got order %v", order)
	}
	if len(report.Deleted) != 1 || report.Deleted[0] != "101" {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(objects.removed) != 1 || objects.removed[0] != "hotel-rooms/a" {
		t.Fatalf("expected object key removal, got %v", objects.removed)
	}
}

func TestDeleteRowFailureStopsCascade(t *testing.T) {
	rows := &fakeRows{err: errors.New("deadlock")}
	objects := &fakeObjects{}
	deleter := NewDeleter(DeleterOptions{Scope: "rooms", Rows: rows, Objects: objects})

	_, err := deleter.Delete(context.Background(), DeletionRequest{Scope: "rooms", IDs: []string{"101"}})
	if err == nil {
		t.Fatalf("expected error when row deletion fails")
	}
	if len(objects.removed) != 0 {
		t.Fatalf("no object may be touched when rows failed, got %v", objects.removed)
	}
}

func TestDeleteReportsMissingIdentifiers(t *testing.T) {
	rows := &fakeRows{rows: map[string][]string{"101": {"hotel-rooms/a"}}}
	objects := &fakeObjects{}
	deleter := NewDeleter(DeleterOptions{Scope: "rooms", Folder: "hotel-rooms", Rows: rows, Objects: objects})

	report, err := deleter.Delete(context.Background(), DeletionRequest{Scope: "rooms", IDs: []string{"101", "404", "500"}})
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if len(report.Deleted) != 1 {
		t.Fatalf("expected 1 deleted, got %+v", report)
	}
	if len(report.NotFound) != 2 {
		t.Fatalf("missing identifiers are reported, not errors: %+v", report)
	}
}

func TestDeleteOrphansWhenRemoteRemovalFails(t *testing.T) {
	rows := &fakeRows{rows: map[string][]string{
		"101": {"hotel-rooms/a"},
		"102": {"hotel-rooms/b"},
	}}
	objects := &fakeObjects{failing: map[string]bool{"hotel-rooms/b": true}}
	selections := &fakeSelections{}
	deleter := NewDeleter(DeleterOptions{Scope: "rooms", Folder: "hotel-rooms", Rows: rows, Objects: objects, Selections: selections})

	report, err := deleter.Delete(context.Background(), DeletionRequest{Scope: "rooms", IDs: []string{"101", "102"}})
	if err != nil {
		t.Fatalf("the relational deletion is authoritative, remote failure must not error: %v", err)
	}

	if len(report.Deleted) != 1 || report.Deleted[0] != "101" {
		t.Fatalf("unexpected deleted set: %+v", report)
	}
	if len(report.Orphaned) != 1 || report.Orphaned[0] != "102" {
		t.Fatalf("remote leftover must be reported as orphaned: %+v", report)
	}
	if len(selections.cleared) != 2 {
		t.Fatalf("orphans count as confirmed for selections, got %v", selections.cleared)
	}
}

func TestDeleteForeignScopeIsRejected(t *testing.T) {
	rows := &fakeRows{rows: map[string][]string{"101": {"hotel-rooms/a"}}}
	objects := &fakeObjects{}
	selections := &fakeSelections{}
	deleter := NewDeleter(DeleterOptions{Scope: "rooms", Folder: "hotel-rooms", Rows: rows, Objects: objects, Selections: selections})

	_, err := deleter.Delete(context.Background(), DeletionRequest{Scope: "events", IDs: []string{"101"}})
	if !errors.Is(err, ErrScopeMismatch) {
		t.Fatalf("expected ErrScopeMismatch, got %v", err)
	}
	if rows.calls != 0 || len(objects.removed) != 0 {
		t.Fatalf("a mismatched request must not reach any store")
	}
	if len(selections.cleared) != 0 {
		t.Fatalf("a mismatched request must not touch selections")
	}
}

func TestDeleteEmptySetIsRejected(t *testing.T) {
	rows := &fakeRows{}
	deleter := NewDeleter(DeleterOptions{Scope: "rooms", Rows: rows})

	_, err := deleter.Delete(context.Background(), DeletionRequest{Scope: "rooms"})
	if !errors.Is(err, ErrEmptyDeletion) {
		t.Fatalf("expected ErrEmptyDeletion, got %v", err)
	}
	if rows.calls != 0 {
		t.Fatalf("empty request must not reach any store")
	}
}

func TestDeleteObjectsOnlyTarget(t *testing.T) {
	objects := &fakeObjects{missing: map[string]bool{"hotel/gone": true}}
	selections := &fakeSelections{}
	invalidator := &fakeInvalidator{}
	deleter := NewDeleter(DeleterOptions{
		Scope:       "media:hotel",
		Folder:      "hotel",
		Objects:     objects,
		Selections:  selections,
		Invalidator: invalidator,
	})

	report, err := deleter.Delete(context.Background(), DeletionRequest{
		Scope: "media:hotel",
		IDs:   []string{"hotel/a", "hotel/gone"},
	})
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if len(report.Deleted) != 1 || report.Deleted[0] != "hotel/a" {
		t.Fatalf("unexpected deleted set: %+v", report)
	}
	if len(report.NotFound) != 1 {
		t.Fatalf("unexpected notFound set: %+v", report)
	}
	if selections.scope != "media:hotel" || len(selections.cleared) != 1 {
		t.Fatalf("confirmed deletions must clear selections, got %q %v", selections.scope, selections.cleared)
	}
	if len(invalidator.folders) != 1 || invalidator.folders[0] != "hotel" {
		t.Fatalf("confirmed deletions must invalidate the folder cache, got %v", invalidator.folders)
	}
}

func TestDeleteNothingConfirmedLeavesSelectionsAlone(t *testing.T) {
	rows := &fakeRows{rows: map[string][]string{}}
	selections := &fakeSelections{}
	invalidator := &fakeInvalidator{}
	deleter := NewDeleter(DeleterOptions{
		Scope:       "rooms",
		Folder:      "hotel-rooms",
		Rows:        rows,
		Selections:  selections,
		Invalidator: invalidator,
	})

	report, err := deleter.Delete(context.Background(), DeletionRequest{Scope: "rooms", IDs: []string{"404"}})
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(report.NotFound) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(selections.cleared) != 0 {
		t.Fatalf("nothing confirmed, selections must be untouched")
	}
	if len(invalidator.folders) != 0 {
		t.Fatalf("nothing confirmed, cache must be untouched")
	}
}
