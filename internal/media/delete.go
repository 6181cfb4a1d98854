package media

import (
	"context"
	"fmt"

	"github.com/aslanbek/stayhub/internal/metrics"
)

// rowDeleter removes relational rows for the requested identifiers in one
// batched statement and reports which matched, along with the object keys
// each deleted row referenced.
type rowDeleter interface {
	DeleteRows(ctx context.Context, ids []string) ([]DeletedRow, error)
}

// objectRemover deletes remote objects and reports per-key outcomes.
type objectRemover interface {
	Remove(ctx context.Context, folder string, keys []string) (RemovalOutcome, error)
}

// selectionClearer removes confirmed-deleted identifiers from any selection
// tracking the scope.
type selectionClearer interface {
	ClearConfirmed(scope string, ids []string)
}

// Deleter performs the two-phase cascade: relational rows strictly first,
// remote objects second. A remote failure after the row is gone produces an
// orphan report, never a failed operation, because the relational deletion is
// authoritative for product correctness.
type Deleter struct {
	scope       string
	folder      string
	rows        rowDeleter
	objects     objectRemover
	selections  selectionClearer
	invalidator cacheInvalidator
}

// DeleterOptions wires one deletion target. Rows is nil for targets that
// exist only in the asset store; Objects is nil for purely relational ones.
type DeleterOptions struct {
	Scope       string
	Folder      string
	Rows        rowDeleter
	Objects     objectRemover
	Selections  selectionClearer
	Invalidator cacheInvalidator
}

// NewDeleter constructs a cascading deletion coordinator for one target.
func NewDeleter(opts DeleterOptions) *Deleter {
	return &Deleter{
		scope:       opts.Scope,
		folder:      opts.Folder,
		rows:        opts.Rows,
		objects:     opts.Objects,
		selections:  opts.Selections,
		invalidator: opts.Invalidator,
	}
}

// Delete removes every identifier in the request from both stores. Requested
// identifiers that exist in neither store land in NotFound, which is not an
// error. A request carrying a foreign scope or an empty identifier set is
// rejected before any store is touched.
func (d *Deleter) Delete(ctx context.Context, req DeletionRequest) (DeletionReport, error) {
	if req.Scope != d.scope {
		return DeletionReport{}, fmt.Errorf("%w: request for %q reached deleter for %q", ErrScopeMismatch, req.Scope, d.scope)
	}
	if len(req.IDs) == 0 {
		return DeletionReport{}, ErrEmptyDeletion
	}

	var report DeletionReport
	var err error
	if d.rows != nil {
		report, err = d.deleteWithRows(ctx, req.IDs)
	} else {
		report, err = d.deleteObjectsOnly(ctx, req.IDs)
	}
	if err != nil {
		return DeletionReport{}, err
	}

	for range report.Deleted {
		metrics.CountDelete(d.scope, "deleted")
	}
	for range report.Orphaned {
		metrics.CountDelete(d.scope, "orphaned")
	}

	confirmed := report.Confirmed()
	if len(confirmed) > 0 {
		if d.selections != nil {
			d.selections.ClearConfirmed(d.scope, confirmed)
		}
		if d.invalidator != nil && d.folder != "" {
			d.invalidator.Invalidate(d.folder)
		}
	}

	return report, nil
}

func (d *Deleter) deleteWithRows(ctx context.Context, ids []string) (DeletionReport, error) {
	deletedRows, err := d.rows.DeleteRows(ctx, ids)
	if err != nil {
		return DeletionReport{}, fmt.Errorf("delete rows for %s: %w", d.scope, err)
	}

	matched := make(map[string][]string, len(deletedRows))
	for _, row := range deletedRows {
		matched[row.ID] = row.ObjectKeys
	}

	var report DeletionReport
	for _, id := range ids {
		keys, ok := matched[id]
		if !ok {
			report.NotFound = append(report.NotFound, id)
			continue
		}
		if d.objects == nil || len(keys) == 0 {
			report.Deleted = append(report.Deleted, id)
			continue
		}

		outcome, err := d.objects.Remove(ctx, d.folder, keys)
		if err != nil || len(outcome.Failed) > 0 {
			// the row is already gone; the remote leftovers are orphans
			report.Orphaned = append(report.Orphaned, id)
			continue
		}
		report.Deleted = append(report.Deleted, id)
	}
	return report, nil
}

func (d *Deleter) deleteObjectsOnly(ctx context.Context, ids []string) (DeletionReport, error) {
	outcome, err := d.objects.Remove(ctx, d.folder, ids)
	if err != nil {
		return DeletionReport{}, fmt.Errorf("remove objects for %s: %w", d.scope, err)
	}
	return DeletionReport{
		Deleted:  outcome.Removed,
		NotFound: outcome.NotFound,
		Failed:   outcome.Failed,
	}, nil
}
