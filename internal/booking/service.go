package booking

import (
	"context"

	"github.com/aslanbek/stayhub/internal/media"
)

// bookingStore abstracts reservation persistence.
type bookingStore interface {
	List(ctx context.Context, kind Kind) ([]Booking, error)
	DeleteByIDs(ctx context.Context, kind Kind, ids []string) ([]string, error)
}

// selectionClearer removes confirmed-deleted ids from selection trackers.
type selectionClearer interface {
	ClearConfirmed(scope string, ids []string)
}

// Service exposes the read/delete shape of the reservation tables. Bookings
// have no remote media counterpart, so deletion is a single relational pass
// through the cascade coordinator.
type Service struct {
	repo       bookingStore
	selections selectionClearer
}

// NewService constructs a booking service.
func NewService(repo bookingStore, selections selectionClearer) *Service {
	return &Service{repo: repo, selections: selections}
}

// List returns reservations of the kind.
func (s *Service) List(ctx context.Context, kind Kind) ([]Booking, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return s.repo.List(ctx, kind)
}

// DeleteByIDs removes reservations and clears them from any selection.
func (s *Service) DeleteByIDs(ctx context.Context, kind Kind, ids []string) (media.DeletionReport, error) {
	if !kind.Valid() {
		return media.DeletionReport{}, ErrUnknownKind
	}

	deleter := media.NewDeleter(media.DeleterOptions{
		Scope:      kind.Scope(),
		Rows:       rowAdapter{repo: s.repo, kind: kind},
		Selections: s.selections,
	})
	return deleter.Delete(ctx, media.DeletionRequest{Scope: kind.Scope(), IDs: ids})
}

type rowAdapter struct {
	repo bookingStore
	kind Kind
}

func (a rowAdapter) DeleteRows(ctx context.Context, ids []string) ([]media.DeletedRow, error) {
	matched, err := a.repo.DeleteByIDs(ctx, a.kind, ids)
	if err != nil {
		return nil, err
	}
	rows := make([]media.DeletedRow, 0, len(matched))
	for _, id := range matched {
		rows = append(rows, media.DeletedRow{ID: id})
	}
	return rows, nil
}
