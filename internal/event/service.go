package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/aslanbek/stayhub/internal/media"
	"github.com/google/uuid"
)

const mediaFolder = "events"

// Scope identifies event selections and deletions.
const Scope = "events"

type eventStore interface {
	Create(ctx context.Context, ev Event) (Event, error)
	List(ctx context.Context) ([]Event, error)
	DeleteByIDs(ctx context.Context, ids []string) ([]Event, error)
}

type batchIngestor interface {
	Ingest(ctx context.Context, folder string, files []media.BatchFile, shared map[string]string, tags []string) (media.BatchResult, error)
}

// urlResolver signs delivery URLs for stored object keys.
type urlResolver interface {
	URL(ctx context.Context, key string) (string, error)
}

// Service manages promotional events: one ingestion batch, one event row.
type Service struct {
	repo    eventStore
	ingest  batchIngestor
	urls    urlResolver
	deleter *media.Deleter
}

// NewService constructs an event service.
func NewService(repo eventStore, ingest batchIngestor, urls urlResolver, deleter *media.Deleter) *Service {
	return &Service{repo: repo, ingest: ingest, urls: urls, deleter: deleter}
}

// CreateInput carries one event-creation batch.
type CreateInput struct {
	Name        string
	Date        string
	Time        string
	Description string
	Files       []media.BatchFile
}

// CreateResult bundles the created event with per-file upload outcomes.
type CreateResult struct {
	Event       Event
	FailedFiles []media.FailedFile
}

// Create validates and uploads the banner batch, then inserts the event row
// backed by the batch's primary asset.
func (s *Service) Create(ctx context.Context, input CreateInput) (CreateResult, error) {
	shared := map[string]string{
		"name":        strings.TrimSpace(input.Name),
		"date":        strings.TrimSpace(input.Date),
		"time":        strings.TrimSpace(input.Time),
		"description": strings.TrimSpace(input.Description),
	}

	result, err := s.ingest.Ingest(ctx, mediaFolder, input.Files, shared, nil)
	if err != nil {
		return CreateResult{}, err
	}

	primary, ok := result.Primary()
	if !ok {
		return CreateResult{}, media.ErrAllUploadsFailed
	}

	var galleryKeys, galleryURLs []string
	for _, a := range result.Secondary() {
		galleryKeys = append(galleryKeys, a.ID)
		galleryURLs = append(galleryURLs, a.URL)
	}

	ev := Event{
		ID:          uuid.New(),
		Name:        shared["name"],
		Date:        shared["date"],
		Time:        shared["time"],
		Description: shared["description"],
		ImageKey:    primary.ID,
		ImageURL:    primary.URL,
		GalleryKeys: galleryKeys,
		GalleryURLs: galleryURLs,
	}

	stored, err := s.repo.Create(ctx, ev)
	if err != nil {
		return CreateResult{}, err
	}
	stored.ImageURL = primary.URL
	stored.GalleryURLs = galleryURLs

	return CreateResult{Event: stored, FailedFiles: result.Failed}, nil
}

// List returns every event with freshly signed image URLs.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.urls == nil {
		return events, nil
	}

	for i := range events {
		if events[i].ImageKey != "" {
			url, err := s.urls.URL(ctx, events[i].ImageKey)
			if err != nil {
				return nil, fmt.Errorf("sign event image url: %w", err)
			}
			events[i].ImageURL = url
		}
		for _, key := range events[i].GalleryKeys {
			url, err := s.urls.URL(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("sign event gallery url: %w", err)
			}
			events[i].GalleryURLs = append(events[i].GalleryURLs, url)
		}
	}
	return events, nil
}

// DeleteByIDs cascades: event rows first, then their stored banners.
func (s *Service) DeleteByIDs(ctx context.Context, ids []string) (media.DeletionReport, error) {
	return s.deleter.Delete(ctx, media.DeletionRequest{Scope: Scope, IDs: ids})
}

// RowAdapter exposes the repository to the cascading deleter.
type RowAdapter struct {
	Repo *Repository
}

// DeleteRows implements media's row deletion contract.
func (a RowAdapter) DeleteRows(ctx context.Context, ids []string) ([]media.DeletedRow, error) {
	deleted, err := a.Repo.DeleteByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("delete events by id: %w", err)
	}

	rows := make([]media.DeletedRow, 0, len(deleted))
	for _, ev := range deleted {
		keys := make([]string, 0, len(ev.GalleryKeys)+1)
		if ev.ImageKey != "" {
			keys = append(keys, ev.ImageKey)
		}
		keys = append(keys, ev.GalleryKeys...)
		rows = append(rows, media.DeletedRow{ID: ev.ID.String(), ObjectKeys: keys})
	}
	return rows, nil
}
