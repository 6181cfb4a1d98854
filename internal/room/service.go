package room

import (
	"context"
	"fmt"
	"strings"

	"github.com/aslanbek/stayhub/internal/media"
	"github.com/google/uuid"
)

const mediaFolder = "hotel-rooms"

// roomStore abstracts room persistence.
type roomStore interface {
	Create(ctx context.Context, room Room) (Room, error)
	List(ctx context.Context) ([]Room, error)
	DeleteByNumbers(ctx context.Context, numbers []string) ([]Room, error)
}

// batchIngestor uploads a validated multi-file batch into a media folder.
type batchIngestor interface {
	Ingest(ctx context.Context, folder string, files []media.BatchFile, shared map[string]string, tags []string) (media.BatchResult, error)
}

// urlResolver signs delivery URLs for stored object keys.
type urlResolver interface {
	URL(ctx context.Context, key string) (string, error)
}

// Service manages room listings. One ingestion batch produces one relational
// row: the first file's asset backs the listing, the rest become its gallery.
type Service struct {
	repo    roomStore
	ingest  batchIngestor
	urls    urlResolver
	deleter *media.Deleter
}

// NewService constructs a room service. The deleter is built by the caller
// so selection clearing and cache invalidation stay wired to the shared
// registry and classifier.
func NewService(repo roomStore, ingest batchIngestor, urls urlResolver, deleter *media.Deleter) *Service {
	return &Service{repo: repo, ingest: ingest, urls: urls, deleter: deleter}
}

// CreateInput carries one room-creation batch.
type CreateInput struct {
	RoomNumber  string
	RoomType    string
	Price       string
	Occupancy   string
	Description string
	Files       []media.BatchFile
}

// CreateResult bundles the created listing with per-file upload outcomes.
type CreateResult struct {
	Room        Room
	FailedFiles []media.FailedFile
}

// Create validates and uploads the batch, then inserts the single listing
// row backed by the batch's primary asset. Files that failed after
// validation passed are reported, not rolled back.
func (s *Service) Create(ctx context.Context, input CreateInput) (CreateResult, error) {
	shared := map[string]string{
		media.MetaPosition: "rooms",
		"room_no":          strings.TrimSpace(input.RoomNumber),
		"room_type":        strings.TrimSpace(input.RoomType),
		"price":            strings.TrimSpace(input.Price),
		"occupancy":        strings.TrimSpace(input.Occupancy),
		"description":      strings.TrimSpace(input.Description),
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

	room := Room{
		ID:          uuid.New(),
		RoomNumber:  shared["room_no"],
		RoomType:    shared["room_type"],
		Price:       shared["price"],
		Occupancy:   shared["occupancy"],
		Description: shared["description"],
		ImageKey:    primary.ID,
		ImageURL:    primary.URL,
		GalleryKeys: galleryKeys,
		GalleryURLs: galleryURLs,
	}

	stored, err := s.repo.Create(ctx, room)
	if err != nil {
		return CreateResult{}, err
	}
	stored.ImageURL = primary.URL
	stored.GalleryURLs = galleryURLs

	return CreateResult{Room: stored, FailedFiles: result.Failed}, nil
}

// List returns every room listing with freshly signed image URLs.
func (s *Service) List(ctx context.Context) ([]Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.urls == nil {
		return rooms, nil
	}

	for i := range rooms {
		if rooms[i].ImageKey != "" {
			url, err := s.urls.URL(ctx, rooms[i].ImageKey)
			if err != nil {
				return nil, fmt.Errorf("sign room image url: %w", err)
			}
			rooms[i].ImageURL = url
		}
		for _, key := range rooms[i].GalleryKeys {
			url, err := s.urls.URL(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("sign room gallery url: %w", err)
			}
			rooms[i].GalleryURLs = append(rooms[i].GalleryURLs, url)
		}
	}
	return rooms, nil
}

// DeleteByNumbers cascades: room rows first, then their stored images.
func (s *Service) DeleteByNumbers(ctx context.Context, numbers []string) (media.DeletionReport, error) {
	return s.deleter.Delete(ctx, media.DeletionRequest{Scope: Scope, IDs: numbers})
}

// Scope identifies room selections and deletions.
const Scope = "rooms"

// RowAdapter exposes the repository to the cascading deleter: one batched
// delete, reporting matched numbers and the object keys their rows held.
type RowAdapter struct {
	Repo *Repository
}

// DeleteRows implements media's row deletion contract.
func (a RowAdapter) DeleteRows(ctx context.Context, ids []string) ([]media.DeletedRow, error) {
	deleted, err := a.Repo.DeleteByNumbers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("delete rooms by number: %w", err)
	}

	rows := make([]media.DeletedRow, 0, len(deleted))
	for _, room := range deleted {
		keys := make([]string, 0, len(room.GalleryKeys)+1)
		if room.ImageKey != "" {
			keys = append(keys, room.ImageKey)
		}
		keys = append(keys, room.GalleryKeys...)
		rows = append(rows, media.DeletedRow{ID: room.RoomNumber, ObjectKeys: keys})
	}
	return rows, nil
}
