package media

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

const (
	defaultPageSize = 100
	tagsMetaKey     = "tags"
)

// Store adapts a MinIO client to the asset store contracts: tagged,
// metadata-carrying uploads, cursor-paged listing, per-key removal and
// presigned delivery URLs.
type Store struct {
	client     *minio.Client
	bucket     string
	presignTTL time.Duration
	pageSize   int
}

// NewStore constructs the adapter.
func NewStore(client *minio.Client, bucket string, presignTTL time.Duration) *Store {
	return &Store{
		client:     client,
		bucket:     bucket,
		presignTTL: presignTTL,
		pageSize:   defaultPageSize,
	}
}

// Upload stores one object under the folder, carrying the flat metadata map
// as user metadata and the ordered tag list both as object tags and as a
// metadata entry, since object tags do not preserve order.
func (s *Store) Upload(ctx context.Context, in UploadInput) (Asset, error) {
	key := fmt.Sprintf("%s/%s", in.Folder, uuid.NewString())

	userMeta := make(map[string]string, len(in.Metadata)+1)
	for k, v := range in.Metadata {
		userMeta[k] = v
	}
	if len(in.Tags) > 0 {
		userMeta[tagsMetaKey] = strings.Join(in.Tags, ",")
	}

	userTags := make(map[string]string, len(in.Tags))
	for _, t := range in.Tags {
		userTags[t] = ""
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(in.Content), int64(len(in.Content)), minio.PutObjectOptions{
		ContentType:  in.ContentType,
		UserMetadata: userMeta,
		UserTags:     userTags,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("put object %s: %w", key, err)
	}

	url, err := s.resolveURL(ctx, key)
	if err != nil {
		return Asset{}, err
	}

	return Asset{
		ID:          key,
		URL:         url,
		Folder:      in.Folder,
		Tags:        in.Tags,
		Metadata:    in.Metadata,
		SizeBytes:   info.Size,
		ContentType: in.ContentType,
	}, nil
}

// ListPage returns one page of the folder's assets, resuming after the
// cursor. An empty NextCursor means the listing is exhausted.
func (s *Store) ListPage(ctx context.Context, folder, cursor string) (AssetPage, error) {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := s.client.ListObjects(listCtx, s.bucket, minio.ListObjectsOptions{
		Prefix:     folder + "/",
		Recursive:  true,
		StartAfter: cursor,
	})

	var page AssetPage
	for obj := range objects {
		if obj.Err != nil {
			return AssetPage{}, fmt.Errorf("list folder %s: %w", folder, obj.Err)
		}

		asset, err := s.describe(ctx, folder, obj.Key)
		if err != nil {
			return AssetPage{}, err
		}
		page.Assets = append(page.Assets, asset)

		if len(page.Assets) == s.pageSize {
			page.NextCursor = obj.Key
			break
		}
	}

	return page, nil
}

// Remove deletes the given object keys, reporting each key's outcome.
// Missing keys are reported, not errored, so deletion stays idempotent.
func (s *Store) Remove(ctx context.Context, folder string, keys []string) (RemovalOutcome, error) {
	var outcome RemovalOutcome
	for _, key := range keys {
		_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
		if err != nil {
			if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
				outcome.NotFound = append(outcome.NotFound, key)
				continue
			}
			outcome.Failed = append(outcome.Failed, key)
			continue
		}

		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			outcome.Failed = append(outcome.Failed, key)
			continue
		}
		outcome.Removed = append(outcome.Removed, key)
	}
	return outcome, nil
}

func (s *Store) describe(ctx context.Context, folder, key string) (Asset, error) {
	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return Asset{}, fmt.Errorf("stat object %s: %w", key, err)
	}

	meta := make(map[string]string, len(stat.UserMetadata))
	for k, v := range stat.UserMetadata {
		meta[strings.ToLower(k)] = v
	}

	var tags []string
	if joined := meta[tagsMetaKey]; joined != "" {
		tags = strings.Split(joined, ",")
	}
	delete(meta, tagsMetaKey)

	url, err := s.resolveURL(ctx, key)
	if err != nil {
		return Asset{}, err
	}

	return Asset{
		ID:          key,
		URL:         url,
		Folder:      folder,
		Tags:        tags,
		Metadata:    meta,
		SizeBytes:   stat.Size,
		ContentType: stat.ContentType,
	}, nil
}

// URL returns a presigned delivery URL for the object key.
func (s *Store) URL(ctx context.Context, key string) (string, error) {
	return s.resolveURL(ctx, key)
}

func (s *Store) resolveURL(ctx context.Context, key string) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.presignTTL, nil)
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", key, err)
	}
	return signed.String(), nil
}
