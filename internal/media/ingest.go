package media

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aslanbek/stayhub/internal/metrics"
	"github.com/gabriel-vasile/mimetype"
)

// assetUploader stores one file in the asset store.
type assetUploader interface {
	Upload(ctx context.Context, in UploadInput) (Asset, error)
}

// cacheInvalidator drops stale classification results.
type cacheInvalidator interface {
	Invalidate(folder string)
}

// Ingestor validates and uploads multi-file batches. Validation is
// all-or-nothing and happens entirely before the first upload call; upload
// execution per file is independent and partial failure is reported, not
// rolled back.
type Ingestor struct {
	store       assetUploader
	schemes     map[string]Scheme
	maxFileSize int64
	workers     int
	invalidator cacheInvalidator
}

// NewIngestor constructs a batch ingestion coordinator.
func NewIngestor(store assetUploader, schemes map[string]Scheme, maxFileSize int64, workers int, invalidator cacheInvalidator) *Ingestor {
	if workers < 1 {
		workers = 1
	}
	return &Ingestor{
		store:       store,
		schemes:     schemes,
		maxFileSize: maxFileSize,
		workers:     workers,
		invalidator: invalidator,
	}
}

// Ingest uploads the batch into the folder, attaching the shared metadata
// plus each file's overrides. Returns a ValidationError before any network
// call when the batch is malformed, and ErrAllUploadsFailed when validation
// passed but nothing was stored.
func (g *Ingestor) Ingest(ctx context.Context, folder string, files []BatchFile, shared map[string]string, tags []string) (BatchResult, error) {
	scheme, ok := g.schemes[folder]
	if !ok {
		return BatchResult{}, ErrFolderUnknown
	}

	if err := g.validate(scheme, files, shared); err != nil {
		return BatchResult{}, err
	}

	type outcome struct {
		asset Asset
		err   error
	}
	outcomes := make([]outcome, len(files))

	sem := make(chan struct{}, g.workers)
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(idx int, f BatchFile) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			asset, err := g.store.Upload(ctx, UploadInput{
				Folder:      folder,
				Name:        f.Name,
				Content:     f.Content,
				ContentType: mimetype.Detect(f.Content).String(),
				Tags:        tags,
				Metadata:    mergeMetadata(shared, f.Overrides),
			})
			outcomes[idx] = outcome{asset: asset, err: err}
		}(i, f)
	}
	wg.Wait()

	var result BatchResult
	for idx, out := range outcomes {
		if out.err != nil {
			metrics.CountUpload(folder, "failed")
			result.Failed = append(result.Failed, FailedFile{
				Index:  idx,
				Name:   files[idx].Name,
				Reason: out.err.Error(),
			})
			continue
		}
		metrics.CountUpload(folder, "ok")
		result.Uploaded = append(result.Uploaded, out.asset)
	}

	if len(result.Uploaded) == 0 {
		return result, ErrAllUploadsFailed
	}

	if g.invalidator != nil {
		g.invalidator.Invalidate(folder)
	}
	return result, nil
}

// validate performs the whole-batch pre-flight check. Every fault is
// collected so the caller can highlight exactly what to fix.
func (g *Ingestor) validate(scheme Scheme, files []BatchFile, shared map[string]string) error {
	var faults []FieldFault

	if len(files) == 0 {
		faults = append(faults, FieldFault{Field: "files", FileIndex: -1, Reason: "batch is empty"})
	}

	for _, field := range scheme.Required {
		if strings.TrimSpace(shared[field]) == "" {
			faults = append(faults, FieldFault{Field: field, FileIndex: -1, Reason: "required field is missing"})
		}
	}

	for idx, f := range files {
		if len(f.Content) == 0 {
			faults = append(faults, FieldFault{FileIndex: idx, Reason: "file is empty"})
			continue
		}

		// sniffed from content, never trusted from the client header
		detected := mimetype.Detect(f.Content).String()
		if !isAllowedType(detected) {
			faults = append(faults, FieldFault{
				FileIndex: idx,
				Reason:    fmt.Sprintf("unsupported type %s, expected image or video", detected),
			})
		}

		if int64(len(f.Content)) > g.maxFileSize {
			faults = append(faults, FieldFault{
				FileIndex: idx,
				Reason:    fmt.Sprintf("file exceeds %d byte limit", g.maxFileSize),
			})
		}
	}

	if len(faults) > 0 {
		return &ValidationError{Faults: faults}
	}
	return nil
}

func isAllowedType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}

func mergeMetadata(shared, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(shared)+len(overrides))
	for k, v := range shared {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
