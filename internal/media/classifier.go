package media

import (
	"context"
	"sync"
)

// assetLister abstracts the cursor-based folder listing of the asset store.
type assetLister interface {
	ListPage(ctx context.Context, folder, cursor string) (AssetPage, error)
}

// Classifier partitions a folder's asset pool into the zones its scheme
// declares. Results are cached per folder until explicitly invalidated.
type Classifier struct {
	store   assetLister
	schemes map[string]Scheme

	mu    sync.RWMutex
	cache map[string]map[Zone][]Asset
}

// NewClassifier constructs a classifier over the given store and scheme table.
func NewClassifier(store assetLister, schemes map[string]Scheme) *Classifier {
	return &Classifier{
		store:   store,
		schemes: schemes,
		cache:   make(map[string]map[Zone][]Asset),
	}
}

// Scheme exposes the folder's scheme for callers that validate against it.
func (c *Classifier) Scheme(folder string) (Scheme, bool) {
	s, ok := c.schemes[folder]
	return s, ok
}

// Classify pages through the folder's full listing and partitions it. The
// listing is exhausted before any partitioning so a page boundary can never
// hide an asset from its zone. Listing failures surface as a
// ClassificationError and are never cached.
func (c *Classifier) Classify(ctx context.Context, folder string) (map[Zone][]Asset, error) {
	scheme, ok := c.schemes[folder]
	if !ok {
		return nil, ErrFolderUnknown
	}

	c.mu.RLock()
	cached, hit := c.cache[folder]
	c.mu.RUnlock()
	if hit {
		return cloneZones(cached), nil
	}

	var pool []Asset
	cursor := ""
	for {
		page, err := c.store.ListPage(ctx, folder, cursor)
		if err != nil {
			return nil, &ClassificationError{Folder: folder, Err: err}
		}
		pool = append(pool, page.Assets...)
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	zones := partition(scheme, pool)

	c.mu.Lock()
	c.cache[folder] = zones
	c.mu.Unlock()

	return cloneZones(zones), nil
}

// Invalidate drops the cached classification for a folder. It must be called
// after any successful ingestion or deletion targeting the folder.
func (c *Classifier) Invalidate(folder string) {
	c.mu.Lock()
	delete(c.cache, folder)
	c.mu.Unlock()
}

// partition assigns each asset to at most one zone. Assets matching no rule
// are dropped, never guessed. Every declared zone is present in the result so
// the response shape is stable even when empty.
func partition(scheme Scheme, pool []Asset) map[Zone][]Asset {
	zones := make(map[Zone][]Asset)
	for _, z := range scheme.Zones() {
		zones[z] = []Asset{}
	}

	for _, a := range pool {
		zone, defaults, ok := scheme.zoneFor(a)
		if !ok {
			continue
		}
		zones[zone] = append(zones[zone], withDefaults(a, defaults))
	}
	return zones
}

func withDefaults(a Asset, defaults map[string]string) Asset {
	if len(defaults) == 0 {
		return a
	}
	meta := make(map[string]string, len(a.Metadata)+len(defaults))
	for k, v := range a.Metadata {
		meta[k] = v
	}
	for k, v := range defaults {
		if existing, ok := meta[k]; !ok || existing == "" {
			meta[k] = v
		}
	}
	a.Metadata = meta
	return a
}

// cloneZones detaches a cached classification from its callers. Metadata
// maps and tag slices are copied along with the asset slices so a caller
// mutating its result cannot reach back into the cache.
func cloneZones(zones map[Zone][]Asset) map[Zone][]Asset {
	out := make(map[Zone][]Asset, len(zones))
	for z, assets := range zones {
		copied := make([]Asset, len(assets))
		for i, a := range assets {
			copied[i] = cloneAsset(a)
		}
		out[z] = copied
	}
	return out
}

func cloneAsset(a Asset) Asset {
	if len(a.Tags) > 0 {
		a.Tags = append([]string(nil), a.Tags...)
	}
	if len(a.Metadata) > 0 {
		meta := make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			meta[k] = v
		}
		a.Metadata = meta
	}
	return a
}
