package media

// Asset represents a single stored media object. The binary content lives in
// the object store; everything the product knows about the asset travels in
// the flat string metadata map.
type Asset struct {
	ID          string            `json:"id"`
	URL         string            `json:"url"`
	Folder      string            `json:"folder"`
	Tags        []string          `json:"tags,omitempty"`
	Metadata    map[string]string `json:"metadata"`
	SizeBytes   int64             `json:"size_bytes,omitempty"`
	ContentType string            `json:"content_type,omitempty"`
}

// AssetPage is one page of a cursor-based listing.
type AssetPage struct {
	Assets     []Asset
	NextCursor string
}

// Zone is a named, product-facing grouping of assets within a folder.
type Zone string

const (
	ZoneHero       Zone = "hero"
	ZoneGallery    Zone = "gallery"
	ZonePreference Zone = "preference"
	ZoneBanquet    Zone = "banquet"
	ZoneRooms      Zone = "rooms"
	ZoneEvents     Zone = "events"

	ZoneBread         Zone = "bread"
	ZoneBiscuit       Zone = "biscuit"
	ZoneRusk          Zone = "rusk"
	ZonePuffAndSnacks Zone = "puff_and_snacks"
)

// MetaPosition is the metadata key that assigns an asset to a position zone.
const MetaPosition = "position"

// BatchFile is one member of an upload batch. Overrides are merged over the
// batch's shared metadata for this file only.
type BatchFile struct {
	Name      string
	Content   []byte
	Overrides map[string]string
}

// UploadInput carries one file and its resolved metadata to the asset store.
type UploadInput struct {
	Folder      string
	Name        string
	Content     []byte
	ContentType string
	Tags        []string
	Metadata    map[string]string
}

// FailedFile reports one file that did not make it into the store.
type FailedFile struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BatchResult is the outcome of one ingestion batch. Uploaded preserves the
// input file order; Failed lists the rest.
type BatchResult struct {
	Uploaded []Asset      `json:"uploaded"`
	Failed   []FailedFile `json:"failed,omitempty"`
}

// Primary returns the asset backing the batch's relational row: the first
// file's asset, falling back to the earliest uploaded file when the first
// one failed. Uploaded keeps input order, so that is always its head.
func (r BatchResult) Primary() (Asset, bool) {
	if len(r.Uploaded) == 0 {
		return Asset{}, false
	}
	return r.Uploaded[0], true
}

// Secondary returns every uploaded asset except the primary, in input order.
func (r BatchResult) Secondary() []Asset {
	if len(r.Uploaded) < 2 {
		return nil
	}
	return r.Uploaded[1:]
}

// DeletionRequest identifies what to remove and from where.
type DeletionRequest struct {
	Scope string
	IDs   []string
}

// DeletionReport buckets every requested identifier by outcome. Orphaned
// entries lost their relational row but their remote object outlived the
// cleanup attempt.
type DeletionReport struct {
	Deleted  []string `json:"deleted"`
	NotFound []string `json:"notFound,omitempty"`
	Orphaned []string `json:"orphaned,omitempty"`
	Failed   []string `json:"failed,omitempty"`
}

// Confirmed returns the identifiers that are gone from product listings:
// fully deleted ones plus orphans, whose relational deletion is authoritative.
func (r DeletionReport) Confirmed() []string {
	out := make([]string, 0, len(r.Deleted)+len(r.Orphaned))
	out = append(out, r.Deleted...)
	out = append(out, r.Orphaned...)
	return out
}

// RemovalOutcome is the per-identifier result of a remote removal pass.
type RemovalOutcome struct {
	Removed  []string
	NotFound []string
	Failed   []string
}

// DeletedRow couples a deleted relational identifier with the object keys
// its row referenced.
type DeletedRow struct {
	ID         string
	ObjectKeys []string
}
