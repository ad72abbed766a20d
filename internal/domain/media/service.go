package media

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/memberhub/media-api/internal/config"
	"github.com/memberhub/media-api/utils/mediaid"
)

// Repository is the Remote Metadata Store boundary. Reads report absence as
// (nil, nil); only write/delete paths turn absence into an error.
type Repository interface {
	Create(ctx context.Context, item *MediaItem) error
	GetByID(ctx context.Context, id string) (*MediaItem, error)
	Update(ctx context.Context, item *MediaItem) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q SearchQuery) ([]*MediaItem, error)
}

// BlobStore is the Remote Blob Store boundary.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, int64, string, error)
	Delete(ctx context.Context, key string) error
	ResolveURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Cache is the bounded local working set of metadata and blob bytes.
// Implementations must be safe for concurrent use and must never perform I/O.
type Cache interface {
	Get(id string) (*MediaItem, bool)
	GetBlob(id string) ([]byte, bool)
	Put(item *MediaItem, blob []byte)
	Remove(id string)
	Clear()
}

// EventRecorder appends access events and reads them back per item.
type EventRecorder interface {
	Record(ctx context.Context, event *AccessEvent) error
	Stats(ctx context.Context, mediaID string) (*AccessStats, error)
	ListByMedia(ctx context.Context, mediaID string, limit int) ([]*AccessEvent, error)
}

// ThumbnailGenerator derives a reduced rendering from full image bytes.
type ThumbnailGenerator interface {
	Generate(data []byte, maxDim int) ([]byte, error)
	Probe(data []byte) (*Dimensions, error)
}

// SearchQuery is the predicate passed to the Remote Metadata Store.
type SearchQuery struct {
	Text           string
	Type           MediaType
	ResourceID     string
	ResourceType   string
	AccessLevel    AccessLevel
	UploadedBy     string
	Tags           []string
	MinSize        int64
	MaxSize        int64
	UploadedAfter  *time.Time
	UploadedBefore *time.Time
	Limit          int
}

// UploadRequest carries everything about one upload besides the bytes.
type UploadRequest struct {
	// ID lets a client retry an upload idempotently: a retried request with
	// the same id returns the completed record, or re-drives an unfinished
	// transfer against it, instead of creating another. Ids are scoped to
	// their uploader; reusing another uploader's id is denied.
	ID              string
	Filename        string
	DeclaredSize    int64
	AccessLevel     AccessLevel
	ResourceID      string
	ResourceType    string
	Metadata        Metadata
	Tags            []string
	UploadedBy      string
	DurationSeconds float64
	OnProgress      ProgressFunc
}

// MetadataPatch is a partial update; nil fields are left untouched.
type MetadataPatch struct {
	Metadata    *Metadata
	Tags        []string
	AccessLevel *AccessLevel
}

// Service is the Media Engine facade. It consults the access gate before any
// data-returning operation, the local cache before the remote stores, and
// falls through to tracked transfers on cache miss.
type Service struct {
	cfg    *config.Config
	repo   Repository
	blobs  BlobStore
	cache  Cache
	events EventRecorder
	thumbs ThumbnailGenerator
	log    zerolog.Logger
}

func NewService(cfg *config.Config, repo Repository, blobs BlobStore, cache Cache, events EventRecorder, thumbs ThumbnailGenerator, log zerolog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		repo:   repo,
		blobs:  blobs,
		cache:  cache,
		events: events,
		thumbs: thumbs,
		log:    log.With().Str("component", "media-engine").Logger(),
	}
}

// UploadImage stores image bytes and returns the finalized item.
func (s *Service) UploadImage(ctx context.Context, r io.Reader, req UploadRequest) (*MediaItem, error) {
	return s.Upload(ctx, TypeImage, r, req)
}

// UploadVideo stores video bytes and returns the finalized item.
func (s *Service) UploadVideo(ctx context.Context, r io.Reader, req UploadRequest) (*MediaItem, error) {
	return s.Upload(ctx, TypeVideo, r, req)
}

// UploadAudio stores audio bytes and returns the finalized item.
func (s *Service) UploadAudio(ctx context.Context, r io.Reader, req UploadRequest) (*MediaItem, error) {
	return s.Upload(ctx, TypeAudio, r, req)
}

// UploadDocument stores document bytes and returns the finalized item.
func (s *Service) UploadDocument(ctx context.Context, r io.Reader, req UploadRequest) (*MediaItem, error) {
	return s.Upload(ctx, TypeDocument, r, req)
}

// Upload validates size and type, registers a pending record, moves the bytes
// through a tracked transfer, and finalizes the record with its checksum.
// Size ceilings are enforced against the declared size before any byte is
// read, and against the actual size before any byte is sent.
func (s *Service) Upload(ctx context.Context, t MediaType, r io.Reader, req UploadRequest) (*MediaItem, error) {
	limit := SizeLimit(t)
	if limit == 0 {
		return nil, NewError(CodeUnsupportedForType, fmt.Sprintf("unknown media type %q", t))
	}
	if req.DeclaredSize > limit {
		return nil, NewError(CodeSizeLimitExceeded,
			fmt.Sprintf("%s upload of %d bytes exceeds the %d byte ceiling", t, req.DeclaredSize, limit))
	}

	// Client-supplied ids are caller-chosen strings; an existing record under
	// the same id is only a retry of this caller's own upload.
	var existing *MediaItem
	if req.ID != "" {
		var err error
		existing, err = s.repo.GetByID(ctx, req.ID)
		if err != nil {
			return nil, WrapError(CodeTransferFailed, "metadata store lookup failed", err)
		}
		if existing != nil {
			if existing.UploadedBy != req.UploadedBy {
				return nil, NewError(CodeAccessDenied,
					fmt.Sprintf("media id %s belongs to another uploader", req.ID))
			}
			if existing.ProcessingStatus == StatusCompleted {
				s.log.Debug().Str("media_id", req.ID).Msg("idempotent upload retry, returning existing record")
				return existing, nil
			}
			// A pending or failed record is a transfer that never finished;
			// re-drive it against the same record instead of duplicating it.
		}
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, WrapError(CodeTransferFailed, "read upload body", err)
	}
	if int64(len(data)) > limit {
		return nil, NewError(CodeSizeLimitExceeded,
			fmt.Sprintf("%s upload exceeds the %d byte ceiling", t, limit))
	}

	mtype := mimetype.Detect(data)
	mime := mtype.String()
	family, ok := DeriveType(mime)
	if !ok || family != t {
		return nil, NewError(CodeUnsupportedMimeType,
			fmt.Sprintf("detected %s, not acceptable for %s upload", mime, t))
	}

	id := req.ID
	if id == "" {
		id = mediaid.New()
	}
	filename := id + mtype.Extension()
	sum := sha256.Sum256(data)

	item := &MediaItem{
		ID:               id,
		Filename:         filename,
		OriginalFilename: req.Filename,
		Type:             t,
		MimeType:         mime,
		Size:             int64(len(data)),
		DurationSeconds:  req.DurationSeconds,
		BlobKey:          fmt.Sprintf("%s/%s", t, filename),
		Metadata:         req.Metadata,
		AccessLevel:      normalizeLevel(req.AccessLevel),
		ResourceID:       req.ResourceID,
		ResourceType:     req.ResourceType,
		UploadedBy:       req.UploadedBy,
		UploadedAt:       time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
		ProcessingStatus: StatusPending,
		Tags:             req.Tags,
		IsActive:         true,
	}
	if t == TypeImage && s.thumbs != nil {
		if dims, err := s.thumbs.Probe(data); err == nil {
			item.Dimensions = dims
		}
	}

	// Register the record before the blob exists; an abandoned transfer may
	// leave this pending orphan for the owning application to collect. A
	// retried transfer updates its earlier record in place.
	if existing == nil {
		if err := s.repo.Create(ctx, item); err != nil {
			return nil, WrapError(CodeTransferFailed, "register media record", err)
		}
	} else {
		item.UploadedAt = existing.UploadedAt
		if err := s.repo.Update(ctx, item); err != nil {
			return nil, WrapError(CodeTransferFailed, "reregister media record", err)
		}
	}

	tracker := NewTracker(id, item.Size, req.OnProgress)
	tracker.Start()
	if err := s.blobs.Put(ctx, item.BlobKey, tracker.Reader(bytes.NewReader(data)), item.Size, mime); err != nil {
		tracker.Finish(err)
		item.ProcessingStatus = StatusFailed
		if uerr := s.repo.Update(ctx, item); uerr != nil {
			s.log.Warn().Err(uerr).Str("media_id", id).Msg("failed to mark record failed")
		}
		return nil, WrapError(CodeTransferFailed, "store blob", err)
	}
	tracker.Finish(nil)

	item.Checksum = fmt.Sprintf("%x", sum[:])
	item.ProcessingStatus = StatusCompleted
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, WrapError(CodeTransferFailed, "finalize media record", err)
	}

	s.cache.Put(item, data)
	s.record(ctx, id, req.UploadedBy, EventUpload, map[string]string{"mime": mime})
	s.log.Info().
		Str("media_id", id).
		Str("type", string(t)).
		Int64("bytes", item.Size).
		Msg("media uploaded")
	return item, nil
}

// FetchItem returns the item's metadata, cache first. It returns (nil, nil)
// when the record genuinely does not exist.
func (s *Service) FetchItem(ctx context.Context, id string, req Requester) (*MediaItem, error) {
	item, cached := s.cache.Get(id)
	if !cached {
		var err error
		item, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, WrapError(CodeTransferFailed, "metadata store lookup failed", err)
		}
		if item == nil {
			return nil, nil
		}
		s.cache.Put(item, nil)
	}
	if !CanAccess(item.AccessLevel, req.Tier, item.UploadedBy, req.UserID) {
		return nil, s.denied(item.ID, req)
	}
	s.record(ctx, item.ID, req.UserID, EventView, nil)
	return item, nil
}

// FetchBytes returns the item's full content, enforcing the access gate and
// verifying the checksum on a remote read. intent selects the recorded event
// (download or stream).
func (s *Service) FetchBytes(ctx context.Context, id string, req Requester, intent EventType, onProgress ProgressFunc) ([]byte, error) {
	if intent != EventDownload && intent != EventStream {
		intent = EventDownload
	}
	item, err := s.requireItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(item.AccessLevel, req.Tier, item.UploadedBy, req.UserID) {
		return nil, s.denied(id, req)
	}

	if data, ok := s.cache.GetBlob(id); ok {
		s.record(ctx, id, req.UserID, intent, map[string]string{"source": "cache"})
		return data, nil
	}

	data, err := s.download(ctx, item, onProgress)
	if err != nil {
		return nil, err
	}

	// Network work is done before this point; the cache lock is never held
	// across store I/O.
	s.cache.Put(item, data)
	s.record(ctx, id, req.UserID, intent, map[string]string{"source": "remote"})
	return data, nil
}

// UpdateMetadata applies a read-modify-write against the metadata store and
// refreshes the cache entry.
func (s *Service) UpdateMetadata(ctx context.Context, id string, patch MetadataPatch) (*MediaItem, error) {
	item, err := s.requireItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Metadata != nil {
		item.Metadata = *patch.Metadata
	}
	if patch.Tags != nil {
		item.Tags = patch.Tags
	}
	if patch.AccessLevel != nil {
		item.AccessLevel = normalizeLevel(*patch.AccessLevel)
	}
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, WrapError(CodeTransferFailed, "update media record", err)
	}
	if blob, ok := s.cache.GetBlob(id); ok {
		s.cache.Put(item, blob)
	} else {
		s.cache.Put(item, nil)
	}
	return item, nil
}

// Delete removes the blob first, then the record. If blob deletion fails the
// record stays intact and the error surfaces; an orphaned record after a
// failed record delete is acceptable. A second delete reports NotFound.
func (s *Service) Delete(ctx context.Context, id string, req Requester) error {
	item, err := s.requireItem(ctx, id)
	if err != nil {
		return err
	}
	if req.Tier < TierAdmin && item.UploadedBy != req.UserID {
		return s.denied(id, req)
	}

	if item.BlobKey != "" {
		if err := s.blobs.Delete(ctx, item.BlobKey); err != nil {
			return WrapError(CodeTransferFailed, "delete blob", err)
		}
	}
	if item.ThumbnailKey != "" {
		if err := s.blobs.Delete(ctx, item.ThumbnailKey); err != nil {
			s.log.Warn().Err(err).Str("media_id", id).Msg("orphaned thumbnail blob")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return WrapError(CodeTransferFailed, "delete media record", err)
	}
	s.cache.Remove(id)
	s.record(ctx, id, req.UserID, EventDelete, nil)
	s.log.Info().Str("media_id", id).Msg("media deleted")
	return nil
}

// Deactivate soft-deletes the item by clearing its active flag; queries stop
// returning it but the blob and record remain.
func (s *Service) Deactivate(ctx context.Context, id string, req Requester) error {
	item, err := s.requireItem(ctx, id)
	if err != nil {
		return err
	}
	if req.Tier < TierAdmin && item.UploadedBy != req.UserID {
		return s.denied(id, req)
	}
	item.IsActive = false
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return WrapError(CodeTransferFailed, "deactivate media record", err)
	}
	s.cache.Remove(id)
	return nil
}

// Search queries the metadata store directly; results always reflect remote
// state, never the cache, and are filtered through the access gate.
func (s *Service) Search(ctx context.Context, q SearchQuery, req Requester) ([]*MediaItem, error) {
	if q.Limit <= 0 {
		q.Limit = s.cfg.SearchDefaultLimit
	} else if q.Limit > s.cfg.SearchMaxLimit {
		q.Limit = s.cfg.SearchMaxLimit
	}
	items, err := s.repo.Query(ctx, q)
	if err != nil {
		return nil, WrapError(CodeTransferFailed, "metadata store query failed", err)
	}
	visible := make([]*MediaItem, 0, len(items))
	for _, item := range items {
		if CanAccess(item.AccessLevel, req.Tier, item.UploadedBy, req.UserID) {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

// Thumbnail returns reduced-size bytes for an image item, deriving and
// persisting them on first use. Non-image types fail with UnsupportedForType
// unless a generator for them is configured.
func (s *Service) Thumbnail(ctx context.Context, id string, maxDim int, req Requester) ([]byte, error) {
	item, err := s.requireItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(item.AccessLevel, req.Tier, item.UploadedBy, req.UserID) {
		return nil, s.denied(id, req)
	}
	if maxDim <= 0 {
		maxDim = s.cfg.ThumbnailMaxDim
	}

	if item.ThumbnailKey != "" {
		rc, _, _, err := s.blobs.Get(ctx, item.ThumbnailKey)
		if err == nil {
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err == nil {
				return data, nil
			}
			s.log.Warn().Err(err).Str("media_id", id).Msg("stored thumbnail unreadable, regenerating")
		}
	}

	if item.Type != TypeImage {
		return nil, NewError(CodeUnsupportedForType,
			fmt.Sprintf("no thumbnail pipeline for %s media", item.Type))
	}
	if s.thumbs == nil {
		return nil, NewError(CodeUnsupportedForType, "no thumbnail generator configured")
	}

	full, ok := s.cache.GetBlob(id)
	if !ok {
		full, err = s.download(ctx, item, nil)
		if err != nil {
			return nil, err
		}
		s.cache.Put(item, full)
	}

	thumb, err := s.thumbs.Generate(full, maxDim)
	if err != nil {
		return nil, WrapError(CodeUnsupportedForType, "generate thumbnail", err)
	}

	key := fmt.Sprintf("thumbnails/%s.jpg", item.ID)
	if err := s.blobs.Put(ctx, key, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg"); err != nil {
		return nil, WrapError(CodeTransferFailed, "store thumbnail blob", err)
	}
	item.ThumbnailKey = key
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		s.log.Warn().Err(err).Str("media_id", id).Msg("thumbnail generated but record not updated")
	}
	s.cache.Put(item, full)
	return thumb, nil
}

// ResolveURL returns a retrievable URL for client-side streaming.
func (s *Service) ResolveURL(ctx context.Context, id string, req Requester) (string, error) {
	item, err := s.requireItem(ctx, id)
	if err != nil {
		return "", err
	}
	if !CanAccess(item.AccessLevel, req.Tier, item.UploadedBy, req.UserID) {
		return "", s.denied(id, req)
	}
	url, err := s.blobs.ResolveURL(ctx, item.BlobKey, s.cfg.PresignTTL)
	if err != nil {
		return "", WrapError(CodeTransferFailed, "resolve blob URL", err)
	}
	s.record(ctx, id, req.UserID, EventStream, map[string]string{"via": "presigned-url"})
	return url, nil
}

// Stats aggregates the access event log for one item.
func (s *Service) Stats(ctx context.Context, id string, req Requester) (*AccessStats, error) {
	item, err := s.requireItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(item.AccessLevel, req.Tier, item.UploadedBy, req.UserID) {
		return nil, s.denied(id, req)
	}
	stats, err := s.events.Stats(ctx, id)
	if err != nil {
		return nil, WrapError(CodeTransferFailed, "aggregate access events", err)
	}
	return stats, nil
}

// Events returns the most recent access events for one item, newest first.
func (s *Service) Events(ctx context.Context, id string, limit int, req Requester) ([]*AccessEvent, error) {
	item, err := s.requireItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(item.AccessLevel, req.Tier, item.UploadedBy, req.UserID) {
		return nil, s.denied(id, req)
	}
	events, err := s.events.ListByMedia(ctx, id, limit)
	if err != nil {
		return nil, WrapError(CodeTransferFailed, "list access events", err)
	}
	return events, nil
}

// download pulls and verifies the item's blob through a tracked transfer.
func (s *Service) download(ctx context.Context, item *MediaItem, onProgress ProgressFunc) ([]byte, error) {
	if item.BlobKey == "" {
		return nil, NewError(CodeNotFound, fmt.Sprintf("media %s has no stored content", item.ID))
	}
	rc, size, _, err := s.blobs.Get(ctx, item.BlobKey)
	if err != nil {
		tracker := NewTracker(item.ID, item.Size, onProgress)
		tracker.Finish(err)
		return nil, WrapError(CodeTransferFailed, "fetch blob", err)
	}
	defer rc.Close()

	if size <= 0 {
		size = item.Size
	}
	tracker := NewTracker(item.ID, size, onProgress)
	tracker.Start()
	data, err := io.ReadAll(tracker.Reader(rc))
	if err != nil {
		tracker.Finish(err)
		return nil, WrapError(CodeTransferFailed, "read blob", err)
	}
	tracker.Finish(nil)

	if item.ProcessingStatus == StatusCompleted && item.Checksum != "" {
		sum := sha256.Sum256(data)
		if got := fmt.Sprintf("%x", sum[:]); got != item.Checksum {
			return nil, NewError(CodeCorrupted,
				fmt.Sprintf("checksum mismatch for media %s", item.ID))
		}
	}
	return data, nil
}

// requireItem loads metadata for a write/content path, where absence is an
// error rather than a nil result.
func (s *Service) requireItem(ctx context.Context, id string) (*MediaItem, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, WrapError(CodeTransferFailed, "metadata store lookup failed", err)
	}
	if item == nil {
		return nil, NewError(CodeNotFound, fmt.Sprintf("media %s not found", id))
	}
	s.cache.Put(item, nil)
	return item, nil
}

func (s *Service) denied(id string, req Requester) error {
	s.log.Debug().
		Str("media_id", id).
		Str("user_id", req.UserID).
		Str("tier", req.Tier.String()).
		Msg("access denied")
	return NewError(CodeAccessDenied, fmt.Sprintf("access to media %s denied", id))
}

// record appends an access event; failures degrade to a log line so content
// operations never fail on event bookkeeping.
func (s *Service) record(ctx context.Context, mediaID, userID string, t EventType, details map[string]string) {
	if s.events == nil {
		return
	}
	event := &AccessEvent{
		MediaID:   mediaID,
		UserID:    userID,
		EventType: t,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
	if err := s.events.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("media_id", mediaID).Str("event", string(t)).Msg("access event not recorded")
	}
}

func normalizeLevel(level AccessLevel) AccessLevel {
	switch level {
	case LevelPublic, LevelAuthenticated, LevelRestricted, LevelPrivate:
		return level
	}
	return LevelPrivate
}
