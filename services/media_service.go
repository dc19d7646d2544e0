package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"svd_ambalaj_server/database"
	"svd_ambalaj_server/lib"
	"svd_ambalaj_server/structs"
	"svd_ambalaj_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UploadInput is one file from a multipart upload
type UploadInput struct {
	OriginalName string
	MimeType     string
	Body         io.Reader
}

type MediaService struct {
	logger  *gecho.Logger
	db      *database.DB
	cache   *CacheService
	store   FileStore
	maxSize int64
	now     func() time.Time
}

func NewMediaService(logger *gecho.Logger, db *database.DB, cache *CacheService, store FileStore, maxSize int64) *MediaService {
	return &MediaService{
		logger:  logger,
		db:      db,
		cache:   cache,
		store:   store,
		maxSize: maxSize,
		now:     lib.Now,
	}
}

func (ms *MediaService) ListMedia(ctx context.Context) ([]structs.MediaAsset, error) {
	var rows []tables.MediaAsset
	err := ms.db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
		return q.NewSelect().Model(&rows).Order("m.created_at DESC", "m.id ASC").Scan(ctx)
	})
	if err != nil {
		ms.logger.Error("Failed to list media", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list media: %w", err)
	}

	assets := make([]structs.MediaAsset, 0, len(rows))
	for i := range rows {
		assets = append(assets, mapMedia(&rows[i]))
	}
	return assets, nil
}

func loadMedia(ctx context.Context, q bun.IDB, id string) (*tables.MediaAsset, error) {
	row := new(tables.MediaAsset)
	err := q.NewSelect().Model(row).Where("m.id = ?", id).Limit(1).Scan(ctx)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (ms *MediaService) GetMediaByID(ctx context.Context, id string) (*structs.MediaAsset, error) {
	row, err := database.ExecuteWithResult(ctx, ms.db, func(ctx context.Context, q bun.IDB) (*tables.MediaAsset, error) {
		return loadMedia(ctx, q, strings.TrimSpace(id))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	asset := mapMedia(row)
	return &asset, nil
}

// CreateMediaEntry records metadata for an already stored file
func (ms *MediaService) CreateMediaEntry(ctx context.Context, payload structs.MediaEntryPayload) (*structs.MediaAsset, error) {
	filename := strings.TrimSpace(payload.Filename)
	if filename == "" {
		return nil, fmt.Errorf("%w: media filename is required", lib.ErrInvalidInput)
	}
	id := strings.TrimSpace(payload.ID)
	if id == "" {
		id = uuid.NewString()
	}
	storageKey := strings.TrimSpace(payload.StorageKey)
	if storageKey == "" {
		storageKey = filename
	}
	metadata := payload.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	now := ms.now()
	row := &tables.MediaAsset{
		ID:           id,
		StorageKey:   storageKey,
		Filename:     filename,
		OriginalName: strings.TrimSpace(payload.OriginalName),
		MimeType:     strings.TrimSpace(payload.MimeType),
		Size:         payload.Size,
		URL:          strings.TrimSpace(payload.URL),
		Checksum:     payload.Checksum,
		Metadata:     metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := ms.db.Execute(ctx, func(ctx context.Context, q bun.IDB) error {
		_, err := q.NewInsert().Model(row).Exec(ctx)
		return lib.MapDBError(err)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media entry: %w", err)
	}

	asset := mapMedia(row)
	return &asset, nil
}

// Upload stores an image or video and records it. The stored file is removed again when
// the record cannot be written.
func (ms *MediaService) Upload(ctx context.Context, in UploadInput) (*structs.MediaAsset, error) {
	startTime := time.Now()

	data, err := io.ReadAll(io.LimitReader(in.Body, ms.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read upload: %v", lib.ErrInvalidInput, err)
	}
	if int64(len(data)) > ms.maxSize {
		return nil, fmt.Errorf("%w: file exceeds %s", lib.ErrInvalidInput, humanize.IBytes(uint64(ms.maxSize)))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", lib.ErrInvalidInput)
	}

	mimeType := strings.TrimSpace(in.MimeType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = parsed
	}
	if !strings.HasPrefix(mimeType, "image/") && !strings.HasPrefix(mimeType, "video/") {
		return nil, fmt.Errorf("%w: unsupported media type %q", lib.ErrInvalidInput, mimeType)
	}

	originalName := filepath.Base(strings.TrimSpace(in.OriginalName))
	key := uuid.NewString() + fileExtension(originalName, mimeType)

	size, err := ms.store.Save(ctx, key, bytes.NewReader(data))
	if err != nil {
		ms.logger.Error("Failed to store upload", gecho.Field("error", err), gecho.Field("key", key))
		return nil, fmt.Errorf("%w: %w", lib.ErrStorage, err)
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])
	asset, err := ms.CreateMediaEntry(ctx, structs.MediaEntryPayload{
		StorageKey:   key,
		Filename:     key,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
		URL:          ms.store.URL(key),
		Checksum:     &checksum,
	})
	if err != nil {
		if removeErr := ms.store.Remove(context.WithoutCancel(ctx), key); removeErr != nil {
			ms.logger.Warn("Failed to remove orphaned upload", gecho.Field("key", key), gecho.Field("error", removeErr))
		}
		return nil, err
	}

	ms.logger.Info("Media uploaded",
		gecho.Field("id", asset.ID),
		gecho.Field("mime_type", mimeType),
		gecho.Field("size", humanize.IBytes(uint64(size))),
		gecho.Field("duration", time.Since(startTime)),
	)
	return asset, nil
}

func fileExtension(originalName, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != "" && len(ext) <= 8 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// DeleteMedia removes the record and then its file. A file that is already gone is fine;
// any other storage failure is returned wrapped in lib.ErrStorage next to the deleted
// record, which stays deleted.
func (ms *MediaService) DeleteMedia(ctx context.Context, id string) (*structs.MediaAsset, error) {
	id = strings.TrimSpace(id)

	row, err := database.TransactionWithResult(ctx, ms.db, func(ctx context.Context, tx bun.Tx) (*tables.MediaAsset, error) {
		row, err := loadMedia(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, fmt.Errorf("%w: media %q", lib.ErrNotFound, id)
		}
		if _, err := tx.NewDelete().Model((*tables.MediaAsset)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return nil, lib.MapDBError(err)
		}
		return row, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete media: %w", err)
	}

	asset := mapMedia(row)
	if err := ms.store.Remove(ctx, row.StorageKey); err != nil && !errors.Is(err, os.ErrNotExist) {
		ms.logger.Warn("Media record deleted but file removal failed",
			gecho.Field("id", id),
			gecho.Field("key", row.StorageKey),
			gecho.Field("error", err),
		)
		return &asset, fmt.Errorf("%w: failed to remove %s: %w", lib.ErrStorage, row.StorageKey, err)
	}

	ms.logger.Info("Media deleted", gecho.Field("id", id))
	return &asset, nil
}

// ---------------------------------------------------------------------------------------
// Landing media

func defaultLandingMedia() structs.LandingMedia {
	return structs.LandingMedia{
		ID:              tables.LandingMediaID,
		HeroVideo:       structs.HeroVideo{},
		HeroGallery:     make([]string, 0),
		MediaHighlights: make([]structs.MediaHighlight, 0),
	}
}

func loadLandingMedia(ctx context.Context, q bun.IDB) (*tables.LandingMedia, error) {
	row := new(tables.LandingMedia)
	err := q.NewSelect().
		Model(row).
		Relation("Gallery", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("lg.sort_order ASC")
		}).
		Relation("Highlights", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("lh.sort_order ASC")
		}).
		Where("lm.id = ?", tables.LandingMediaID).
		Limit(1).
		Scan(ctx)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FetchLandingMedia never reports a missing configuration; an empty one is returned instead
func (ms *MediaService) FetchLandingMedia(ctx context.Context) (*structs.LandingMedia, error) {
	return cachedOne(ctx, ms.cache, ms.logger, landingMediaKey, func() (*structs.LandingMedia, error) {
		row, err := database.ExecuteWithResult(ctx, ms.db, loadLandingMedia)
		if err != nil {
			ms.logger.Error("Failed to fetch landing media", gecho.Field("error", err))
			return nil, fmt.Errorf("failed to fetch landing media: %w", err)
		}
		if row == nil {
			landing := defaultLandingMedia()
			return &landing, nil
		}
		landing := mapLandingMedia(row)
		return &landing, nil
	})
}

// UpdateLandingMedia replaces the landing configuration. Blank gallery URLs and highlights
// without an image are dropped.
func (ms *MediaService) UpdateLandingMedia(ctx context.Context, payload structs.LandingMediaPayload) (*structs.LandingMedia, error) {
	landing := &tables.LandingMedia{
		ID:              tables.LandingMediaID,
		HeroVideoSrc:    strings.TrimSpace(payload.HeroVideo.Src),
		HeroVideoPoster: strings.TrimSpace(payload.HeroVideo.Poster),
		UpdatedAt:       ms.now(),
	}

	gallery := make([]tables.LandingGallery, 0, len(payload.HeroGallery))
	for _, url := range payload.HeroGallery {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		gallery = append(gallery, tables.LandingGallery{
			ID:        uuid.NewString(),
			LandingID: tables.LandingMediaID,
			URL:       url,
			SortOrder: len(gallery),
		})
	}

	highlights := make([]tables.LandingHighlight, 0, len(payload.MediaHighlights))
	for _, h := range payload.MediaHighlights {
		image := strings.TrimSpace(h.Image)
		if image == "" {
			continue
		}
		highlights = append(highlights, tables.LandingHighlight{
			ID:        uuid.NewString(),
			LandingID: tables.LandingMediaID,
			Title:     strings.TrimSpace(h.Title),
			Caption:   strings.TrimSpace(h.Caption),
			Image:     image,
			SortOrder: len(highlights),
		})
	}

	row, err := database.TransactionWithResult(ctx, ms.db, func(ctx context.Context, tx bun.Tx) (*tables.LandingMedia, error) {
		_, err := tx.NewInsert().
			Model(landing).
			On("CONFLICT (id) DO UPDATE").
			Set("hero_video_src = EXCLUDED.hero_video_src").
			Set("hero_video_poster = EXCLUDED.hero_video_poster").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return nil, lib.MapDBError(err)
		}

		if _, err := tx.NewDelete().Model((*tables.LandingGallery)(nil)).Where("landing_id = ?", tables.LandingMediaID).Exec(ctx); err != nil {
			return nil, err
		}
		if len(gallery) > 0 {
			if _, err := tx.NewInsert().Model(&gallery).Exec(ctx); err != nil {
				return nil, lib.MapDBError(err)
			}
		}

		if _, err := tx.NewDelete().Model((*tables.LandingHighlight)(nil)).Where("landing_id = ?", tables.LandingMediaID).Exec(ctx); err != nil {
			return nil, err
		}
		if len(highlights) > 0 {
			if _, err := tx.NewInsert().Model(&highlights).Exec(ctx); err != nil {
				return nil, lib.MapDBError(err)
			}
		}

		return loadLandingMedia(ctx, tx)
	})
	if err != nil {
		ms.logger.Error("Failed to update landing media", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to update landing media: %w", err)
	}

	ms.cache.invalidateAsync("", landingMediaKey)
	ms.logger.Info("Landing media updated",
		gecho.Field("gallery", len(gallery)),
		gecho.Field("highlights", len(highlights)),
	)

	updated := mapLandingMedia(row)
	return &updated, nil
}
