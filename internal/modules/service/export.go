package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/infra/blob"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"go.uber.org/zap"
)

// ObjectStore is the part of the blob layer exports need.
type ObjectStore interface {
	UploadJSON(ctx context.Context, keyPrefix string, data interface{}) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
}

type ExportService interface {
	Export(ctx context.Context, gameSpaceID uuid.UUID) (*ExportResult, error)
}

type exportService struct {
	spaces     GameSpaceService
	content    ContentService
	characters CharacterService
	store      ObjectStore
	prefix     string
	expire     func() time.Duration
	log        *zap.Logger
}

func NewExportService(spaces GameSpaceService, content ContentService, characters CharacterService, store ObjectStore, prefix string, expire func() time.Duration, log *zap.Logger) ExportService {
	return &exportService{
		spaces:     spaces,
		content:    content,
		characters: characters,
		store:      store,
		prefix:     prefix,
		expire:     expire,
		log:        log,
	}
}

// Snapshot is the exported document.
type Snapshot struct {
	Version    int                   `json:"version"`
	ExportedAt time.Time             `json:"exported_at"`
	GameSpace  *model.GameSpace      `json:"game_space"`
	Stats      *model.GameSpaceStats `json:"stats"`
	Content    *ContentBundle        `json:"content"`
	Characters []model.Character     `json:"characters"`
}

type ExportResult struct {
	Key       string    `json:"key"`
	SHA256    string    `json:"sha256"`
	SizeB     int64     `json:"size_b"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *exportService) Export(ctx context.Context, gameSpaceID uuid.UUID) (*ExportResult, error) {
	if s.store == nil {
		return nil, apperr.Validation("export storage is not configured")
	}
	gs, err := s.spaces.Get(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}
	stats, err := s.spaces.ComputeStats(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}
	content, err := s.content.LoadAllContent(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}
	chars, err := s.characters.LoadCharacters(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Version:    1,
		ExportedAt: time.Now().UTC(),
		GameSpace:  gs,
		Stats:      stats,
		Content:    content,
		Characters: chars,
	}
	meta, err := s.store.UploadJSON(ctx, fmt.Sprintf("%s/%s", s.prefix, gameSpaceID), snap)
	if err != nil {
		s.log.Sugar().Errorw("upload export", "game_space_id", gameSpaceID, "err", err)
		return nil, apperr.Transport("upload export", err)
	}

	expire := s.expire()
	url, err := s.store.PresignGet(ctx, meta.Key, expire)
	if err != nil {
		s.log.Sugar().Errorw("presign export", "key", meta.Key, "err", err)
		return nil, apperr.Transport("presign export", err)
	}
	s.log.Sugar().Infow("exported game space", "game_space_id", gameSpaceID, "key", meta.Key, "bytes", meta.SizeB)

	return &ExportResult{
		Key:       meta.Key,
		SHA256:    meta.SHA256,
		SizeB:     meta.SizeB,
		URL:       url,
		ExpiresAt: time.Now().UTC().Add(expire),
	}, nil
}
