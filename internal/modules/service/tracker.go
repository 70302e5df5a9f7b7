package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/repo"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"github.com/tabletop-manager/api/internal/realtime"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// TrackerService owns a game space's options and play sessions.
type TrackerService interface {
	LoadOptions(ctx context.Context, gameSpaceID uuid.UUID) ([]model.GameSpaceOption, error)
	CreateOption(ctx context.Context, gameSpaceID uuid.UUID, req CreateOptionReq) (*model.GameSpaceOption, error)
	UpdateOption(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateOptionReq) (*model.GameSpaceOption, error)
	DeleteOption(ctx context.Context, gameSpaceID, id uuid.UUID) error

	LoadSessions(ctx context.Context, gameSpaceID uuid.UUID) ([]model.GameSession, error)
	ActiveSession(ctx context.Context, gameSpaceID uuid.UUID) (*model.GameSession, error)
	StartSession(ctx context.Context, gameSpaceID uuid.UUID, req StartSessionReq) (*model.GameSession, error)
	UpdateSessionData(ctx context.Context, gameSpaceID, id uuid.UUID, data map[string]interface{}) (*model.GameSession, error)
	EndSession(ctx context.Context, gameSpaceID, id uuid.UUID) (*model.GameSession, error)
}

type trackerService struct {
	options  *collection[model.GameSpaceOption]
	sessions *collection[model.GameSession]
	active   repo.GameSessionRepo
	bus      realtime.Bus
	log      *zap.Logger
}

func NewTrackerService(options repo.GameSpaceOptionRepo, sessions repo.GameSessionRepo, bus realtime.Bus, log *zap.Logger) TrackerService {
	return &trackerService{
		options:  newCollection("option", options, func(m *model.GameSpaceOption) uuid.UUID { return m.GameSpaceID }, log),
		sessions: newCollection[model.GameSession]("game session", sessions, func(m *model.GameSession) uuid.UUID { return m.GameSpaceID }, log),
		active:   sessions,
		bus:      bus,
		log:      log,
	}
}

type CreateOptionReq struct {
	Key      string          `json:"key" validate:"required,max=100"`
	Value    json.RawMessage `json:"value" swaggertype:"object"`
	Type     string          `json:"type" validate:"omitempty,max=50"`
	IsActive *bool           `json:"is_active"`
}

type UpdateOptionReq struct {
	Key      *string         `json:"key" validate:"omitempty,min=1,max=100"`
	Value    json.RawMessage `json:"value" swaggertype:"object"`
	Type     *string         `json:"type" validate:"omitempty,min=1,max=50"`
	IsActive *bool           `json:"is_active"`
}

func (s *trackerService) LoadOptions(ctx context.Context, gameSpaceID uuid.UUID) ([]model.GameSpaceOption, error) {
	return s.options.load(ctx, gameSpaceID)
}

func (s *trackerService) optionKeyTaken(ctx context.Context, gameSpaceID uuid.UUID, key string, except uuid.UUID) (bool, error) {
	items, err := s.options.current(ctx, gameSpaceID)
	if err != nil {
		return false, err
	}
	for _, o := range items {
		if o.ID != except && o.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func (s *trackerService) CreateOption(ctx context.Context, gameSpaceID uuid.UUID, req CreateOptionReq) (*model.GameSpaceOption, error) {
	req.Key = strings.TrimSpace(req.Key)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if len(req.Value) > 0 && !json.Valid(req.Value) {
		return nil, apperr.Validation("value must be valid JSON")
	}
	taken, err := s.optionKeyTaken(ctx, gameSpaceID, req.Key, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("option %q already exists", req.Key)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	value := datatypes.JSON("null")
	if len(req.Value) > 0 {
		value = datatypes.JSON(req.Value)
	}
	return s.options.create(ctx, &model.GameSpaceOption{
		GameSpaceID: gameSpaceID,
		Key:         req.Key,
		Value:       value,
		Type:        req.Type,
		IsActive:    active,
	})
}

func (s *trackerService) UpdateOption(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateOptionReq) (*model.GameSpaceOption, error) {
	req.Key = trimPtr(req.Key)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if len(req.Value) > 0 && !json.Valid(req.Value) {
		return nil, apperr.Validation("value must be valid JSON")
	}
	cols := patch{}
	if req.Key != nil {
		taken, err := s.optionKeyTaken(ctx, gameSpaceID, *req.Key, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Validation("option %q already exists", *req.Key)
		}
		cols["key"] = *req.Key
	}
	cols.set("value", datatypes.JSON(req.Value), len(req.Value) > 0)
	if req.Type != nil {
		cols["type"] = *req.Type
	}
	if req.IsActive != nil {
		cols["is_active"] = *req.IsActive
	}
	return s.options.update(ctx, gameSpaceID, id, cols)
}

func (s *trackerService) DeleteOption(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	return s.options.delete(ctx, gameSpaceID, id)
}

// ---- sessions

type StartSessionReq struct {
	Name         string                 `json:"name" validate:"required,max=100"`
	Participants []string               `json:"participants"`
	SessionData  map[string]interface{} `json:"session_data"`
}

func (s *trackerService) LoadSessions(ctx context.Context, gameSpaceID uuid.UUID) ([]model.GameSession, error) {
	return s.sessions.load(ctx, gameSpaceID)
}

// ActiveSession returns nil when no session is running.
func (s *trackerService) ActiveSession(ctx context.Context, gameSpaceID uuid.UUID) (*model.GameSession, error) {
	gs, err := s.active.Active(ctx, gameSpaceID)
	if err != nil {
		err = storeErr(s.log, "get active session", err)
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return gs, nil
}

func (s *trackerService) StartSession(ctx context.Context, gameSpaceID uuid.UUID, req StartSessionReq) (*model.GameSession, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	running, err := s.ActiveSession(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, apperr.Validation("a session is already active")
	}
	if req.Participants == nil {
		req.Participants = []string{}
	}
	if req.SessionData == nil {
		req.SessionData = map[string]interface{}{}
	}
	now := time.Now().UTC()
	out, err := s.sessions.create(ctx, &model.GameSession{
		GameSpaceID:  gameSpaceID,
		Name:         req.Name,
		Status:       model.SessionStatusActive,
		Participants: datatypes.NewJSONSlice(req.Participants),
		SessionData:  datatypes.JSONMap(req.SessionData),
		StartedAt:    &now,
	})
	if err != nil {
		return nil, err
	}
	s.broadcast(ctx, realtime.OpInsert, out)
	return out, nil
}

func (s *trackerService) UpdateSessionData(ctx context.Context, gameSpaceID, id uuid.UUID, data map[string]interface{}) (*model.GameSession, error) {
	if data == nil {
		return nil, apperr.Validation("session_data is required")
	}
	out, err := s.sessions.update(ctx, gameSpaceID, id, patch{"session_data": datatypes.JSONMap(data)})
	if err != nil {
		return nil, err
	}
	s.broadcast(ctx, realtime.OpUpdate, out)
	return out, nil
}

func (s *trackerService) EndSession(ctx context.Context, gameSpaceID, id uuid.UUID) (*model.GameSession, error) {
	cur, err := s.sessions.owned(ctx, gameSpaceID, id)
	if err != nil {
		return nil, err
	}
	if cur.Status == model.SessionStatusCompleted {
		return nil, apperr.Validation("session already ended")
	}
	out, err := s.sessions.apply(ctx, gameSpaceID, id, patch{
		"status":   model.SessionStatusCompleted,
		"ended_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.broadcast(ctx, realtime.OpUpdate, out)
	return out, nil
}

func (s *trackerService) broadcast(ctx context.Context, op realtime.Operation, gs *model.GameSession) {
	if s.bus == nil {
		return
	}
	ev, err := realtime.NewEvent(gs.GameSpaceID, realtime.ChannelSessions, op, gs)
	if err == nil {
		err = s.bus.Publish(ctx, ev)
	}
	if err != nil {
		s.log.Sugar().Warnw("broadcast failed", "game_space_id", gs.GameSpaceID, "channel", realtime.ChannelSessions, "op", op, "err", err)
	}
}
