package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/repo"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"github.com/tabletop-manager/api/internal/pkg/state"
	"github.com/tabletop-manager/api/internal/realtime"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Publisher hands a message to the broker.
type Publisher interface {
	PublishJSON(ctx context.Context, v interface{}) error
}

// RecalcRequest asks the external engine to recompute a character's dirty
// values.
type RecalcRequest struct {
	GameSpaceID uuid.UUID `json:"game_space_id"`
	CharacterID uuid.UUID `json:"character_id"`
	DirtyCount  int64     `json:"dirty_count"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

type CharacterService interface {
	LoadCharacters(ctx context.Context, gameSpaceID uuid.UUID) ([]model.Character, error)
	GetCharacter(ctx context.Context, gameSpaceID, id uuid.UUID) (*model.Character, error)
	CreateCharacter(ctx context.Context, gameSpaceID uuid.UUID, req CreateCharacterReq) (*model.Character, error)
	UpdateCharacter(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateCharacterReq) (*model.Character, error)
	DeleteCharacter(ctx context.Context, gameSpaceID, id uuid.UUID) error

	RecalculateCharacterValues(ctx context.Context, gameSpaceID, characterID uuid.UUID) ([]model.CharacterCalculatedValue, error)
	LoadCalculatedValues(ctx context.Context, gameSpaceID, characterID uuid.UUID) ([]model.CharacterCalculatedValue, error)
	StoreCalculatedValue(ctx context.Context, gameSpaceID, characterID uuid.UUID, req StoreCalculatedValueReq) (*model.CharacterCalculatedValue, error)

	LoadClassAssignments(ctx context.Context, gameSpaceID, characterID uuid.UUID) ([]model.CharacterClassAssignment, error)
	AssignClass(ctx context.Context, gameSpaceID, characterID uuid.UUID, req AssignClassReq) (*model.CharacterClassAssignment, error)
	UpdateClassAssignment(ctx context.Context, gameSpaceID, characterID, id uuid.UUID, req UpdateClassAssignmentReq) (*model.CharacterClassAssignment, error)
	RemoveClassAssignment(ctx context.Context, gameSpaceID, characterID, id uuid.UUID) error

	LoadCreationTemplates(ctx context.Context, gameSpaceID uuid.UUID) ([]model.CharacterCreationTemplate, error)
	CreateCreationTemplate(ctx context.Context, gameSpaceID uuid.UUID, req CreateCreationTemplateReq) (*model.CharacterCreationTemplate, error)
	UpdateCreationTemplate(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateCreationTemplateReq) (*model.CharacterCreationTemplate, error)
	DeleteCreationTemplate(ctx context.Context, gameSpaceID, id uuid.UUID) error

	// Follow keeps the game space's character collection in step with
	// broadcast events and hands each event to onEvent. While a space is
	// followed LoadCharacters is served from memory.
	Follow(ctx context.Context, gameSpaceID uuid.UUID, onEvent func(realtime.Event)) (stop func() error, err error)
}

type CharacterRepos struct {
	Characters  repo.CharacterRepo
	Assignments repo.ClassAssignmentRepo
	Values      repo.CalculatedValueRepo
	Classes     repo.CharacterClassRepo
	Templates   repo.CreationTemplateRepo
}

type characterService struct {
	characters  repo.CharacterRepo
	assignments repo.ClassAssignmentRepo
	values      repo.CalculatedValueRepo
	classes     repo.CharacterClassRepo
	templates   *collection[model.CharacterCreationTemplate]

	cache   *state.Collections[model.Character]
	mu      sync.Mutex
	follows map[uuid.UUID]int
	bus     realtime.Bus
	recalc  Publisher
	log     *zap.Logger
}

// NewCharacterService wires the store. bus and recalc may be nil, which
// disables broadcasting and recalculation requests.
func NewCharacterService(r CharacterRepos, bus realtime.Bus, recalc Publisher, log *zap.Logger) CharacterService {
	return &characterService{
		characters:  r.Characters,
		assignments: r.Assignments,
		values:      r.Values,
		classes:     r.Classes,
		templates:   newCollection("creation template", r.Templates, func(m *model.CharacterCreationTemplate) uuid.UUID { return m.GameSpaceID }, log),
		cache:       state.NewCollections[model.Character](),
		follows:     make(map[uuid.UUID]int),
		bus:         bus,
		recalc:      recalc,
		log:         log,
	}
}

type CreateCharacterReq struct {
	Name          string                 `json:"name" validate:"required,max=100"`
	CharacterType string                 `json:"character_type" validate:"required,oneof=pc npc"`
	OwnerUserID   *uuid.UUID             `json:"owner_user_id"`
	Data          map[string]interface{} `json:"character_data"`
	Notes         *string                `json:"notes"`
}

type UpdateCharacterReq struct {
	Name          *string                `json:"name" validate:"omitempty,min=1,max=100"`
	CharacterType *string                `json:"character_type" validate:"omitempty,oneof=pc npc"`
	OwnerUserID   *uuid.UUID             `json:"owner_user_id"`
	Data          map[string]interface{} `json:"character_data"`
	Notes         *string                `json:"notes"`
	IsActive      *bool                  `json:"is_active"`
}

// LoadCharacters returns active characters sorted by name.
func (s *characterService) LoadCharacters(ctx context.Context, gameSpaceID uuid.UUID) ([]model.Character, error) {
	if s.followed(gameSpaceID) {
		if items, ok := s.cache.Get(gameSpaceID); ok {
			return items, nil
		}
	}
	return s.reload(ctx, gameSpaceID)
}

func (s *characterService) reload(ctx context.Context, gameSpaceID uuid.UUID) ([]model.Character, error) {
	items, err := s.characters.ListBySpace(ctx, gameSpaceID, repo.ActiveOnly)
	if err != nil {
		return nil, storeErr(s.log, "load characters", err)
	}
	s.cache.Set(gameSpaceID, items)
	return items, nil
}

// GetCharacter looks a character up by id, including soft-deleted ones.
func (s *characterService) GetCharacter(ctx context.Context, gameSpaceID, id uuid.UUID) (*model.Character, error) {
	c, err := s.characters.Get(ctx, id)
	if err != nil {
		return nil, storeErr(s.log, "get character", err)
	}
	if c.GameSpaceID != gameSpaceID {
		return nil, apperr.NotFound("character %s: not found", id)
	}
	return c, nil
}

func (s *characterService) CreateCharacter(ctx context.Context, gameSpaceID uuid.UUID, req CreateCharacterReq) (*model.Character, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if req.Data == nil {
		req.Data = map[string]interface{}{}
	}
	c := &model.Character{
		GameSpaceID:   gameSpaceID,
		Name:          req.Name,
		CharacterType: req.CharacterType,
		OwnerUserID:   req.OwnerUserID,
		Data:          datatypes.JSONMap(req.Data),
		Notes:         req.Notes,
		IsActive:      true,
	}
	if err := s.characters.Create(ctx, c); err != nil {
		return nil, storeErr(s.log, "create character", err)
	}
	s.patchCache(gameSpaceID, realtime.OpInsert, *c)
	s.broadcast(ctx, gameSpaceID, realtime.ChannelCharacters, realtime.OpInsert, c)
	return c, nil
}

func (s *characterService) UpdateCharacter(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateCharacterReq) (*model.Character, error) {
	req.Name = trimPtr(req.Name)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	prev, err := s.GetCharacter(ctx, gameSpaceID, id)
	if err != nil {
		return nil, err
	}

	cols := patch{}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.CharacterType != nil {
		cols["character_type"] = *req.CharacterType
	}
	if req.OwnerUserID != nil {
		cols["owner_user_id"] = *req.OwnerUserID
	}
	cols.set("character_data", datatypes.JSONMap(req.Data), req.Data != nil)
	if req.Notes != nil {
		cols["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		cols["is_active"] = *req.IsActive
	}
	if len(cols) == 0 {
		return s.GetCharacter(ctx, gameSpaceID, id)
	}

	c, err := s.characters.Update(ctx, id, cols)
	if err != nil {
		return nil, storeErr(s.log, "update character", err)
	}
	// followers only hold active characters
	op := realtime.OpUpdate
	switch {
	case !c.IsActive:
		op = realtime.OpDelete
	case !prev.IsActive:
		op = realtime.OpInsert
	}
	s.patchCache(gameSpaceID, op, *c)
	s.broadcast(ctx, gameSpaceID, realtime.ChannelCharacters, op, c)
	return c, nil
}

// DeleteCharacter soft-deletes: the row, its class assignments and its
// calculated values all stay.
func (s *characterService) DeleteCharacter(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	c, err := s.GetCharacter(ctx, gameSpaceID, id)
	if err != nil {
		return err
	}
	if err := s.characters.SoftDelete(ctx, id); err != nil {
		return storeErr(s.log, "delete character", err)
	}
	c.IsActive = false
	s.patchCache(gameSpaceID, realtime.OpDelete, *c)
	s.broadcast(ctx, gameSpaceID, realtime.ChannelCharacters, realtime.OpDelete, c)
	return nil
}

func (s *characterService) broadcast(ctx context.Context, gameSpaceID uuid.UUID, channel string, op realtime.Operation, payload interface{}) {
	if s.bus == nil {
		return
	}
	ev, err := realtime.NewEvent(gameSpaceID, channel, op, payload)
	if err == nil {
		err = s.bus.Publish(ctx, ev)
	}
	if err != nil {
		s.log.Sugar().Warnw("broadcast failed", "game_space_id", gameSpaceID, "channel", channel, "op", op, "err", err)
	}
}

// patchCache applies one change to a loaded collection and keeps it in
// name order.
func (s *characterService) patchCache(gameSpaceID uuid.UUID, op realtime.Operation, c model.Character) {
	s.cache.Patch(gameSpaceID, func(items []model.Character) []model.Character {
		return sortByName(realtime.Apply(items, op, c))
	})
}

func sortByName(items []model.Character) []model.Character {
	slices.SortStableFunc(items, func(a, b model.Character) int {
		if n := cmp.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return items
}

func (s *characterService) followed(gameSpaceID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follows[gameSpaceID] > 0
}

// Follow subscribes before loading so no event published after the load
// is missed. Followers of one space share the collection; the last stop
// drops it.
func (s *characterService) Follow(ctx context.Context, gameSpaceID uuid.UUID, onEvent func(realtime.Event)) (func() error, error) {
	if s.bus == nil {
		return nil, apperr.Validation("realtime is not configured")
	}
	unsubscribe, err := s.bus.Subscribe(ctx, gameSpaceID, realtime.ChannelCharacters, func(ev realtime.Event) {
		c, err := realtime.Decode[model.Character](ev)
		if err != nil {
			s.log.Sugar().Warnw("drop character event", "game_space_id", gameSpaceID, "err", err)
		} else {
			s.patchCache(gameSpaceID, ev.Operation, c)
		}
		if onEvent != nil {
			onEvent(ev)
		}
	})
	if err != nil {
		return nil, apperr.Transport("follow characters", err)
	}
	if _, err := s.reload(ctx, gameSpaceID); err != nil {
		_ = unsubscribe()
		return nil, err
	}

	s.mu.Lock()
	s.follows[gameSpaceID]++
	s.mu.Unlock()

	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			err = unsubscribe()
			s.mu.Lock()
			defer s.mu.Unlock()
			s.follows[gameSpaceID]--
			if s.follows[gameSpaceID] <= 0 {
				delete(s.follows, gameSpaceID)
				s.cache.Drop(gameSpaceID)
			}
		})
		return err
	}, nil
}

// ---- calculated values

type StoreCalculatedValueReq struct {
	AttributeName string     `json:"attribute_name" validate:"required,max=100"`
	Value         float64    `json:"calculated_value"`
	ComputedAt    *time.Time `json:"last_calculated"`
}

func (s *characterService) LoadCalculatedValues(ctx context.Context, gameSpaceID, characterID uuid.UUID) ([]model.CharacterCalculatedValue, error) {
	if _, err := s.GetCharacter(ctx, gameSpaceID, characterID); err != nil {
		return nil, err
	}
	return s.loadValues(ctx, characterID)
}

func (s *characterService) loadValues(ctx context.Context, characterID uuid.UUID) ([]model.CharacterCalculatedValue, error) {
	items, err := s.values.ListByCharacter(ctx, characterID)
	if err != nil {
		return nil, storeErr(s.log, "load calculated values", err)
	}
	return items, nil
}

// RecalculateCharacterValues flags every cached value of the character as
// dirty, reloads them and asks the recalculation engine to recompute. It
// does not compute anything itself.
func (s *characterService) RecalculateCharacterValues(ctx context.Context, gameSpaceID, characterID uuid.UUID) ([]model.CharacterCalculatedValue, error) {
	if _, err := s.GetCharacter(ctx, gameSpaceID, characterID); err != nil {
		return nil, err
	}
	return s.markDirty(ctx, gameSpaceID, characterID, "recalculate")
}

func (s *characterService) markDirty(ctx context.Context, gameSpaceID, characterID uuid.UUID, reason string) ([]model.CharacterCalculatedValue, error) {
	n, err := s.values.MarkDirty(ctx, characterID)
	if err != nil {
		return nil, storeErr(s.log, "mark values dirty", err)
	}
	items, err := s.loadValues(ctx, characterID)
	if err != nil {
		return nil, err
	}

	if s.recalc != nil {
		req := RecalcRequest{
			GameSpaceID: gameSpaceID,
			CharacterID: characterID,
			DirtyCount:  n,
			Reason:      reason,
			RequestedAt: time.Now().UTC(),
		}
		// the dirty flags are already persisted; a lost request only delays recompute
		if err := s.recalc.PublishJSON(ctx, req); err != nil {
			s.log.Sugar().Errorw("publish recalculation request", "character_id", characterID, "err", err)
		}
	}
	return items, nil
}

// StoreCalculatedValue writes a freshly computed value and clears its dirty
// flag.
func (s *characterService) StoreCalculatedValue(ctx context.Context, gameSpaceID, characterID uuid.UUID, req StoreCalculatedValueReq) (*model.CharacterCalculatedValue, error) {
	req.AttributeName = strings.TrimSpace(req.AttributeName)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if _, err := s.GetCharacter(ctx, gameSpaceID, characterID); err != nil {
		return nil, err
	}
	v := &model.CharacterCalculatedValue{
		CharacterID:   characterID,
		AttributeName: req.AttributeName,
		Value:         req.Value,
	}
	if req.ComputedAt != nil {
		v.ComputedAt = req.ComputedAt.UTC()
	}
	out, err := s.values.Upsert(ctx, v)
	if err != nil {
		return nil, storeErr(s.log, "store calculated value", err)
	}
	return out, nil
}

// ---- class assignments

type AssignClassReq struct {
	ClassID          uuid.UUID              `json:"class_id" validate:"required"`
	Level            int                    `json:"level" validate:"omitempty,min=1"`
	IsPrimary        bool                   `json:"is_primary"`
	ExperiencePoints int                    `json:"experience_points" validate:"min=0"`
	Features         map[string]interface{} `json:"features"`
}

type UpdateClassAssignmentReq struct {
	Level            *int                   `json:"level" validate:"omitempty,min=1"`
	IsPrimary        *bool                  `json:"is_primary"`
	ExperiencePoints *int                   `json:"experience_points" validate:"omitempty,min=0"`
	Features         map[string]interface{} `json:"features"`
}

func (s *characterService) LoadClassAssignments(ctx context.Context, gameSpaceID, characterID uuid.UUID) ([]model.CharacterClassAssignment, error) {
	if _, err := s.GetCharacter(ctx, gameSpaceID, characterID); err != nil {
		return nil, err
	}
	items, err := s.assignments.ListByCharacter(ctx, characterID)
	if err != nil {
		return nil, storeErr(s.log, "load class assignments", err)
	}
	return items, nil
}

// AssignClass adds a class to a character. Making it primary demotes the
// character's other assignments atomically. The character's values are
// marked dirty.
func (s *characterService) AssignClass(ctx context.Context, gameSpaceID, characterID uuid.UUID, req AssignClassReq) (*model.CharacterClassAssignment, error) {
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if _, err := s.GetCharacter(ctx, gameSpaceID, characterID); err != nil {
		return nil, err
	}
	cls, err := s.classes.Get(ctx, req.ClassID)
	if err != nil {
		return nil, storeErr(s.log, "get character class", err)
	}
	if cls.GameSpaceID != gameSpaceID {
		return nil, apperr.NotFound("character class %s: not found", req.ClassID)
	}
	if req.Level == 0 {
		req.Level = 1
	}
	a := &model.CharacterClassAssignment{
		CharacterID:      characterID,
		ClassID:          req.ClassID,
		Level:            req.Level,
		IsPrimary:        req.IsPrimary,
		ExperiencePoints: req.ExperiencePoints,
		Features:         datatypes.JSONMap(req.Features),
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, storeErr(s.log, "assign class", err)
	}
	if _, err := s.markDirty(ctx, gameSpaceID, characterID, "class assigned"); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *characterService) ownedAssignment(ctx context.Context, gameSpaceID, characterID, id uuid.UUID) error {
	if _, err := s.GetCharacter(ctx, gameSpaceID, characterID); err != nil {
		return err
	}
	a, err := s.assignments.Get(ctx, id)
	if err != nil {
		return storeErr(s.log, "get class assignment", err)
	}
	if a.CharacterID != characterID {
		return apperr.NotFound("class assignment %s: not found", id)
	}
	return nil
}

func (s *characterService) UpdateClassAssignment(ctx context.Context, gameSpaceID, characterID, id uuid.UUID, req UpdateClassAssignmentReq) (*model.CharacterClassAssignment, error) {
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if err := s.ownedAssignment(ctx, gameSpaceID, characterID, id); err != nil {
		return nil, err
	}
	cols := patch{}
	if req.Level != nil {
		cols["level"] = *req.Level
	}
	if req.IsPrimary != nil {
		cols["is_primary"] = *req.IsPrimary
	}
	if req.ExperiencePoints != nil {
		cols["experience_points"] = *req.ExperiencePoints
	}
	cols.set("features", datatypes.JSONMap(req.Features), req.Features != nil)
	if len(cols) == 0 {
		a, err := s.assignments.Get(ctx, id)
		return a, storeErr(s.log, "get class assignment", err)
	}
	a, err := s.assignments.Update(ctx, id, cols)
	if err != nil {
		return nil, storeErr(s.log, "update class assignment", err)
	}
	if _, err := s.markDirty(ctx, gameSpaceID, characterID, "class assignment updated"); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *characterService) RemoveClassAssignment(ctx context.Context, gameSpaceID, characterID, id uuid.UUID) error {
	if err := s.ownedAssignment(ctx, gameSpaceID, characterID, id); err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return storeErr(s.log, "remove class assignment", err)
	}
	_, err := s.markDirty(ctx, gameSpaceID, characterID, "class removed")
	return err
}

// ---- creation templates

type CreateCreationTemplateReq struct {
	Name        string                 `json:"name" validate:"required,max=100"`
	Description *string                `json:"description" validate:"omitempty,max=500"`
	Steps       map[string]interface{} `json:"template_data"`
	IsDefault   bool                   `json:"is_default"`
}

type UpdateCreationTemplateReq struct {
	Name        *string                `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string                `json:"description" validate:"omitempty,max=500"`
	Steps       map[string]interface{} `json:"template_data"`
	IsDefault   *bool                  `json:"is_default"`
}

func (s *characterService) LoadCreationTemplates(ctx context.Context, gameSpaceID uuid.UUID) ([]model.CharacterCreationTemplate, error) {
	return s.templates.load(ctx, gameSpaceID)
}

func (s *characterService) CreateCreationTemplate(ctx context.Context, gameSpaceID uuid.UUID, req CreateCreationTemplateReq) (*model.CharacterCreationTemplate, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if req.Steps == nil {
		req.Steps = map[string]interface{}{}
	}
	return s.templates.create(ctx, &model.CharacterCreationTemplate{
		GameSpaceID: gameSpaceID,
		Name:        req.Name,
		Description: req.Description,
		Steps:       datatypes.JSONMap(req.Steps),
		IsDefault:   req.IsDefault,
	})
}

func (s *characterService) UpdateCreationTemplate(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateCreationTemplateReq) (*model.CharacterCreationTemplate, error) {
	req.Name = trimPtr(req.Name)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	cols := patch{}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	cols.set("template_data", datatypes.JSONMap(req.Steps), req.Steps != nil)
	if req.IsDefault != nil {
		cols["is_default"] = *req.IsDefault
	}
	return s.templates.update(ctx, gameSpaceID, id, cols)
}

func (s *characterService) DeleteCreationTemplate(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	return s.templates.delete(ctx, gameSpaceID, id)
}
