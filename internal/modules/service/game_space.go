package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/infra/cache"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/repo"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"github.com/tabletop-manager/api/internal/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const inviteCodeLen = 8

type GameSpaceService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.GameSpaceWithMembers, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateGameSpaceReq) (*model.GameSpace, error)
	Get(ctx context.Context, id uuid.UUID) (*model.GameSpace, error)
	Update(ctx context.Context, requesterID, id uuid.UUID, req UpdateGameSpaceReq) (*model.GameSpace, error)
	Delete(ctx context.Context, requesterID, id uuid.UUID) error
	ComputeStats(ctx context.Context, id uuid.UUID) (*model.GameSpaceStats, error)

	SetActive(ctx context.Context, userID uuid.UUID, id *uuid.UUID) (*ActiveGameSpace, error)
	Active(ctx context.Context, userID uuid.UUID) (*ActiveGameSpace, error)

	RoleOf(ctx context.Context, id, userID uuid.UUID) (string, error)
	ListMembers(ctx context.Context, id uuid.UUID) ([]model.Membership, error)
	AddMember(ctx context.Context, requesterID, id uuid.UUID, req AddMemberReq) (*model.Membership, error)
	RemoveMember(ctx context.Context, requesterID, id, userID uuid.UUID) error
	JoinByInviteCode(ctx context.Context, userID uuid.UUID, code string) (*model.Membership, error)
}

type gameSpaceService struct {
	r      repo.GameSpaceRepo
	active cache.ActiveSpaceStore
	log    *zap.Logger
}

func NewGameSpaceService(r repo.GameSpaceRepo, active cache.ActiveSpaceStore, log *zap.Logger) GameSpaceService {
	return &gameSpaceService{
		r:      r,
		active: active,
		log:    log,
	}
}

type CreateGameSpaceReq struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type UpdateGameSpaceReq struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type AddMemberReq struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"omitempty,oneof=gm player"`
}

// ActiveGameSpace is a user's current selection with its fresh statistics.
type ActiveGameSpace struct {
	GameSpace *model.GameSpace      `json:"game_space"`
	Stats     *model.GameSpaceStats `json:"stats"`
}

// ListForUser returns the spaces the user owns or belongs to, each
// annotated with its member count and the user's role. Lists are always
// read from storage, so a space the caller just created, joined or
// renamed is in the next list.
func (s *gameSpaceService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.GameSpaceWithMembers, error) {
	spaces, err := s.r.ListForUser(ctx, userID)
	if err != nil {
		return nil, storeErr(s.log, "list game spaces", err)
	}
	ids := make([]uuid.UUID, 0, len(spaces))
	for _, gs := range spaces {
		ids = append(ids, gs.ID)
	}
	members, err := s.r.ListMembers(ctx, ids...)
	if err != nil {
		return nil, storeErr(s.log, "list members", err)
	}

	counts := make(map[uuid.UUID]int64, len(spaces))
	roles := make(map[uuid.UUID]string, len(spaces))
	for _, m := range members {
		counts[m.GameSpaceID]++
		if m.UserID == userID {
			roles[m.GameSpaceID] = m.Role
		}
	}

	seen := make(map[uuid.UUID]bool, len(spaces))
	out := make([]model.GameSpaceWithMembers, 0, len(spaces))
	for _, gs := range spaces {
		if seen[gs.ID] {
			continue
		}
		seen[gs.ID] = true
		out = append(out, model.GameSpaceWithMembers{
			GameSpace:   gs,
			MemberCount: counts[gs.ID],
			Role:        effectiveRole(&gs, userID, roles[gs.ID]),
		})
	}
	return out, nil
}

// effectiveRole: the owner is always gm, members keep their row's role and
// anything else defaults to player.
func effectiveRole(gs *model.GameSpace, userID uuid.UUID, memberRole string) string {
	if gs.GMUserID == userID {
		return model.RoleGM
	}
	if memberRole != "" {
		return memberRole
	}
	return model.RolePlayer
}

func (s *gameSpaceService) Create(ctx context.Context, ownerID uuid.UUID, req CreateGameSpaceReq) (*model.GameSpace, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = trimPtr(req.Description)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	code, err := utils.GenerateInviteCode(inviteCodeLen)
	if err != nil {
		return nil, apperr.Transport("generate invite code", err)
	}
	gs := &model.GameSpace{
		Name:        req.Name,
		Description: req.Description,
		GMUserID:    ownerID,
		InviteCode:  code,
	}
	if err := s.r.Create(ctx, gs); err != nil {
		return nil, storeErr(s.log, "create game space", err)
	}
	return gs, nil
}

func (s *gameSpaceService) Get(ctx context.Context, id uuid.UUID) (*model.GameSpace, error) {
	gs, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, storeErr(s.log, "get game space", err)
	}
	return gs, nil
}

func (s *gameSpaceService) owner(ctx context.Context, requesterID, id uuid.UUID) (*model.GameSpace, error) {
	gs, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if gs.GMUserID != requesterID {
		return nil, apperr.Permission("only the owner can modify this game space")
	}
	return gs, nil
}

func (s *gameSpaceService) Update(ctx context.Context, requesterID, id uuid.UUID, req UpdateGameSpaceReq) (*model.GameSpace, error) {
	req.Name = trimPtr(req.Name)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	gs, err := s.owner(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}
	cols := patch{}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	if len(cols) == 0 {
		return gs, nil
	}
	out, err := s.r.Update(ctx, id, cols)
	if err != nil {
		return nil, storeErr(s.log, "update game space", err)
	}
	return out, nil
}

// Delete removes a game space and, through cascading keys, everything in
// it. Only the owner may delete.
func (s *gameSpaceService) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	if _, err := s.owner(ctx, requesterID, id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return storeErr(s.log, "delete game space", err)
	}
	if cur, err := s.active.Get(ctx, requesterID); err == nil && cur != nil && *cur == id {
		if err := s.active.Clear(ctx, requesterID); err != nil {
			s.log.Sugar().Warnw("clear active game space", "user_id", requesterID, "err", err)
		}
	}
	return nil
}

// ComputeStats is read-only. A space without children yields zero counts.
func (s *gameSpaceService) ComputeStats(ctx context.Context, id uuid.UUID) (*model.GameSpaceStats, error) {
	st, err := s.r.Stats(ctx, id)
	if err != nil {
		return nil, storeErr(s.log, "compute stats", err)
	}
	return st, nil
}

// SetActive selects a game space for the user, or clears the selection
// when id is nil. Selecting computes the space's stats right away.
func (s *gameSpaceService) SetActive(ctx context.Context, userID uuid.UUID, id *uuid.UUID) (*ActiveGameSpace, error) {
	if id == nil {
		if err := s.active.Clear(ctx, userID); err != nil {
			return nil, storeErr(s.log, "clear active game space", err)
		}
		return nil, nil
	}
	if _, err := s.RoleOf(ctx, *id, userID); err != nil {
		return nil, err
	}
	if err := s.active.Set(ctx, userID, *id); err != nil {
		return nil, storeErr(s.log, "set active game space", err)
	}
	return s.describe(ctx, *id)
}

// Active returns nil when the user has no selection. A selection the user
// lost access to, or whose space is gone, is cleared.
func (s *gameSpaceService) Active(ctx context.Context, userID uuid.UUID) (*ActiveGameSpace, error) {
	id, err := s.active.Get(ctx, userID)
	if err != nil {
		return nil, storeErr(s.log, "get active game space", err)
	}
	if id == nil {
		return nil, nil
	}
	_, err = s.RoleOf(ctx, *id, userID)
	if apperr.IsNotFound(err) || apperr.IsPermission(err) {
		if err := s.active.Clear(ctx, userID); err != nil {
			s.log.Sugar().Warnw("clear active game space", "user_id", userID, "err", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.describe(ctx, *id)
}

func (s *gameSpaceService) describe(ctx context.Context, id uuid.UUID) (*ActiveGameSpace, error) {
	gs, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	st, err := s.ComputeStats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ActiveGameSpace{GameSpace: gs, Stats: st}, nil
}

// RoleOf returns the user's effective role, or a Permission error when the
// user is neither owner nor member.
func (s *gameSpaceService) RoleOf(ctx context.Context, id, userID uuid.UUID) (string, error) {
	gs, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if gs.GMUserID == userID {
		return model.RoleGM, nil
	}
	m, err := s.r.GetMember(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.Permission("not a member of this game space")
	}
	if err != nil {
		return "", storeErr(s.log, "get member", err)
	}
	return m.Role, nil
}

func (s *gameSpaceService) ListMembers(ctx context.Context, id uuid.UUID) ([]model.Membership, error) {
	items, err := s.r.ListMembers(ctx, id)
	if err != nil {
		return nil, storeErr(s.log, "list members", err)
	}
	return items, nil
}

func (s *gameSpaceService) requireGM(ctx context.Context, id, userID uuid.UUID) error {
	role, err := s.RoleOf(ctx, id, userID)
	if err != nil {
		return err
	}
	if role != model.RoleGM {
		return apperr.Permission("game master role required")
	}
	return nil
}

// AddMember is a no-op returning the existing row when the user already
// belongs to the space.
func (s *gameSpaceService) AddMember(ctx context.Context, requesterID, id uuid.UUID, req AddMemberReq) (*model.Membership, error) {
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if err := s.requireGM(ctx, id, requesterID); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = model.RolePlayer
	}
	m, err := s.r.AddMember(ctx, &model.Membership{GameSpaceID: id, UserID: req.UserID, Role: req.Role})
	if err != nil {
		return nil, storeErr(s.log, "add member", err)
	}
	return m, nil
}

func (s *gameSpaceService) RemoveMember(ctx context.Context, requesterID, id, userID uuid.UUID) error {
	if err := s.requireGM(ctx, id, requesterID); err != nil {
		return err
	}
	gs, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if gs.GMUserID == userID {
		return apperr.Validation("the owner cannot be removed")
	}
	if err := s.r.RemoveMember(ctx, id, userID); err != nil {
		return storeErr(s.log, "remove member", err)
	}
	return nil
}

func (s *gameSpaceService) JoinByInviteCode(ctx context.Context, userID uuid.UUID, code string) (*model.Membership, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperr.Validation("invite_code is required")
	}
	gs, err := s.r.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, storeErr(s.log, "find invite code", err)
	}
	role := model.RolePlayer
	if gs.GMUserID == userID {
		role = model.RoleGM
	}
	m, err := s.r.AddMember(ctx, &model.Membership{GameSpaceID: gs.ID, UserID: userID, Role: role})
	if err != nil {
		return nil, storeErr(s.log, "join game space", err)
	}
	return m, nil
}
