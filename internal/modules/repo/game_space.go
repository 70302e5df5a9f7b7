package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameSpaceRepo interface {
	Create(ctx context.Context, gs *model.GameSpace) error
	Get(ctx context.Context, id uuid.UUID) (*model.GameSpace, error)
	GetByInviteCode(ctx context.Context, code string) (*model.GameSpace, error)
	Update(ctx context.Context, id uuid.UUID, cols map[string]interface{}) (*model.GameSpace, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.GameSpace, error)

	ListMembers(ctx context.Context, gameSpaceIDs ...uuid.UUID) ([]model.Membership, error)
	GetMember(ctx context.Context, gameSpaceID, userID uuid.UUID) (*model.Membership, error)
	AddMember(ctx context.Context, m *model.Membership) (*model.Membership, error)
	RemoveMember(ctx context.Context, gameSpaceID, userID uuid.UUID) error

	Stats(ctx context.Context, gameSpaceID uuid.UUID) (*model.GameSpaceStats, error)
}

type gameSpaceRepo struct{ db *gorm.DB }

func NewGameSpaceRepo(db *gorm.DB) GameSpaceRepo {
	return &gameSpaceRepo{db: db}
}

// Create inserts the space together with the owner's gm membership.
func (r *gameSpaceRepo) Create(ctx context.Context, gs *model.GameSpace) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(gs).Error; err != nil {
			return err
		}
		return tx.Create(&model.Membership{
			GameSpaceID: gs.ID,
			UserID:      gs.GMUserID,
			Role:        model.RoleGM,
		}).Error
	})
}

func (r *gameSpaceRepo) Get(ctx context.Context, id uuid.UUID) (*model.GameSpace, error) {
	var gs model.GameSpace
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&gs).Error; err != nil {
		return nil, err
	}
	return &gs, nil
}

func (r *gameSpaceRepo) GetByInviteCode(ctx context.Context, code string) (*model.GameSpace, error) {
	var gs model.GameSpace
	if err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&gs).Error; err != nil {
		return nil, err
	}
	return &gs, nil
}

func (r *gameSpaceRepo) Update(ctx context.Context, id uuid.UUID, cols map[string]interface{}) (*model.GameSpace, error) {
	var out model.GameSpace
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.GameSpace{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the space; children go with it through ON DELETE CASCADE.
func (r *gameSpaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GameSpace{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForUser returns spaces the user owns or is a member of, newest
// activity first. The IN subquery keeps each space at most once.
func (r *gameSpaceRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.GameSpace, error) {
	memberOf := r.db.Model(&model.Membership{}).Select("game_space_id").Where("user_id = ?", userID)

	items := make([]model.GameSpace, 0)
	return items, r.db.WithContext(ctx).
		Where("gm_user_id = ? OR id IN (?)", userID, memberOf).
		Order("updated_at DESC, id ASC").
		Find(&items).Error
}

func (r *gameSpaceRepo) ListMembers(ctx context.Context, gameSpaceIDs ...uuid.UUID) ([]model.Membership, error) {
	items := make([]model.Membership, 0)
	if len(gameSpaceIDs) == 0 {
		return items, nil
	}
	return items, r.db.WithContext(ctx).
		Where("game_space_id IN ?", gameSpaceIDs).
		Order("joined_at ASC, id ASC").
		Find(&items).Error
}

func (r *gameSpaceRepo) GetMember(ctx context.Context, gameSpaceID, userID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	if err := r.db.WithContext(ctx).Where("game_space_id = ? AND user_id = ?", gameSpaceID, userID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// AddMember inserts the membership unless (game_space_id, user_id) already
// exists, and returns whichever row is stored.
func (r *gameSpaceRepo) AddMember(ctx context.Context, m *model.Membership) (*model.Membership, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_space_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.GetMember(ctx, m.GameSpaceID, m.UserID)
}

func (r *gameSpaceRepo) RemoveMember(ctx context.Context, gameSpaceID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("game_space_id = ? AND user_id = ?", gameSpaceID, userID).Delete(&model.Membership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats aggregates child rows without touching them.
func (r *gameSpaceRepo) Stats(ctx context.Context, gameSpaceID uuid.UUID) (*model.GameSpaceStats, error) {
	db := r.db.WithContext(ctx)
	out := &model.GameSpaceStats{}

	counts := []struct {
		dst   *int64
		model interface{}
		where string
		args  []interface{}
	}{
		{&out.PlayerCharacters, &model.Character{}, "game_space_id = ? AND is_active = ? AND character_type = ?", []interface{}{gameSpaceID, true, model.CharacterTypePC}},
		{&out.NPCs, &model.Character{}, "game_space_id = ? AND is_active = ? AND character_type = ?", []interface{}{gameSpaceID, true, model.CharacterTypeNPC}},
		{&out.ContentPages, &model.TextSection{}, "game_space_id = ?", []interface{}{gameSpaceID}},
		{&out.CustomAttributes, &model.DynamicAttribute{}, "game_space_id = ?", []interface{}{gameSpaceID}},
		{&out.ActiveTrackers, &model.GameSpaceOption{}, "game_space_id = ? AND is_active = ? AND type = ?", []interface{}{gameSpaceID, true, model.OptionTypeTracker}},
		{&out.TotalMembers, &model.Membership{}, "game_space_id = ?", []interface{}{gameSpaceID}},
		{&out.ActiveSessions, &model.GameSession{}, "game_space_id = ? AND status = ?", []interface{}{gameSpaceID, model.SessionStatusActive}},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, c.args...).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	for _, m := range []interface{}{&model.Character{}, &model.TextSection{}, &model.GameSession{}} {
		var row struct{ UpdatedAt time.Time }
		err := db.Model(m).Select("updated_at").Where("game_space_id = ?", gameSpaceID).
			Order("updated_at DESC").Limit(1).Scan(&row).Error
		if err != nil {
			return nil, err
		}
		if row.UpdatedAt.IsZero() {
			continue
		}
		if out.LastActivity == nil || row.UpdatedAt.After(*out.LastActivity) {
			at := row.UpdatedAt
			out.LastActivity = &at
		}
	}

	return out, nil
}
