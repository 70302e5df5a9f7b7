package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
	"gorm.io/gorm"
)

type GameSessionRepo interface {
	Repo[model.GameSession]
	Active(ctx context.Context, gameSpaceID uuid.UUID) (*model.GameSession, error)
}

type gameSessionRepo struct {
	*crudRepo[model.GameSession]
}

func NewGameSessionRepo(db *gorm.DB) GameSessionRepo {
	return &gameSessionRepo{crudRepo: newCrudRepo[model.GameSession](db, "created_at DESC, id ASC")}
}

// Active returns the most recently started active session, or
// gorm.ErrRecordNotFound when none is running.
func (r *gameSessionRepo) Active(ctx context.Context, gameSpaceID uuid.UUID) (*model.GameSession, error) {
	var s model.GameSession
	err := r.db.WithContext(ctx).
		Where("game_space_id = ? AND status = ?", gameSpaceID, model.SessionStatusActive).
		Order("started_at DESC, id ASC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
