package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CharacterRepo interface {
	Repo[model.Character]
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type characterRepo struct {
	*crudRepo[model.Character]
}

func NewCharacterRepo(db *gorm.DB) CharacterRepo {
	return &characterRepo{crudRepo: newCrudRepo[model.Character](db, "name ASC, id ASC")}
}

func (r *characterRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Character{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ClassAssignmentRepo interface {
	ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]model.CharacterClassAssignment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.CharacterClassAssignment, error)
	Create(ctx context.Context, a *model.CharacterClassAssignment) error
	Update(ctx context.Context, id uuid.UUID, cols map[string]interface{}) (*model.CharacterClassAssignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type classAssignmentRepo struct{ db *gorm.DB }

func NewClassAssignmentRepo(db *gorm.DB) ClassAssignmentRepo {
	return &classAssignmentRepo{db: db}
}

func (r *classAssignmentRepo) ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]model.CharacterClassAssignment, error) {
	items := make([]model.CharacterClassAssignment, 0)
	return items, r.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Order("is_primary DESC, created_at ASC, id ASC").
		Find(&items).Error
}

func (r *classAssignmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.CharacterClassAssignment, error) {
	var a model.CharacterClassAssignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the assignment. A primary assignment demotes the
// character's other assignments in the same transaction.
func (r *classAssignmentRepo) Create(ctx context.Context, a *model.CharacterClassAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsPrimary {
			if err := demotePrimaries(tx, a.CharacterID, uuid.Nil); err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	})
}

func (r *classAssignmentRepo) Update(ctx context.Context, id uuid.UUID, cols map[string]interface{}) (*model.CharacterClassAssignment, error) {
	var out model.CharacterClassAssignment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&out).Error; err != nil {
			return err
		}
		if primary, ok := cols["is_primary"].(bool); ok && primary {
			if err := demotePrimaries(tx, out.CharacterID, id); err != nil {
				return err
			}
		}
		if err := tx.Model(&model.CharacterClassAssignment{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *classAssignmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CharacterClassAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func demotePrimaries(tx *gorm.DB, characterID, keep uuid.UUID) error {
	q := tx.Model(&model.CharacterClassAssignment{}).Where("character_id = ? AND is_primary = ?", characterID, true)
	if keep != uuid.Nil {
		q = q.Where("id <> ?", keep)
	}
	return q.Update("is_primary", false).Error
}

type CalculatedValueRepo interface {
	ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]model.CharacterCalculatedValue, error)
	MarkDirty(ctx context.Context, characterID uuid.UUID) (int64, error)
	MarkDirtyByAttribute(ctx context.Context, gameSpaceID uuid.UUID, names ...string) (int64, error)
	MarkDirtyByClass(ctx context.Context, classID uuid.UUID) (int64, error)
	Upsert(ctx context.Context, v *model.CharacterCalculatedValue) (*model.CharacterCalculatedValue, error)
}

type calculatedValueRepo struct{ db *gorm.DB }

func NewCalculatedValueRepo(db *gorm.DB) CalculatedValueRepo {
	return &calculatedValueRepo{db: db}
}

func (r *calculatedValueRepo) ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]model.CharacterCalculatedValue, error) {
	items := make([]model.CharacterCalculatedValue, 0)
	return items, r.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Order("attribute_name ASC").
		Find(&items).Error
}

// MarkDirty flags every cached value of one character and returns how many
// rows were flagged.
func (r *calculatedValueRepo) MarkDirty(ctx context.Context, characterID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CharacterCalculatedValue{}).
		Where("character_id = ?", characterID).
		Update("is_dirty", true)
	return res.RowsAffected, res.Error
}

// MarkDirtyByAttribute flags the named values of every character in the
// game space.
func (r *calculatedValueRepo) MarkDirtyByAttribute(ctx context.Context, gameSpaceID uuid.UUID, names ...string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	characters := r.db.Model(&model.Character{}).Select("id").Where("game_space_id = ?", gameSpaceID)
	res := r.db.WithContext(ctx).Model(&model.CharacterCalculatedValue{}).
		Where("character_id IN (?) AND attribute_name IN ?", characters, names).
		Update("is_dirty", true)
	return res.RowsAffected, res.Error
}

// MarkDirtyByClass flags every value of the characters that hold classID.
func (r *calculatedValueRepo) MarkDirtyByClass(ctx context.Context, classID uuid.UUID) (int64, error) {
	holders := r.db.Model(&model.CharacterClassAssignment{}).Select("character_id").Where("class_id = ?", classID)
	res := r.db.WithContext(ctx).Model(&model.CharacterCalculatedValue{}).
		Where("character_id IN (?)", holders).
		Update("is_dirty", true)
	return res.RowsAffected, res.Error
}

// Upsert overwrites the (character_id, attribute_name) entry and clears its
// dirty flag.
func (r *calculatedValueRepo) Upsert(ctx context.Context, v *model.CharacterCalculatedValue) (*model.CharacterCalculatedValue, error) {
	if v.ComputedAt.IsZero() {
		v.ComputedAt = time.Now().UTC()
	}
	v.IsDirty = false
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "character_id"}, {Name: "attribute_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "computed_at", "is_dirty", "updated_at"}),
	}).Create(v).Error
	if err != nil {
		return nil, err
	}

	var out model.CharacterCalculatedValue
	if err := r.db.WithContext(ctx).
		Where("character_id = ? AND attribute_name = ?", v.CharacterID, v.AttributeName).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
