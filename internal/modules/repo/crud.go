package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope narrows a query before it runs.
type Scope = func(*gorm.DB) *gorm.DB

// Repo is the table-level contract every game-space-scoped entity shares.
type Repo[T any] interface {
	ListBySpace(ctx context.Context, gameSpaceID uuid.UUID, scopes ...Scope) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, m *T) error
	Update(ctx context.Context, id uuid.UUID, cols map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type crudRepo[T any] struct {
	db      *gorm.DB
	orderBy string
}

func newCrudRepo[T any](db *gorm.DB, orderBy string) *crudRepo[T] {
	return &crudRepo[T]{db: db, orderBy: orderBy}
}

func (r *crudRepo[T]) ListBySpace(ctx context.Context, gameSpaceID uuid.UUID, scopes ...Scope) ([]T, error) {
	q := r.db.WithContext(ctx).Where("game_space_id = ?", gameSpaceID).Scopes(scopes...)
	if r.orderBy != "" {
		q = q.Order(r.orderBy)
	}
	items := make([]T, 0)
	return items, q.Find(&items).Error
}

func (r *crudRepo[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var m T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *crudRepo[T]) Create(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// Update applies cols and returns the row as persisted.
func (r *crudRepo[T]) Update(ctx context.Context, id uuid.UUID, cols map[string]interface{}) (*T, error) {
	var out T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(new(T)).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		return tx.Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *crudRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ActiveOnly keeps rows with is_active = true.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
