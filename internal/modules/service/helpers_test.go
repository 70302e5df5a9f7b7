package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func newTestContentService(db *gorm.DB) ContentService {
	return NewContentService(ContentRepos{
		TextSections: repo.NewTextSectionRepo(db),
		Skills:       repo.NewSkillRepo(db),
		Classes:      repo.NewCharacterClassRepo(db),
		Attributes:   repo.NewDynamicAttributeRepo(db),
		Calculations: repo.NewAttributeCalculationRepo(db),
		Dependencies: repo.NewFormulaDependencyRepo(db),
		Sections:     repo.NewCustomSectionRepo(db),
		Values:       repo.NewCalculatedValueRepo(db),
	}, zap.NewNop())
}

// seedSpace inserts a game space owned by a fresh user.
func seedSpace(t *testing.T, db *gorm.DB, name string) (*model.GameSpace, uuid.UUID) {
	t.Helper()
	owner := uuid.New()
	gs := &model.GameSpace{Name: name, GMUserID: owner, InviteCode: uuid.NewString()[:8]}
	require.NoError(t, repo.NewGameSpaceRepo(db).Create(context.Background(), gs))
	return gs, owner
}

// MockRepo is a testify mock of the generic table repository.
type MockRepo[T any] struct {
	mock.Mock
}

func (m *MockRepo[T]) ListBySpace(ctx context.Context, gameSpaceID uuid.UUID, scopes ...repo.Scope) ([]T, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepo[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepo[T]) Create(ctx context.Context, v *T) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockRepo[T]) Update(ctx context.Context, id uuid.UUID, cols map[string]interface{}) (*T, error) {
	args := m.Called(ctx, id, cols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher records recalculation requests.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, v interface{}) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
