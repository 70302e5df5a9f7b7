package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/repo"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"github.com/tabletop-manager/api/internal/pkg/state"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var attributeNameRe = regexp.MustCompile(`^[A-Z_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("attrname", func(fl validator.FieldLevel) bool {
		return attributeNameRe.MatchString(fl.Field().String())
	})
	return v
}

// validateReq turns the first failed rule into a Validation error.
func validateReq(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation("%v", err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperr.Validation("%s is required", fe.Field())
	case "max":
		return apperr.Validation("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return apperr.Validation("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return apperr.Validation("%s must be one of [%s]", fe.Field(), fe.Param())
	case "attrname":
		return apperr.Validation("%s may only contain uppercase letters and underscores", fe.Field())
	}
	return apperr.Validation("%s failed %s", fe.Field(), fe.Tag())
}

// storeErr classifies a repository failure. Transport failures are logged
// here, once.
func storeErr(log *zap.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	if apperr.KindOf(err) != "" {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("%s: not found", op)
	}
	log.Sugar().Errorw(op+" failed", "err", err)
	return apperr.Transport(op, err)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// patch collects the columns of a partial update.
type patch map[string]interface{}

func (p patch) set(col string, v interface{}, ok bool) patch {
	if ok {
		p[col] = v
	}
	return p
}

// collection couples a typed repo with the per-game-space cache it keeps
// fresh. Every successful mutation refetches the affected game space.
type collection[T model.Identifiable] struct {
	name    string
	repo    repo.Repo[T]
	cache   *state.Collections[T]
	scopes  []repo.Scope
	spaceOf func(*T) uuid.UUID
	log     *zap.Logger
}

func newCollection[T model.Identifiable](name string, r repo.Repo[T], spaceOf func(*T) uuid.UUID, log *zap.Logger, scopes ...repo.Scope) *collection[T] {
	return &collection[T]{
		name:    name,
		repo:    r,
		cache:   state.NewCollections[T](),
		scopes:  scopes,
		spaceOf: spaceOf,
		log:     log,
	}
}

func (c *collection[T]) load(ctx context.Context, gameSpaceID uuid.UUID) ([]T, error) {
	items, err := c.repo.ListBySpace(ctx, gameSpaceID, c.scopes...)
	if err != nil {
		return nil, storeErr(c.log, "load "+c.name, err)
	}
	c.cache.Set(gameSpaceID, items)
	return items, nil
}

// current returns the cached collection, loading it on first use.
func (c *collection[T]) current(ctx context.Context, gameSpaceID uuid.UUID) ([]T, error) {
	if items, ok := c.cache.Get(gameSpaceID); ok {
		return items, nil
	}
	return c.load(ctx, gameSpaceID)
}

// owned fetches one row and checks it belongs to the game space.
func (c *collection[T]) owned(ctx context.Context, gameSpaceID, id uuid.UUID) (*T, error) {
	m, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, storeErr(c.log, "get "+c.name, err)
	}
	if c.spaceOf(m) != gameSpaceID {
		return nil, apperr.NotFound("get %s: not found", c.name)
	}
	return m, nil
}

func (c *collection[T]) create(ctx context.Context, m *T) (*T, error) {
	if err := c.repo.Create(ctx, m); err != nil {
		return nil, storeErr(c.log, "create "+c.name, err)
	}
	gameSpaceID := c.spaceOf(m)
	out, err := c.repo.Get(ctx, (*m).GetID())
	if err != nil {
		return nil, storeErr(c.log, "get "+c.name, err)
	}
	c.refresh(ctx, gameSpaceID)
	return out, nil
}

func (c *collection[T]) update(ctx context.Context, gameSpaceID, id uuid.UUID, cols patch) (*T, error) {
	if _, err := c.owned(ctx, gameSpaceID, id); err != nil {
		return nil, err
	}
	return c.apply(ctx, gameSpaceID, id, cols)
}

// apply writes cols to a row already known to belong to gameSpaceID.
func (c *collection[T]) apply(ctx context.Context, gameSpaceID, id uuid.UUID, cols patch) (*T, error) {
	if len(cols) == 0 {
		return c.owned(ctx, gameSpaceID, id)
	}
	out, err := c.repo.Update(ctx, id, cols)
	if err != nil {
		return nil, storeErr(c.log, "update "+c.name, err)
	}
	c.refresh(ctx, gameSpaceID)
	return out, nil
}

func (c *collection[T]) delete(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	if _, err := c.owned(ctx, gameSpaceID, id); err != nil {
		return err
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		return storeErr(c.log, "delete "+c.name, err)
	}
	c.refresh(ctx, gameSpaceID)
	return nil
}

// refresh refetches after a confirmed write. A failed refetch drops the
// cached copy so the next read goes to storage.
func (c *collection[T]) refresh(ctx context.Context, gameSpaceID uuid.UUID) {
	if _, err := c.load(ctx, gameSpaceID); err != nil {
		c.log.Sugar().Warnw("refresh after write failed", "collection", c.name, "game_space_id", gameSpaceID, "err", err)
		c.cache.Drop(gameSpaceID)
	}
}

func joinErrs(op string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w", op, errors.Join(errs...))
}
