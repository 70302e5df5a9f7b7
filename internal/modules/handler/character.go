package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/middleware"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/serializer"
	"github.com/tabletop-manager/api/internal/modules/service"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
)

type CharacterHandler struct {
	svc service.CharacterService
}

func NewCharacterHandler(s service.CharacterService) *CharacterHandler {
	return &CharacterHandler{svc: s}
}

// ListCharacters godoc
//
//	@Summary		List characters
//	@Description	List the game space's active characters by name
//	@Tags			character
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Character}
//	@Router			/game_spaces/{game_space_id}/characters [get]
func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	listIn(c, h.svc.LoadCharacters)
}

// GetCharacter godoc
//
//	@Summary		Get character
//	@Description	Get a character, including one that was soft-deleted
//	@Tags			character
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string	true	"Character ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Character}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id} [get]
func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	withCharacter(c, h.svc.GetCharacter)
}

// CreateCharacter godoc
//
//	@Summary		Create character
//	@Tags			character
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string						true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateCharacterReq	true	"CreateCharacter payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Character}
//	@Router			/game_spaces/{game_space_id}/characters [post]
func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	createIn(c, h.svc.CreateCharacter)
}

// UpdateCharacter godoc
//
//	@Summary		Update character
//	@Description	Update a character. Setting is_active to true restores a soft-deleted one; changing is_active requires the game master role.
//	@Tags			character
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string						true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string						true	"Character ID"	Format(uuid)
//	@Param			payload			body	service.UpdateCharacterReq	true	"UpdateCharacter payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Character}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id} [put]
func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	updateIn(c, "character_id", func(ctx context.Context, gameSpaceID, id uuid.UUID, req service.UpdateCharacterReq) (*model.Character, error) {
		// is_active is deletion and restore, both gm-only
		if req.IsActive != nil && c.GetString(middleware.CtxRole) != model.RoleGM {
			return nil, apperr.Permission("game master role required to delete or restore a character")
		}
		return h.svc.UpdateCharacter(ctx, gameSpaceID, id, req)
	})
}

// DeleteCharacter godoc
//
//	@Summary		Delete character
//	@Description	Soft-delete a character. Its stored values are kept.
//	@Tags			character
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string	true	"Character ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id} [delete]
func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	deleteIn(c, "character_id", h.svc.DeleteCharacter)
}

// RecalculateCharacter godoc
//
//	@Summary		Recalculate character
//	@Description	Mark every calculated value of the character dirty and queue a recalculation request
//	@Tags			character
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string	true	"Character ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		202	{object}	serializer.Response{data=[]model.CharacterCalculatedValue}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id}/recalculate [post]
func (h *CharacterHandler) RecalculateCharacter(c *gin.Context) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	characterID, ok := pathID(c, "character_id")
	if !ok {
		return
	}
	out, err := h.svc.RecalculateCharacterValues(c.Request.Context(), gameSpaceID, characterID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, serializer.Response{Data: out})
}

// ListCalculatedValues godoc
//
//	@Summary		List calculated values
//	@Tags			character
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string	true	"Character ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.CharacterCalculatedValue}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id}/values [get]
func (h *CharacterHandler) ListCalculatedValues(c *gin.Context) {
	withCharacter(c, h.svc.LoadCalculatedValues)
}

// StoreCalculatedValue godoc
//
//	@Summary		Store calculated value
//	@Description	Write back one computed value. The stored row is no longer dirty.
//	@Tags			character
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string							true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string							true	"Character ID"	Format(uuid)
//	@Param			payload			body	service.StoreCalculatedValueReq	true	"StoreCalculatedValue payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CharacterCalculatedValue}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id}/values [put]
func (h *CharacterHandler) StoreCalculatedValue(c *gin.Context) {
	updateIn(c, "character_id", h.svc.StoreCalculatedValue)
}

// ListClassAssignments godoc
//
//	@Summary		List class assignments
//	@Tags			character
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string	true	"Character ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.CharacterClassAssignment}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id}/classes [get]
func (h *CharacterHandler) ListClassAssignments(c *gin.Context) {
	withCharacter(c, h.svc.LoadClassAssignments)
}

// AssignClass godoc
//
//	@Summary		Assign class
//	@Description	Assign a class of the same game space. A primary assignment clears the flag on the others.
//	@Tags			character
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string					true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string					true	"Character ID"	Format(uuid)
//	@Param			payload			body	service.AssignClassReq	true	"AssignClass payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CharacterClassAssignment}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id}/classes [post]
func (h *CharacterHandler) AssignClass(c *gin.Context) {
	characterID, ok := pathID(c, "character_id")
	if !ok {
		return
	}
	createIn(c, func(ctx context.Context, gameSpaceID uuid.UUID, req service.AssignClassReq) (*model.CharacterClassAssignment, error) {
		return h.svc.AssignClass(ctx, gameSpaceID, characterID, req)
	})
}

// UpdateClassAssignment godoc
//
//	@Summary		Update class assignment
//	@Tags			character
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string								true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string								true	"Character ID"	Format(uuid)
//	@Param			assignment_id	path	string								true	"Assignment ID"	Format(uuid)
//	@Param			payload			body	service.UpdateClassAssignmentReq	true	"UpdateClassAssignment payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CharacterClassAssignment}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id}/classes/{assignment_id} [put]
func (h *CharacterHandler) UpdateClassAssignment(c *gin.Context) {
	characterID, ok := pathID(c, "character_id")
	if !ok {
		return
	}
	updateIn(c, "assignment_id", func(ctx context.Context, gameSpaceID, id uuid.UUID, req service.UpdateClassAssignmentReq) (*model.CharacterClassAssignment, error) {
		return h.svc.UpdateClassAssignment(ctx, gameSpaceID, characterID, id, req)
	})
}

// RemoveClassAssignment godoc
//
//	@Summary		Remove class assignment
//	@Tags			character
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			character_id	path	string	true	"Character ID"	Format(uuid)
//	@Param			assignment_id	path	string	true	"Assignment ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/characters/{character_id}/classes/{assignment_id} [delete]
func (h *CharacterHandler) RemoveClassAssignment(c *gin.Context) {
	characterID, ok := pathID(c, "character_id")
	if !ok {
		return
	}
	deleteIn(c, "assignment_id", func(ctx context.Context, gameSpaceID, id uuid.UUID) error {
		return h.svc.RemoveClassAssignment(ctx, gameSpaceID, characterID, id)
	})
}

// ListCreationTemplates godoc
//
//	@Summary		List character creation templates
//	@Tags			character
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.CharacterCreationTemplate}
//	@Router			/game_spaces/{game_space_id}/creation_templates [get]
func (h *CharacterHandler) ListCreationTemplates(c *gin.Context) {
	listIn(c, h.svc.LoadCreationTemplates)
}

// CreateCreationTemplate godoc
//
//	@Summary		Create character creation template
//	@Tags			character
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string								true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateCreationTemplateReq	true	"CreateCreationTemplate payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CharacterCreationTemplate}
//	@Router			/game_spaces/{game_space_id}/creation_templates [post]
func (h *CharacterHandler) CreateCreationTemplate(c *gin.Context) {
	createIn(c, h.svc.CreateCreationTemplate)
}

// UpdateCreationTemplate godoc
//
//	@Summary		Update character creation template
//	@Tags			character
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string								true	"Game space ID"	Format(uuid)
//	@Param			template_id		path	string								true	"Template ID"	Format(uuid)
//	@Param			payload			body	service.UpdateCreationTemplateReq	true	"UpdateCreationTemplate payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CharacterCreationTemplate}
//	@Router			/game_spaces/{game_space_id}/creation_templates/{template_id} [put]
func (h *CharacterHandler) UpdateCreationTemplate(c *gin.Context) {
	updateIn(c, "template_id", h.svc.UpdateCreationTemplate)
}

// DeleteCreationTemplate godoc
//
//	@Summary		Delete character creation template
//	@Tags			character
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			template_id		path	string	true	"Template ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/creation_templates/{template_id} [delete]
func (h *CharacterHandler) DeleteCreationTemplate(c *gin.Context) {
	deleteIn(c, "template_id", h.svc.DeleteCreationTemplate)
}

func withCharacter[Out any](c *gin.Context, load func(context.Context, uuid.UUID, uuid.UUID) (Out, error)) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	characterID, ok := pathID(c, "character_id")
	if !ok {
		return
	}
	out, err := load(c.Request.Context(), gameSpaceID, characterID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
