package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/serializer"
	"github.com/tabletop-manager/api/internal/modules/service"
)

type GameSpaceHandler struct {
	svc service.GameSpaceService
}

func NewGameSpaceHandler(s service.GameSpaceService) *GameSpaceHandler {
	return &GameSpaceHandler{svc: s}
}

type JoinGameSpaceReq struct {
	InviteCode string `json:"invite_code" binding:"required" example:"a1b2c3d4"`
}

type SetActiveGameSpaceReq struct {
	GameSpaceID *uuid.UUID `json:"game_space_id" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// ListGameSpaces godoc
//
//	@Summary		List game spaces
//	@Description	List the game spaces the caller owns or belongs to, newest activity first
//	@Tags			game_space
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.GameSpaceWithMembers}
//	@Router			/game_spaces [get]
func (h *GameSpaceHandler) ListGameSpaces(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := h.svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// CreateGameSpace godoc
//
//	@Summary		Create game space
//	@Description	Create a game space owned by the caller, who becomes its game master
//	@Tags			game_space
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	service.CreateGameSpaceReq	true	"CreateGameSpace payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.GameSpace}
//	@Router			/game_spaces [post]
func (h *GameSpaceHandler) CreateGameSpace(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req := service.CreateGameSpaceReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	gs, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: gs})
}

// JoinGameSpace godoc
//
//	@Summary		Join game space
//	@Description	Join a game space as a player using its invite code
//	@Tags			game_space
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.JoinGameSpaceReq	true	"JoinGameSpace payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Membership}
//	@Router			/game_spaces/join [post]
func (h *GameSpaceHandler) JoinGameSpace(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req := JoinGameSpaceReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	m, err := h.svc.JoinByInviteCode(c.Request.Context(), userID, req.InviteCode)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: m})
}

// GetGameSpace godoc
//
//	@Summary		Get game space
//	@Tags			game_space
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.GameSpace}
//	@Router			/game_spaces/{game_space_id} [get]
func (h *GameSpaceHandler) GetGameSpace(c *gin.Context) {
	id, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	gs, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gs})
}

// UpdateGameSpace godoc
//
//	@Summary		Update game space
//	@Description	Rename or re-describe a game space. Only the owner may do this.
//	@Tags			game_space
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string						true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.UpdateGameSpaceReq	true	"UpdateGameSpace payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.GameSpace}
//	@Router			/game_spaces/{game_space_id} [put]
func (h *GameSpaceHandler) UpdateGameSpace(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	req := service.UpdateGameSpaceReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	gs, err := h.svc.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gs})
}

// DeleteGameSpace godoc
//
//	@Summary		Delete game space
//	@Description	Delete a game space and everything scoped to it. Only the owner may do this.
//	@Tags			game_space
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id} [delete]
func (h *GameSpaceHandler) DeleteGameSpace(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

// GetGameSpaceStats godoc
//
//	@Summary		Get game space statistics
//	@Tags			game_space
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.GameSpaceStats}
//	@Router			/game_spaces/{game_space_id}/stats [get]
func (h *GameSpaceHandler) GetGameSpaceStats(c *gin.Context) {
	listIn(c, h.svc.ComputeStats)
}

// GetActiveGameSpace godoc
//
//	@Summary		Get active game space
//	@Description	Get the caller's active game space with fresh statistics. Data is null when nothing is selected.
//	@Tags			game_space
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ActiveGameSpace}
//	@Router			/active_game_space [get]
func (h *GameSpaceHandler) GetActiveGameSpace(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := h.svc.Active(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// SetActiveGameSpace godoc
//
//	@Summary		Set active game space
//	@Description	Select the caller's active game space. A null id clears the selection.
//	@Tags			game_space
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.SetActiveGameSpaceReq	true	"SetActiveGameSpace payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ActiveGameSpace}
//	@Router			/active_game_space [put]
func (h *GameSpaceHandler) SetActiveGameSpace(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req := SetActiveGameSpaceReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := h.svc.SetActive(c.Request.Context(), userID, req.GameSpaceID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// ListMembers godoc
//
//	@Summary		List members
//	@Tags			game_space
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Membership}
//	@Router			/game_spaces/{game_space_id}/members [get]
func (h *GameSpaceHandler) ListMembers(c *gin.Context) {
	listIn(c, h.svc.ListMembers)
}

// AddMember godoc
//
//	@Summary		Add member
//	@Description	Add a user to the game space. Requires the game master role.
//	@Tags			game_space
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string				true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.AddMemberReq	true	"AddMember payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Membership}
//	@Router			/game_spaces/{game_space_id}/members [post]
func (h *GameSpaceHandler) AddMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	createIn(c, func(ctx context.Context, gameSpaceID uuid.UUID, req service.AddMemberReq) (*model.Membership, error) {
		return h.svc.AddMember(ctx, userID, gameSpaceID, req)
	})
}

// RemoveMember godoc
//
//	@Summary		Remove member
//	@Description	Remove a user from the game space. Requires the game master role. The owner cannot be removed.
//	@Tags			game_space
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			user_id			path	string	true	"User ID"		Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/members/{user_id} [delete]
func (h *GameSpaceHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	deleteIn(c, "user_id", func(ctx context.Context, gameSpaceID, memberID uuid.UUID) error {
		return h.svc.RemoveMember(ctx, userID, gameSpaceID, memberID)
	})
}
