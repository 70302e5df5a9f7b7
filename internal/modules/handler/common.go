package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/middleware"
	"github.com/tabletop-manager/api/internal/modules/serializer"
)

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	v, _ := c.Get(middleware.CtxUserID)
	id, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
	}
	return id, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	status, res := serializer.FromError(err)
	c.JSON(status, res)
}

// The helpers below serve the game-space-scoped collections, whose service
// methods all share the same shapes.

func listIn[Out any](c *gin.Context, load func(context.Context, uuid.UUID) (Out, error)) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	out, err := load(c.Request.Context(), gameSpaceID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func createIn[Req, Out any](c *gin.Context, create func(context.Context, uuid.UUID, Req) (Out, error)) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := create(c.Request.Context(), gameSpaceID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: out})
}

func updateIn[Req, Out any](c *gin.Context, param string, update func(context.Context, uuid.UUID, uuid.UUID, Req) (Out, error)) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	id, ok := pathID(c, param)
	if !ok {
		return
	}
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	out, err := update(c.Request.Context(), gameSpaceID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func deleteIn(c *gin.Context, param string, remove func(context.Context, uuid.UUID, uuid.UUID) error) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	id, ok := pathID(c, param)
	if !ok {
		return
	}
	if err := remove(c.Request.Context(), gameSpaceID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}
