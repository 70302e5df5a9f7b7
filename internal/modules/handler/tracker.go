package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tabletop-manager/api/internal/modules/serializer"
	"github.com/tabletop-manager/api/internal/modules/service"
)

type TrackerHandler struct {
	svc service.TrackerService
}

func NewTrackerHandler(s service.TrackerService) *TrackerHandler {
	return &TrackerHandler{svc: s}
}

// ListOptions godoc
//
//	@Summary		List options
//	@Tags			tracker
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.GameSpaceOption}
//	@Router			/game_spaces/{game_space_id}/options [get]
func (h *TrackerHandler) ListOptions(c *gin.Context) {
	listIn(c, h.svc.LoadOptions)
}

// CreateOption godoc
//
//	@Summary		Create option
//	@Description	Store a keyed JSON value. Options of type "tracker" count as active trackers.
//	@Tags			tracker
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string					true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateOptionReq	true	"CreateOption payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.GameSpaceOption}
//	@Router			/game_spaces/{game_space_id}/options [post]
func (h *TrackerHandler) CreateOption(c *gin.Context) {
	createIn(c, h.svc.CreateOption)
}

// UpdateOption godoc
//
//	@Summary		Update option
//	@Tags			tracker
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string					true	"Game space ID"	Format(uuid)
//	@Param			option_id		path	string					true	"Option ID"		Format(uuid)
//	@Param			payload			body	service.UpdateOptionReq	true	"UpdateOption payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.GameSpaceOption}
//	@Router			/game_spaces/{game_space_id}/options/{option_id} [put]
func (h *TrackerHandler) UpdateOption(c *gin.Context) {
	updateIn(c, "option_id", h.svc.UpdateOption)
}

// DeleteOption godoc
//
//	@Summary		Delete option
//	@Tags			tracker
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			option_id		path	string	true	"Option ID"		Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/options/{option_id} [delete]
func (h *TrackerHandler) DeleteOption(c *gin.Context) {
	deleteIn(c, "option_id", h.svc.DeleteOption)
}

// ListSessions godoc
//
//	@Summary		List game sessions
//	@Tags			tracker
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.GameSession}
//	@Router			/game_spaces/{game_space_id}/sessions [get]
func (h *TrackerHandler) ListSessions(c *gin.Context) {
	listIn(c, h.svc.LoadSessions)
}

// GetActiveSession godoc
//
//	@Summary		Get active game session
//	@Description	Data is null when no session is running
//	@Tags			tracker
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.GameSession}
//	@Router			/game_spaces/{game_space_id}/sessions/active [get]
func (h *TrackerHandler) GetActiveSession(c *gin.Context) {
	listIn(c, h.svc.ActiveSession)
}

// StartSession godoc
//
//	@Summary		Start game session
//	@Description	Start a session. Only one session per game space can be active.
//	@Tags			tracker
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string					true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.StartSessionReq	true	"StartSession payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.GameSession}
//	@Router			/game_spaces/{game_space_id}/sessions [post]
func (h *TrackerHandler) StartSession(c *gin.Context) {
	createIn(c, h.svc.StartSession)
}

// UpdateSessionData godoc
//
//	@Summary		Update game session data
//	@Description	Replace the session's free-form data
//	@Tags			tracker
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"		Format(uuid)
//	@Param			session_id		path	string	true	"Game session ID"	Format(uuid)
//	@Param			payload			body	object	true	"Session data"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.GameSession}
//	@Router			/game_spaces/{game_space_id}/sessions/{session_id}/data [put]
func (h *TrackerHandler) UpdateSessionData(c *gin.Context) {
	updateIn(c, "session_id", h.svc.UpdateSessionData)
}

// EndSession godoc
//
//	@Summary		End game session
//	@Tags			tracker
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"		Format(uuid)
//	@Param			session_id		path	string	true	"Game session ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.GameSession}
//	@Router			/game_spaces/{game_space_id}/sessions/{session_id}/end [post]
func (h *TrackerHandler) EndSession(c *gin.Context) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	id, ok := pathID(c, "session_id")
	if !ok {
		return
	}
	gs, err := h.svc.EndSession(c.Request.Context(), gameSpaceID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gs})
}
