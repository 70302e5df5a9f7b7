package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tabletop-manager/api/internal/modules/serializer"
	"github.com/tabletop-manager/api/internal/modules/service"
)

type ExportHandler struct {
	svc service.ExportService
}

func NewExportHandler(s service.ExportService) *ExportHandler {
	return &ExportHandler{svc: s}
}

// ExportGameSpace godoc
//
//	@Summary		Export game space
//	@Description	Upload a JSON snapshot of the game space's content and characters and return a presigned download URL
//	@Tags			export
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=service.ExportResult}
//	@Router			/game_spaces/{game_space_id}/export [post]
func (h *ExportHandler) ExportGameSpace(c *gin.Context) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	out, err := h.svc.Export(c.Request.Context(), gameSpaceID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: out})
}
