package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tabletop-manager/api/internal/modules/serializer"
	"github.com/tabletop-manager/api/internal/modules/service"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"github.com/tabletop-manager/api/internal/realtime"
	"go.uber.org/zap"
)

const (
	eventBuffer       = 64
	keepaliveInterval = 25 * time.Second
)

type EventsHandler struct {
	bus   realtime.Bus
	chars service.CharacterService
	log   *zap.Logger
}

func NewEventsHandler(bus realtime.Bus, chars service.CharacterService, log *zap.Logger) *EventsHandler {
	return &EventsHandler{bus: bus, chars: chars, log: log}
}

type StreamEventsReq struct {
	Channels string `form:"channels" json:"channels" example:"characters,sessions"`
}

// StreamEvents godoc
//
//	@Summary		Stream game space events
//	@Description	Server-sent events carrying every character and session mutation of the game space. Pick channels with a comma-separated list; both are streamed by default. While characters are streamed the server keeps the space's character list in memory.
//	@Tags			events
//	@Produce		text/event-stream
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			channels		query	string	false	"characters, sessions or both"
//	@Security		BearerAuth
//	@Success		200	{object}	realtime.Event
//	@Router			/game_spaces/{game_space_id}/events [get]
func (h *EventsHandler) StreamEvents(c *gin.Context) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	if h.bus == nil {
		fail(c, apperr.Validation("realtime events are not configured"))
		return
	}
	req := StreamEventsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	channels, err := parseChannels(req.Channels)
	if err != nil {
		fail(c, err)
		return
	}

	ctx := c.Request.Context()
	out := make(chan realtime.Event, eventBuffer)
	push := func(ev realtime.Event) {
		select {
		case out <- ev:
		default:
			h.log.Warn("dropping event for slow stream",
				zap.String("game_space_id", gameSpaceID.String()),
				zap.String("channel", ev.Channel))
		}
	}

	var stops []func() error
	defer func() {
		for _, stop := range stops {
			_ = stop()
		}
	}()
	for _, ch := range channels {
		var stop func() error
		if ch == realtime.ChannelCharacters {
			stop, err = h.chars.Follow(ctx, gameSpaceID, push)
		} else {
			stop, err = h.bus.Subscribe(ctx, gameSpaceID, ch, push)
			if err != nil {
				err = apperr.Transport("subscribe "+ch, err)
			}
		}
		if err != nil {
			fail(c, err)
			return
		}
		stops = append(stops, stop)
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-out:
			c.SSEvent(ev.Channel, ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}

func parseChannels(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{realtime.ChannelCharacters, realtime.ChannelSessions}, nil
	}
	var out []string
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		ch := strings.TrimSpace(part)
		switch ch {
		case realtime.ChannelCharacters, realtime.ChannelSessions:
		default:
			return nil, apperr.Validation("unknown channel %q", ch)
		}
		if !seen[ch] {
			seen[ch] = true
			out = append(out, ch)
		}
	}
	return out, nil
}
