package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"github.com/tabletop-manager/api/internal/realtime"
	"go.uber.org/zap"
)

// stubBus replays queued events to each subscriber as soon as it subscribes.
type stubBus struct {
	mu         sync.Mutex
	queued     map[string][]realtime.Event
	subscribed []string
	stopped    int
	failOn     string
}

func (b *stubBus) Publish(ctx context.Context, ev realtime.Event) error { return nil }

func (b *stubBus) Subscribe(ctx context.Context, gameSpaceID uuid.UUID, channel string, onEvent func(realtime.Event)) (func() error, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if channel == b.failOn {
		return nil, errors.New("redis down")
	}
	b.subscribed = append(b.subscribed, channel)
	for _, ev := range b.queued[channel] {
		onEvent(ev)
	}
	return func() error {
		b.mu.Lock()
		b.stopped++
		b.mu.Unlock()
		return nil
	}, nil
}

type closeNotifyingRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyingRecorder) CloseNotify() <-chan bool { return r.closed }

func TestParseChannels(t *testing.T) {
	tests := []struct {
		raw     string
		want    []string
		wantErr bool
	}{
		{raw: "", want: []string{realtime.ChannelCharacters, realtime.ChannelSessions}},
		{raw: "sessions", want: []string{realtime.ChannelSessions}},
		{raw: " characters , characters", want: []string{realtime.ChannelCharacters}},
		{raw: "characters,dice", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseChannels(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// followingChars returns a character service whose Follow replays evs and
// counts stops.
func followingChars(gameSpaceID uuid.UUID, followErr error, evs ...realtime.Event) (*MockCharacterService, *int) {
	stopped := new(int)
	chars := &MockCharacterService{}
	call := chars.On("Follow", mock.Anything, gameSpaceID, mock.Anything).Maybe()
	if followErr != nil {
		call.Return(nil, followErr)
		return chars, stopped
	}
	call.Run(func(args mock.Arguments) {
		onEvent := args.Get(2).(func(realtime.Event))
		for _, ev := range evs {
			onEvent(ev)
		}
	}).Return(func() error {
		*stopped++
		return nil
	}, nil)
	return chars, stopped
}

func TestEventsHandler_StreamEvents(t *testing.T) {
	gameSpaceID := uuid.New()
	charEv, err := realtime.NewEvent(gameSpaceID, realtime.ChannelCharacters, realtime.OpInsert, model.Character{Name: "Aria"})
	require.NoError(t, err)
	sessionEv, err := realtime.NewEvent(gameSpaceID, realtime.ChannelSessions, realtime.OpUpdate, model.GameSession{Name: "Death House"})
	require.NoError(t, err)

	bus := &stubBus{queued: map[string][]realtime.Event{realtime.ChannelSessions: {sessionEv}}}
	chars, followStops := followingChars(gameSpaceID, nil, charEv)
	h := NewEventsHandler(bus, chars, zap.NewNop())

	r := setupRouter(uuid.New())
	r.GET("/game_spaces/:game_space_id/events", h.StreamEvents)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/game_spaces/"+gameSpaceID.String()+"/events", nil).WithContext(ctx)
	w := &closeNotifyingRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event:characters")
	assert.Contains(t, body, "Aria")
	assert.Contains(t, body, "event:sessions")
	assert.Contains(t, body, "Death House")
	// characters go through the followed collection, sessions straight to the bus
	assert.Equal(t, []string{realtime.ChannelSessions}, bus.subscribed)
	assert.Equal(t, 1, bus.stopped)
	assert.Equal(t, 1, *followStops)
	chars.AssertExpectations(t)
}

func TestEventsHandler_StreamEventsErrors(t *testing.T) {
	gameSpaceID := uuid.New()
	path := "/game_spaces/" + gameSpaceID.String() + "/events"

	tests := []struct {
		name           string
		bus            realtime.Bus
		followErr      error
		query          string
		expectedStatus int
		followStops    int
	}{
		{name: "no bus", bus: nil, expectedStatus: http.StatusBadRequest},
		{name: "unknown channel", bus: &stubBus{}, query: "?channels=dice", expectedStatus: http.StatusBadRequest},
		{name: "subscribe fails", bus: &stubBus{failOn: realtime.ChannelSessions}, expectedStatus: http.StatusBadGateway, followStops: 1},
		{name: "follow fails", bus: &stubBus{}, followErr: apperr.Transport("follow characters", errors.New("redis down")), expectedStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chars, followStops := followingChars(gameSpaceID, tt.followErr)
			h := NewEventsHandler(tt.bus, chars, zap.NewNop())
			r := setupRouter(uuid.New())
			r.GET("/game_spaces/:game_space_id/events", h.StreamEvents)

			w := perform(t, r, http.MethodGet, path+tt.query, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.followStops, *followStops)
		})
	}
}
