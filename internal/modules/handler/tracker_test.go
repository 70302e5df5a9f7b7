package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/service"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
)

func TestTrackerHandler_Sessions(t *testing.T) {
	gameSpaceID := uuid.New()
	sessionID := uuid.New()
	base := "/game_spaces/" + gameSpaceID.String() + "/sessions"

	svc := &MockTrackerService{}
	svc.On("ActiveSession", mock.Anything, gameSpaceID).Return(nil, nil).Once()
	svc.On("StartSession", mock.Anything, gameSpaceID, service.StartSessionReq{Name: "Session 1", Participants: []string{"aria"}}).
		Return(&model.GameSession{Base: model.Base{ID: sessionID}, Name: "Session 1", Status: "active"}, nil).Once()
	svc.On("StartSession", mock.Anything, gameSpaceID, service.StartSessionReq{Name: "Session 2"}).
		Return(nil, apperr.Validation("a session is already active")).Once()
	svc.On("UpdateSessionData", mock.Anything, gameSpaceID, sessionID, map[string]interface{}{"round": float64(3)}).
		Return(&model.GameSession{Base: model.Base{ID: sessionID}, Status: "active"}, nil).Once()
	svc.On("EndSession", mock.Anything, gameSpaceID, sessionID).
		Return(&model.GameSession{Base: model.Base{ID: sessionID}, Status: "completed"}, nil).Once()
	h := NewTrackerHandler(svc)

	r := setupRouter(uuid.New())
	r.GET("/game_spaces/:game_space_id/sessions/active", h.GetActiveSession)
	r.POST("/game_spaces/:game_space_id/sessions", h.StartSession)
	r.PUT("/game_spaces/:game_space_id/sessions/:session_id/data", h.UpdateSessionData)
	r.POST("/game_spaces/:game_space_id/sessions/:session_id/end", h.EndSession)

	w := perform(t, r, http.MethodGet, base+"/active", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), sessionID.String())

	w = perform(t, r, http.MethodPost, base, map[string]interface{}{"name": "Session 1", "participants": []string{"aria"}})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(t, r, http.MethodPost, base, map[string]interface{}{"name": "Session 2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(t, r, http.MethodPut, base+"/"+sessionID.String()+"/data", map[string]interface{}{"round": 3})
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, r, http.MethodPost, base+"/"+sessionID.String()+"/end", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)

	svc.AssertExpectations(t)
}

func TestTrackerHandler_Options(t *testing.T) {
	gameSpaceID := uuid.New()
	optionID := uuid.New()
	base := "/game_spaces/" + gameSpaceID.String() + "/options"

	svc := &MockTrackerService{}
	svc.On("CreateOption", mock.Anything, gameSpaceID, mock.MatchedBy(func(req service.CreateOptionReq) bool {
		return req.Key == "initiative" && req.Type == "tracker" && string(req.Value) == `{"order":[]}`
	})).Return(&model.GameSpaceOption{Key: "initiative", Type: "tracker"}, nil).Once()
	svc.On("DeleteOption", mock.Anything, gameSpaceID, optionID).
		Return(apperr.NotFound("option %s not found", optionID)).Once()
	h := NewTrackerHandler(svc)

	r := setupRouter(uuid.New())
	r.POST("/game_spaces/:game_space_id/options", h.CreateOption)
	r.DELETE("/game_spaces/:game_space_id/options/:option_id", h.DeleteOption)

	w := perform(t, r, http.MethodPost, base, `{"key":"initiative","type":"tracker","value":{"order":[]}}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(t, r, http.MethodDelete, base+"/"+optionID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.AssertExpectations(t)
}
