package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SessionStatusPlanning  = "planning"
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

type GameSession struct {
	Base
	GameSpaceID  uuid.UUID                   `gorm:"type:uuid;not null;index:idx_game_sessions_space_status,priority:1" json:"game_space_id"`
	Name         string                      `gorm:"type:varchar(100);not null" json:"name"`
	Status       string                      `gorm:"type:text;not null;check:status IN ('planning','active','completed');index:idx_game_sessions_space_status,priority:2" json:"status"`
	Participants datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"participants"`
	SessionData  datatypes.JSONMap           `gorm:"type:jsonb" swaggertype:"object" json:"session_data"`
	StartedAt    *time.Time                  `json:"started_at,omitempty"`
	EndedAt      *time.Time                  `json:"ended_at,omitempty"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (GameSession) TableName() string { return "game_sessions" }
