package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleGM     = "gm"
	RolePlayer = "player"
)

type GameSpace struct {
	Base
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	GMUserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"gm_user_id"`
	InviteCode  string    `gorm:"type:varchar(64);uniqueIndex" json:"invite_code,omitempty"`

	// GameSpace <-> Membership
	Members []Membership `gorm:"foreignKey:GameSpaceID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"game_space_members,omitempty"`
}

func (GameSpace) TableName() string { return "game_spaces" }

// GameSpaceWithMembers is a list entry annotated for the calling user.
type GameSpaceWithMembers struct {
	GameSpace
	MemberCount int64  `json:"member_count"`
	Role        string `json:"role"`
}

type Membership struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GameSpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_members_space_user,priority:1" json:"game_space_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_members_space_user,priority:2;index" json:"user_id"`
	Role        string    `gorm:"type:text;not null;default:'player';check:role IN ('gm','player')" json:"role"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (Membership) TableName() string { return "game_space_members" }

func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m Membership) GetID() uuid.UUID { return m.ID }

const OptionTypeTracker = "tracker"

// GameSpaceOption is free-form typed configuration for a game space.
type GameSpaceOption struct {
	Base
	GameSpaceID uuid.UUID      `gorm:"type:uuid;not null;index" json:"game_space_id"`
	Key         string         `gorm:"type:varchar(100);not null" json:"key"`
	Value       datatypes.JSON `gorm:"type:jsonb" swaggertype:"object" json:"value"`
	Type        string         `gorm:"type:varchar(50);not null;default:'custom'" json:"type"`
	IsActive    bool           `gorm:"not null" json:"is_active"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (GameSpaceOption) TableName() string { return "game_space_options" }

// GameSpaceStats is a read-only aggregation over a game space's children.
type GameSpaceStats struct {
	PlayerCharacters int64      `json:"playerCharacters"`
	NPCs             int64      `json:"npcs"`
	ContentPages     int64      `json:"contentPages"`
	CustomAttributes int64      `json:"customAttributes"`
	ActiveTrackers   int64      `json:"activeTrackers"`
	TotalMembers     int64      `json:"totalMembers"`
	ActiveSessions   int64      `json:"activeSessions"`
	LastActivity     *time.Time `json:"lastActivity"`
}
