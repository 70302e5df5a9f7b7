package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	CharacterTypePC  = "pc"
	CharacterTypeNPC = "npc"
)

// Character rows are never hard-deleted by normal flows; IsActive=false
// marks a recoverable deletion.
type Character struct {
	Base
	GameSpaceID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_characters_space_active,priority:1" json:"game_space_id"`
	Name          string            `gorm:"type:varchar(100);not null" json:"name"`
	CharacterType string            `gorm:"type:text;not null;check:character_type IN ('pc','npc')" json:"character_type"`
	OwnerUserID   *uuid.UUID        `gorm:"type:uuid;index" json:"owner_user_id,omitempty"`
	Data          datatypes.JSONMap `gorm:"column:character_data;type:jsonb" swaggertype:"object" json:"character_data"`
	Notes         *string           `gorm:"type:text" json:"notes,omitempty"`
	IsActive      bool              `gorm:"not null;index:idx_characters_space_active,priority:2" json:"is_active"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Character) TableName() string { return "characters" }

type CharacterClassAssignment struct {
	Base
	CharacterID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"character_id"`
	ClassID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"class_id"`
	Level            int               `gorm:"not null" json:"level"`
	IsPrimary        bool              `gorm:"not null" json:"is_primary"`
	ExperiencePoints int               `gorm:"not null" json:"experience_points"`
	Features         datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"features"`

	Character *Character      `gorm:"foreignKey:CharacterID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	Class     *CharacterClass `gorm:"foreignKey:ClassID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (CharacterClassAssignment) TableName() string { return "character_class_assignments" }

// CharacterCalculatedValue caches a derived stat. IsDirty=true means the
// value may be stale and must be recomputed before it is trusted.
type CharacterCalculatedValue struct {
	Base
	CharacterID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_calculated_values_character_attr,priority:1" json:"character_id"`
	AttributeName string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_calculated_values_character_attr,priority:2" json:"attribute_name"`
	Value         float64   `gorm:"not null" json:"calculated_value"`
	ComputedAt    time.Time `gorm:"not null" json:"last_calculated"`
	IsDirty       bool      `gorm:"not null" json:"is_dirty"`

	Character *Character `gorm:"foreignKey:CharacterID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (CharacterCalculatedValue) TableName() string { return "character_calculated_values" }

type CharacterCreationTemplate struct {
	Base
	GameSpaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"game_space_id"`
	Name        string            `gorm:"type:varchar(100);not null" json:"name"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	Steps       datatypes.JSONMap `gorm:"column:template_data;type:jsonb" swaggertype:"object" json:"template_data"`
	IsDefault   bool              `gorm:"not null" json:"is_default"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (CharacterCreationTemplate) TableName() string { return "character_creation_templates" }
