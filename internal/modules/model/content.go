package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SectionTypeRules   = "rules"
	SectionTypeLore    = "lore"
	SectionTypeGeneral = "general"
	SectionTypeCustom  = "custom"
)

type TextSection struct {
	Base
	GameSpaceID uuid.UUID `gorm:"type:uuid;not null;index:idx_text_sections_space_order,priority:1" json:"game_space_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Content     *string   `gorm:"type:text" json:"content,omitempty"`
	SectionType string    `gorm:"type:text;not null;check:section_type IN ('rules','lore','general','custom')" json:"section_type"`
	OrderIndex  int       `gorm:"not null;index:idx_text_sections_space_order,priority:2" json:"order_index"`
	IsPublic    bool      `gorm:"not null" json:"is_public"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (TextSection) TableName() string { return "text_sections" }

type Skill struct {
	Base
	GameSpaceID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"game_space_id"`
	Name         string            `gorm:"type:varchar(100);not null" json:"name"`
	Description  *string           `gorm:"type:text" json:"description,omitempty"`
	SkillType    string            `gorm:"type:varchar(50);not null" json:"skill_type"`
	Requirements datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"requirements"`
	Effects      datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"effects"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Skill) TableName() string { return "skills" }

// StatBlock maps attribute names to numeric values.
type StatBlock = map[string]float64

type CharacterClass struct {
	Base
	GameSpaceID      uuid.UUID                     `gorm:"type:uuid;not null;index" json:"game_space_id"`
	Name             string                        `gorm:"type:varchar(100);not null" json:"name"`
	Description      *string                       `gorm:"type:text" json:"description,omitempty"`
	BaseStats        datatypes.JSONType[StatBlock] `gorm:"type:jsonb" swaggertype:"object" json:"base_stats"`
	AvailableSkills  datatypes.JSONSlice[string]   `gorm:"type:jsonb" swaggertype:"array,string" json:"available_skills"`
	SpecialAbilities datatypes.JSONMap             `gorm:"type:jsonb" swaggertype:"object" json:"special_abilities"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (CharacterClass) TableName() string { return "character_classes" }

const (
	CalcTypeStatic     = "static"
	CalcTypeCalculated = "calculated"
	CalcTypeDiceBased  = "dice_based"
)

// DynamicAttribute is a configurable character statistic definition.
type DynamicAttribute struct {
	Base
	GameSpaceID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_dynamic_attributes_space_name,priority:1" json:"game_space_id"`
	Name         string    `gorm:"column:attribute_name;type:varchar(50);not null;uniqueIndex:ux_dynamic_attributes_space_name,priority:2" json:"attribute_name"`
	Label        string    `gorm:"column:attribute_label;type:varchar(100);not null" json:"attribute_label"`
	CalcType     string    `gorm:"column:calculation_type;type:text;not null;check:calculation_type IN ('static','calculated','dice_based')" json:"calculation_type"`
	BaseValue    float64   `gorm:"not null;check:chk_dynamic_attributes_base,base_value >= min_value AND base_value <= max_value" json:"base_value"`
	Formula      *string   `gorm:"type:text" json:"formula,omitempty"`
	MinValue     float64   `gorm:"not null" json:"min_value"`
	MaxValue     float64   `gorm:"not null;check:chk_dynamic_attributes_bounds,min_value < max_value" json:"max_value"`
	DisplayOrder int       `gorm:"not null" json:"display_order"`
	IsCoreStat   bool      `gorm:"not null" json:"is_core_stat"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (DynamicAttribute) TableName() string { return "dynamic_attributes" }

// AttributeCalculation is a derived-value rule. CalcOrder is the intended
// evaluation sequence for an external engine.
type AttributeCalculation struct {
	Base
	GameSpaceID    uuid.UUID                   `gorm:"type:uuid;not null;index" json:"game_space_id"`
	Name           string                      `gorm:"column:calculation_name;type:varchar(100);not null" json:"calculation_name"`
	Label          string                      `gorm:"column:calculation_label;type:varchar(100);not null" json:"calculation_label"`
	BaseAttributes datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"base_attributes"`
	Formula        string                      `gorm:"type:text;not null" json:"formula"`
	DiceFormula    *string                     `gorm:"type:text" json:"dice_formula,omitempty"`
	CalcOrder      int                         `gorm:"column:calculation_order;not null" json:"calculation_order"`
	IsActive       bool                        `gorm:"not null" json:"is_active"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (AttributeCalculation) TableName() string { return "attribute_calculations" }

// FormulaDependency is one edge of the recorded dependency graph. Nothing
// evaluates it.
type FormulaDependency struct {
	Base
	GameSpaceID          uuid.UUID `gorm:"type:uuid;not null;index" json:"game_space_id"`
	DependentCalculation string    `gorm:"type:varchar(100);not null" json:"dependent_calculation"`
	RequiredAttribute    string    `gorm:"type:varchar(100);not null" json:"required_attribute"`
	DependencyType       string    `gorm:"type:varchar(50);not null" json:"dependency_type"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (FormulaDependency) TableName() string { return "formula_dependencies" }

type CustomSection struct {
	Base
	GameSpaceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"game_space_id"`
	Name        string            `gorm:"column:section_name;type:varchar(100);not null" json:"section_name"`
	SectionType string            `gorm:"type:varchar(50);not null" json:"section_type"`
	Fields      datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"fields"`
	OrderIndex  int               `gorm:"not null" json:"order_index"`
	IsRequired  bool              `gorm:"not null" json:"is_required"`

	GameSpace *GameSpace `gorm:"foreignKey:GameSpaceID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (CustomSection) TableName() string { return "custom_sections" }
