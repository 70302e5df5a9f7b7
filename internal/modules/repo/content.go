package repo

import (
	"github.com/tabletop-manager/api/internal/modules/model"
	"gorm.io/gorm"
)

type (
	TextSectionRepo          = Repo[model.TextSection]
	SkillRepo                = Repo[model.Skill]
	CharacterClassRepo       = Repo[model.CharacterClass]
	DynamicAttributeRepo     = Repo[model.DynamicAttribute]
	AttributeCalculationRepo = Repo[model.AttributeCalculation]
	FormulaDependencyRepo    = Repo[model.FormulaDependency]
	CustomSectionRepo        = Repo[model.CustomSection]
	GameSpaceOptionRepo      = Repo[model.GameSpaceOption]
	CreationTemplateRepo     = Repo[model.CharacterCreationTemplate]
)

func NewTextSectionRepo(db *gorm.DB) TextSectionRepo {
	return newCrudRepo[model.TextSection](db, "order_index ASC, created_at ASC, id ASC")
}

func NewSkillRepo(db *gorm.DB) SkillRepo {
	return newCrudRepo[model.Skill](db, "name ASC, id ASC")
}

func NewCharacterClassRepo(db *gorm.DB) CharacterClassRepo {
	return newCrudRepo[model.CharacterClass](db, "name ASC, id ASC")
}

func NewDynamicAttributeRepo(db *gorm.DB) DynamicAttributeRepo {
	return newCrudRepo[model.DynamicAttribute](db, "display_order ASC, attribute_name ASC, id ASC")
}

func NewAttributeCalculationRepo(db *gorm.DB) AttributeCalculationRepo {
	return newCrudRepo[model.AttributeCalculation](db, "calculation_order ASC, id ASC")
}

func NewFormulaDependencyRepo(db *gorm.DB) FormulaDependencyRepo {
	return newCrudRepo[model.FormulaDependency](db, "dependent_calculation ASC, id ASC")
}

func NewCustomSectionRepo(db *gorm.DB) CustomSectionRepo {
	return newCrudRepo[model.CustomSection](db, "section_name ASC, id ASC")
}

func NewGameSpaceOptionRepo(db *gorm.DB) GameSpaceOptionRepo {
	return newCrudRepo[model.GameSpaceOption](db, "key ASC, id ASC")
}

func NewCreationTemplateRepo(db *gorm.DB) CreationTemplateRepo {
	return newCrudRepo[model.CharacterCreationTemplate](db, "name ASC, id ASC")
}
