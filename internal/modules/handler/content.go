package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/serializer"
	"github.com/tabletop-manager/api/internal/modules/service"
)

type ContentHandler struct {
	svc service.ContentService
}

func NewContentHandler(s service.ContentService) *ContentHandler {
	return &ContentHandler{svc: s}
}

type ReorderReq struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids" binding:"required"`
}

type SearchReq struct {
	Query string `form:"q" json:"q" example:"grapple"`
}

// ---- text sections

// ListTextSections godoc
//
//	@Summary		List text sections
//	@Description	List the game space's text sections by order index
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.TextSection}
//	@Router			/game_spaces/{game_space_id}/text_sections [get]
func (h *ContentHandler) ListTextSections(c *gin.Context) {
	listIn(c, h.svc.LoadTextSections)
}

// CreateTextSection godoc
//
//	@Summary		Create text section
//	@Description	Create a text section. Without an order index it is appended after the last one.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string						true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateTextSectionReq	true	"CreateTextSection payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.TextSection}
//	@Router			/game_spaces/{game_space_id}/text_sections [post]
func (h *ContentHandler) CreateTextSection(c *gin.Context) {
	createIn(c, h.svc.CreateTextSection)
}

// UpdateTextSection godoc
//
//	@Summary		Update text section
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string						true	"Game space ID"		Format(uuid)
//	@Param			text_section_id	path	string						true	"Text section ID"	Format(uuid)
//	@Param			payload			body	service.UpdateTextSectionReq	true	"UpdateTextSection payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.TextSection}
//	@Router			/game_spaces/{game_space_id}/text_sections/{text_section_id} [put]
func (h *ContentHandler) UpdateTextSection(c *gin.Context) {
	updateIn(c, "text_section_id", h.svc.UpdateTextSection)
}

// DeleteTextSection godoc
//
//	@Summary		Delete text section
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"		Format(uuid)
//	@Param			text_section_id	path	string	true	"Text section ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/text_sections/{text_section_id} [delete]
func (h *ContentHandler) DeleteTextSection(c *gin.Context) {
	deleteIn(c, "text_section_id", h.svc.DeleteTextSection)
}

// ReorderTextSections godoc
//
//	@Summary		Reorder text sections
//	@Description	Give each listed section its position in ordered_ids as order index. Every id is attempted; failures are reported together.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string				true	"Game space ID"	Format(uuid)
//	@Param			payload			body	handler.ReorderReq	true	"ReorderTextSections payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.TextSection}
//	@Router			/game_spaces/{game_space_id}/text_sections/reorder [put]
func (h *ContentHandler) ReorderTextSections(c *gin.Context) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	req := ReorderReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ctx := c.Request.Context()
	if err := h.svc.ReorderTextSections(ctx, gameSpaceID, req.OrderedIDs); err != nil {
		fail(c, err)
		return
	}
	listIn(c, h.svc.LoadTextSections)
}

// DuplicateTextSection godoc
//
//	@Summary		Duplicate text section
//	@Description	Copy a text section as a private "(Copy)" appended at the end
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"		Format(uuid)
//	@Param			text_section_id	path	string	true	"Text section ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.TextSection}
//	@Router			/game_spaces/{game_space_id}/text_sections/{text_section_id}/duplicate [post]
func (h *ContentHandler) DuplicateTextSection(c *gin.Context) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	id, ok := pathID(c, "text_section_id")
	if !ok {
		return
	}
	ts, err := h.svc.DuplicateTextSection(c.Request.Context(), gameSpaceID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: ts})
}

// SearchTextSections godoc
//
//	@Summary		Search text sections
//	@Description	Case-insensitive match on title and content. An empty query returns every section.
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			q				query	string	false	"Search text"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.TextSection}
//	@Router			/game_spaces/{game_space_id}/text_sections/search [get]
func (h *ContentHandler) SearchTextSections(c *gin.Context) {
	req := SearchReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	listIn(c, func(ctx context.Context, gameSpaceID uuid.UUID) ([]model.TextSection, error) {
		return h.svc.SearchTextSections(ctx, gameSpaceID, req.Query)
	})
}

// GetTextSectionStats godoc
//
//	@Summary		Get text section statistics
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.TextSectionStats}
//	@Router			/game_spaces/{game_space_id}/text_sections/stats [get]
func (h *ContentHandler) GetTextSectionStats(c *gin.Context) {
	listIn(c, h.svc.TextSectionStats)
}

// ---- skills

// ListSkills godoc
//
//	@Summary		List skills
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Skill}
//	@Router			/game_spaces/{game_space_id}/skills [get]
func (h *ContentHandler) ListSkills(c *gin.Context) {
	listIn(c, h.svc.LoadSkills)
}

// CreateSkill godoc
//
//	@Summary		Create skill
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string					true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateSkillReq	true	"CreateSkill payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Skill}
//	@Router			/game_spaces/{game_space_id}/skills [post]
func (h *ContentHandler) CreateSkill(c *gin.Context) {
	createIn(c, h.svc.CreateSkill)
}

// UpdateSkill godoc
//
//	@Summary		Update skill
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string					true	"Game space ID"	Format(uuid)
//	@Param			skill_id		path	string					true	"Skill ID"		Format(uuid)
//	@Param			payload			body	service.UpdateSkillReq	true	"UpdateSkill payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Skill}
//	@Router			/game_spaces/{game_space_id}/skills/{skill_id} [put]
func (h *ContentHandler) UpdateSkill(c *gin.Context) {
	updateIn(c, "skill_id", h.svc.UpdateSkill)
}

// DeleteSkill godoc
//
//	@Summary		Delete skill
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			skill_id		path	string	true	"Skill ID"		Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/skills/{skill_id} [delete]
func (h *ContentHandler) DeleteSkill(c *gin.Context) {
	deleteIn(c, "skill_id", h.svc.DeleteSkill)
}

// ---- character classes

// ListCharacterClasses godoc
//
//	@Summary		List character classes
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.CharacterClass}
//	@Router			/game_spaces/{game_space_id}/character_classes [get]
func (h *ContentHandler) ListCharacterClasses(c *gin.Context) {
	listIn(c, h.svc.LoadCharacterClasses)
}

// CreateCharacterClass godoc
//
//	@Summary		Create character class
//	@Description	Class names are unique per game space, ignoring case
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string							true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateCharacterClassReq	true	"CreateCharacterClass payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CharacterClass}
//	@Router			/game_spaces/{game_space_id}/character_classes [post]
func (h *ContentHandler) CreateCharacterClass(c *gin.Context) {
	createIn(c, h.svc.CreateCharacterClass)
}

// UpdateCharacterClass godoc
//
//	@Summary		Update character class
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id		path	string							true	"Game space ID"			Format(uuid)
//	@Param			character_class_id	path	string							true	"Character class ID"	Format(uuid)
//	@Param			payload				body	service.UpdateCharacterClassReq	true	"UpdateCharacterClass payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CharacterClass}
//	@Router			/game_spaces/{game_space_id}/character_classes/{character_class_id} [put]
func (h *ContentHandler) UpdateCharacterClass(c *gin.Context) {
	updateIn(c, "character_class_id", h.svc.UpdateCharacterClass)
}

// DeleteCharacterClass godoc
//
//	@Summary		Delete character class
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id		path	string	true	"Game space ID"			Format(uuid)
//	@Param			character_class_id	path	string	true	"Character class ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/character_classes/{character_class_id} [delete]
func (h *ContentHandler) DeleteCharacterClass(c *gin.Context) {
	deleteIn(c, "character_class_id", h.svc.DeleteCharacterClass)
}

// ApplyClassTemplate godoc
//
//	@Summary		Apply class template
//	@Description	Create a class from a built-in preset (warrior, mage, rogue, cleric), clamped to the game space's attribute bounds
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			preset			path	string	true	"Preset name"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CharacterClass}
//	@Router			/game_spaces/{game_space_id}/character_classes/templates/{preset} [post]
func (h *ContentHandler) ApplyClassTemplate(c *gin.Context) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	cls, err := h.svc.ApplyClassTemplate(c.Request.Context(), gameSpaceID, c.Param("preset"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: cls})
}

// ---- dynamic attributes

// ListDynamicAttributes godoc
//
//	@Summary		List dynamic attributes
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.DynamicAttribute}
//	@Router			/game_spaces/{game_space_id}/dynamic_attributes [get]
func (h *ContentHandler) ListDynamicAttributes(c *gin.Context) {
	listIn(c, h.svc.LoadDynamicAttributes)
}

// ListCoreAttributes godoc
//
//	@Summary		List core attributes
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.DynamicAttribute}
//	@Router			/game_spaces/{game_space_id}/dynamic_attributes/core [get]
func (h *ContentHandler) ListCoreAttributes(c *gin.Context) {
	listIn(c, h.svc.CoreAttributes)
}

// CreateDynamicAttribute godoc
//
//	@Summary		Create dynamic attribute
//	@Description	Attribute names are uppercase identifiers, unique per game space, with min < max and min <= base <= max
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string								true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateDynamicAttributeReq	true	"CreateDynamicAttribute payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.DynamicAttribute}
//	@Router			/game_spaces/{game_space_id}/dynamic_attributes [post]
func (h *ContentHandler) CreateDynamicAttribute(c *gin.Context) {
	createIn(c, h.svc.CreateDynamicAttribute)
}

// UpdateDynamicAttribute godoc
//
//	@Summary		Update dynamic attribute
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id			path	string								true	"Game space ID"			Format(uuid)
//	@Param			dynamic_attribute_id	path	string								true	"Dynamic attribute ID"	Format(uuid)
//	@Param			payload					body	service.UpdateDynamicAttributeReq	true	"UpdateDynamicAttribute payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.DynamicAttribute}
//	@Router			/game_spaces/{game_space_id}/dynamic_attributes/{dynamic_attribute_id} [put]
func (h *ContentHandler) UpdateDynamicAttribute(c *gin.Context) {
	updateIn(c, "dynamic_attribute_id", h.svc.UpdateDynamicAttribute)
}

// DeleteDynamicAttribute godoc
//
//	@Summary		Delete dynamic attribute
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id			path	string	true	"Game space ID"			Format(uuid)
//	@Param			dynamic_attribute_id	path	string	true	"Dynamic attribute ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/dynamic_attributes/{dynamic_attribute_id} [delete]
func (h *ContentHandler) DeleteDynamicAttribute(c *gin.Context) {
	deleteIn(c, "dynamic_attribute_id", h.svc.DeleteDynamicAttribute)
}

// ApplyAttributeTemplate godoc
//
//	@Summary		Apply attribute template
//	@Description	Create the attributes of a built-in preset (DnD5e, Pathfinder, Simple). Names already present are skipped.
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Param			preset			path	string	true	"Preset name"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.TemplateResult}
//	@Router			/game_spaces/{game_space_id}/dynamic_attributes/templates/{preset} [post]
func (h *ContentHandler) ApplyAttributeTemplate(c *gin.Context) {
	gameSpaceID, ok := pathID(c, "game_space_id")
	if !ok {
		return
	}
	out, err := h.svc.ApplyAttributeTemplate(c.Request.Context(), gameSpaceID, c.Param("preset"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// ---- attribute calculations

// ListAttributeCalculations godoc
//
//	@Summary		List attribute calculations
//	@Description	List active calculations in evaluation order
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.AttributeCalculation}
//	@Router			/game_spaces/{game_space_id}/attribute_calculations [get]
func (h *ContentHandler) ListAttributeCalculations(c *gin.Context) {
	listIn(c, h.svc.LoadAttributeCalculations)
}

// CreateAttributeCalculation godoc
//
//	@Summary		Create attribute calculation
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string									true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateAttributeCalculationReq	true	"CreateAttributeCalculation payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.AttributeCalculation}
//	@Router			/game_spaces/{game_space_id}/attribute_calculations [post]
func (h *ContentHandler) CreateAttributeCalculation(c *gin.Context) {
	createIn(c, h.svc.CreateAttributeCalculation)
}

// UpdateAttributeCalculation godoc
//
//	@Summary		Update attribute calculation
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id				path	string									true	"Game space ID"				Format(uuid)
//	@Param			attribute_calculation_id	path	string									true	"Attribute calculation ID"	Format(uuid)
//	@Param			payload						body	service.UpdateAttributeCalculationReq	true	"UpdateAttributeCalculation payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.AttributeCalculation}
//	@Router			/game_spaces/{game_space_id}/attribute_calculations/{attribute_calculation_id} [put]
func (h *ContentHandler) UpdateAttributeCalculation(c *gin.Context) {
	updateIn(c, "attribute_calculation_id", h.svc.UpdateAttributeCalculation)
}

// DeleteAttributeCalculation godoc
//
//	@Summary		Delete attribute calculation
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id				path	string	true	"Game space ID"				Format(uuid)
//	@Param			attribute_calculation_id	path	string	true	"Attribute calculation ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/attribute_calculations/{attribute_calculation_id} [delete]
func (h *ContentHandler) DeleteAttributeCalculation(c *gin.Context) {
	deleteIn(c, "attribute_calculation_id", h.svc.DeleteAttributeCalculation)
}

// ---- formula dependencies

// ListFormulaDependencies godoc
//
//	@Summary		List formula dependencies
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.FormulaDependency}
//	@Router			/game_spaces/{game_space_id}/formula_dependencies [get]
func (h *ContentHandler) ListFormulaDependencies(c *gin.Context) {
	listIn(c, h.svc.LoadFormulaDependencies)
}

// CreateFormulaDependency godoc
//
//	@Summary		Create formula dependency
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string								true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateFormulaDependencyReq	true	"CreateFormulaDependency payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.FormulaDependency}
//	@Router			/game_spaces/{game_space_id}/formula_dependencies [post]
func (h *ContentHandler) CreateFormulaDependency(c *gin.Context) {
	createIn(c, h.svc.CreateFormulaDependency)
}

// UpdateFormulaDependency godoc
//
//	@Summary		Update formula dependency
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id			path	string								true	"Game space ID"			Format(uuid)
//	@Param			formula_dependency_id	path	string								true	"Formula dependency ID"	Format(uuid)
//	@Param			payload					body	service.UpdateFormulaDependencyReq	true	"UpdateFormulaDependency payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.FormulaDependency}
//	@Router			/game_spaces/{game_space_id}/formula_dependencies/{formula_dependency_id} [put]
func (h *ContentHandler) UpdateFormulaDependency(c *gin.Context) {
	updateIn(c, "formula_dependency_id", h.svc.UpdateFormulaDependency)
}

// DeleteFormulaDependency godoc
//
//	@Summary		Delete formula dependency
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id			path	string	true	"Game space ID"			Format(uuid)
//	@Param			formula_dependency_id	path	string	true	"Formula dependency ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/formula_dependencies/{formula_dependency_id} [delete]
func (h *ContentHandler) DeleteFormulaDependency(c *gin.Context) {
	deleteIn(c, "formula_dependency_id", h.svc.DeleteFormulaDependency)
}

// ---- custom sections

// ListCustomSections godoc
//
//	@Summary		List custom sections
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.CustomSection}
//	@Router			/game_spaces/{game_space_id}/custom_sections [get]
func (h *ContentHandler) ListCustomSections(c *gin.Context) {
	listIn(c, h.svc.LoadCustomSections)
}

// CreateCustomSection godoc
//
//	@Summary		Create custom section
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id	path	string							true	"Game space ID"	Format(uuid)
//	@Param			payload			body	service.CreateCustomSectionReq	true	"CreateCustomSection payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CustomSection}
//	@Router			/game_spaces/{game_space_id}/custom_sections [post]
func (h *ContentHandler) CreateCustomSection(c *gin.Context) {
	createIn(c, h.svc.CreateCustomSection)
}

// UpdateCustomSection godoc
//
//	@Summary		Update custom section
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			game_space_id		path	string							true	"Game space ID"		Format(uuid)
//	@Param			custom_section_id	path	string							true	"Custom section ID"	Format(uuid)
//	@Param			payload				body	service.UpdateCustomSectionReq	true	"UpdateCustomSection payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CustomSection}
//	@Router			/game_spaces/{game_space_id}/custom_sections/{custom_section_id} [put]
func (h *ContentHandler) UpdateCustomSection(c *gin.Context) {
	updateIn(c, "custom_section_id", h.svc.UpdateCustomSection)
}

// DeleteCustomSection godoc
//
//	@Summary		Delete custom section
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id		path	string	true	"Game space ID"		Format(uuid)
//	@Param			custom_section_id	path	string	true	"Custom section ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/game_spaces/{game_space_id}/custom_sections/{custom_section_id} [delete]
func (h *ContentHandler) DeleteCustomSection(c *gin.Context) {
	deleteIn(c, "custom_section_id", h.svc.DeleteCustomSection)
}

// GetContent godoc
//
//	@Summary		Get all content
//	@Description	Load every content family of the game space at once
//	@Tags			content
//	@Produce		json
//	@Param			game_space_id	path	string	true	"Game space ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ContentBundle}
//	@Router			/game_spaces/{game_space_id}/content [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	listIn(c, h.svc.LoadAllContent)
}
