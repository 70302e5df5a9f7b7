package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/repo"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

type ContentService interface {
	LoadTextSections(ctx context.Context, gameSpaceID uuid.UUID) ([]model.TextSection, error)
	CreateTextSection(ctx context.Context, gameSpaceID uuid.UUID, req CreateTextSectionReq) (*model.TextSection, error)
	UpdateTextSection(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateTextSectionReq) (*model.TextSection, error)
	DeleteTextSection(ctx context.Context, gameSpaceID, id uuid.UUID) error
	ReorderTextSections(ctx context.Context, gameSpaceID uuid.UUID, orderedIDs []uuid.UUID) error
	DuplicateTextSection(ctx context.Context, gameSpaceID, id uuid.UUID) (*model.TextSection, error)
	SearchTextSections(ctx context.Context, gameSpaceID uuid.UUID, query string) ([]model.TextSection, error)
	TextSectionStats(ctx context.Context, gameSpaceID uuid.UUID) (*TextSectionStats, error)

	LoadSkills(ctx context.Context, gameSpaceID uuid.UUID) ([]model.Skill, error)
	CreateSkill(ctx context.Context, gameSpaceID uuid.UUID, req CreateSkillReq) (*model.Skill, error)
	UpdateSkill(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateSkillReq) (*model.Skill, error)
	DeleteSkill(ctx context.Context, gameSpaceID, id uuid.UUID) error

	LoadCharacterClasses(ctx context.Context, gameSpaceID uuid.UUID) ([]model.CharacterClass, error)
	CreateCharacterClass(ctx context.Context, gameSpaceID uuid.UUID, req CreateCharacterClassReq) (*model.CharacterClass, error)
	UpdateCharacterClass(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateCharacterClassReq) (*model.CharacterClass, error)
	DeleteCharacterClass(ctx context.Context, gameSpaceID, id uuid.UUID) error
	ApplyClassTemplate(ctx context.Context, gameSpaceID uuid.UUID, preset string) (*model.CharacterClass, error)

	LoadDynamicAttributes(ctx context.Context, gameSpaceID uuid.UUID) ([]model.DynamicAttribute, error)
	CreateDynamicAttribute(ctx context.Context, gameSpaceID uuid.UUID, req CreateDynamicAttributeReq) (*model.DynamicAttribute, error)
	UpdateDynamicAttribute(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateDynamicAttributeReq) (*model.DynamicAttribute, error)
	DeleteDynamicAttribute(ctx context.Context, gameSpaceID, id uuid.UUID) error
	CoreAttributes(ctx context.Context, gameSpaceID uuid.UUID) ([]model.DynamicAttribute, error)
	ApplyAttributeTemplate(ctx context.Context, gameSpaceID uuid.UUID, preset string) (*TemplateResult, error)

	LoadAttributeCalculations(ctx context.Context, gameSpaceID uuid.UUID) ([]model.AttributeCalculation, error)
	CreateAttributeCalculation(ctx context.Context, gameSpaceID uuid.UUID, req CreateAttributeCalculationReq) (*model.AttributeCalculation, error)
	UpdateAttributeCalculation(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateAttributeCalculationReq) (*model.AttributeCalculation, error)
	DeleteAttributeCalculation(ctx context.Context, gameSpaceID, id uuid.UUID) error

	LoadFormulaDependencies(ctx context.Context, gameSpaceID uuid.UUID) ([]model.FormulaDependency, error)
	CreateFormulaDependency(ctx context.Context, gameSpaceID uuid.UUID, req CreateFormulaDependencyReq) (*model.FormulaDependency, error)
	UpdateFormulaDependency(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateFormulaDependencyReq) (*model.FormulaDependency, error)
	DeleteFormulaDependency(ctx context.Context, gameSpaceID, id uuid.UUID) error

	LoadCustomSections(ctx context.Context, gameSpaceID uuid.UUID) ([]model.CustomSection, error)
	CreateCustomSection(ctx context.Context, gameSpaceID uuid.UUID, req CreateCustomSectionReq) (*model.CustomSection, error)
	UpdateCustomSection(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateCustomSectionReq) (*model.CustomSection, error)
	DeleteCustomSection(ctx context.Context, gameSpaceID, id uuid.UUID) error

	LoadAllContent(ctx context.Context, gameSpaceID uuid.UUID) (*ContentBundle, error)
}

type ContentRepos struct {
	TextSections repo.TextSectionRepo
	Skills       repo.SkillRepo
	Classes      repo.CharacterClassRepo
	Attributes   repo.DynamicAttributeRepo
	Calculations repo.AttributeCalculationRepo
	Dependencies repo.FormulaDependencyRepo
	Sections     repo.CustomSectionRepo
	// Values gets its rows flagged dirty when an attribute or class they
	// derive from changes.
	Values repo.CalculatedValueRepo
}

type contentService struct {
	texts        *collection[model.TextSection]
	skills       *collection[model.Skill]
	classes      *collection[model.CharacterClass]
	attributes   *collection[model.DynamicAttribute]
	calculations *collection[model.AttributeCalculation]
	dependencies *collection[model.FormulaDependency]
	sections     *collection[model.CustomSection]
	values       repo.CalculatedValueRepo
	log          *zap.Logger
}

func NewContentService(r ContentRepos, log *zap.Logger) ContentService {
	return &contentService{
		texts:        newCollection("text section", r.TextSections, func(m *model.TextSection) uuid.UUID { return m.GameSpaceID }, log),
		skills:       newCollection("skill", r.Skills, func(m *model.Skill) uuid.UUID { return m.GameSpaceID }, log),
		classes:      newCollection("character class", r.Classes, func(m *model.CharacterClass) uuid.UUID { return m.GameSpaceID }, log),
		attributes:   newCollection("dynamic attribute", r.Attributes, func(m *model.DynamicAttribute) uuid.UUID { return m.GameSpaceID }, log),
		calculations: newCollection("attribute calculation", r.Calculations, func(m *model.AttributeCalculation) uuid.UUID { return m.GameSpaceID }, log, repo.ActiveOnly),
		dependencies: newCollection("formula dependency", r.Dependencies, func(m *model.FormulaDependency) uuid.UUID { return m.GameSpaceID }, log),
		sections:     newCollection("custom section", r.Sections, func(m *model.CustomSection) uuid.UUID { return m.GameSpaceID }, log),
		values:       r.Values,
		log:          log,
	}
}

// ---- text sections

type CreateTextSectionReq struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Content     *string `json:"content"`
	SectionType string  `json:"section_type" validate:"required,oneof=rules lore general custom"`
	OrderIndex  *int    `json:"order_index" validate:"omitempty,min=0"`
	IsPublic    bool    `json:"is_public"`
}

type UpdateTextSectionReq struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string `json:"content"`
	SectionType *string `json:"section_type" validate:"omitempty,oneof=rules lore general custom"`
	OrderIndex  *int    `json:"order_index" validate:"omitempty,min=0"`
	IsPublic    *bool   `json:"is_public"`
}

type TextSectionStats struct {
	Total   int `json:"total"`
	Rules   int `json:"rules"`
	Lore    int `json:"lore"`
	General int `json:"general"`
	Custom  int `json:"custom"`
	Public  int `json:"public"`
	Private int `json:"private"`
}

func (s *contentService) LoadTextSections(ctx context.Context, gameSpaceID uuid.UUID) ([]model.TextSection, error) {
	return s.texts.load(ctx, gameSpaceID)
}

func (s *contentService) CreateTextSection(ctx context.Context, gameSpaceID uuid.UUID, req CreateTextSectionReq) (*model.TextSection, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	ts := &model.TextSection{
		GameSpaceID: gameSpaceID,
		Title:       req.Title,
		Content:     req.Content,
		SectionType: req.SectionType,
		IsPublic:    req.IsPublic,
	}
	if req.OrderIndex != nil {
		ts.OrderIndex = *req.OrderIndex
	}
	return s.texts.create(ctx, ts)
}

func (s *contentService) UpdateTextSection(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateTextSectionReq) (*model.TextSection, error) {
	req.Title = trimPtr(req.Title)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	cols := patch{}
	if req.Title != nil {
		cols["title"] = *req.Title
	}
	if req.Content != nil {
		cols["content"] = *req.Content
	}
	if req.SectionType != nil {
		cols["section_type"] = *req.SectionType
	}
	if req.OrderIndex != nil {
		cols["order_index"] = *req.OrderIndex
	}
	if req.IsPublic != nil {
		cols["is_public"] = *req.IsPublic
	}
	return s.texts.update(ctx, gameSpaceID, id, cols)
}

func (s *contentService) DeleteTextSection(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	return s.texts.delete(ctx, gameSpaceID, id)
}

// ReorderTextSections writes order_index = position for each id in turn.
// Writes are not rolled back: every id is attempted and the failures are
// reported together.
func (s *contentService) ReorderTextSections(ctx context.Context, gameSpaceID uuid.UUID, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return apperr.Validation("ordered_ids is required")
	}
	current, err := s.texts.current(ctx, gameSpaceID)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(current))
	for _, ts := range current {
		known[ts.ID] = true
	}

	var errs []error
	for i, id := range orderedIDs {
		if !known[id] {
			errs = append(errs, apperr.NotFound("text section %s: not found", id))
			continue
		}
		if _, err := s.texts.repo.Update(ctx, id, patch{"order_index": i}); err != nil {
			errs = append(errs, storeErr(s.log, "reorder text section "+id.String(), err))
		}
	}
	s.texts.refresh(ctx, gameSpaceID)
	return joinErrs("reorder text sections", errs)
}

func (s *contentService) DuplicateTextSection(ctx context.Context, gameSpaceID, id uuid.UUID) (*model.TextSection, error) {
	orig, err := s.texts.owned(ctx, gameSpaceID, id)
	if err != nil {
		return nil, err
	}
	order := orig.OrderIndex + 1
	return s.CreateTextSection(ctx, gameSpaceID, CreateTextSectionReq{
		Title:       orig.Title + " (Copy)",
		Content:     orig.Content,
		SectionType: orig.SectionType,
		OrderIndex:  &order,
		IsPublic:    orig.IsPublic,
	})
}

// SearchTextSections matches title or content, case-insensitively. A blank
// query returns every section.
func (s *contentService) SearchTextSections(ctx context.Context, gameSpaceID uuid.UUID, query string) ([]model.TextSection, error) {
	items, err := s.texts.current(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items, nil
	}
	out := make([]model.TextSection, 0, len(items))
	for _, ts := range items {
		if strings.Contains(strings.ToLower(ts.Title), q) ||
			(ts.Content != nil && strings.Contains(strings.ToLower(*ts.Content), q)) {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (s *contentService) TextSectionStats(ctx context.Context, gameSpaceID uuid.UUID) (*TextSectionStats, error) {
	items, err := s.texts.current(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}
	st := &TextSectionStats{Total: len(items)}
	for _, ts := range items {
		switch ts.SectionType {
		case model.SectionTypeRules:
			st.Rules++
		case model.SectionTypeLore:
			st.Lore++
		case model.SectionTypeGeneral:
			st.General++
		case model.SectionTypeCustom:
			st.Custom++
		}
		if ts.IsPublic {
			st.Public++
		} else {
			st.Private++
		}
	}
	return st, nil
}

// ---- skills

type CreateSkillReq struct {
	Name         string                 `json:"name" validate:"required,max=100"`
	Description  *string                `json:"description" validate:"omitempty,max=500"`
	SkillType    string                 `json:"skill_type" validate:"required,max=50"`
	Requirements map[string]interface{} `json:"requirements"`
	Effects      map[string]interface{} `json:"effects"`
}

type UpdateSkillReq struct {
	Name         *string                `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string                `json:"description" validate:"omitempty,max=500"`
	SkillType    *string                `json:"skill_type" validate:"omitempty,min=1,max=50"`
	Requirements map[string]interface{} `json:"requirements"`
	Effects      map[string]interface{} `json:"effects"`
}

func (s *contentService) LoadSkills(ctx context.Context, gameSpaceID uuid.UUID) ([]model.Skill, error) {
	return s.skills.load(ctx, gameSpaceID)
}

func (s *contentService) CreateSkill(ctx context.Context, gameSpaceID uuid.UUID, req CreateSkillReq) (*model.Skill, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.SkillType = strings.TrimSpace(req.SkillType)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	return s.skills.create(ctx, &model.Skill{
		GameSpaceID:  gameSpaceID,
		Name:         req.Name,
		Description:  req.Description,
		SkillType:    req.SkillType,
		Requirements: datatypes.JSONMap(req.Requirements),
		Effects:      datatypes.JSONMap(req.Effects),
	})
}

func (s *contentService) UpdateSkill(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateSkillReq) (*model.Skill, error) {
	req.Name = trimPtr(req.Name)
	req.SkillType = trimPtr(req.SkillType)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	cols := patch{}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	if req.SkillType != nil {
		cols["skill_type"] = *req.SkillType
	}
	cols.set("requirements", datatypes.JSONMap(req.Requirements), req.Requirements != nil)
	cols.set("effects", datatypes.JSONMap(req.Effects), req.Effects != nil)
	return s.skills.update(ctx, gameSpaceID, id, cols)
}

func (s *contentService) DeleteSkill(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	return s.skills.delete(ctx, gameSpaceID, id)
}

// ---- character classes

type CreateCharacterClassReq struct {
	Name             string                 `json:"name" validate:"required,max=100"`
	Description      *string                `json:"description" validate:"omitempty,max=500"`
	BaseStats        model.StatBlock        `json:"base_stats"`
	AvailableSkills  []string               `json:"available_skills"`
	SpecialAbilities map[string]interface{} `json:"special_abilities"`
}

type UpdateCharacterClassReq struct {
	Name             *string                `json:"name" validate:"omitempty,min=1,max=100"`
	Description      *string                `json:"description" validate:"omitempty,max=500"`
	BaseStats        model.StatBlock        `json:"base_stats"`
	AvailableSkills  []string               `json:"available_skills"`
	SpecialAbilities map[string]interface{} `json:"special_abilities"`
}

func (s *contentService) LoadCharacterClasses(ctx context.Context, gameSpaceID uuid.UUID) ([]model.CharacterClass, error) {
	return s.classes.load(ctx, gameSpaceID)
}

// classNameTaken is an advisory, case-insensitive check against the loaded
// collection.
func (s *contentService) classNameTaken(ctx context.Context, gameSpaceID uuid.UUID, name string, except uuid.UUID) (bool, error) {
	items, err := s.classes.current(ctx, gameSpaceID)
	if err != nil {
		return false, err
	}
	for _, c := range items {
		if c.ID != except && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *contentService) CreateCharacterClass(ctx context.Context, gameSpaceID uuid.UUID, req CreateCharacterClassReq) (*model.CharacterClass, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	taken, err := s.classNameTaken(ctx, gameSpaceID, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("character class %q already exists", req.Name)
	}
	if req.BaseStats == nil {
		req.BaseStats = model.StatBlock{}
	}
	if req.AvailableSkills == nil {
		req.AvailableSkills = []string{}
	}
	return s.classes.create(ctx, &model.CharacterClass{
		GameSpaceID:      gameSpaceID,
		Name:             req.Name,
		Description:      req.Description,
		BaseStats:        datatypes.NewJSONType(req.BaseStats),
		AvailableSkills:  datatypes.NewJSONSlice(req.AvailableSkills),
		SpecialAbilities: datatypes.JSONMap(req.SpecialAbilities),
	})
}

func (s *contentService) UpdateCharacterClass(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateCharacterClassReq) (*model.CharacterClass, error) {
	req.Name = trimPtr(req.Name)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if _, err := s.classes.owned(ctx, gameSpaceID, id); err != nil {
		return nil, err
	}
	cols := patch{}
	if req.Name != nil {
		taken, err := s.classNameTaken(ctx, gameSpaceID, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Validation("character class %q already exists", *req.Name)
		}
		cols["name"] = *req.Name
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	cols.set("base_stats", datatypes.NewJSONType(req.BaseStats), req.BaseStats != nil)
	cols.set("available_skills", datatypes.NewJSONSlice(req.AvailableSkills), req.AvailableSkills != nil)
	cols.set("special_abilities", datatypes.JSONMap(req.SpecialAbilities), req.SpecialAbilities != nil)
	if req.BaseStats != nil || req.SpecialAbilities != nil {
		if err := s.classValuesDirty(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.classes.apply(ctx, gameSpaceID, id, cols)
}

// DeleteCharacterClass flags its holders' values before the assignments
// cascade away.
func (s *contentService) DeleteCharacterClass(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	if _, err := s.classes.owned(ctx, gameSpaceID, id); err != nil {
		return err
	}
	if err := s.classValuesDirty(ctx, id); err != nil {
		return err
	}
	return s.classes.delete(ctx, gameSpaceID, id)
}

func (s *contentService) classValuesDirty(ctx context.Context, classID uuid.UUID) error {
	if s.values == nil {
		return nil
	}
	if _, err := s.values.MarkDirtyByClass(ctx, classID); err != nil {
		return storeErr(s.log, "mark class values dirty", err)
	}
	return nil
}

// ApplyClassTemplate creates a class from a built-in preset, fitted to the
// game space's attributes. A name clash gets a " (Copy)" suffix.
func (s *contentService) ApplyClassTemplate(ctx context.Context, gameSpaceID uuid.UUID, preset string) (*model.CharacterClass, error) {
	p, ok := classPresets[strings.ToLower(strings.TrimSpace(preset))]
	if !ok {
		return nil, apperr.Validation("unknown class template %q", preset)
	}
	attrs, err := s.attributes.current(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}
	name := p.Label
	taken, err := s.classNameTaken(ctx, gameSpaceID, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		name += " (Copy)"
	}

	abilities := make([]interface{}, 0, len(p.SpecialAbilities))
	for _, a := range p.SpecialAbilities {
		abilities = append(abilities, map[string]interface{}{"name": a.Name, "description": a.Description, "level": a.Level})
	}
	desc := p.Description
	return s.CreateCharacterClass(ctx, gameSpaceID, CreateCharacterClassReq{
		Name:            name,
		Description:     &desc,
		BaseStats:       classStats(p, attrs),
		AvailableSkills: append([]string(nil), p.RecommendedSkills...),
		SpecialAbilities: map[string]interface{}{
			"category":  p.Category,
			"abilities": abilities,
		},
	})
}

// ---- dynamic attributes

type CreateDynamicAttributeReq struct {
	Name         string  `json:"attribute_name" validate:"required,max=50,attrname"`
	Label        string  `json:"attribute_label" validate:"required,max=100"`
	CalcType     string  `json:"calculation_type" validate:"required,oneof=static calculated dice_based"`
	BaseValue    float64 `json:"base_value"`
	Formula      *string `json:"formula"`
	MinValue     float64 `json:"min_value"`
	MaxValue     float64 `json:"max_value"`
	DisplayOrder int     `json:"display_order"`
	IsCoreStat   bool    `json:"is_core_stat"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
}

type UpdateDynamicAttributeReq struct {
	Name         *string  `json:"attribute_name" validate:"omitempty,max=50,attrname"`
	Label        *string  `json:"attribute_label" validate:"omitempty,min=1,max=100"`
	CalcType     *string  `json:"calculation_type" validate:"omitempty,oneof=static calculated dice_based"`
	BaseValue    *float64 `json:"base_value"`
	Formula      *string  `json:"formula"`
	MinValue     *float64 `json:"min_value"`
	MaxValue     *float64 `json:"max_value"`
	DisplayOrder *int     `json:"display_order"`
	IsCoreStat   *bool    `json:"is_core_stat"`
	Description  *string  `json:"description" validate:"omitempty,max=500"`
}

func checkBounds(minV, maxV, base float64) error {
	if minV >= maxV {
		return apperr.Validation("min_value must be less than max_value")
	}
	if base < minV || base > maxV {
		return apperr.Validation("base_value must lie within [min_value, max_value]")
	}
	return nil
}

func (s *contentService) attributeNameTaken(ctx context.Context, gameSpaceID uuid.UUID, name string, except uuid.UUID) (bool, error) {
	items, err := s.attributes.current(ctx, gameSpaceID)
	if err != nil {
		return false, err
	}
	for _, a := range items {
		if a.ID != except && a.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *contentService) LoadDynamicAttributes(ctx context.Context, gameSpaceID uuid.UUID) ([]model.DynamicAttribute, error) {
	return s.attributes.load(ctx, gameSpaceID)
}

func (s *contentService) CreateDynamicAttribute(ctx context.Context, gameSpaceID uuid.UUID, req CreateDynamicAttributeReq) (*model.DynamicAttribute, error) {
	req.Name = strings.ToUpper(strings.TrimSpace(req.Name))
	req.Label = strings.TrimSpace(req.Label)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	if err := checkBounds(req.MinValue, req.MaxValue, req.BaseValue); err != nil {
		return nil, err
	}
	taken, err := s.attributeNameTaken(ctx, gameSpaceID, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("attribute %q already exists", req.Name)
	}
	return s.attributes.create(ctx, &model.DynamicAttribute{
		GameSpaceID:  gameSpaceID,
		Name:         req.Name,
		Label:        req.Label,
		CalcType:     req.CalcType,
		BaseValue:    req.BaseValue,
		Formula:      req.Formula,
		MinValue:     req.MinValue,
		MaxValue:     req.MaxValue,
		DisplayOrder: req.DisplayOrder,
		IsCoreStat:   req.IsCoreStat,
		Description:  req.Description,
	})
}

func (s *contentService) UpdateDynamicAttribute(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateDynamicAttributeReq) (*model.DynamicAttribute, error) {
	if req.Name != nil {
		n := strings.ToUpper(strings.TrimSpace(*req.Name))
		req.Name = &n
	}
	req.Label = trimPtr(req.Label)
	if err := validateReq(req); err != nil {
		return nil, err
	}

	cur, err := s.attributes.owned(ctx, gameSpaceID, id)
	if err != nil {
		return nil, err
	}
	minV, maxV, base := cur.MinValue, cur.MaxValue, cur.BaseValue
	if req.MinValue != nil {
		minV = *req.MinValue
	}
	if req.MaxValue != nil {
		maxV = *req.MaxValue
	}
	if req.BaseValue != nil {
		base = *req.BaseValue
	}
	if err := checkBounds(minV, maxV, base); err != nil {
		return nil, err
	}

	cols := patch{}
	if req.Name != nil && *req.Name != cur.Name {
		taken, err := s.attributeNameTaken(ctx, gameSpaceID, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Validation("attribute %q already exists", *req.Name)
		}
		cols["attribute_name"] = *req.Name
	}
	if req.Label != nil {
		cols["attribute_label"] = *req.Label
	}
	if req.CalcType != nil {
		cols["calculation_type"] = *req.CalcType
	}
	cols.set("base_value", base, req.BaseValue != nil)
	cols.set("min_value", minV, req.MinValue != nil)
	cols.set("max_value", maxV, req.MaxValue != nil)
	if req.Formula != nil {
		cols["formula"] = *req.Formula
	}
	if req.DisplayOrder != nil {
		cols["display_order"] = *req.DisplayOrder
	}
	if req.IsCoreStat != nil {
		cols["is_core_stat"] = *req.IsCoreStat
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	if affectsValues(cols) {
		names := []string{cur.Name}
		if n, ok := cols["attribute_name"].(string); ok {
			names = append(names, n)
		}
		if err := s.attributeValuesDirty(ctx, gameSpaceID, names...); err != nil {
			return nil, err
		}
	}
	return s.attributes.apply(ctx, gameSpaceID, id, cols)
}

func (s *contentService) DeleteDynamicAttribute(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	cur, err := s.attributes.owned(ctx, gameSpaceID, id)
	if err != nil {
		return err
	}
	if err := s.attributeValuesDirty(ctx, gameSpaceID, cur.Name); err != nil {
		return err
	}
	return s.attributes.delete(ctx, gameSpaceID, id)
}

// affectsValues reports whether an attribute patch touches a column that
// feeds calculated values.
func affectsValues(cols patch) bool {
	for _, col := range []string{"attribute_name", "calculation_type", "base_value", "formula", "min_value", "max_value"} {
		if _, ok := cols[col]; ok {
			return true
		}
	}
	return false
}

func (s *contentService) attributeValuesDirty(ctx context.Context, gameSpaceID uuid.UUID, names ...string) error {
	if s.values == nil {
		return nil
	}
	if _, err := s.values.MarkDirtyByAttribute(ctx, gameSpaceID, names...); err != nil {
		return storeErr(s.log, "mark attribute values dirty", err)
	}
	return nil
}

func (s *contentService) CoreAttributes(ctx context.Context, gameSpaceID uuid.UUID) ([]model.DynamicAttribute, error) {
	items, err := s.attributes.current(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}
	out := make([]model.DynamicAttribute, 0, len(items))
	for _, a := range items {
		if a.IsCoreStat {
			out = append(out, a)
		}
	}
	return out, nil
}

type TemplateResult struct {
	Template string   `json:"template"`
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// ApplyAttributeTemplate creates a preset's attributes, skipping names that
// already exist. It is best-effort: failures are counted, not rolled back.
func (s *contentService) ApplyAttributeTemplate(ctx context.Context, gameSpaceID uuid.UUID, preset string) (*TemplateResult, error) {
	p, ok := attributePresets[strings.ToLower(strings.TrimSpace(preset))]
	if !ok {
		return nil, apperr.Validation("unknown attribute template %q", preset)
	}
	existing, err := s.attributes.current(ctx, gameSpaceID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(existing))
	for _, a := range existing {
		names[a.Name] = true
	}

	res := &TemplateResult{Template: p.Name}
	for i, a := range p.Attributes {
		if names[a.Name] {
			res.Skipped++
			continue
		}
		desc := a.Description
		_, err := s.CreateDynamicAttribute(ctx, gameSpaceID, CreateDynamicAttributeReq{
			Name:         a.Name,
			Label:        a.Label,
			CalcType:     model.CalcTypeStatic,
			BaseValue:    a.Default,
			MinValue:     a.Min,
			MaxValue:     a.Max,
			DisplayOrder: len(existing) + i,
			IsCoreStat:   true,
			Description:  &desc,
		})
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, a.Name+": "+err.Error())
			continue
		}
		res.Created++
	}
	return res, nil
}

// ---- attribute calculations

type CreateAttributeCalculationReq struct {
	Name           string   `json:"calculation_name" validate:"required,max=100"`
	Label          string   `json:"calculation_label" validate:"required,max=100"`
	BaseAttributes []string `json:"base_attributes"`
	Formula        string   `json:"formula" validate:"required"`
	DiceFormula    *string  `json:"dice_formula"`
	CalcOrder      int      `json:"calculation_order"`
	IsActive       *bool    `json:"is_active"`
}

type UpdateAttributeCalculationReq struct {
	Name           *string  `json:"calculation_name" validate:"omitempty,min=1,max=100"`
	Label          *string  `json:"calculation_label" validate:"omitempty,min=1,max=100"`
	BaseAttributes []string `json:"base_attributes"`
	Formula        *string  `json:"formula" validate:"omitempty,min=1"`
	DiceFormula    *string  `json:"dice_formula"`
	CalcOrder      *int     `json:"calculation_order"`
	IsActive       *bool    `json:"is_active"`
}

// LoadAttributeCalculations returns active calculations in evaluation order.
func (s *contentService) LoadAttributeCalculations(ctx context.Context, gameSpaceID uuid.UUID) ([]model.AttributeCalculation, error) {
	return s.calculations.load(ctx, gameSpaceID)
}

func (s *contentService) CreateAttributeCalculation(ctx context.Context, gameSpaceID uuid.UUID, req CreateAttributeCalculationReq) (*model.AttributeCalculation, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Label = strings.TrimSpace(req.Label)
	req.Formula = strings.TrimSpace(req.Formula)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	if req.BaseAttributes == nil {
		req.BaseAttributes = []string{}
	}
	return s.calculations.create(ctx, &model.AttributeCalculation{
		GameSpaceID:    gameSpaceID,
		Name:           req.Name,
		Label:          req.Label,
		BaseAttributes: datatypes.NewJSONSlice(req.BaseAttributes),
		Formula:        req.Formula,
		DiceFormula:    req.DiceFormula,
		CalcOrder:      req.CalcOrder,
		IsActive:       active,
	})
}

func (s *contentService) UpdateAttributeCalculation(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateAttributeCalculationReq) (*model.AttributeCalculation, error) {
	req.Name = trimPtr(req.Name)
	req.Label = trimPtr(req.Label)
	req.Formula = trimPtr(req.Formula)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	cols := patch{}
	if req.Name != nil {
		cols["calculation_name"] = *req.Name
	}
	if req.Label != nil {
		cols["calculation_label"] = *req.Label
	}
	cols.set("base_attributes", datatypes.NewJSONSlice(req.BaseAttributes), req.BaseAttributes != nil)
	if req.Formula != nil {
		cols["formula"] = *req.Formula
	}
	if req.DiceFormula != nil {
		cols["dice_formula"] = *req.DiceFormula
	}
	if req.CalcOrder != nil {
		cols["calculation_order"] = *req.CalcOrder
	}
	if req.IsActive != nil {
		cols["is_active"] = *req.IsActive
	}
	return s.calculations.update(ctx, gameSpaceID, id, cols)
}

func (s *contentService) DeleteAttributeCalculation(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	return s.calculations.delete(ctx, gameSpaceID, id)
}

// ---- formula dependencies

type CreateFormulaDependencyReq struct {
	DependentCalculation string `json:"dependent_calculation" validate:"required,max=100"`
	RequiredAttribute    string `json:"required_attribute" validate:"required,max=100"`
	DependencyType       string `json:"dependency_type" validate:"required,max=50"`
}

type UpdateFormulaDependencyReq struct {
	DependentCalculation *string `json:"dependent_calculation" validate:"omitempty,min=1,max=100"`
	RequiredAttribute    *string `json:"required_attribute" validate:"omitempty,min=1,max=100"`
	DependencyType       *string `json:"dependency_type" validate:"omitempty,min=1,max=50"`
}

func (s *contentService) LoadFormulaDependencies(ctx context.Context, gameSpaceID uuid.UUID) ([]model.FormulaDependency, error) {
	return s.dependencies.load(ctx, gameSpaceID)
}

func (s *contentService) CreateFormulaDependency(ctx context.Context, gameSpaceID uuid.UUID, req CreateFormulaDependencyReq) (*model.FormulaDependency, error) {
	req.DependentCalculation = strings.TrimSpace(req.DependentCalculation)
	req.RequiredAttribute = strings.TrimSpace(req.RequiredAttribute)
	req.DependencyType = strings.TrimSpace(req.DependencyType)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	return s.dependencies.create(ctx, &model.FormulaDependency{
		GameSpaceID:          gameSpaceID,
		DependentCalculation: req.DependentCalculation,
		RequiredAttribute:    req.RequiredAttribute,
		DependencyType:       req.DependencyType,
	})
}

func (s *contentService) UpdateFormulaDependency(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateFormulaDependencyReq) (*model.FormulaDependency, error) {
	req.DependentCalculation = trimPtr(req.DependentCalculation)
	req.RequiredAttribute = trimPtr(req.RequiredAttribute)
	req.DependencyType = trimPtr(req.DependencyType)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	cols := patch{}
	if req.DependentCalculation != nil {
		cols["dependent_calculation"] = *req.DependentCalculation
	}
	if req.RequiredAttribute != nil {
		cols["required_attribute"] = *req.RequiredAttribute
	}
	if req.DependencyType != nil {
		cols["dependency_type"] = *req.DependencyType
	}
	return s.dependencies.update(ctx, gameSpaceID, id, cols)
}

func (s *contentService) DeleteFormulaDependency(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	return s.dependencies.delete(ctx, gameSpaceID, id)
}

// ---- custom sections

type CreateCustomSectionReq struct {
	Name        string                 `json:"section_name" validate:"required,max=100"`
	SectionType string                 `json:"section_type" validate:"required,max=50"`
	Fields      map[string]interface{} `json:"fields"`
	OrderIndex  int                    `json:"order_index" validate:"min=0"`
	IsRequired  bool                   `json:"is_required"`
}

type UpdateCustomSectionReq struct {
	Name        *string                `json:"section_name" validate:"omitempty,min=1,max=100"`
	SectionType *string                `json:"section_type" validate:"omitempty,min=1,max=50"`
	Fields      map[string]interface{} `json:"fields"`
	OrderIndex  *int                   `json:"order_index" validate:"omitempty,min=0"`
	IsRequired  *bool                  `json:"is_required"`
}

func (s *contentService) LoadCustomSections(ctx context.Context, gameSpaceID uuid.UUID) ([]model.CustomSection, error) {
	return s.sections.load(ctx, gameSpaceID)
}

func (s *contentService) CreateCustomSection(ctx context.Context, gameSpaceID uuid.UUID, req CreateCustomSectionReq) (*model.CustomSection, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.SectionType = strings.TrimSpace(req.SectionType)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	return s.sections.create(ctx, &model.CustomSection{
		GameSpaceID: gameSpaceID,
		Name:        req.Name,
		SectionType: req.SectionType,
		Fields:      datatypes.JSONMap(req.Fields),
		OrderIndex:  req.OrderIndex,
		IsRequired:  req.IsRequired,
	})
}

func (s *contentService) UpdateCustomSection(ctx context.Context, gameSpaceID, id uuid.UUID, req UpdateCustomSectionReq) (*model.CustomSection, error) {
	req.Name = trimPtr(req.Name)
	req.SectionType = trimPtr(req.SectionType)
	if err := validateReq(req); err != nil {
		return nil, err
	}
	cols := patch{}
	if req.Name != nil {
		cols["section_name"] = *req.Name
	}
	if req.SectionType != nil {
		cols["section_type"] = *req.SectionType
	}
	cols.set("fields", datatypes.JSONMap(req.Fields), req.Fields != nil)
	if req.OrderIndex != nil {
		cols["order_index"] = *req.OrderIndex
	}
	if req.IsRequired != nil {
		cols["is_required"] = *req.IsRequired
	}
	return s.sections.update(ctx, gameSpaceID, id, cols)
}

func (s *contentService) DeleteCustomSection(ctx context.Context, gameSpaceID, id uuid.UUID) error {
	return s.sections.delete(ctx, gameSpaceID, id)
}

// ---- bundle

type ContentBundle struct {
	TextSections          []model.TextSection          `json:"text_sections"`
	Skills                []model.Skill                `json:"skills"`
	CharacterClasses      []model.CharacterClass       `json:"character_classes"`
	DynamicAttributes     []model.DynamicAttribute     `json:"dynamic_attributes"`
	AttributeCalculations []model.AttributeCalculation `json:"attribute_calculations"`
	FormulaDependencies   []model.FormulaDependency    `json:"formula_dependencies"`
	CustomSections        []model.CustomSection        `json:"custom_sections"`
}

// LoadAllContent refreshes every content collection of a game space in
// parallel.
func (s *contentService) LoadAllContent(ctx context.Context, gameSpaceID uuid.UUID) (*ContentBundle, error) {
	out := &ContentBundle{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { out.TextSections, err = s.texts.load(ctx, gameSpaceID); return })
	g.Go(func() (err error) { out.Skills, err = s.skills.load(ctx, gameSpaceID); return })
	g.Go(func() (err error) { out.CharacterClasses, err = s.classes.load(ctx, gameSpaceID); return })
	g.Go(func() (err error) { out.DynamicAttributes, err = s.attributes.load(ctx, gameSpaceID); return })
	g.Go(func() (err error) { out.AttributeCalculations, err = s.calculations.load(ctx, gameSpaceID); return })
	g.Go(func() (err error) { out.FormulaDependencies, err = s.dependencies.load(ctx, gameSpaceID); return })
	g.Go(func() (err error) { out.CustomSections, err = s.sections.load(ctx, gameSpaceID); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
