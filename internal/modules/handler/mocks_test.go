package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/service"
	"github.com/tabletop-manager/api/internal/realtime"
)

type MockGameSpaceService struct {
	mock.Mock
}

func (m *MockGameSpaceService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.GameSpaceWithMembers, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GameSpaceWithMembers), args.Error(1)
}

func (m *MockGameSpaceService) Create(ctx context.Context, ownerID uuid.UUID, req service.CreateGameSpaceReq) (*model.GameSpace, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSpace), args.Error(1)
}

func (m *MockGameSpaceService) Get(ctx context.Context, id uuid.UUID) (*model.GameSpace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSpace), args.Error(1)
}

func (m *MockGameSpaceService) Update(ctx context.Context, requesterID uuid.UUID, id uuid.UUID, req service.UpdateGameSpaceReq) (*model.GameSpace, error) {
	args := m.Called(ctx, requesterID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSpace), args.Error(1)
}

func (m *MockGameSpaceService) Delete(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, requesterID, id)
	return args.Error(0)
}

func (m *MockGameSpaceService) ComputeStats(ctx context.Context, id uuid.UUID) (*model.GameSpaceStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSpaceStats), args.Error(1)
}

func (m *MockGameSpaceService) SetActive(ctx context.Context, userID uuid.UUID, id *uuid.UUID) (*service.ActiveGameSpace, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActiveGameSpace), args.Error(1)
}

func (m *MockGameSpaceService) Active(ctx context.Context, userID uuid.UUID) (*service.ActiveGameSpace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ActiveGameSpace), args.Error(1)
}

func (m *MockGameSpaceService) RoleOf(ctx context.Context, id uuid.UUID, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, id, userID)
	return args.String(0), args.Error(1)
}

func (m *MockGameSpaceService) ListMembers(ctx context.Context, id uuid.UUID) ([]model.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Membership), args.Error(1)
}

func (m *MockGameSpaceService) AddMember(ctx context.Context, requesterID uuid.UUID, id uuid.UUID, req service.AddMemberReq) (*model.Membership, error) {
	args := m.Called(ctx, requesterID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *MockGameSpaceService) RemoveMember(ctx context.Context, requesterID uuid.UUID, id uuid.UUID, userID uuid.UUID) error {
	args := m.Called(ctx, requesterID, id, userID)
	return args.Error(0)
}

func (m *MockGameSpaceService) JoinByInviteCode(ctx context.Context, userID uuid.UUID, code string) (*model.Membership, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) LoadTextSections(ctx context.Context, gameSpaceID uuid.UUID) ([]model.TextSection, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TextSection), args.Error(1)
}

func (m *MockContentService) CreateTextSection(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateTextSectionReq) (*model.TextSection, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TextSection), args.Error(1)
}

func (m *MockContentService) UpdateTextSection(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateTextSectionReq) (*model.TextSection, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TextSection), args.Error(1)
}

func (m *MockContentService) DeleteTextSection(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockContentService) ReorderTextSections(ctx context.Context, gameSpaceID uuid.UUID, orderedIDs []uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, orderedIDs)
	return args.Error(0)
}

func (m *MockContentService) DuplicateTextSection(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) (*model.TextSection, error) {
	args := m.Called(ctx, gameSpaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TextSection), args.Error(1)
}

func (m *MockContentService) SearchTextSections(ctx context.Context, gameSpaceID uuid.UUID, query string) ([]model.TextSection, error) {
	args := m.Called(ctx, gameSpaceID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TextSection), args.Error(1)
}

func (m *MockContentService) TextSectionStats(ctx context.Context, gameSpaceID uuid.UUID) (*service.TextSectionStats, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TextSectionStats), args.Error(1)
}

func (m *MockContentService) LoadSkills(ctx context.Context, gameSpaceID uuid.UUID) ([]model.Skill, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Skill), args.Error(1)
}

func (m *MockContentService) CreateSkill(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateSkillReq) (*model.Skill, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Skill), args.Error(1)
}

func (m *MockContentService) UpdateSkill(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateSkillReq) (*model.Skill, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Skill), args.Error(1)
}

func (m *MockContentService) DeleteSkill(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockContentService) LoadCharacterClasses(ctx context.Context, gameSpaceID uuid.UUID) ([]model.CharacterClass, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CharacterClass), args.Error(1)
}

func (m *MockContentService) CreateCharacterClass(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateCharacterClassReq) (*model.CharacterClass, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CharacterClass), args.Error(1)
}

func (m *MockContentService) UpdateCharacterClass(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateCharacterClassReq) (*model.CharacterClass, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CharacterClass), args.Error(1)
}

func (m *MockContentService) DeleteCharacterClass(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockContentService) ApplyClassTemplate(ctx context.Context, gameSpaceID uuid.UUID, preset string) (*model.CharacterClass, error) {
	args := m.Called(ctx, gameSpaceID, preset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CharacterClass), args.Error(1)
}

func (m *MockContentService) LoadDynamicAttributes(ctx context.Context, gameSpaceID uuid.UUID) ([]model.DynamicAttribute, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DynamicAttribute), args.Error(1)
}

func (m *MockContentService) CreateDynamicAttribute(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateDynamicAttributeReq) (*model.DynamicAttribute, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DynamicAttribute), args.Error(1)
}

func (m *MockContentService) UpdateDynamicAttribute(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateDynamicAttributeReq) (*model.DynamicAttribute, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DynamicAttribute), args.Error(1)
}

func (m *MockContentService) DeleteDynamicAttribute(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockContentService) CoreAttributes(ctx context.Context, gameSpaceID uuid.UUID) ([]model.DynamicAttribute, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DynamicAttribute), args.Error(1)
}

func (m *MockContentService) ApplyAttributeTemplate(ctx context.Context, gameSpaceID uuid.UUID, preset string) (*service.TemplateResult, error) {
	args := m.Called(ctx, gameSpaceID, preset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TemplateResult), args.Error(1)
}

func (m *MockContentService) LoadAttributeCalculations(ctx context.Context, gameSpaceID uuid.UUID) ([]model.AttributeCalculation, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AttributeCalculation), args.Error(1)
}

func (m *MockContentService) CreateAttributeCalculation(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateAttributeCalculationReq) (*model.AttributeCalculation, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AttributeCalculation), args.Error(1)
}

func (m *MockContentService) UpdateAttributeCalculation(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateAttributeCalculationReq) (*model.AttributeCalculation, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AttributeCalculation), args.Error(1)
}

func (m *MockContentService) DeleteAttributeCalculation(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockContentService) LoadFormulaDependencies(ctx context.Context, gameSpaceID uuid.UUID) ([]model.FormulaDependency, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FormulaDependency), args.Error(1)
}

func (m *MockContentService) CreateFormulaDependency(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateFormulaDependencyReq) (*model.FormulaDependency, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FormulaDependency), args.Error(1)
}

func (m *MockContentService) UpdateFormulaDependency(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateFormulaDependencyReq) (*model.FormulaDependency, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FormulaDependency), args.Error(1)
}

func (m *MockContentService) DeleteFormulaDependency(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockContentService) LoadCustomSections(ctx context.Context, gameSpaceID uuid.UUID) ([]model.CustomSection, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CustomSection), args.Error(1)
}

func (m *MockContentService) CreateCustomSection(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateCustomSectionReq) (*model.CustomSection, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomSection), args.Error(1)
}

func (m *MockContentService) UpdateCustomSection(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateCustomSectionReq) (*model.CustomSection, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomSection), args.Error(1)
}

func (m *MockContentService) DeleteCustomSection(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockContentService) LoadAllContent(ctx context.Context, gameSpaceID uuid.UUID) (*service.ContentBundle, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ContentBundle), args.Error(1)
}

type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) LoadCharacters(ctx context.Context, gameSpaceID uuid.UUID) ([]model.Character, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Character), args.Error(1)
}

func (m *MockCharacterService) GetCharacter(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) (*model.Character, error) {
	args := m.Called(ctx, gameSpaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Character), args.Error(1)
}

func (m *MockCharacterService) CreateCharacter(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateCharacterReq) (*model.Character, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Character), args.Error(1)
}

func (m *MockCharacterService) UpdateCharacter(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateCharacterReq) (*model.Character, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Character), args.Error(1)
}

func (m *MockCharacterService) DeleteCharacter(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockCharacterService) RecalculateCharacterValues(ctx context.Context, gameSpaceID uuid.UUID, characterID uuid.UUID) ([]model.CharacterCalculatedValue, error) {
	args := m.Called(ctx, gameSpaceID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CharacterCalculatedValue), args.Error(1)
}

func (m *MockCharacterService) LoadCalculatedValues(ctx context.Context, gameSpaceID uuid.UUID, characterID uuid.UUID) ([]model.CharacterCalculatedValue, error) {
	args := m.Called(ctx, gameSpaceID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CharacterCalculatedValue), args.Error(1)
}

func (m *MockCharacterService) StoreCalculatedValue(ctx context.Context, gameSpaceID uuid.UUID, characterID uuid.UUID, req service.StoreCalculatedValueReq) (*model.CharacterCalculatedValue, error) {
	args := m.Called(ctx, gameSpaceID, characterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CharacterCalculatedValue), args.Error(1)
}

func (m *MockCharacterService) LoadClassAssignments(ctx context.Context, gameSpaceID uuid.UUID, characterID uuid.UUID) ([]model.CharacterClassAssignment, error) {
	args := m.Called(ctx, gameSpaceID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CharacterClassAssignment), args.Error(1)
}

func (m *MockCharacterService) AssignClass(ctx context.Context, gameSpaceID uuid.UUID, characterID uuid.UUID, req service.AssignClassReq) (*model.CharacterClassAssignment, error) {
	args := m.Called(ctx, gameSpaceID, characterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CharacterClassAssignment), args.Error(1)
}

func (m *MockCharacterService) UpdateClassAssignment(ctx context.Context, gameSpaceID uuid.UUID, characterID uuid.UUID, id uuid.UUID, req service.UpdateClassAssignmentReq) (*model.CharacterClassAssignment, error) {
	args := m.Called(ctx, gameSpaceID, characterID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CharacterClassAssignment), args.Error(1)
}

func (m *MockCharacterService) RemoveClassAssignment(ctx context.Context, gameSpaceID uuid.UUID, characterID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, characterID, id)
	return args.Error(0)
}

func (m *MockCharacterService) LoadCreationTemplates(ctx context.Context, gameSpaceID uuid.UUID) ([]model.CharacterCreationTemplate, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CharacterCreationTemplate), args.Error(1)
}

func (m *MockCharacterService) CreateCreationTemplate(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateCreationTemplateReq) (*model.CharacterCreationTemplate, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CharacterCreationTemplate), args.Error(1)
}

func (m *MockCharacterService) UpdateCreationTemplate(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateCreationTemplateReq) (*model.CharacterCreationTemplate, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CharacterCreationTemplate), args.Error(1)
}

func (m *MockCharacterService) DeleteCreationTemplate(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockCharacterService) Follow(ctx context.Context, gameSpaceID uuid.UUID, onEvent func(realtime.Event)) (func() error, error) {
	args := m.Called(ctx, gameSpaceID, onEvent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func() error), args.Error(1)
}

type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) LoadOptions(ctx context.Context, gameSpaceID uuid.UUID) ([]model.GameSpaceOption, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GameSpaceOption), args.Error(1)
}

func (m *MockTrackerService) CreateOption(ctx context.Context, gameSpaceID uuid.UUID, req service.CreateOptionReq) (*model.GameSpaceOption, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSpaceOption), args.Error(1)
}

func (m *MockTrackerService) UpdateOption(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, req service.UpdateOptionReq) (*model.GameSpaceOption, error) {
	args := m.Called(ctx, gameSpaceID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSpaceOption), args.Error(1)
}

func (m *MockTrackerService) DeleteOption(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, gameSpaceID, id)
	return args.Error(0)
}

func (m *MockTrackerService) LoadSessions(ctx context.Context, gameSpaceID uuid.UUID) ([]model.GameSession, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GameSession), args.Error(1)
}

func (m *MockTrackerService) ActiveSession(ctx context.Context, gameSpaceID uuid.UUID) (*model.GameSession, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSession), args.Error(1)
}

func (m *MockTrackerService) StartSession(ctx context.Context, gameSpaceID uuid.UUID, req service.StartSessionReq) (*model.GameSession, error) {
	args := m.Called(ctx, gameSpaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSession), args.Error(1)
}

func (m *MockTrackerService) UpdateSessionData(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID, data map[string]interface{}) (*model.GameSession, error) {
	args := m.Called(ctx, gameSpaceID, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSession), args.Error(1)
}

func (m *MockTrackerService) EndSession(ctx context.Context, gameSpaceID uuid.UUID, id uuid.UUID) (*model.GameSession, error) {
	args := m.Called(ctx, gameSpaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GameSession), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, gameSpaceID uuid.UUID) (*service.ExportResult, error) {
	args := m.Called(ctx, gameSpaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
