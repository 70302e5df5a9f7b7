package model

// All lists every table for AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&GameSpace{},
		&Membership{},
		&GameSpaceOption{},
		&GameSession{},
		&TextSection{},
		&Skill{},
		&CharacterClass{},
		&DynamicAttribute{},
		&AttributeCalculation{},
		&FormulaDependency{},
		&CustomSection{},
		&Character{},
		&CharacterClassAssignment{},
		&CharacterCalculatedValue{},
		&CharacterCreationTemplate{},
	}
}
