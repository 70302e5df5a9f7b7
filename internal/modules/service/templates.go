package service

import "github.com/tabletop-manager/api/internal/modules/model"

type attributePreset struct {
	Name       string
	Label      string
	Attributes []presetAttribute
}

type presetAttribute struct {
	Name        string
	Label       string
	Min, Max    float64
	Default     float64
	Description string
}

var attributePresets = map[string]attributePreset{
	"dnd5e": {
		Name:  "D&D 5e Standard",
		Label: "Dungeons & Dragons 5th Edition",
		Attributes: []presetAttribute{
			{"STR", "Strength", 1, 20, 10, "Physical power and muscle strength for melee combat and lifting"},
			{"DEX", "Dexterity", 1, 20, 10, "Agility, reflexes, and hand-eye coordination for ranged attacks and stealth"},
			{"CON", "Constitution", 1, 20, 10, "Health, stamina, and resistance to disease and environmental effects"},
			{"INT", "Intelligence", 1, 20, 10, "Reasoning ability, memory, and analytical thinking"},
			{"WIS", "Wisdom", 1, 20, 10, "Awareness, insight, and intuitive understanding"},
			{"CHA", "Charisma", 1, 20, 10, "Force of personality, leadership, and social influence"},
		},
	},
	"modern": {
		Name:  "Modern RPG",
		Label: "Modern/Contemporary Setting",
		Attributes: []presetAttribute{
			{"BODY", "Body", 1, 10, 5, "Physical strength, health, and athletic capability"},
			{"MIND", "Mind", 1, 10, 5, "Intelligence, reasoning, and problem-solving ability"},
			{"SOUL", "Soul", 1, 10, 5, "Willpower, spirit, and emotional resilience"},
			{"TECH", "Technology", 1, 10, 5, "Technical expertise, hacking, and digital literacy"},
		},
	},
	"simple": {
		Name:  "Simple System",
		Label: "Beginner-Friendly System",
		Attributes: []presetAttribute{
			{"MIGHT", "Might", 1, 5, 3, "Physical capabilities including strength and endurance"},
			{"SPEED", "Speed", 1, 5, 3, "Agility, quickness, and reaction time"},
			{"INTELLECT", "Intellect", 1, 5, 3, "Mental capabilities including reasoning and knowledge"},
		},
	},
}

type classPreset struct {
	Label             string
	Description       string
	Category          string
	BaseStats         model.StatBlock
	SpecialAbilities  []classAbility
	RecommendedSkills []string
}

type classAbility struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
}

var classPresets = map[string]classPreset{
	"warrior": {
		Label:       "Warrior/Fighter",
		Description: "Strong melee combatant with high physical stats",
		Category:    "warrior",
		BaseStats:   model.StatBlock{"STR": 15, "DEX": 12, "CON": 14, "INT": 10, "WIS": 12, "CHA": 10},
		SpecialAbilities: []classAbility{
			{"Combat Expertise", "Extra attack per round", 5},
			{"Weapon Mastery", "Specialization with chosen weapon type", 3},
		},
		RecommendedSkills: []string{"Athletics", "Intimidation", "Survival"},
	},
	"mage": {
		Label:       "Mage/Wizard",
		Description: "Powerful spellcaster with high mental attributes",
		Category:    "mage",
		BaseStats:   model.StatBlock{"STR": 8, "DEX": 12, "CON": 10, "INT": 16, "WIS": 14, "CHA": 12},
		SpecialAbilities: []classAbility{
			{"Spellcasting", "Cast arcane spells", 1},
			{"Arcane Recovery", "Recover spell slots on short rest", 3},
		},
		RecommendedSkills: []string{"Arcana", "History", "Investigation"},
	},
	"rogue": {
		Label:       "Rogue/Thief",
		Description: "Stealthy character focused on skills and precision",
		Category:    "rogue",
		BaseStats:   model.StatBlock{"STR": 10, "DEX": 16, "CON": 12, "INT": 12, "WIS": 14, "CHA": 10},
		SpecialAbilities: []classAbility{
			{"Sneak Attack", "Extra damage when attacking with advantage", 1},
			{"Cunning Action", "Dash, Disengage, or Hide as bonus action", 2},
		},
		RecommendedSkills: []string{"Stealth", "Sleight of Hand", "Perception"},
	},
	"cleric": {
		Label:       "Cleric/Priest",
		Description: "Divine magic user with support and healing abilities",
		Category:    "support",
		BaseStats:   model.StatBlock{"STR": 12, "DEX": 10, "CON": 13, "INT": 10, "WIS": 16, "CHA": 14},
		SpecialAbilities: []classAbility{
			{"Divine Magic", "Cast divine spells", 1},
			{"Channel Divinity", "Use divine power for special effects", 2},
		},
		RecommendedSkills: []string{"Medicine", "Religion", "Insight"},
	},
	"ranger": {
		Label:       "Ranger/Scout",
		Description: "Nature warrior with tracking and survival skills",
		Category:    "hybrid",
		BaseStats:   model.StatBlock{"STR": 13, "DEX": 15, "CON": 14, "INT": 11, "WIS": 14, "CHA": 10},
		SpecialAbilities: []classAbility{
			{"Favored Enemy", "Bonus against chosen creature type", 1},
			{"Natural Explorer", "Benefits in chosen terrain", 1},
		},
		RecommendedSkills: []string{"Survival", "Animal Handling", "Nature"},
	},
}

// classStats maps a preset onto the game space's attributes: preset values
// are clamped into each attribute's bounds, attributes the preset does not
// mention get their base value.
func classStats(p classPreset, attrs []model.DynamicAttribute) model.StatBlock {
	out := make(model.StatBlock, len(attrs))
	for _, a := range attrs {
		v, ok := p.BaseStats[a.Name]
		if !ok {
			out[a.Name] = a.BaseValue
			continue
		}
		out[a.Name] = max(a.MinValue, min(a.MaxValue, v))
	}
	return out
}
