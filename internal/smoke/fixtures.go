package smoke

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixtures is the data the runner creates and stakes. Every field has a
// built-in default; a YAML file may override any subset.
type Fixtures struct {
	Game   GameFixture  `yaml:"game"`
	Match  MatchFixture `yaml:"match"`
	Bonus  BonusFixture `yaml:"bonus"`
	Stakes StakeFixture `yaml:"stakes"`
}

type GameFixture struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Icon     string `yaml:"icon"`
}

type OptionFixture struct {
	Name string  `yaml:"name"`
	Cote float64 `yaml:"cote"`
}

type BetTypeFixture struct {
	TypeName    string          `yaml:"type_name"`
	Description string          `yaml:"description"`
	Options     []OptionFixture `yaml:"options"`
}

type MatchFixture struct {
	Team1       string           `yaml:"team1"`
	Team2       string           `yaml:"team2"`
	StartOffset time.Duration    `yaml:"start_offset"`
	BetTypes    []BetTypeFixture `yaml:"bet_types"`
}

type BonusFixture struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	BonusType   string  `yaml:"bonus_type"`
	Value       float64 `yaml:"value"`
	Stock       int     `yaml:"stock"`
}

// StakeFixture holds the amounts wagered by the bet and balance checks.
type StakeFixture struct {
	Simple   float64 `yaml:"simple"`
	Combined float64 `yaml:"combined"`
	Balance  float64 `yaml:"balance"`
}

// DefaultFixtures returns the stock scenario data.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Game: GameFixture{Name: "League of Legends Test", Category: "MOBA", Icon: "lol-icon"},
		Match: MatchFixture{
			Team1:       "Team Alpha",
			Team2:       "Team Beta",
			StartOffset: 2 * time.Hour,
			BetTypes: []BetTypeFixture{
				{
					TypeName:    "Winner",
					Description: "Which team will win the match",
					Options:     []OptionFixture{{Name: "Team Alpha", Cote: 1.8}, {Name: "Team Beta", Cote: 2.1}},
				},
				{
					TypeName:    "First Blood",
					Description: "Which team will get first blood",
					Options:     []OptionFixture{{Name: "Team Alpha", Cote: 1.9}, {Name: "Team Beta", Cote: 1.9}},
				},
			},
		},
		Bonus: BonusFixture{
			Name:        "Test Bonus Pack",
			Description: "Test bonus for automated testing",
			Price:       50,
			BonusType:   "free_ecu",
			Value:       25,
			Stock:       10,
		},
		Stakes: StakeFixture{Simple: 10, Combined: 15, Balance: 5},
	}
}

// LoadFixtures overlays the YAML file at path onto the defaults. An empty
// path returns the defaults.
func LoadFixtures(path string) (Fixtures, error) {
	fx := DefaultFixtures()
	if path == "" {
		return fx, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("read fixtures: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	if err := fx.Validate(); err != nil {
		return Fixtures{}, fmt.Errorf("fixtures %s: %w", path, err)
	}
	return fx, nil
}

// Validate rejects fixtures the scenario cannot run with.
func (f Fixtures) Validate() error {
	if f.Game.Name == "" {
		return fmt.Errorf("game.name is required")
	}
	if len(f.Match.BetTypes) == 0 {
		return fmt.Errorf("match needs at least one bet type")
	}
	for _, bt := range f.Match.BetTypes {
		if len(bt.Options) == 0 {
			return fmt.Errorf("bet type %q has no options", bt.TypeName)
		}
	}
	if f.Stakes.Simple <= 0 || f.Stakes.Combined <= 0 || f.Stakes.Balance <= 0 {
		return fmt.Errorf("stakes must be positive")
	}
	return nil
}
