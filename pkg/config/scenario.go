package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"duel-service/pkg/battle"
	"duel-service/pkg/playstyle"
)

// Fighter describes one side of a duel, as written in scenario files and
// HTTP requests.
type Fighter struct {
	Name      string `yaml:"name" json:"name"`
	Archetype string `yaml:"archetype" json:"archetype"`
	Playstyle string `yaml:"playstyle" json:"playstyle"`
	// Inputs are the tokens a manual fighter plays, in order ("AASA").
	Inputs string `yaml:"inputs" json:"inputs"`
	// Optional starting values; omitted means full.
	Health         *int `yaml:"health" json:"health,omitempty"`
	ResourcePoints *int `yaml:"resource_points" json:"resourcePoints,omitempty"`
}

// Scenario is a complete duel setup.
type Scenario struct {
	Seed     *int64    `yaml:"seed"`
	MaxTurns int       `yaml:"max_turns"`
	Fighters []Fighter `yaml:"fighters"`
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(b, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks that the scenario names exactly two usable fighters.
func (s *Scenario) Validate() error {
	if len(s.Fighters) != 2 {
		return fmt.Errorf("need exactly 2 fighters, got %d", len(s.Fighters))
	}
	if s.MaxTurns < 0 {
		return fmt.Errorf("max_turns must not be negative")
	}
	for i, f := range s.Fighters {
		if _, err := f.Entrant(nil); err != nil {
			return fmt.Errorf("fighter %d: %w", i+1, err)
		}
	}
	if strings.EqualFold(DisplayName(s.Fighters[0].Name), DisplayName(s.Fighters[1].Name)) {
		return fmt.Errorf("fighters must have different names")
	}
	return nil
}

// Entrant resolves the fighter into something playstyle.NewDuel accepts.
// input overrides the scripted inputs of a manual fighter when non-nil.
func (f Fighter) Entrant(input playstyle.Input) (playstyle.Entrant, error) {
	name := DisplayName(f.Name)
	if name == "" {
		return playstyle.Entrant{}, fmt.Errorf("missing name")
	}
	arch, err := battle.ParseArchetype(f.Archetype)
	if err != nil {
		return playstyle.Entrant{}, err
	}
	kind, err := playstyle.ParseKind(f.Playstyle)
	if err != nil {
		return playstyle.Entrant{}, err
	}

	e := playstyle.Entrant{Name: name, Archetype: arch, Kind: kind}
	if kind == playstyle.KindManual {
		e.Input = input
		if e.Input == nil {
			e.Input = playstyle.NewScript(f.Inputs)
		}
	}
	if f.Health != nil {
		e.Options = append(e.Options, battle.WithHealth(*f.Health))
	}
	if f.ResourcePoints != nil {
		e.Options = append(e.Options, battle.WithResourcePoints(*f.ResourcePoints))
	}
	return e, nil
}

// DisplayName trims and title-cases a fighter name.
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}
