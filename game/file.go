package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// scenarioFile is the on-disk form of a scenario. Only the inputs are
// stored; the tables are solved again on load.
type scenarioFile struct {
	Board     [][]int `yaml:"board"`
	Holdings  [][]int `yaml:"holdings"`
	Locations []int   `yaml:"locations"`
}

// LoadScenarioFile reads a YAML scenario and builds it.
func LoadScenarioFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	if len(f.Board) != BoardSize {
		return nil, fmt.Errorf("%w: board has %d rows", ErrInvalidScenario, len(f.Board))
	}
	var board Board
	for x, row := range f.Board {
		if len(row) != BoardSize {
			return nil, fmt.Errorf("%w: board row %d has %d cells", ErrInvalidScenario, x, len(row))
		}
		for y, color := range row {
			board[x][y] = Color(color)
		}
	}
	if len(f.Holdings) != 2 {
		return nil, fmt.Errorf("%w: %d holdings, want 2", ErrInvalidScenario, len(f.Holdings))
	}
	if len(f.Locations) != 2 {
		return nil, fmt.Errorf("%w: %d locations, want 2", ErrInvalidScenario, len(f.Locations))
	}

	s, err := Build(board, [2][]int{f.Holdings[0], f.Holdings[1]})
	if err != nil {
		return nil, err
	}
	return s.WithLocations(f.Locations[0], f.Locations[1])
}

// SaveScenarioFile writes the inputs of s as YAML.
func SaveScenarioFile(path string, s *Scenario) error {
	f := scenarioFile{
		Board:     make([][]int, BoardSize),
		Holdings:  [][]int{s.Chips(0), s.Chips(1)},
		Locations: []int{s.Location(0), s.Location(1)},
	}
	for x := range f.Board {
		f.Board[x] = make([]int, BoardSize)
		for y := range f.Board[x] {
			f.Board[x][y] = int(s.board[x][y])
		}
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}
	return nil
}
