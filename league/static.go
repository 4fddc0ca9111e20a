// Package league holds the league's fixed manager list and resolves which
// Sleeper accounts belong to the league.
package league

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pdag/league-page/model"
)

// Static is the hand maintained league dataset, normally read from a TOML file:
//
//	league_id = "1005178517580746753"
//
//	[[managers]]
//	manager_id = "362744067425296384"
//	roster_id = 4
//	name = "Matt"
//	photo = "/managers/matt.jpg"
//
//	[managers.rival]
//	name = "Jolly"
//	link = "325106323354046464"
//	image = "/managers/jolly.jpg"
type Static struct {
	LeagueID string          `toml:"league_id"`
	Managers []model.Manager `toml:"managers"`
}

// Load reads the dataset at path. A missing file yields an empty dataset and
// an error wrapping os.ErrNotExist so callers can decide to carry on.
func Load(path string) (*Static, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Static{}, fmt.Errorf("static league file %s: %w", path, err)
		}
		return nil, fmt.Errorf("error reading static league file %s: %w", path, err)
	}
	s, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func Parse(data string) (*Static, error) {
	var s Static
	md, err := toml.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("error parsing static league data: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in static league data: %v", undecoded)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Static) validate() error {
	seen := make(map[string]bool, len(s.Managers))
	for i, m := range s.Managers {
		if m.ManagerID == "" {
			return fmt.Errorf("manager %d (%s) has no manager_id", i, m.Name)
		}
		if seen[m.ManagerID] {
			return fmt.Errorf("manager_id %s is listed more than once", m.ManagerID)
		}
		seen[m.ManagerID] = true
	}
	return nil
}

// ManagerList returns a copy of the static managers.
func (s *Static) ManagerList() []model.Manager {
	if s == nil {
		return []model.Manager{}
	}
	return model.MergeManagers(s.Managers, nil)
}
