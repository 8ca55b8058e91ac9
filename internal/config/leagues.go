package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
)

type leaguesFile struct {
	Leagues []leagueConfig `yaml:"leagues" validate:"required,min=1,dive"`
}

type leagueConfig struct {
	ID              string       `yaml:"id" validate:"required"`
	Name            string       `yaml:"name" validate:"required"`
	Type            string       `yaml:"type" validate:"required,oneof=h2h team_h2h elimination"`
	FPLLeagueID     int          `yaml:"fpl_league_id" validate:"required,gt=0"`
	Cutoff          int          `yaml:"cutoff" validate:"gte=0"`
	Teams           []teamConfig `yaml:"teams" validate:"dive"`
	ExcludedEntries []int        `yaml:"excluded_entries"`
}

type teamConfig struct {
	ID       int    `yaml:"id" validate:"required,gt=0"`
	Name     string `yaml:"name" validate:"required"`
	Managers []int  `yaml:"managers" validate:"len=3,dive,gt=0"`
}

// LoadLeagues reads the league roster file.
func LoadLeagues(path string) ([]league.League, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read leagues file: %w", err)
	}
	return ParseLeagues(data)
}

func ParseLeagues(data []byte) ([]league.League, error) {
	var file leaguesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse leagues file: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid leagues file: %w", err)
	}

	out := make([]league.League, 0, len(file.Leagues))
	seen := make(map[string]struct{}, len(file.Leagues))
	for _, item := range file.Leagues {
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate league id %s", league.ErrInvalidLeague, item.ID)
		}
		seen[item.ID] = struct{}{}

		l := league.League{
			ID:          item.ID,
			Name:        item.Name,
			Type:        league.Type(item.Type),
			FPLLeagueID: item.FPLLeagueID,
			Cutoff:      item.Cutoff,
			Excluded:    append([]int(nil), item.ExcludedEntries...),
		}
		for _, team := range item.Teams {
			l.Teams = append(l.Teams, league.Team{
				ID:         team.ID,
				Name:       team.Name,
				ManagerIDs: append([]int(nil), team.Managers...),
			})
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, nil
}
