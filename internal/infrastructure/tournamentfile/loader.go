// Package tournamentfile loads the tournament catalog from a YAML file.
package tournamentfile

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Catalog is the content of a tournament file.
type Catalog struct {
	Tournaments   []tournament.Tournament
	StoreEndpoint string
}

type fileModel struct {
	StoreEndpoint string            `yaml:"storeEndpoint" validate:"omitempty,url"`
	Tournaments   []tournamentModel `yaml:"tournaments" validate:"required,min=1,dive"`
}

type tournamentModel struct {
	ID           string        `yaml:"id" validate:"required"`
	Name         string        `yaml:"name" validate:"required"`
	StartDate    string        `yaml:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string        `yaml:"endDate" validate:"omitempty,datetime=2006-01-02"`
	TotalDays    int           `yaml:"totalDays" validate:"required,min=1"`
	IsTeamBased  bool          `yaml:"isTeamBased"`
	SkipWeekends bool          `yaml:"skipWeekends"`
	Archived     bool          `yaml:"archived"`
	Points       map[int]int   `yaml:"points" validate:"required,min=1"`
	Entities     []entityModel `yaml:"entities" validate:"required,min=1,dive"`
}

type entityModel struct {
	ID      string   `yaml:"id" validate:"required"`
	Name    string   `yaml:"name" validate:"required"`
	Color   string   `yaml:"color" validate:"omitempty,hexcolor"`
	Members []string `yaml:"members" validate:"omitempty,dive,required"`
}

func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read tournament file %s: %w", path, err)
	}
	catalog, err := Parse(raw)
	if err != nil {
		return Catalog{}, fmt.Errorf("tournament file %s: %w", path, err)
	}
	return catalog, nil
}

// Parse decodes and validates a catalog. Every tournament must pass
// Tournament.Validate and ids must be unique across the file.
func Parse(raw []byte) (Catalog, error) {
	var file fileModel
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Catalog{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", tournament.ErrInvalidTournament, err)
	}

	out := Catalog{
		StoreEndpoint: strings.TrimSpace(file.StoreEndpoint),
		Tournaments:   make([]tournament.Tournament, 0, len(file.Tournaments)),
	}
	seen := make(map[string]struct{}, len(file.Tournaments))
	for _, m := range file.Tournaments {
		t, err := m.toDomain()
		if err != nil {
			return Catalog{}, err
		}
		if err := t.Validate(); err != nil {
			return Catalog{}, err
		}
		if _, exists := seen[t.ID]; exists {
			return Catalog{}, fmt.Errorf("%w: duplicate tournament id %s", tournament.ErrInvalidTournament, t.ID)
		}
		seen[t.ID] = struct{}{}
		out.Tournaments = append(out.Tournaments, t)
	}
	return out, nil
}

func (m tournamentModel) toDomain() (tournament.Tournament, error) {
	start, err := time.Parse(dateLayout, m.StartDate)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament %s start date: %v", tournament.ErrInvalidTournament, m.ID, err)
	}
	var end time.Time
	if m.EndDate != "" {
		if end, err = time.Parse(dateLayout, m.EndDate); err != nil {
			return tournament.Tournament{}, fmt.Errorf("%w: tournament %s end date: %v", tournament.ErrInvalidTournament, m.ID, err)
		}
	}

	entities := make([]tournament.Entity, 0, len(m.Entities))
	for _, e := range m.Entities {
		if m.IsTeamBased {
			entities = append(entities, tournament.Team{
				ID:      e.ID,
				Name:    e.Name,
				Color:   e.Color,
				Members: append([]string(nil), e.Members...),
			})
			continue
		}
		entities = append(entities, tournament.Individual{ID: e.ID, Name: e.Name, Color: e.Color})
	}

	points := make(tournament.PointsTable, len(m.Points))
	for rank, value := range m.Points {
		points[rank] = value
	}

	return tournament.Tournament{
		ID:           m.ID,
		Name:         m.Name,
		StartDate:    start,
		EndDate:      end,
		TotalDays:    m.TotalDays,
		IsTeamBased:  m.IsTeamBased,
		Entities:     entities,
		Points:       points,
		SkipWeekends: m.SkipWeekends,
		Archived:     m.Archived,
	}, nil
}
