package tournament

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTournament = errors.New("invalid tournament")

// Tournament is the static configuration of one competition.
type Tournament struct {
	ID           string
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	TotalDays    int
	IsTeamBased  bool
	Entities     []Entity
	Points       PointsTable
	SkipWeekends bool
	Archived     bool
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: tournament id is required", ErrInvalidTournament)
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: tournament name is required", ErrInvalidTournament)
	}
	if t.StartDate.IsZero() {
		return fmt.Errorf("%w: tournament %s start date is required", ErrInvalidTournament, t.ID)
	}
	if !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: tournament %s ends before it starts", ErrInvalidTournament, t.ID)
	}
	if t.TotalDays < 1 {
		return fmt.Errorf("%w: tournament %s total days must be >= 1", ErrInvalidTournament, t.ID)
	}
	if len(t.Entities) == 0 {
		return fmt.Errorf("%w: tournament %s has no entities", ErrInvalidTournament, t.ID)
	}

	seen := make(map[string]struct{}, len(t.Entities))
	names := make(map[string]string, len(t.Entities))
	for _, e := range t.Entities {
		if e == nil {
			return fmt.Errorf("%w: tournament %s has a nil entity", ErrInvalidTournament, t.ID)
		}
		id := e.EntityID()
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: tournament %s has an entity without id", ErrInvalidTournament, t.ID)
		}
		name := strings.ToLower(strings.TrimSpace(e.DisplayName()))
		if name == "" {
			return fmt.Errorf("%w: entity %s name is required", ErrInvalidTournament, id)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("%w: duplicate entity id %s", ErrInvalidTournament, id)
		}
		seen[id] = struct{}{}
		// series rows and chart lines are keyed by name
		if other, exists := names[name]; exists {
			return fmt.Errorf("%w: entities %s and %s share the name %q", ErrInvalidTournament, other, id, e.DisplayName())
		}
		names[name] = id

		wantKind := KindIndividual
		if t.IsTeamBased {
			wantKind = KindTeam
		}
		if e.Kind() != wantKind {
			return fmt.Errorf("%w: entity %s is %s, tournament %s expects %s", ErrInvalidTournament, id, e.Kind(), t.ID, wantKind)
		}
	}

	return t.Points.validate()
}

// Entity looks up a configured entity by id.
func (t Tournament) Entity(id string) (Entity, bool) {
	for _, e := range t.Entities {
		if e.EntityID() == id {
			return e, true
		}
	}
	return nil, false
}

// EntityIDs returns entity ids in configuration order.
func (t Tournament) EntityIDs() []string {
	out := make([]string, 0, len(t.Entities))
	for _, e := range t.Entities {
		out = append(out, e.EntityID())
	}
	return out
}

func (t Tournament) HasDay(day int) bool {
	return day >= 1 && day <= t.TotalDays
}
