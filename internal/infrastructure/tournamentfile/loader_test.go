package tournamentfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCatalog = `
storeEndpoint: https://script.example.com/macros/s/abc/exec
tournaments:
  - id: cred-2025
    name: CRED Championship
    startDate: "2025-01-06"
    endDate: "2025-01-23"
    totalDays: 14
    skipWeekends: true
    points: {1: 10, 2: 7, 3: 5}
    entities:
      - {id: "1", name: Antoine, color: "#ef4444"}
      - {id: "2", name: Florian, color: "#f97316"}
  - id: lab-teams
    name: Lab Teams
    startDate: "2025-02-03"
    totalDays: 5
    isTeamBased: true
    archived: true
    points: {1: 3, 2: 1}
    entities:
      - {id: blue, name: Blue, members: [Irene, Charlie]}
      - {id: red, name: Red, members: [Illan]}
`

func TestParse_ValidCatalog(t *testing.T) {
	catalog, err := Parse([]byte(validCatalog))
	require.NoError(t, err)

	assert.Equal(t, "https://script.example.com/macros/s/abc/exec", catalog.StoreEndpoint)
	require.Len(t, catalog.Tournaments, 2)

	cred := catalog.Tournaments[0]
	assert.Equal(t, "cred-2025", cred.ID)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), cred.StartDate)
	assert.True(t, cred.SkipWeekends)
	assert.Equal(t, tournament.PointsTable{1: 10, 2: 7, 3: 5}, cred.Points)
	assert.Equal(t, tournament.Individual{ID: "1", Name: "Antoine", Color: "#ef4444"}, cred.Entities[0])

	teams := catalog.Tournaments[1]
	assert.True(t, teams.IsTeamBased)
	assert.True(t, teams.Archived)
	assert.Equal(t, tournament.Team{ID: "blue", Name: "Blue", Members: []string{"Irene", "Charlie"}}, teams.Entities[0])
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not yaml", raw: "tournaments: ["},
		{name: "no tournaments", raw: "tournaments: []"},
		{name: "bad date", raw: `
tournaments:
  - {id: a, name: A, startDate: "06/01/2025", totalDays: 1, points: {1: 1}, entities: [{id: "1", name: X}]}`},
		{name: "gap in points", raw: `
tournaments:
  - {id: a, name: A, startDate: "2025-01-06", totalDays: 1, points: {1: 5, 3: 1}, entities: [{id: "1", name: X}]}`},
		{name: "duplicate entity", raw: `
tournaments:
  - {id: a, name: A, startDate: "2025-01-06", totalDays: 1, points: {1: 1}, entities: [{id: "1", name: X}, {id: "1", name: Y}]}`},
		{name: "bad color", raw: `
tournaments:
  - {id: a, name: A, startDate: "2025-01-06", totalDays: 1, points: {1: 1}, entities: [{id: "1", name: X, color: red}]}`},
		{name: "duplicate tournament", raw: `
tournaments:
  - {id: a, name: A, startDate: "2025-01-06", totalDays: 1, points: {1: 1}, entities: [{id: "1", name: X}]}
  - {id: a, name: B, startDate: "2025-01-06", totalDays: 1, points: {1: 1}, entities: [{id: "1", name: X}]}`},
		{name: "bad endpoint", raw: `
storeEndpoint: not-a-url
tournaments:
  - {id: a, name: A, startDate: "2025-01-06", totalDays: 1, points: {1: 1}, entities: [{id: "1", name: X}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw))
			require.Error(t, err)
			if tc.name != "not yaml" {
				assert.True(t, errors.Is(err, tournament.ErrInvalidTournament), "got %v", err)
			}
		})
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournaments.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validCatalog), 0o600))

	catalog, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, catalog.Tournaments, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
