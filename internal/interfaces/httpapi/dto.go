package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/chat"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/minigame"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	"github.com/riskibarqy/tournament-leaderboard/internal/usecase"
)

// rawScore accepts a JSON number or string. Coercion into a valid game
// score happens in the usecase layer.
type rawScore string

func (s *rawScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := jsoniter.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = rawScore(v)
		return nil
	}
	var n jsoniter.Number
	if err := jsoniter.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("geo_score must be a number or string: %w", err)
	}
	*s = rawScore(n.String())
	return nil
}

type entityDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Kind    string   `json:"kind"`
	Members []string `json:"members,omitempty"`
}

type tournamentSummaryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	TotalDays   int    `json:"totalDays"`
	IsTeamBased bool   `json:"isTeamBased"`
	Archived    bool   `json:"archived"`
}

type tournamentDTO struct {
	tournamentSummaryDTO
	SkipWeekends bool           `json:"skipWeekends"`
	Points       map[string]int `json:"points"`
	Entities     []entityDTO    `json:"entities"`
}

type currentDayDTO struct {
	TournamentID string `json:"tournamentId"`
	CurrentDay   int    `json:"currentDay"`
}

type scoreDTO struct {
	EntityID  string `json:"entityId"`
	Day       int    `json:"day"`
	GeoScore  int    `json:"geoScore"`
	Timestamp string `json:"timestamp,omitempty"`
}

type submitScoreResultDTO struct {
	Score    scoreDTO   `json:"score"`
	Adjusted bool       `json:"adjusted"`
	Scores   []scoreDTO `json:"scores,omitempty"`
}

type rankingDTO struct {
	Rank             int    `json:"rank"`
	EntityID         string `json:"entityId"`
	EntityName       string `json:"entityName"`
	Color            string `json:"color"`
	GeoScore         int    `json:"geoScore"`
	TournamentPoints int    `json:"tournamentPoints"`
}

type dayRankingDTO struct {
	TournamentID string       `json:"tournamentId"`
	Day          int          `json:"day"`
	Ranking      []rankingDTO `json:"ranking"`
}

type standingDTO struct {
	Position      int    `json:"position"`
	EntityID      string `json:"entityId"`
	EntityName    string `json:"entityName"`
	Color         string `json:"color"`
	TotalPoints   int    `json:"totalPoints"`
	TotalGeoScore int    `json:"totalGeoScore"`
	DaysPlayed    int    `json:"daysPlayed"`
	AvgGeoScore   int    `json:"avgGeoScore"`
}

type standingsDTO struct {
	TournamentID string        `json:"tournamentId"`
	UpToDay      int           `json:"upToDay"`
	Standings    []standingDTO `json:"standings"`
}

type seriesRowDTO struct {
	Day    int            `json:"day"`
	Points map[string]int `json:"points"`
}

type seriesDTO struct {
	TournamentID string         `json:"tournamentId"`
	Rows         []seriesRowDTO `json:"rows"`
}

type overviewDTO struct {
	Tournament tournamentSummaryDTO `json:"tournament"`
	CurrentDay int                  `json:"currentDay"`
	Points     map[string]int       `json:"points"`
	Today      []rankingDTO         `json:"today"`
	Standings  []standingDTO        `json:"standings"`
	Scores     []scoreDTO           `json:"scores"`
}

type messageDTO struct {
	EntityID  string `json:"entityId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type snakeScoreDTO struct {
	EntityID  string `json:"entityId"`
	Score     int    `json:"score"`
	Timestamp string `json:"timestamp"`
}

func formatDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.DateOnly)
}

func formatTimestamp(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func tournamentToSummaryDTO(ctx context.Context, t tournament.Tournament) tournamentSummaryDTO {
	_, span := startSpan(ctx, "httpapi.tournamentToSummaryDTO")
	defer span.End()

	return tournamentSummaryDTO{
		ID:          t.ID,
		Name:        t.Name,
		StartDate:   formatDate(t.StartDate),
		EndDate:     formatDate(t.EndDate),
		TotalDays:   t.TotalDays,
		IsTeamBased: t.IsTeamBased,
		Archived:    t.Archived,
	}
}

func tournamentToDTO(ctx context.Context, t tournament.Tournament) tournamentDTO {
	ctx, span := startSpan(ctx, "httpapi.tournamentToDTO")
	defer span.End()

	entities := make([]entityDTO, 0, len(t.Entities))
	for _, e := range t.Entities {
		item := entityDTO{
			ID:    e.EntityID(),
			Name:  e.DisplayName(),
			Color: e.DisplayColor(),
			Kind:  string(e.Kind()),
		}
		if team, ok := e.(tournament.Team); ok {
			item.Members = append([]string(nil), team.Members...)
		}
		entities = append(entities, item)
	}

	return tournamentDTO{
		tournamentSummaryDTO: tournamentToSummaryDTO(ctx, t),
		SkipWeekends:         t.SkipWeekends,
		Points:               pointsToDTO(t.Points),
		Entities:             entities,
	}
}

func pointsToDTO(points tournament.PointsTable) map[string]int {
	out := make(map[string]int, len(points))
	for rank, value := range points {
		out[strconv.Itoa(rank)] = value
	}
	return out
}

func scoreToDTO(r score.Record) scoreDTO {
	return scoreDTO{
		EntityID:  r.EntityID,
		Day:       r.Day,
		GeoScore:  r.GeoScore,
		Timestamp: formatTimestamp(r.Timestamp),
	}
}

func scoresToDTO(ctx context.Context, records []score.Record) []scoreDTO {
	_, span := startSpan(ctx, "httpapi.scoresToDTO")
	defer span.End()

	out := make([]scoreDTO, 0, len(records))
	for _, r := range records {
		out = append(out, scoreToDTO(r))
	}
	return out
}

func submitScoreResultToDTO(ctx context.Context, result usecase.SubmitScoreResult) submitScoreResultDTO {
	out := submitScoreResultDTO{
		Score:    scoreToDTO(result.Record),
		Adjusted: result.Adjusted,
	}
	if result.Snapshot != nil {
		out.Scores = scoresToDTO(ctx, result.Snapshot)
	}
	return out
}

func rankingsToDTO(t tournament.Tournament, items []leaderboard.DayRanking) []rankingDTO {
	out := make([]rankingDTO, 0, len(items))
	for _, item := range items {
		name, color := entityLabel(t, item.EntityID)
		out = append(out, rankingDTO{
			Rank:             item.Rank,
			EntityID:         item.EntityID,
			EntityName:       name,
			Color:            color,
			GeoScore:         item.GeoScore,
			TournamentPoints: item.TournamentPoints,
		})
	}
	return out
}

func standingListToDTO(t tournament.Tournament, items []leaderboard.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for i, item := range items {
		name, color := entityLabel(t, item.EntityID)
		out = append(out, standingDTO{
			Position:      i + 1,
			EntityID:      item.EntityID,
			EntityName:    name,
			Color:         color,
			TotalPoints:   item.TotalPoints,
			TotalGeoScore: item.TotalGeoScore,
			DaysPlayed:    item.DaysPlayed,
			AvgGeoScore:   item.AvgGeoScore,
		})
	}
	return out
}

func entityLabel(t tournament.Tournament, entityID string) (string, string) {
	e, ok := t.Entity(entityID)
	if !ok {
		return entityID, ""
	}
	return e.DisplayName(), e.DisplayColor()
}

func dayRankingToDTO(ctx context.Context, result usecase.DayResult) dayRankingDTO {
	_, span := startSpan(ctx, "httpapi.dayRankingToDTO")
	defer span.End()

	return dayRankingDTO{
		TournamentID: result.Tournament.ID,
		Day:          result.Day,
		Ranking:      rankingsToDTO(result.Tournament, result.Ranking),
	}
}

func standingsToDTO(ctx context.Context, result usecase.StandingsResult) standingsDTO {
	_, span := startSpan(ctx, "httpapi.standingsToDTO")
	defer span.End()

	return standingsDTO{
		TournamentID: result.Tournament.ID,
		UpToDay:      result.UptoDay,
		Standings:    standingListToDTO(result.Tournament, result.Standings),
	}
}

func seriesToDTO(ctx context.Context, result usecase.SeriesResult) seriesDTO {
	_, span := startSpan(ctx, "httpapi.seriesToDTO")
	defer span.End()

	rows := make([]seriesRowDTO, 0, len(result.Rows))
	for _, row := range result.Rows {
		points := make(map[string]int, len(row.Points))
		for name, value := range row.Points {
			points[name] = value
		}
		rows = append(rows, seriesRowDTO{Day: row.Day, Points: points})
	}
	return seriesDTO{TournamentID: result.Tournament.ID, Rows: rows}
}

func overviewToDTO(ctx context.Context, v usecase.Overview) overviewDTO {
	ctx, span := startSpan(ctx, "httpapi.overviewToDTO")
	defer span.End()

	return overviewDTO{
		Tournament: tournamentToSummaryDTO(ctx, v.Tournament),
		CurrentDay: v.CurrentDay,
		Points:     pointsToDTO(v.Tournament.Points),
		Today:      rankingsToDTO(v.Tournament, v.Today),
		Standings:  standingListToDTO(v.Tournament, v.Standings),
		Scores:     scoresToDTO(ctx, v.Scores),
	}
}

func messageToDTO(_ context.Context, m chat.Message) messageDTO {
	return messageDTO{
		EntityID:  m.EntityID,
		Message:   m.Text,
		Timestamp: formatTimestamp(m.Timestamp),
	}
}

func snakeScoreToDTO(_ context.Context, s minigame.SnakeScore) snakeScoreDTO {
	return snakeScoreDTO{
		EntityID:  s.EntityID,
		Score:     s.Score,
		Timestamp: formatTimestamp(s.Timestamp),
	}
}
