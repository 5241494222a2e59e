package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

// ChartRenderer draws the cumulative points evolution as an image.
type ChartRenderer interface {
	PointsChart(t tournament.Tournament, series []leaderboard.SeriesRow) ([]byte, error)
}

// WorkbookRenderer serializes a tournament report as a spreadsheet file.
type WorkbookRenderer interface {
	Workbook(t tournament.Tournament, report leaderboard.Report, records []score.Record) ([]byte, error)
}

type DayResult struct {
	Tournament tournament.Tournament
	Day        int
	Ranking    []leaderboard.DayRanking
}

type StandingsResult struct {
	Tournament tournament.Tournament
	UptoDay    int
	Standings  []leaderboard.Standing
}

type SeriesResult struct {
	Tournament tournament.Tournament
	Rows       []leaderboard.SeriesRow
}

// Overview is everything the leaderboard page shows at once.
type Overview struct {
	Tournament tournament.Tournament
	CurrentDay int
	Today      []leaderboard.DayRanking
	Standings  []leaderboard.Standing
	Scores     []score.Record
}

type LeaderboardService struct {
	tournamentRepo tournament.Repository
	scoreRepo      score.Repository
	chart          ChartRenderer
	workbook       WorkbookRenderer
	now            func() time.Time
}

func NewLeaderboardService(
	tournamentRepo tournament.Repository,
	scoreRepo score.Repository,
	chart ChartRenderer,
	workbook WorkbookRenderer,
) *LeaderboardService {
	return &LeaderboardService{
		tournamentRepo: tournamentRepo,
		scoreRepo:      scoreRepo,
		chart:          chart,
		workbook:       workbook,
		now:            time.Now,
	}
}

func (s *LeaderboardService) DayRanking(ctx context.Context, tournamentID string, day int) (DayResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.DayRanking")
	defer span.End()

	t, records, err := s.load(ctx, tournamentID)
	if err != nil {
		return DayResult{}, err
	}
	if !t.HasDay(day) {
		return DayResult{}, fmt.Errorf("%w: day must be between 1 and %d", ErrInvalidInput, t.TotalDays)
	}

	ranking, err := leaderboard.RankDay(records, t.Entities, day, t.Points)
	if err != nil {
		return DayResult{}, fmt.Errorf("rank day %d: %w", day, err)
	}
	return DayResult{Tournament: t, Day: day, Ranking: ranking}, nil
}

// Standings sums days 1..uptoDay. Zero means the whole tournament.
func (s *LeaderboardService) Standings(ctx context.Context, tournamentID string, uptoDay int) (StandingsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Standings")
	defer span.End()

	t, records, err := s.load(ctx, tournamentID)
	if err != nil {
		return StandingsResult{}, err
	}
	if uptoDay == 0 {
		uptoDay = t.TotalDays
	}
	if !t.HasDay(uptoDay) {
		return StandingsResult{}, fmt.Errorf("%w: up to day must be between 1 and %d", ErrInvalidInput, t.TotalDays)
	}

	standings, err := leaderboard.Totals(records, t.Entities, t.Points, uptoDay)
	if err != nil {
		return StandingsResult{}, fmt.Errorf("compute standings: %w", err)
	}
	return StandingsResult{Tournament: t, UptoDay: uptoDay, Standings: standings}, nil
}

func (s *LeaderboardService) TimeSeries(ctx context.Context, tournamentID string) (SeriesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.TimeSeries")
	defer span.End()

	t, records, err := s.load(ctx, tournamentID)
	if err != nil {
		return SeriesResult{}, err
	}

	rows, err := leaderboard.TimeSeries(records, t.Entities, t.Points, t.TotalDays)
	if err != nil {
		return SeriesResult{}, fmt.Errorf("compute time series: %w", err)
	}
	return SeriesResult{Tournament: t, Rows: rows}, nil
}

// Overview resolves the current day from today (the service clock when nil)
// and returns that day's ranking next to the overall standings.
func (s *LeaderboardService) Overview(ctx context.Context, tournamentID string, today *time.Time) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Overview")
	defer span.End()

	t, records, err := s.load(ctx, tournamentID)
	if err != nil {
		return Overview{}, err
	}

	at := s.now()
	if today != nil {
		at = *today
	}
	currentDay := t.CurrentDay(at)

	ranking, err := leaderboard.RankDay(records, t.Entities, currentDay, t.Points)
	if err != nil {
		return Overview{}, fmt.Errorf("rank day %d: %w", currentDay, err)
	}
	standings, err := leaderboard.Totals(records, t.Entities, t.Points, t.TotalDays)
	if err != nil {
		return Overview{}, fmt.Errorf("compute standings: %w", err)
	}

	return Overview{
		Tournament: t,
		CurrentDay: currentDay,
		Today:      ranking,
		Standings:  standings,
		Scores:     records,
	}, nil
}

func (s *LeaderboardService) RenderChart(ctx context.Context, tournamentID string) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.RenderChart")
	defer span.End()

	if s.chart == nil {
		return nil, fmt.Errorf("%w: chart renderer is not configured", ErrDependencyUnavailable)
	}

	series, err := s.TimeSeries(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	out, err := s.chart.PointsChart(series.Tournament, series.Rows)
	if err != nil {
		return nil, fmt.Errorf("render points chart: %w", err)
	}
	return out, nil
}

func (s *LeaderboardService) ExportWorkbook(ctx context.Context, tournamentID string) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.ExportWorkbook")
	defer span.End()

	if s.workbook == nil {
		return nil, fmt.Errorf("%w: workbook renderer is not configured", ErrDependencyUnavailable)
	}

	t, records, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	report, err := leaderboard.BuildReport(records, t)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	out, err := s.workbook.Workbook(t, report, records)
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return out, nil
}

func (s *LeaderboardService) load(ctx context.Context, tournamentID string) (tournament.Tournament, []score.Record, error) {
	t, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return tournament.Tournament{}, nil, err
	}
	records, err := loadSnapshot(ctx, s.scoreRepo, t)
	if err != nil {
		return tournament.Tournament{}, nil, err
	}
	return t, records, nil
}
