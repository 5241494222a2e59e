package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/config"
	"github.com/riskibarqy/tournament-leaderboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/tournament-leaderboard/internal/usecase"
)

func baseConfig() config.Config {
	return config.Config{
		ServiceName:     "tournament-leaderboard-api",
		HTTPAddr:        ":0",
		StoreDriver:     config.StoreDriverMemory,
		CacheEnabled:    true,
		CacheTTL:        time.Minute,
		RefreshInterval: time.Minute,
		RefreshWorkers:  2,
	}
}

func TestNew_MemoryStore(t *testing.T) {
	a, err := New(baseConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer func() { _ = a.Close() }()

	if a.Server.Handler == nil {
		t.Fatalf("expected router to be set")
	}
	if a.Services.Refresher == nil {
		t.Fatalf("expected refresher when cache is enabled")
	}

	ctx := context.Background()
	if _, err := a.Services.Scores.Submit(ctx, usecase.SubmitScoreInput{
		TournamentID: memory.TournamentIDCred,
		EntityID:     "1",
		Day:          1,
		RawScore:     "12000",
	}); err != nil {
		t.Fatalf("submit score: %v", err)
	}

	summary, err := a.Services.Refresher.RefreshAll(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("expected one refreshed tournament, got %+v", summary)
	}

	day, err := a.Services.Leaderboard.DayRanking(ctx, memory.TournamentIDCred, 1)
	if err != nil {
		t.Fatalf("day ranking: %v", err)
	}
	if len(day.Ranking) != 1 || day.Ranking[0].EntityID != "1" {
		t.Fatalf("unexpected ranking %+v", day.Ranking)
	}
}

func TestNew_CacheDisabledHasNoRefresher(t *testing.T) {
	cfg := baseConfig()
	cfg.CacheEnabled = false

	svc, err := BuildServices(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build services: %v", err)
	}
	if svc.Refresher != nil {
		t.Fatalf("expected no refresher without cache")
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := baseConfig()
	cfg.HTTPAddr = ""
	if _, err := New(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestBuildServices_SheetRequiresEndpoint(t *testing.T) {
	cfg := baseConfig()
	cfg.StoreDriver = config.StoreDriverSheet
	if _, err := BuildServices(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error without store endpoint")
	}
}

func TestBuildServices_SheetEndpointFromCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournaments.yaml")
	body := `storeEndpoint: https://script.example.com/exec
tournaments:
  - id: demo
    name: Demo
    startDate: 2025-03-03
    totalDays: 5
    points: {1: 10, 2: 7, 3: 5}
    entities:
      - id: a
        name: Alpha
      - id: b
        name: Beta
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	cfg := baseConfig()
	cfg.StoreDriver = config.StoreDriverSheet
	cfg.TournamentsFile = path
	cfg.StoreTimeout = time.Second

	svc, err := BuildServices(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build services: %v", err)
	}
	items, err := svc.Tournaments.List(context.Background())
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(items) != 1 || items[0].ID != "demo" {
		t.Fatalf("unexpected tournaments %+v", items)
	}
}

func TestBuildServices_WorkbookStore(t *testing.T) {
	cfg := baseConfig()
	cfg.StoreDriver = config.StoreDriverWorkbook
	cfg.WorkbookPath = filepath.Join(t.TempDir(), "scores.xlsx")
	cfg.CacheEnabled = false

	svc, err := BuildServices(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build services: %v", err)
	}
	if _, err := os.Stat(cfg.WorkbookPath); err != nil {
		t.Fatalf("expected workbook to be created: %v", err)
	}

	ctx := context.Background()
	if _, err := svc.Scores.Submit(ctx, usecase.SubmitScoreInput{
		TournamentID: memory.TournamentIDCred,
		EntityID:     "3",
		Day:          2,
		RawScore:     "9000",
	}); err != nil {
		t.Fatalf("submit score: %v", err)
	}
	items, err := svc.Scores.List(ctx, memory.TournamentIDCred)
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(items) != 1 || items[0].GeoScore != 9000 {
		t.Fatalf("unexpected scores %+v", items)
	}
}

func TestBuildServices_UnknownDriver(t *testing.T) {
	cfg := baseConfig()
	cfg.StoreDriver = "redis"
	if _, err := BuildServices(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
