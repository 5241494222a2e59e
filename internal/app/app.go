package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/tournament-leaderboard/internal/config"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
	"github.com/riskibarqy/tournament-leaderboard/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-leaderboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-leaderboard/internal/infrastructure/workbook"
	"github.com/riskibarqy/tournament-leaderboard/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/tournament-leaderboard/internal/platform/cache"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/render"
	"github.com/riskibarqy/tournament-leaderboard/internal/usecase"
)

// Services is the usecase layer wired against the configured store.
type Services struct {
	Tournaments *usecase.TournamentService
	Scores      *usecase.ScoreService
	Leaderboard *usecase.LeaderboardService
	Chat        *usecase.ChatService
	MiniGame    *usecase.MiniGameService

	// Refresher is nil when the snapshot cache is disabled.
	Refresher *usecase.Refresher

	stores stores
}

// Close releases store connections.
func (s *Services) Close() error {
	if s == nil {
		return nil
	}
	return s.stores.close()
}

// BuildServices loads the tournament catalog, opens the score store and
// wires the usecases on top of it.
func BuildServices(cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	tournamentRepo := memory.NewTournamentRepository(catalog.Tournaments)

	st, err := openStores(cfg, catalog, logger)
	if err != nil {
		return nil, err
	}

	svc := &Services{stores: st}

	var scoreRepo score.Repository = st.scores
	var invalidator usecase.SnapshotInvalidator
	if cfg.CacheEnabled {
		cached := cache.NewScoreRepository(st.scores, basecache.NewStore[[]score.Record](cfg.CacheTTL))
		scoreRepo = cached
		invalidator = cached
		svc.Refresher = usecase.NewRefresher(
			tournamentRepo,
			cached,
			cfg.RefreshInterval,
			cfg.RefreshWorkers,
			logger.Named("refresher"),
		)
	}

	svc.Tournaments = usecase.NewTournamentService(tournamentRepo)
	svc.Scores = usecase.NewScoreService(tournamentRepo, scoreRepo, invalidator, logger.Named("scores"))
	svc.Leaderboard = usecase.NewLeaderboardService(tournamentRepo, scoreRepo, render.NewChart(), workbook.NewExporter())
	svc.Chat = usecase.NewChatService(tournamentRepo, st.chat)
	svc.MiniGame = usecase.NewMiniGameService(tournamentRepo, st.snake)

	logger.Info("services ready",
		"score_store", cfg.StoreDriver,
		"tournaments", len(catalog.Tournaments),
		"active_tournaments", countActive(catalog.Tournaments),
		"cache_enabled", cfg.CacheEnabled,
	)
	return svc, nil
}

// App is the HTTP API process.
type App struct {
	Server   *http.Server
	Services *Services
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	svc, err := BuildServices(cfg, logger)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(
		svc.Tournaments,
		svc.Scores,
		svc.Leaderboard,
		svc.Chat,
		svc.MiniGame,
		logger.Named("httpapi"),
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		WriteLimiter:       httpapi.NewWriteLimiter(cfg.WriteRateLimitPerSec, cfg.WriteRateLimitBurst),
	})

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Services: svc,
	}, nil
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.Services.Close()
}

func countActive(items []tournament.Tournament) int {
	count := 0
	for _, item := range items {
		if !item.Archived {
			count++
		}
	}
	return count
}
