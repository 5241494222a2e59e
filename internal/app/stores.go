package app

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-leaderboard/internal/config"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/chat"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/minigame"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/riskibarqy/tournament-leaderboard/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-leaderboard/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-leaderboard/internal/infrastructure/sheetstore"
	"github.com/riskibarqy/tournament-leaderboard/internal/infrastructure/tournamentfile"
	"github.com/riskibarqy/tournament-leaderboard/internal/infrastructure/workbook"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/logging"
	"github.com/riskibarqy/tournament-leaderboard/internal/platform/resilience"
)

type stores struct {
	scores score.Repository
	chat   chat.Repository
	snake  minigame.Repository
	db     *sqlx.DB
}

func (s stores) close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// loadCatalog reads TOURNAMENTS_FILE, falling back to the built-in seed.
func loadCatalog(cfg config.Config) (tournamentfile.Catalog, error) {
	if cfg.TournamentsFile == "" {
		return tournamentfile.Catalog{Tournaments: memory.SeedTournaments()}, nil
	}
	catalog, err := tournamentfile.Load(cfg.TournamentsFile)
	if err != nil {
		return tournamentfile.Catalog{}, fmt.Errorf("load tournaments file: %w", err)
	}
	return catalog, nil
}

// storeEndpoint prefers SCORE_STORE_ENDPOINT over the catalog's storeEndpoint.
func storeEndpoint(cfg config.Config, catalog tournamentfile.Catalog) string {
	if endpoint := strings.TrimSpace(cfg.StoreEndpoint); endpoint != "" {
		return endpoint
	}
	return strings.TrimSpace(catalog.StoreEndpoint)
}

func openStores(cfg config.Config, catalog tournamentfile.Catalog, logger *logging.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSheet:
		endpoint := storeEndpoint(cfg, catalog)
		if endpoint == "" {
			return stores{}, fmt.Errorf("score store endpoint is required when SCORE_STORE_DRIVER=%s", config.StoreDriverSheet)
		}
		client, err := sheetstore.NewClient(sheetstore.Config{
			Endpoint: endpoint,
			Timeout:  cfg.StoreTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.StoreCircuitEnabled,
				FailureThreshold: cfg.StoreCircuitFailureCount,
				OpenTimeout:      cfg.StoreCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.StoreCircuitHalfOpenMaxReq,
			},
		}, logger.Named("sheetstore"))
		if err != nil {
			return stores{}, err
		}
		return stores{
			scores: sheetstore.NewScoreRepository(client),
			chat:   sheetstore.NewChatRepository(client),
			snake:  sheetstore.NewSnakeScoreRepository(client),
		}, nil
	case config.StoreDriverWorkbook:
		book, err := workbook.Open(cfg.WorkbookPath)
		if err != nil {
			return stores{}, fmt.Errorf("open workbook store: %w", err)
		}
		return stores{
			scores: workbook.NewScoreRepository(book),
			chat:   workbook.NewChatRepository(book),
			snake:  workbook.NewSnakeScoreRepository(book),
		}, nil
	case config.StoreDriverPostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return stores{}, err
		}
		return stores{
			scores: postgres.NewScoreRepository(db),
			chat:   postgres.NewChatRepository(db),
			snake:  postgres.NewSnakeScoreRepository(db),
			db:     db,
		}, nil
	case config.StoreDriverMemory, "":
		return stores{
			scores: memory.NewScoreRepository(),
			chat:   memory.NewChatRepository(),
			snake:  memory.NewSnakeScoreRepository(),
		}, nil
	default:
		return stores{}, fmt.Errorf("unsupported score store driver %q", cfg.StoreDriver)
	}
}
