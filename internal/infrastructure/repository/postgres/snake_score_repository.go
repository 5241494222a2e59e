package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/minigame"
	qb "github.com/riskibarqy/tournament-leaderboard/internal/platform/querybuilder"
)

const snakeScoreTable = "snake_scores"

type snakeScoreTableModel struct {
	TournamentID string    `db:"tournament_id"`
	EntityID     string    `db:"entity_id"`
	Score        int       `db:"score"`
	AchievedAt   time.Time `db:"achieved_at"`
}

type SnakeScoreRepository struct {
	db *sqlx.DB
}

func NewSnakeScoreRepository(db *sqlx.DB) *SnakeScoreRepository {
	return &SnakeScoreRepository{db: db}
}

func (r *SnakeScoreRepository) ListByTournament(ctx context.Context, tournamentID string) ([]minigame.SnakeScore, error) {
	query, args, err := qb.Select("tournament_id", "entity_id", "score", "achieved_at").
		From(snakeScoreTable).
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select snake scores query: %w", err)
	}

	var rows []snakeScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeError("select snake scores", err)
	}

	out := make([]minigame.SnakeScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, minigame.SnakeScore{
			TournamentID: row.TournamentID,
			EntityID:     row.EntityID,
			Score:        row.Score,
			Timestamp:    row.AchievedAt.UTC(),
		})
	}
	return out, nil
}

func (r *SnakeScoreRepository) Append(ctx context.Context, item minigame.SnakeScore) error {
	query, args, err := qb.InsertModel(snakeScoreTable, snakeScoreTableModel{
		TournamentID: item.TournamentID,
		EntityID:     item.EntityID,
		Score:        item.Score,
		AchievedAt:   item.Timestamp.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert snake score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return storeError("insert snake score", err)
	}
	return nil
}
