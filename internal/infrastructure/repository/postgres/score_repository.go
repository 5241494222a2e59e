package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	qb "github.com/riskibarqy/tournament-leaderboard/internal/platform/querybuilder"
)

const upsertScoreSuffix = `ON CONFLICT (tournament_id, entity_id, day) WHERE deleted_at IS NULL
DO UPDATE SET
    geo_score = EXCLUDED.geo_score,
    recorded_at = EXCLUDED.recorded_at,
    updated_at = NOW()`

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) ListByTournament(ctx context.Context, tournamentID string) ([]score.Record, error) {
	query, args, err := listScoresQuery(tournamentID)
	if err != nil {
		return nil, fmt.Errorf("build select scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeError("select scores", err)
	}

	out := make([]score.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ScoreRepository) Upsert(ctx context.Context, record score.Record) error {
	query, args, err := qb.InsertModel(scoreTable, scoreModelFromDomain(record), upsertScoreSuffix)
	if err != nil {
		return fmt.Errorf("build upsert score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return storeError("upsert score", err)
	}
	return nil
}

// Delete soft-deletes the record. Deleting a missing record is not an error.
func (r *ScoreRepository) Delete(ctx context.Context, tournamentID, entityID string, day int) error {
	query, args, err := deleteScoreQuery(tournamentID, entityID, day)
	if err != nil {
		return fmt.Errorf("build delete score query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return storeError("delete score", err)
	}
	return nil
}

func listScoresQuery(tournamentID string) (string, []any, error) {
	return qb.Select("tournament_id", "entity_id", "day", "geo_score", "recorded_at").
		From(scoreTable).
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("day", "id").
		ToSQL()
}

func deleteScoreQuery(tournamentID, entityID string, day int) (string, []any, error) {
	return qb.Update(scoreTable).
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("entity_id", entityID),
			qb.Eq("day", day),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
}
