package sheetstore

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
)

type ScoreRepository struct {
	client *Client
}

func NewScoreRepository(client *Client) *ScoreRepository {
	return &ScoreRepository{client: client}
}

// ListByTournament returns the rows of the tournament as stored; duplicate
// (entity, day) rows are left for the caller to collapse.
func (r *ScoreRepository) ListByTournament(ctx context.Context, tournamentID string) ([]score.Record, error) {
	resp, err := r.client.get(ctx, "get", tournamentID)
	if err != nil {
		return nil, err
	}

	out := make([]score.Record, 0, len(resp.Scores))
	for i, row := range resp.Scores {
		if !belongsTo(row.TournamentID, tournamentID) {
			continue
		}
		entityID := row.entityID()
		if entityID == "" {
			continue
		}
		if !row.Day.Set || !row.GeoScore.Set {
			return nil, fmt.Errorf("score row %d of tournament %s has no day or geo score", i+1, tournamentID)
		}
		out = append(out, score.Record{
			TournamentID: tournamentID,
			EntityID:     entityID,
			Day:          row.Day.Value,
			GeoScore:     row.GeoScore.Value,
			Timestamp:    parseTimestamp(row.Timestamp),
		})
	}
	return out, nil
}

func (r *ScoreRepository) Upsert(ctx context.Context, record score.Record) error {
	_, err := r.client.post(ctx, "add", record.TournamentID, map[string]any{
		"entityId":      record.EntityID,
		"participantId": record.EntityID,
		"day":           record.Day,
		"geoScore":      record.GeoScore,
		"timestamp":     formatTimestamp(record.Timestamp),
	})
	return err
}

func (r *ScoreRepository) Delete(ctx context.Context, tournamentID, entityID string, day int) error {
	_, err := r.client.post(ctx, "delete", tournamentID, map[string]any{
		"entityId":      entityID,
		"participantId": entityID,
		"day":           day,
	})
	return err
}
