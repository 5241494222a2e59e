package sheetstore

import (
	"context"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/minigame"
)

type SnakeScoreRepository struct {
	client *Client
}

func NewSnakeScoreRepository(client *Client) *SnakeScoreRepository {
	return &SnakeScoreRepository{client: client}
}

func (r *SnakeScoreRepository) ListByTournament(ctx context.Context, tournamentID string) ([]minigame.SnakeScore, error) {
	resp, err := r.client.get(ctx, "getSnakeScores", tournamentID)
	if err != nil {
		return nil, err
	}

	out := make([]minigame.SnakeScore, 0, len(resp.SnakeScores))
	for _, row := range resp.SnakeScores {
		if !belongsTo(row.TournamentID, tournamentID) || row.entityID() == "" || !row.Score.Set {
			continue
		}
		out = append(out, minigame.SnakeScore{
			TournamentID: tournamentID,
			EntityID:     row.entityID(),
			Score:        row.Score.Value,
			Timestamp:    parseTimestamp(row.Timestamp),
		})
	}
	return out, nil
}

func (r *SnakeScoreRepository) Append(ctx context.Context, item minigame.SnakeScore) error {
	_, err := r.client.post(ctx, "addSnakeScore", item.TournamentID, map[string]any{
		"entityId":      item.EntityID,
		"participantId": item.EntityID,
		"score":         item.Score,
		"timestamp":     formatTimestamp(item.Timestamp),
	})
	return err
}
