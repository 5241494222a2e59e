package sheetstore

import (
	"context"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/chat"
)

type ChatRepository struct {
	client *Client
}

func NewChatRepository(client *Client) *ChatRepository {
	return &ChatRepository{client: client}
}

func (r *ChatRepository) ListByTournament(ctx context.Context, tournamentID string) ([]chat.Message, error) {
	resp, err := r.client.get(ctx, "getMessages", tournamentID)
	if err != nil {
		return nil, err
	}

	out := make([]chat.Message, 0, len(resp.Messages))
	for _, row := range resp.Messages {
		if !belongsTo(row.TournamentID, tournamentID) || row.entityID() == "" {
			continue
		}
		out = append(out, chat.Message{
			TournamentID: tournamentID,
			EntityID:     row.entityID(),
			Text:         row.Message,
			Timestamp:    parseTimestamp(row.Timestamp),
		})
	}
	return out, nil
}

func (r *ChatRepository) Append(ctx context.Context, message chat.Message) error {
	_, err := r.client.post(ctx, "addMessage", message.TournamentID, map[string]any{
		"entityId":      message.EntityID,
		"participantId": message.EntityID,
		"message":       message.Text,
		"timestamp":     formatTimestamp(message.Timestamp),
	})
	return err
}
