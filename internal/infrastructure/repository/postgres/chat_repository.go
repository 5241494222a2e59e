package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/chat"
	qb "github.com/riskibarqy/tournament-leaderboard/internal/platform/querybuilder"
)

const chatTable = "chat_messages"

type chatMessageTableModel struct {
	TournamentID string    `db:"tournament_id"`
	EntityID     string    `db:"entity_id"`
	Body         string    `db:"body"`
	SentAt       time.Time `db:"sent_at"`
}

type ChatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) ListByTournament(ctx context.Context, tournamentID string) ([]chat.Message, error) {
	query, args, err := qb.Select("tournament_id", "entity_id", "body", "sent_at").
		From(chatTable).
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select chat messages query: %w", err)
	}

	var rows []chatMessageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeError("select chat messages", err)
	}

	out := make([]chat.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, chat.Message{
			TournamentID: row.TournamentID,
			EntityID:     row.EntityID,
			Text:         row.Body,
			Timestamp:    row.SentAt.UTC(),
		})
	}
	return out, nil
}

func (r *ChatRepository) Append(ctx context.Context, message chat.Message) error {
	query, args, err := qb.InsertModel(chatTable, chatMessageTableModel{
		TournamentID: message.TournamentID,
		EntityID:     message.EntityID,
		Body:         message.Text,
		SentAt:       message.Timestamp.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert chat message query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return storeError("insert chat message", err)
	}
	return nil
}
