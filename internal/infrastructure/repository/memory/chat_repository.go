package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/chat"
)

type ChatRepository struct {
	mu    sync.RWMutex
	items map[string][]chat.Message
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{items: make(map[string][]chat.Message)}
}

func (r *ChatRepository) ListByTournament(_ context.Context, tournamentID string) ([]chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]chat.Message(nil), r.items[tournamentID]...), nil
}

func (r *ChatRepository) Append(_ context.Context, message chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[message.TournamentID] = append(r.items[message.TournamentID], message)
	return nil
}
