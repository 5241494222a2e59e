package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/chat"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/tournament"
)

type ChatService struct {
	tournamentRepo tournament.Repository
	chatRepo       chat.Repository
	now            func() time.Time
}

func NewChatService(tournamentRepo tournament.Repository, chatRepo chat.Repository) *ChatService {
	return &ChatService{
		tournamentRepo: tournamentRepo,
		chatRepo:       chatRepo,
		now:            time.Now,
	}
}

func (s *ChatService) List(ctx context.Context, tournamentID string) ([]chat.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.List")
	defer span.End()

	t, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *ChatService) Post(ctx context.Context, tournamentID, entityID, text string) (chat.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.Post")
	defer span.End()

	t, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return chat.Message{}, err
	}
	entityID, err = requireEntity(t, entityID)
	if err != nil {
		return chat.Message{}, err
	}

	msg := chat.Message{
		TournamentID: t.ID,
		EntityID:     entityID,
		Text:         strings.TrimSpace(text),
		Timestamp:    s.now().UTC(),
	}
	if err := msg.Validate(); err != nil {
		return chat.Message{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.chatRepo.Append(ctx, msg); err != nil {
		return chat.Message{}, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}
