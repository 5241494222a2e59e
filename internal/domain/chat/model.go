package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxMessageLength = 500

// Message is one line of a tournament's chat feed.
type Message struct {
	TournamentID string
	EntityID     string
	Text         string
	Timestamp    time.Time
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.TournamentID) == "" {
		return fmt.Errorf("tournament id is required")
	}
	if strings.TrimSpace(m.EntityID) == "" {
		return fmt.Errorf("entity id is required")
	}
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(m.Text) > MaxMessageLength {
		return fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}
	return nil
}
