package workbook

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/chat"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/minigame"
	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
	"github.com/xuri/excelize/v2"
)

// Column positions of the Scores sheet.
const (
	scoreColEntity = iota
	scoreColDay
	scoreColGeoScore
	scoreColTimestamp
	scoreColTournament
)

type ScoreRepository struct {
	store *Store
}

func NewScoreRepository(store *Store) *ScoreRepository {
	return &ScoreRepository{store: store}
}

func (r *ScoreRepository) ListByTournament(_ context.Context, tournamentID string) ([]score.Record, error) {
	var out []score.Record
	err := r.store.read(func(f *excelize.File) error {
		rows, err := dataRows(f, SheetScores)
		if err != nil {
			return err
		}
		out = make([]score.Record, 0, len(rows))
		for _, row := range rows {
			if row.cell(scoreColEntity) == "" || !row.belongsTo(scoreColTournament, tournamentID) {
				continue
			}
			record, err := scoreFromRow(row, tournamentID)
			if err != nil {
				return err
			}
			out = append(out, record)
		}
		return nil
	})
	if err != nil {
		return nil, crerr.Wrap(err, "list workbook scores")
	}
	return out, nil
}

func (r *ScoreRepository) Upsert(_ context.Context, record score.Record) error {
	err := r.store.update(func(f *excelize.File) error {
		rows, err := dataRows(f, SheetScores)
		if err != nil {
			return err
		}

		target := len(rows) + 2
		if existing, ok := findScoreRow(rows, record.TournamentID, record.EntityID, record.Day); ok {
			target = existing.number
		}
		return writeRow(f, SheetScores, target, []any{
			record.EntityID,
			record.Day,
			record.GeoScore,
			formatTimestamp(record.Timestamp),
			record.TournamentID,
		})
	})
	if err != nil {
		return crerr.Wrap(err, "upsert workbook score")
	}
	return nil
}

func (r *ScoreRepository) Delete(_ context.Context, tournamentID, entityID string, day int) error {
	err := r.store.update(func(f *excelize.File) error {
		rows, err := dataRows(f, SheetScores)
		if err != nil {
			return err
		}
		existing, ok := findScoreRow(rows, tournamentID, entityID, day)
		if !ok {
			return nil
		}
		return f.RemoveRow(SheetScores, existing.number)
	})
	if err != nil {
		return crerr.Wrap(err, "delete workbook score")
	}
	return nil
}

func scoreFromRow(row sheetRow, tournamentID string) (score.Record, error) {
	day, err := row.int(scoreColDay)
	if err != nil {
		return score.Record{}, err
	}
	geoScore, err := row.int(scoreColGeoScore)
	if err != nil {
		return score.Record{}, err
	}
	return score.Record{
		TournamentID: tournamentID,
		EntityID:     row.cell(scoreColEntity),
		Day:          day,
		GeoScore:     geoScore,
		Timestamp:    row.time(scoreColTimestamp),
	}, nil
}

func findScoreRow(rows []sheetRow, tournamentID, entityID string, day int) (sheetRow, bool) {
	for _, row := range rows {
		if row.cell(scoreColEntity) != entityID || !row.belongsTo(scoreColTournament, tournamentID) {
			continue
		}
		if d, err := row.int(scoreColDay); err == nil && d == day {
			return row, true
		}
	}
	return sheetRow{}, false
}

type ChatRepository struct {
	store *Store
}

func NewChatRepository(store *Store) *ChatRepository {
	return &ChatRepository{store: store}
}

func (r *ChatRepository) ListByTournament(_ context.Context, tournamentID string) ([]chat.Message, error) {
	var out []chat.Message
	err := r.store.read(func(f *excelize.File) error {
		rows, err := dataRows(f, SheetMessages)
		if err != nil {
			return err
		}
		out = make([]chat.Message, 0, len(rows))
		for _, row := range rows {
			if row.cell(0) == "" || !row.belongsTo(3, tournamentID) {
				continue
			}
			out = append(out, chat.Message{
				TournamentID: tournamentID,
				EntityID:     row.cell(0),
				Text:         row.cell(1),
				Timestamp:    row.time(2),
			})
		}
		return nil
	})
	if err != nil {
		return nil, crerr.Wrap(err, "list workbook messages")
	}
	return out, nil
}

func (r *ChatRepository) Append(_ context.Context, message chat.Message) error {
	err := r.store.update(func(f *excelize.File) error {
		rows, err := dataRows(f, SheetMessages)
		if err != nil {
			return err
		}
		return writeRow(f, SheetMessages, len(rows)+2, []any{
			message.EntityID,
			message.Text,
			formatTimestamp(message.Timestamp),
			message.TournamentID,
		})
	})
	if err != nil {
		return crerr.Wrap(err, "append workbook message")
	}
	return nil
}

type SnakeScoreRepository struct {
	store *Store
}

func NewSnakeScoreRepository(store *Store) *SnakeScoreRepository {
	return &SnakeScoreRepository{store: store}
}

func (r *SnakeScoreRepository) ListByTournament(_ context.Context, tournamentID string) ([]minigame.SnakeScore, error) {
	var out []minigame.SnakeScore
	err := r.store.read(func(f *excelize.File) error {
		rows, err := dataRows(f, SheetSnakeScores)
		if err != nil {
			return err
		}
		out = make([]minigame.SnakeScore, 0, len(rows))
		for _, row := range rows {
			if row.cell(0) == "" || !row.belongsTo(3, tournamentID) {
				continue
			}
			value, err := row.int(1)
			if err != nil {
				return err
			}
			out = append(out, minigame.SnakeScore{
				TournamentID: tournamentID,
				EntityID:     row.cell(0),
				Score:        value,
				Timestamp:    row.time(2),
			})
		}
		return nil
	})
	if err != nil {
		return nil, crerr.Wrap(err, "list workbook snake scores")
	}
	return out, nil
}

func (r *SnakeScoreRepository) Append(_ context.Context, item minigame.SnakeScore) error {
	err := r.store.update(func(f *excelize.File) error {
		rows, err := dataRows(f, SheetSnakeScores)
		if err != nil {
			return err
		}
		return writeRow(f, SheetSnakeScores, len(rows)+2, []any{
			item.EntityID,
			item.Score,
			formatTimestamp(item.Timestamp),
			item.TournamentID,
		})
	})
	if err != nil {
		return crerr.Wrap(err, "append workbook snake score")
	}
	return nil
}
