package postgres

import (
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/domain/score"
)

const scoreTable = "tournament_scores"

type scoreTableModel struct {
	TournamentID string    `db:"tournament_id"`
	EntityID     string    `db:"entity_id"`
	Day          int       `db:"day"`
	GeoScore     int       `db:"geo_score"`
	RecordedAt   time.Time `db:"recorded_at"`
}

func (m scoreTableModel) toDomain() score.Record {
	return score.Record{
		TournamentID: m.TournamentID,
		EntityID:     m.EntityID,
		Day:          m.Day,
		GeoScore:     m.GeoScore,
		Timestamp:    m.RecordedAt.UTC(),
	}
}

func scoreModelFromDomain(r score.Record) scoreTableModel {
	return scoreTableModel{
		TournamentID: r.TournamentID,
		EntityID:     r.EntityID,
		Day:          r.Day,
		GeoScore:     r.GeoScore,
		RecordedAt:   r.Timestamp.UTC(),
	}
}
