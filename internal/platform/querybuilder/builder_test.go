package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("entity_id", "geo_score").
		From("tournament_scores").
		Where(Eq("tournament_id", "cred"), IsNull("deleted_at")).
		OrderBy("day", "id").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT entity_id, geo_score FROM tournament_scores WHERE tournament_id = $1 AND deleted_at IS NULL ORDER BY day, id", query)
	assert.Equal(t, []any{"cred"}, args)
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	_, _, err := Select("id").ToSQL()
	require.Error(t, err)
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("chat_messages").
		Columns("tournament_id", "body").
		Values("cred", "gg").
		Suffix("RETURNING id").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO chat_messages (tournament_id, body) VALUES ($1, $2) RETURNING id", query)
	assert.Equal(t, []any{"cred", "gg"}, args)
}

func TestInsertBuilderValueCountMismatch(t *testing.T) {
	_, _, err := InsertInto("chat_messages").Columns("a", "b").Values(1).ToSQL()
	require.Error(t, err)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("tournament_scores").
		Set("geo_score", 100).
		SetExpr("updated_at", "NOW() + (? * INTERVAL '1 second')", 5).
		Where(Eq("entity_id", "1"), IsNull("deleted_at")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE tournament_scores SET geo_score = $1, updated_at = NOW() + ($2 * INTERVAL '1 second') WHERE entity_id = $3 AND deleted_at IS NULL", query)
	assert.Equal(t, []any{100, 5, "1"}, args)
}

func TestInsertModel(t *testing.T) {
	type row struct {
		TournamentID string `db:"tournament_id"`
		Score        int    `db:"score"`
		Ignored      string `db:"-"`
		Untagged     string
	}

	query, args, err := InsertModel("snake_scores", row{TournamentID: "cred", Score: 42, Ignored: "x", Untagged: "y"}, "")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO snake_scores (tournament_id, score) VALUES ($1, $2)", query)
	assert.Equal(t, []any{"cred", 42}, args)

	_, _, err = InsertModel("snake_scores", 42, "")
	require.Error(t, err)
}
