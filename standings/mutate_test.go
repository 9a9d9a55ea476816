package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/chessmate-central/models"
)

func table() *models.TournamentResult {
	return &models.TournamentResult{
		TournamentID: "t1",
		Version:      2,
		PlayerScores: models.PlayerScores{
			{PlayerID: "p1", PlayerName: "Alice", RoundScores: []*float64{nil, nil, nil}},
			{PlayerID: "p2", PlayerName: "Bob", RoundScores: []*float64{nil, nil, nil}},
		},
	}
}

func TestApplyRoundScore_SetsScoreAndTotal(t *testing.T) {
	in := table()

	out, changed, err := ApplyRoundScore(in, "p1", 0, Score(Win))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1.0, out.PlayerScores[0].TotalScore)
	assert.Equal(t, Score(1), out.PlayerScores[0].RoundScores[0])
	assert.Nil(t, in.PlayerScores[0].RoundScores[0], "input must not change")

	out, changed, err = ApplyRoundScore(out, "p1", 2, Score(Draw))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1.5, out.PlayerScores[0].TotalScore)
	assert.Equal(t, int64(2), out.Version)
}

func TestApplyRoundScore_ClearsScore(t *testing.T) {
	in, _, err := ApplyRoundScore(table(), "p2", 1, Score(Draw))
	require.NoError(t, err)

	out, changed, err := ApplyRoundScore(in, "p2", 1, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, out.PlayerScores[1].RoundScores[1])
	assert.Zero(t, out.PlayerScores[1].TotalScore)
}

func TestApplyRoundScore_Unchanged(t *testing.T) {
	in, _, err := ApplyRoundScore(table(), "p1", 0, Score(Loss))
	require.NoError(t, err)

	out, changed, err := ApplyRoundScore(in, "p1", 0, Score(Loss))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, in, out)

	_, changed, err = ApplyRoundScore(in, "p1", 1, nil)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestApplyRoundScore_Errors(t *testing.T) {
	tests := []struct {
		name    string
		result  *models.TournamentResult
		player  string
		round   int
		score   *float64
		wantErr error
	}{
		{"unknown player", table(), "p9", 0, Score(Win), ErrPlayerScoreNotFound},
		{"negative round", table(), "p1", -1, Score(Win), ErrRoundOutOfRange},
		{"round past end", table(), "p1", 3, Score(Win), ErrRoundOutOfRange},
		{"invalid score", table(), "p1", 0, Score(2), ErrInvalidScore},
		{"negative score", table(), "p1", 0, Score(-0.5), ErrInvalidScore},
		{
			"no rounds",
			&models.TournamentResult{TournamentID: "t1", PlayerScores: models.PlayerScores{{PlayerID: "p1", RoundScores: []*float64{}}}},
			"p1", 0, Score(Win), ErrRoundsNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.result.Clone()
			out, changed, err := ApplyRoundScore(tt.result, tt.player, tt.round, tt.score)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, out)
			assert.False(t, changed)
			assert.Equal(t, before, tt.result)
		})
	}
}

func TestNormalize(t *testing.T) {
	in := &models.TournamentResult{TournamentID: "t1", PlayerScores: models.PlayerScores{
		{PlayerID: "p1", RoundScores: []*float64{Score(1), Score(0.5)}, TotalScore: 42},
		{PlayerID: "p2"},
	}}

	out, err := Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, 1.5, out.PlayerScores[0].TotalScore)
	assert.NotNil(t, out.PlayerScores[1].RoundScores)
	assert.Equal(t, 42.0, in.PlayerScores[0].TotalScore)

	_, err = Normalize(&models.TournamentResult{PlayerScores: models.PlayerScores{{PlayerID: "p1"}, {PlayerID: "p1"}}})
	assert.ErrorIs(t, err, ErrDuplicatePlayerScore)

	_, err = Normalize(&models.TournamentResult{PlayerScores: models.PlayerScores{{PlayerID: ""}}})
	assert.ErrorIs(t, err, ErrMissingPlayerID)

	_, err = Normalize(&models.TournamentResult{PlayerScores: models.PlayerScores{{PlayerID: "p1", RoundScores: []*float64{Score(0.3)}}}})
	assert.ErrorIs(t, err, ErrInvalidScore)
}
