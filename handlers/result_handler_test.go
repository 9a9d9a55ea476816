package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dosada05/chessmate-central/models"
	"github.com/Dosada05/chessmate-central/services"
	"github.com/Dosada05/chessmate-central/standings"
)

func sampleResult() *models.TournamentResult {
	return &models.TournamentResult{
		TournamentID: "t1",
		Version:      3,
		PlayerScores: models.PlayerScores{
			{PlayerID: "p1", PlayerName: "Anna", RoundScores: []*float64{score(1), nil}, TotalScore: 1},
		},
	}
}

func TestResultHandler_Get(t *testing.T) {
	h := NewResultHandler(&fakeResultService{result: sampleResult()})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/results/t1", nil), map[string]string{"tournamentId": "t1"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.TournamentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "t1", got.TournamentID)
	assert.EqualValues(t, 3, got.Version)
	require.Len(t, got.PlayerScores, 1)
	assert.Nil(t, got.PlayerScores[0].RoundScores[1])
}

func TestResultHandler_StoreUnavailable(t *testing.T) {
	h := NewResultHandler(&fakeResultService{err: fmt.Errorf("load: %w", services.ErrStoreUnavailable)})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/results/t1", nil), map[string]string{"tournamentId": "t1"})
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, retryAfterSeconds, rec.Header().Get("Retry-After"))
}

func TestResultHandler_Save(t *testing.T) {
	svc := &fakeResultService{result: sampleResult()}
	h := NewResultHandler(svc)

	body := `{"tournamentId":"t1","playerScores":[{"playerId":"p1","playerName":"Anna","roundScores":[1,null]}],"version":2}`
	req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/results/t1", strings.NewReader(body)), map[string]string{"tournamentId": "t1"})
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.saved)
	assert.EqualValues(t, 2, svc.saved.Version)
	assert.Len(t, svc.saved.PlayerScores[0].RoundScores, 2)
}

func TestResultHandler_SaveConflict(t *testing.T) {
	h := NewResultHandler(&fakeResultService{err: services.ErrResultConflict})

	req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/results/t1", strings.NewReader(`{"tournamentId":"t1","playerScores":[]}`)), map[string]string{"tournamentId": "t1"})
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResultHandler_SetRoundScore(t *testing.T) {
	params := map[string]string{"tournamentId": "t1", "playerId": "p1", "round": "1"}

	tests := []struct {
		name      string
		round     string
		body      string
		svcErr    error
		wantCode  int
		wantScore *float64
	}{
		{name: "win", round: "1", body: `{"score":1}`, wantCode: http.StatusOK, wantScore: score(1)},
		{name: "draw", round: "0", body: `{"score":0.5}`, wantCode: http.StatusOK, wantScore: score(0.5)},
		{name: "clear with null", round: "1", body: `{"score":null}`, wantCode: http.StatusOK},
		{name: "missing score", round: "1", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "string score", round: "1", body: `{"score":"1"}`, wantCode: http.StatusBadRequest},
		{name: "bad round", round: "x", body: `{"score":1}`, wantCode: http.StatusBadRequest},
		{name: "out of range", round: "9", body: `{"score":1}`, svcErr: standings.ErrRoundOutOfRange, wantCode: http.StatusBadRequest},
		{name: "unknown player", round: "1", body: `{"score":1}`, svcErr: standings.ErrPlayerScoreNotFound, wantCode: http.StatusNotFound},
		{name: "lost race", round: "1", body: `{"score":1}`, svcErr: services.ErrResultConflict, wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeResultService{result: sampleResult(), err: tt.svcErr}
			h := NewResultHandler(svc)

			p := map[string]string{}
			for k, v := range params {
				p[k] = v
			}
			p["round"] = tt.round

			req := withURLParams(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tt.body)), p)
			rec := httptest.NewRecorder()
			h.SetRoundScore(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.svcErr == nil && tt.wantCode == http.StatusOK {
				assert.Equal(t, "p1", svc.playerID)
				assert.Equal(t, tt.wantScore, svc.score)
			}
		})
	}
}

func TestResultHandler_StandingsTieBreak(t *testing.T) {
	rows := []models.Standing{{Rank: 1, PlayerScore: models.PlayerScore{PlayerID: "p1", PlayerName: "Anna", TotalScore: 2}}}

	svc := &fakeResultService{rows: rows}
	h := NewResultHandler(svc)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/?tiebreak=Rating", nil), map[string]string{"tournamentId": "t1"})
	rec := httptest.NewRecorder()
	h.Standings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, standings.TieBreakRating, svc.tieBreak)
	assert.Contains(t, rec.Body.String(), `"rank": 1`)

	req = withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"tournamentId": "t1"})
	rec = httptest.NewRecorder()
	h.Standings(rec, req)
	assert.Equal(t, standings.TieBreak(""), svc.tieBreak)

	req = withURLParams(httptest.NewRequest(http.MethodGet, "/?tiebreak=coin", nil), map[string]string{"tournamentId": "t1"})
	rec = httptest.NewRecorder()
	h.Standings(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResultHandler_ExportStandings(t *testing.T) {
	rows := []models.Standing{
		{Rank: 1, PlayerScore: models.PlayerScore{PlayerID: "p1", PlayerName: "Anna", RoundScores: []*float64{score(1)}, TotalScore: 1}},
	}
	h := NewResultHandler(&fakeResultService{rows: rows})

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"tournamentId": "Spring Open"})
	rec := httptest.NewRecorder()
	h.ExportStandings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "standings-spring-open.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue(f.GetSheetName(0), "B2")
	require.NoError(t, err)
	assert.Equal(t, "Anna", name)
}
