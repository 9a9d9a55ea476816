package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gosimple/slug"

	"github.com/Dosada05/chessmate-central/models"
	"github.com/Dosada05/chessmate-central/services"
	"github.com/Dosada05/chessmate-central/standings"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(rs services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: rs}
}

// Get godoc
// @Summary Таблица результатов турнира
// @Description Пустая таблица, если результатов ещё нет.
// @Tags results
// @Produce json
// @Param tournamentId path string true "Tournament ID"
// @Success 200 {object} models.TournamentResult
// @Failure 503 {object} map[string]string "Хранилище недоступно"
// @Router /results/{tournamentId} [get]
func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.resultService.Get(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, res)
}

// Save godoc
// @Summary Заменить таблицу результатов
// @Description Суммы пересчитываются. Игроки и число раундов должны совпадать с турниром. Ненулевая version делает запись условной.
// @Tags results
// @Accept json
// @Produce json
// @Param tournamentId path string true "Tournament ID"
// @Param result body models.TournamentResult true "Таблица результатов"
// @Success 200 {object} models.TournamentResult
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 409 {object} map[string]string "Таблицу уже изменили"
// @Security BearerAuth
// @Router /results/{tournamentId} [post]
func (h *ResultHandler) Save(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input models.TournamentResult
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.resultService.Save(r.Context(), tournamentID, &input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, res)
}

// Reconcile godoc
// @Summary Синхронизировать таблицу с составом участников
// @Tags results
// @Produce json
// @Param tournamentId path string true "Tournament ID"
// @Success 200 {object} models.TournamentResult
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /results/{tournamentId}/reconcile [post]
func (h *ResultHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.resultService.SyncWithRoster(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, res)
}

type roundScoreInput struct {
	Score json.RawMessage `json:"score"`
}

// SetRoundScore godoc
// @Summary Записать результат одного раунда
// @Description Тело {"score": 1 | 0.5 | 0 | null}; раунды считаются с 0.
// @Tags results
// @Accept json
// @Produce json
// @Param tournamentId path string true "Tournament ID"
// @Param playerId path string true "Registration ID"
// @Param round path int true "Номер раунда с 0"
// @Success 200 {object} models.TournamentResult
// @Failure 400 {object} map[string]string "Некорректный счёт или раунд"
// @Failure 404 {object} map[string]string "Таблица или игрок не найдены"
// @Failure 409 {object} map[string]string "Конфликт версий"
// @Security BearerAuth
// @Router /results/{tournamentId}/players/{playerId}/rounds/{round} [put]
func (h *ResultHandler) SetRoundScore(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := requiredURLParam(r, "playerId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	roundStr, err := requiredURLParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	round, err := strconv.Atoi(roundStr)
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid round %q", roundStr))
		return
	}

	var input roundScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	score, err := parseScore(input.Score)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.resultService.SetRoundScore(r.Context(), tournamentID, playerID, round, score)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, res)
}

// parseScore distinguishes an explicit null (clear the round) from a missing field.
func parseScore(raw json.RawMessage) (*float64, error) {
	if len(raw) == 0 {
		return nil, errors.New("score is required (use null to clear)")
	}
	var score *float64
	if err := json.Unmarshal(raw, &score); err != nil {
		return nil, errors.New("score must be a number or null")
	}
	return score, nil
}

// Standings godoc
// @Summary Турнирная таблица по местам
// @Tags results
// @Produce json
// @Param tournamentId path string true "Tournament ID"
// @Param tiebreak query string false "name или rating"
// @Success 200 {array} models.Standing
// @Router /results/{tournamentId}/standings [get]
func (h *ResultHandler) Standings(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.rankedRows(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, rows)
}

// ExportStandings godoc
// @Summary Турнирная таблица в формате Excel
// @Tags results
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param tournamentId path string true "Tournament ID"
// @Param tiebreak query string false "name или rating"
// @Success 200 {file} file
// @Router /results/{tournamentId}/standings.xlsx [get]
func (h *ResultHandler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.rankedRows(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := standings.ExportXLSX(&buf, rows); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	name := slug.Make(chi.URLParam(r, "tournamentId"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="standings-%s.xlsx"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *ResultHandler) rankedRows(w http.ResponseWriter, r *http.Request) ([]models.Standing, bool) {
	tournamentID, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return nil, false
	}

	var tieBreak standings.TieBreak
	if raw := r.URL.Query().Get("tiebreak"); raw != "" {
		if tieBreak, err = standings.ParseTieBreak(raw); err != nil {
			badRequestResponse(w, r, err)
			return nil, false
		}
	}

	rows, err := h.resultService.Standings(r.Context(), tournamentID, tieBreak)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return nil, false
	}
	return rows, true
}
