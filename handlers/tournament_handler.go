package handlers

import (
	"net/http"

	"github.com/Dosada05/chessmate-central/models" // Для статусов
	"github.com/Dosada05/chessmate-central/services"
)

type TournamentHandler struct {
	tournamentService  services.TournamentService
	descriptionService services.DescriptionService
}

func NewTournamentHandler(ts services.TournamentService, ds services.DescriptionService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService:  ts,
		descriptionService: ds,
	}
}

// ListHandler godoc
// @Summary Список турниров
// @Tags tournaments
// @Description Upcoming и Active по дате начала, затем Completed (последние сверху), затем Cancelled.
// @Produce json
// @Param status query string false "Upcoming, Active, Completed или Cancelled"
// @Success 200 {array} models.Tournament
// @Failure 400 {object} map[string]string "Некорректный статус"
// @Router /tournaments [get]
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var status *models.TournamentStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := models.TournamentStatus(statusStr)
		status = &s
	}

	tournaments, err := h.tournamentService.List(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, tournaments)
}

// CreateHandler godoc
// @Summary Создать турнир
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body services.CreateTournamentInput true "Данные турнира"
// @Success 201 {object} models.Tournament
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Security BearerAuth
// @Router /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, tournament)
}

// GetByIDHandler godoc
// @Summary Получить турнир по ID
// @Tags tournaments
// @Produce json
// @Param tournamentId path string true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentId} [get]
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, tournament)
}

// UpdateHandler godoc
// @Summary Обновить турнир
// @Tags tournaments
// @Description Частичное обновление; переходы статуса проверяются.
// @Accept json
// @Produce json
// @Param tournamentId path string true "Tournament ID"
// @Param body body services.UpdateTournamentInput true "Изменяемые поля"
// @Success 200 {object} models.Tournament
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentId} [put]
func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, tournament)
}

// DeleteHandler godoc
// @Summary Удалить турнир вместе с регистрациями и таблицей результатов
// @Tags tournaments
// @Param tournamentId path string true "Tournament ID"
// @Success 204 "Удалено"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentId} [delete]
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DescribeHandler godoc
// @Summary Сгенерировать описание турнира
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body services.DescribeTournamentInput true "Параметры турнира"
// @Success 200 {object} map[string]string "description"
// @Failure 400 {object} map[string]string "Не хватает данных"
// @Failure 503 {object} map[string]string "Генератор недоступен"
// @Security BearerAuth
// @Router /tournaments/describe [post]
func (h *TournamentHandler) DescribeHandler(w http.ResponseWriter, r *http.Request) {
	var input services.DescribeTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	description, err := h.descriptionService.Describe(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"description": description})
}
