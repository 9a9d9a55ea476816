package handlers

import (
	"net/http"

	"github.com/Dosada05/chessmate-central/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(rs services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

// Register godoc
// @Summary Зарегистрировать игрока на турнир
// @Tags registrations
// @Accept json
// @Produce json
// @Param body body services.CreateRegistrationInput true "Данные игрока"
// @Success 201 {object} models.PlayerRegistration
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 429 {object} map[string]string "Слишком много запросов"
// @Router /registrations [post]
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRegistrationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reg, err := h.registrationService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, reg)
}

// ListByTournament godoc
// @Summary Регистрации турнира
// @Tags registrations
// @Produce json
// @Param tournamentId path string true "Tournament ID"
// @Success 200 {array} models.PlayerRegistration
// @Router /registrations/by-tournament/{tournamentId} [get]
func (h *RegistrationHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	list, err := h.registrationService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list)
}

// Update godoc
// @Summary Обновить регистрацию
// @Tags registrations
// @Accept json
// @Produce json
// @Param registrationId path string true "Registration ID"
// @Param body body services.UpdateRegistrationInput true "Изменяемые поля"
// @Success 200 {object} models.PlayerRegistration
// @Failure 404 {object} map[string]string "Регистрация не найдена"
// @Security BearerAuth
// @Router /registrations/{registrationId} [put]
func (h *RegistrationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := requiredURLParam(r, "registrationId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateRegistrationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reg, err := h.registrationService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, reg)
}

// Delete godoc
// @Summary Удалить регистрацию
// @Tags registrations
// @Param registrationId path string true "Registration ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Регистрация не найдена"
// @Security BearerAuth
// @Router /registrations/{registrationId} [delete]
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := requiredURLParam(r, "registrationId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.registrationService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"message": "registration deleted"})
}
