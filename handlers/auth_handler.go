package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/chessmate-central/middleware"
	"github.com/Dosada05/chessmate-central/services"
)

const organizerTokenTTL = 24 * time.Hour

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
	now         func() time.Time
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
		now:         time.Now,
	}
}

// Login godoc
// @Summary Вход организатора
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Пароль организатора"
// @Success 200 {object} map[string]string "token"
// @Failure 401 {object} map[string]string "Неверный пароль"
// @Failure 503 {object} map[string]string "Аутентификация не настроена"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Password == "" {
		badRequestResponse(w, r, errors.New("password is required"))
		return
	}

	if err := h.authService.Login(r.Context(), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := middleware.NewToken(h.jwtSecret, services.RoleOrganizer, services.RoleOrganizer, h.now(), organizerTokenTTL)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"token": token})
}
