package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/chessmate-central/services"
	"github.com/Dosada05/chessmate-central/standings"
)

type WebSocketHandler struct {
	// ctx живёт дольше запроса: после Upgrade контекст запроса уже отменён
	ctx               context.Context
	hub               *standings.Hub
	tournamentService services.TournamentService
	upgrader          websocket.Upgrader
}

func NewWebSocketHandler(ctx context.Context, hub *standings.Hub, ts services.TournamentService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		ctx:               ctx,
		hub:               hub,
		tournamentService: ts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeWs godoc
// @Summary Подписка на обновления таблицы турнира
// @Description После каждой принятой записи приходит {"type":"STANDINGS_UPDATED","tournamentId":...,"payload":[...]}.
// @Tags results
// @Param tournamentId path string true "Tournament ID"
// @Success 101 "Switching Protocols"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /ws/tournaments/{tournamentId} [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := requiredURLParam(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.tournamentService.GetByID(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту
		slog.WarnContext(r.Context(), "WebSocket upgrade failed",
			slog.String("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	client := standings.NewClient(h.hub, conn, tournamentID)
	if !h.hub.Subscribe(h.ctx, client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump(h.ctx)

	slog.DebugContext(r.Context(), "WebSocket client subscribed", slog.String("tournament_id", tournamentID))
}
