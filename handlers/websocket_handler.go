package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/brackets"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin once it is deployed.
		return true
	},
}

type WebSocketHandler struct {
	hub                 *brackets.Hub
	championshipService services.ChampionshipService
}

func NewWebSocketHandler(hub *brackets.Hub, championshipService services.ChampionshipService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:                 hub,
		championshipService: championshipService,
	}
}

// ServeWs upgrades the connection and joins the client to the championship's
// room. Bracket and match events for that championship are pushed from there.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.championshipService.GetByID(r.Context(), championshipID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		slog.Error("failed to upgrade websocket connection",
			slog.Int("championship_id", championshipID),
			slog.Any("error", err),
		)
		return
	}

	client := brackets.NewClient(h.hub, conn, strconv.Itoa(championshipID))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
