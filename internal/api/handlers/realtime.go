package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/maheshk/workpulse/internal/api/middleware"
	"github.com/maheshk/workpulse/internal/realtime"
	"github.com/maheshk/workpulse/internal/repository"
	"github.com/maheshk/workpulse/internal/token"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type FeedHandler struct {
	hub       *realtime.Hub
	tokens    *token.Service
	companies repository.CompanyRepository
}

func NewFeedHandler(hub *realtime.Hub, tokens *token.Service, companies repository.CompanyRepository) *FeedHandler {
	return &FeedHandler{hub: hub, tokens: tokens, companies: companies}
}

// Handle upgrades an admin connection to the tenant capture feed. Browsers
// cannot set an Authorization header on websocket dials, so the token rides
// in a query parameter and runs through the same admin guard chain.
func (h *FeedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		respondUnauthorized(w)
		return
	}

	ident, err := middleware.ResolveAdmin(r.Context(), h.tokens, h.companies, raw)
	if err != nil {
		log.Printf("ERROR [handlers.Feed] %v", err)
		respondUnauthorized(w)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [handlers.Feed] upgrade failed: %v", err)
		return
	}

	client := realtime.NewClient(h.hub, conn, ident.CompanyID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
