package controllers

import (
	"encoding/json"
	"net/http"

	"whisp/logger"
	"whisp/middleware"
	"whisp/models"
	"whisp/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSController struct {
	hub *ws.Hub
	log *logger.Logger
}

func NewWSController(hub *ws.Hub, log *logger.Logger) *WSController {
	return &WSController{hub: hub, log: log.Named("ws")}
}

// Handler upgrades the session-guarded connection, registers it with
// the hub, and relays ephemeral client events (typing, read receipts)
// to the named peer. Delivery is best-effort; nothing here persists.
func (w *WSController) Handler(c *gin.Context) {
	user := middleware.CurrentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		w.log.WithError(err).Warn("upgrade failed")
		return
	}

	client := ws.NewClient(user.ID, conn)
	w.hub.Register(client)

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			w.hub.Unregister(client)
			return
		}

		var ev models.Event
		if err := json.Unmarshal(frame, &ev); err != nil {
			continue
		}
		w.relay(user.ID, ev)
	}
}

// relay forwards a typing indicator or read receipt to its target.
// From is always overwritten with the sender's real identity; unknown
// events and unparsable targets are dropped silently.
func (w *WSController) relay(from uuid.UUID, ev models.Event) {
	switch ev.Event {
	case models.EventUserTyping:
		var p models.TypingPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return
		}
		to, err := uuid.Parse(p.To)
		if err != nil {
			return
		}
		p.From = from.String()
		p.To = ""
		if out, err := models.NewEvent(models.EventUserTyping, p); err == nil {
			w.hub.SendToUser(to, out)
		}

	case models.EventMessageRead:
		var p models.ReadPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return
		}
		to, err := uuid.Parse(p.To)
		if err != nil {
			return
		}
		p.From = from.String()
		p.To = ""
		if out, err := models.NewEvent(models.EventMessageRead, p); err == nil {
			w.hub.SendToUser(to, out)
		}
	}
}
