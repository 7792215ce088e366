package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"whisp/apperrors"
	"whisp/logger"
	"whisp/middleware"
	"whisp/models"
	"whisp/store"
	"whisp/uploader"
	"whisp/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageController struct {
	store    store.Store
	uploader uploader.Uploader
	hub      *ws.Hub
	log      *logger.Logger
}

func NewMessageController(s store.Store, up uploader.Uploader, hub *ws.Hub, log *logger.Logger) *MessageController {
	return &MessageController{store: s, uploader: up, hub: hub, log: log.Named("message")}
}

// GetUsersForSidebar lists everyone the caller can message: the full
// user set minus self, no pagination or relationship state.
func (m *MessageController) GetUsersForSidebar(c *gin.Context) {
	me := middleware.CurrentUser(c)

	users, err := m.store.ListUsersExcept(c.Request.Context(), me.ID)
	if err != nil {
		respondError(c, m.log, err)
		return
	}

	peers := make([]models.PublicUser, 0, len(users))
	for i := range users {
		peers = append(peers, users[i].Public())
	}
	c.JSON(http.StatusOK, peers)
}

// GetMessages returns the transcript with the peer named in the path,
// ascending by creation time. Optional limit and cursor (a message
// id) page backward from the newest; without limit the full
// transcript comes back in one response.
func (m *MessageController) GetMessages(c *gin.Context) {
	me := middleware.CurrentUser(c)

	peerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, m.log, apperrors.InvalidArg("Invalid user id"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(c, m.log, apperrors.InvalidArg("Invalid limit"))
			return
		}
	}

	beforeID := uuid.Nil
	if raw := c.Query("cursor"); raw != "" {
		beforeID, err = uuid.Parse(raw)
		if err != nil {
			respondError(c, m.log, apperrors.InvalidArg("Invalid cursor"))
			return
		}
	}

	msgs, err := m.store.Conversation(c.Request.Context(), me.ID, peerID, limit, beforeID)
	if err != nil {
		respondError(c, m.log, err)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}

type sendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// SendMessage persists a new message and pushes it to the receiver's
// live connections. An image uploads before anything is persisted, so
// a failed upload aborts the send with no partial message.
func (m *MessageController) SendMessage(c *gin.Context) {
	me := middleware.CurrentUser(c)

	receiverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, m.log, apperrors.InvalidArg("Invalid user id"))
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, m.log, apperrors.ErrMessageEmpty)
		return
	}
	req.Text = strings.TrimSpace(req.Text)

	if req.Text == "" && req.Image == "" {
		respondError(c, m.log, apperrors.ErrMessageEmpty)
		return
	}

	var imageURL string
	if req.Image != "" {
		imageURL, err = m.uploader.Upload(c.Request.Context(), req.Image)
		if err != nil {
			respondError(c, m.log, err)
			return
		}
	}

	msg := &models.Message{
		SenderID:   me.ID,
		ReceiverID: receiverID,
		Text:       req.Text,
		Image:      imageURL,
	}
	if err := m.store.CreateMessage(c.Request.Context(), msg); err != nil {
		respondError(c, m.log, err)
		return
	}

	// Push to the receiver only; the sender's client updates from
	// this response. A failed push never fails the request.
	ev, err := models.NewEvent(models.EventMessageReceived, models.MessageReceivedPayload{Message: *msg})
	if err == nil {
		m.hub.SendToUser(receiverID, ev)
	}

	c.JSON(http.StatusCreated, msg)
}
