package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one live WebSocket connection for one user. A user may
// hold several (multiple tabs). Writes are serialized by mu because
// both the hub loop and the send path write to the same connection.
type Client struct {
	userID uuid.UUID
	conn   *websocket.Conn
	mu     sync.Mutex
}

func NewClient(userID uuid.UUID, conn *websocket.Conn) *Client {
	return &Client{userID: userID, conn: conn}
}

func (c *Client) UserID() uuid.UUID { return c.userID }

func (c *Client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.Close()
}
