package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// EventMessageCreated type of the event pushed after a message commits
const EventMessageCreated = "message.created"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 64
)

// MessageHub delivers committed messages to the participants' open sockets.
// A user may hold several connections; all of them receive the event.
type MessageHub struct {
	upgrader websocket.Upgrader
	logger   utils.Logger

	clientsLock sync.Mutex
	clients     map[uint]map[*Client]struct{}
}

// Client one websocket connection of a user
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
	hub    *MessageHub
}

// NewMessageHub creates a hub; allowedOrigins empty or containing "*" accepts any origin
func NewMessageHub(allowedOrigins []string) *MessageHub {
	allowAll := len(allowedOrigins) == 0
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		origins[o] = struct{}{}
	}

	return &MessageHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
		logger:  utils.GetLogger(),
		clients: make(map[uint]map[*Client]struct{}),
	}
}

// PublishMessage pushes a message.created event to both participants.
// Slow clients whose buffer is full are disconnected; the send itself never fails.
func (h *MessageHub) PublishMessage(conv *models.Conversation, msg *models.Message) {
	if conv == nil || msg == nil {
		return
	}

	payload, err := json.Marshal(models.MessageEvent{Type: EventMessageCreated, Data: *msg})
	if err != nil {
		logNonBlockingError(h.logger, "PublishMessage", err, "messageID", msg.ID)
		return
	}

	recipients := []uint{conv.Participant1ID}
	if conv.Participant2ID != conv.Participant1ID {
		recipients = append(recipients, conv.Participant2ID)
	}

	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()

	for _, userID := range recipients {
		for client := range h.clients[userID] {
			select {
			case client.Send <- payload:
			default:
				h.logger.Warn("dropping slow websocket client", "userID", userID)
				h.removeLocked(client)
			}
		}
	}
}

// ConnectedClients number of open sockets for userID
func (h *MessageHub) ConnectedClients(userID uint) int {
	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()
	return len(h.clients[userID])
}

// Close disconnects every client
func (h *MessageHub) Close() {
	h.clientsLock.Lock()
	defer h.clientsLock.Unlock()
	for _, set := range h.clients {
		for client := range set {
			h.removeLocked(client)
		}
	}
}

func (h *MessageHub) register(client *Client) {
	h.clientsLock.Lock()
	set, ok := h.clients[client.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.UserID] = set
	}
	set[client] = struct{}{}
	count := len(set)
	h.clientsLock.Unlock()

	h.logger.Info("websocket client connected", "userID", client.UserID, "connections", count)
}

func (h *MessageHub) unregister(client *Client) {
	h.clientsLock.Lock()
	h.removeLocked(client)
	h.clientsLock.Unlock()

	h.logger.Info("websocket client disconnected", "userID", client.UserID)
}

// removeLocked drops client from the registry and closes its send channel; caller holds clientsLock
func (h *MessageHub) removeLocked(client *Client) {
	set, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(h.clients, client.UserID)
	}
}

// HandleWebSocket handles GET /api/donor/ws; the session middleware has already run
func (h *MessageHub) HandleWebSocket(c *gin.Context) {
	userID, ok := getUserIDOrFail(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "userID", userID, "error", err.Error())
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
		hub:    h,
	}
	h.register(client)

	go client.writePump()
	go client.readPump()
}

// readPump consumes control frames until the peer goes away. Clients do not
// send messages over the socket; sends go through POST /messages/send.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read error", "userID", c.UserID, "error", err.Error())
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug("websocket write error", "userID", c.UserID, "error", err.Error())
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
