package models

import "time"

// Conversation two-party thread; participant1 is the initiator
type Conversation struct {
	ID               uint       `json:"id" db:"id"`
	Participant1ID   uint       `json:"participant1Id" db:"participant1_id"`
	Participant2ID   uint       `json:"participant2Id" db:"participant2_id"`
	Participant2Type string     `json:"participant2Type" db:"participant2_type"`
	LastMessage      *string    `json:"lastMessage" db:"last_message"`
	LastMessageAt    *time.Time `json:"lastMessageAt" db:"last_message_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

// HasParticipant reports whether userID is one of the two participants
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

// ConversationSummary conversation enriched with the counterpart's names
type ConversationSummary struct {
	ID                   uint       `json:"id"`
	Participant2ID       uint       `json:"participant2Id"`
	Participant2Type     string     `json:"participant2Type"`
	Participant2Name     string     `json:"participant2Name"`
	Participant2Username string     `json:"participant2Username"`
	LastMessage          *string    `json:"lastMessage"`
	LastMessageAt        *time.Time `json:"lastMessageAt"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// Message message row joined with sender display info
type Message struct {
	ID             uint      `json:"id" db:"id"`
	ConversationID uint      `json:"conversationId" db:"conversation_id"`
	SenderID       uint      `json:"senderId" db:"sender_id"`
	SenderName     string    `json:"senderName"`
	SenderUsername string    `json:"senderUsername"`
	MessageText    string    `json:"messageText" db:"message_text"`
	IsRead         bool      `json:"isRead" db:"is_read"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// DonorConversationsResponse payload of GET /donor/conversations/:donorId
type DonorConversationsResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
	DonorID       uint                  `json:"donorId"`
}

// ConversationMessagesResponse payload of GET /donor/messages/:conversationId
type ConversationMessagesResponse struct {
	Messages       []Message `json:"messages"`
	ConversationID uint      `json:"conversationId"`
}

// SendMessageRequest body of POST /donor/messages/send
type SendMessageRequest struct {
	ConversationID uint   `json:"conversationId" validate:"required"`
	SenderID       uint   `json:"senderId" validate:"required"`
	MessageText    string `json:"messageText" validate:"notblank"`
}

// SendMessageResponse payload of POST /donor/messages/send
type SendMessageResponse struct {
	Message        string    `json:"message"`
	ConversationID uint      `json:"conversationId"`
	MessageID      uint      `json:"messageId"`
	SentAt         time.Time `json:"sentAt"`
}

// StartConversationRequest body of POST /donor/conversations
type StartConversationRequest struct {
	Participant2ID   uint   `json:"participant2Id" validate:"required"`
	Participant2Type string `json:"participant2Type" validate:"required,participanttype"`
}

// MarkReadResponse payload of POST /donor/conversations/:conversationId/read
type MarkReadResponse struct {
	ConversationID uint  `json:"conversationId"`
	MarkedRead     int64 `json:"markedRead"`
}

// UnreadCountResponse payload of GET /donor/unread-count
type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

// MessageEvent pushed to connected websocket clients
type MessageEvent struct {
	Type string  `json:"type"`
	Data Message `json:"data"`
}
