package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/utils"
)

// ConversationRepository conversations and messages access
type ConversationRepository struct {
	db     *Database
	logger utils.Logger
}

// NewConversationRepository creates a ConversationRepository
func NewConversationRepository(db *Database) *ConversationRepository {
	return &ConversationRepository{db: db, logger: utils.GetLogger()}
}

// ListByDonor returns conversations the donor initiated, most recent activity first
func (r *ConversationRepository) ListByDonor(ctx context.Context, donorID uint) ([]models.ConversationSummary, error) {
	query := `SELECT c.id, c.participant2_id, c.participant2_type,
			  CONCAT(u2.first_name, ' ', u2.last_name) AS participant2_name,
			  u2.username, c.last_message, c.last_message_at, c.created_at
			  FROM conversations c
			  JOIN users u2 ON c.participant2_id = u2.id
			  WHERE c.participant1_id = ?
			  ORDER BY c.last_message_at DESC, c.id DESC`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.DB.QueryContext(ctx, query, donorID)
	if err != nil {
		r.logger.Error("list conversations failed", "donorID", donorID, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	defer rows.Close()

	conversations := make([]models.ConversationSummary, 0)
	for rows.Next() {
		var c models.ConversationSummary
		var lastMessage sql.NullString
		var lastMessageAt sql.NullTime
		if err := rows.Scan(
			&c.ID,
			&c.Participant2ID,
			&c.Participant2Type,
			&c.Participant2Name,
			&c.Participant2Username,
			&lastMessage,
			&lastMessageAt,
			&c.CreatedAt,
		); err != nil {
			r.logger.Error("scan conversation failed", "donorID", donorID, "error", err.Error())
			return nil, utils.ErrDatabaseQuery
		}
		if lastMessage.Valid {
			c.LastMessage = &lastMessage.String
		}
		if lastMessageAt.Valid {
			t := lastMessageAt.Time
			c.LastMessageAt = &t
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("iterate conversations failed", "donorID", donorID, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return conversations, nil
}

// GetByID loads a conversation; ErrConversationNotFound when absent
func (r *ConversationRepository) GetByID(ctx context.Context, id uint) (*models.Conversation, error) {
	query := `SELECT id, participant1_id, participant2_id, participant2_type, last_message, last_message_at, created_at
			  FROM conversations WHERE id = ?`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conv, err := scanConversation(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrConversationNotFound
		}
		r.logger.Error("get conversation failed", "conversationID", id, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return conv, nil
}

// FindBetween returns the conversation between two users in either direction, or nil
func (r *ConversationRepository) FindBetween(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	query := `SELECT id, participant1_id, participant2_id, participant2_type, last_message, last_message_at, created_at
			  FROM conversations
			  WHERE (participant1_id = ? AND participant2_id = ?) OR (participant1_id = ? AND participant2_id = ?)
			  ORDER BY id ASC LIMIT 1`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conv, err := scanConversation(r.db.DB.QueryRowContext(ctx, query, userA, userB, userB, userA))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("find conversation failed", "userA", userA, "userB", userB, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return conv, nil
}

// Create inserts a conversation and sets its ID
func (r *ConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.db.DB.ExecContext(ctx,
		`INSERT INTO conversations (participant1_id, participant2_id, participant2_type, created_at) VALUES (?, ?, ?, ?)`,
		conv.Participant1ID, conv.Participant2ID, conv.Participant2Type, conv.CreatedAt)
	if err != nil {
		r.logger.Error("create conversation failed", "participant1", conv.Participant1ID, "participant2", conv.Participant2ID, "error", err.Error())
		return utils.ErrDatabaseInsert
	}
	id, err := result.LastInsertId()
	if err != nil {
		return utils.ErrDatabaseInsert
	}
	conv.ID = uint(id)
	return nil
}

// ListMessages returns a conversation's messages oldest first
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID uint) ([]models.Message, error) {
	query := `SELECT m.id, m.conversation_id, m.sender_id,
			  CONCAT(u.first_name, ' ', u.last_name) AS sender_name,
			  u.username, m.message_text, m.is_read, m.created_at
			  FROM messages m
			  JOIN users u ON m.sender_id = u.id
			  WHERE m.conversation_id = ?
			  ORDER BY m.created_at ASC, m.id ASC`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.DB.QueryContext(ctx, query, conversationID)
	if err != nil {
		r.logger.Error("list messages failed", "conversationID", conversationID, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&m.SenderID,
			&m.SenderName,
			&m.SenderUsername,
			&m.MessageText,
			&m.IsRead,
			&m.CreatedAt,
		); err != nil {
			r.logger.Error("scan message failed", "conversationID", conversationID, "error", err.Error())
			return nil, utils.ErrDatabaseQuery
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("iterate messages failed", "conversationID", conversationID, "error", err.Error())
		return nil, utils.ErrDatabaseQuery
	}
	return messages, nil
}

// SendMessage appends a message and refreshes the conversation's last-message
// cache in one transaction. The conversation row stays locked until commit so
// concurrent senders to the same conversation apply in order.
func (r *ConversationRepository) SendMessage(ctx context.Context, conversationID, senderID uint, text string, at time.Time) (*models.Message, *models.Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		MessageText:    text,
		CreatedAt:      at,
	}
	var conv models.Conversation

	err := r.db.WithTx(ctx, nil, func(ctx context.Context, tx DBTX) error {
		err := tx.QueryRowContext(ctx,
			`SELECT id, participant1_id, participant2_id FROM conversations WHERE id = ? FOR UPDATE`, conversationID).
			Scan(&conv.ID, &conv.Participant1ID, &conv.Participant2ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.ErrInvalidSender
			}
			r.logger.Error("lock conversation failed", "conversationID", conversationID, "error", err.Error())
			return utils.ErrDatabaseQuery
		}
		if !conv.HasParticipant(senderID) {
			return utils.ErrInvalidSender
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO messages (conversation_id, sender_id, message_text, is_read, created_at) VALUES (?, ?, ?, FALSE, ?)`,
			conversationID, senderID, text, at)
		if err != nil {
			r.logger.Error("insert message failed", "conversationID", conversationID, "senderID", senderID, "error", err.Error())
			return utils.ErrDatabaseInsert
		}
		id, err := result.LastInsertId()
		if err != nil {
			return utils.ErrDatabaseInsert
		}
		msg.ID = uint(id)

		if _, err := tx.ExecContext(ctx,
			`UPDATE conversations SET last_message = ?, last_message_at = ? WHERE id = ?`,
			text, at, conversationID); err != nil {
			r.logger.Error("update conversation cache failed", "conversationID", conversationID, "error", err.Error())
			return utils.ErrDatabaseUpdate
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, utils.ErrInvalidSender) || errors.Is(err, utils.ErrDatabaseQuery) ||
			errors.Is(err, utils.ErrDatabaseInsert) || errors.Is(err, utils.ErrDatabaseUpdate) {
			return nil, nil, err
		}
		r.logger.Error("send message transaction failed", "conversationID", conversationID, "error", err.Error())
		return nil, nil, utils.ErrDatabaseQuery
	}

	conv.LastMessage = &msg.MessageText
	conv.LastMessageAt = &msg.CreatedAt
	return msg, &conv, nil
}

// MarkRead flags the messages readerID received in the conversation as read and
// returns how many changed
func (r *ConversationRepository) MarkRead(ctx context.Context, conversationID, readerID uint) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE messages SET is_read = TRUE WHERE conversation_id = ? AND sender_id <> ? AND is_read = FALSE`,
		conversationID, readerID)
	if err != nil {
		r.logger.Error("mark messages read failed", "conversationID", conversationID, "readerID", readerID, "error", err.Error())
		return 0, utils.ErrDatabaseUpdate
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, utils.ErrDatabaseUpdate
	}
	return n, nil
}

// UnreadCount counts unread messages addressed to userID across all of the
// user's conversations
func (r *ConversationRepository) UnreadCount(ctx context.Context, userID uint) (int, error) {
	query := `SELECT COUNT(*)
			  FROM messages m
			  JOIN conversations c ON m.conversation_id = c.id
			  WHERE (c.participant1_id = ? OR c.participant2_id = ?)
			  AND m.sender_id <> ? AND m.is_read = FALSE`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, userID, userID, userID).Scan(&count); err != nil {
		r.logger.Error("count unread messages failed", "userID", userID, "error", err.Error())
		return 0, utils.ErrDatabaseQuery
	}
	return count, nil
}

func scanConversation(row interface{ Scan(...any) error }) (*models.Conversation, error) {
	var c models.Conversation
	var lastMessage sql.NullString
	var lastMessageAt sql.NullTime
	if err := row.Scan(
		&c.ID,
		&c.Participant1ID,
		&c.Participant2ID,
		&c.Participant2Type,
		&lastMessage,
		&lastMessageAt,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if lastMessage.Valid {
		c.LastMessage = &lastMessage.String
	}
	if lastMessageAt.Valid {
		t := lastMessageAt.Time
		c.LastMessageAt = &t
	}
	return &c, nil
}
