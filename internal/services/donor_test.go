package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	convs []*models.Conversation
	msgs  []*models.Message
}

func (p *recordingPublisher) PublishMessage(conv *models.Conversation, msg *models.Message) {
	p.convs = append(p.convs, conv)
	p.msgs = append(p.msgs, msg)
}

func newDonorService(t *testing.T) (*DonorService, sqlmock.Sqlmock, *recordingPublisher) {
	t.Helper()
	db, mock := newMockDatabase(t)
	pub := &recordingPublisher{}
	svc := NewDonorService(NewUserRepository(db), NewDonationRepository(db), NewConversationRepository(db), pub)
	svc.now = func() time.Time { return fixedNow }
	return svc, mock, pub
}

func expectDonorCheck(mock sqlmock.Sqlmock, donorID uint, count int) {
	mock.ExpectQuery(q("WHERE u.id = ? AND r.name = 'donor' AND u.is_active = TRUE")).
		WithArgs(donorID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

var donationCols = []string{
	"id", "donor_id", "title", "description", "food_type", "quantity", "unit", "expiry_date",
	"pickup_address", "pickup_time", "status", "volunteer_id", "organization_id", "image_url",
	"created_at", "donor_name",
}

func TestGetDonations_StatusPriorityOrder(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	expectDonorCheck(mock, 1, 1)

	day := 24 * time.Hour
	// A expired, B donated, C current; the database applies the priority order
	mock.ExpectQuery(q("ORDER BY CASE d.status WHEN 'current' THEN 1 WHEN 'donated' THEN 2 WHEN 'expired' THEN 3 ELSE 4 END, d.expiry_date ASC")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(donationCols).
			AddRow(3, 1, "C", nil, "bread", 4, "loaves", fixedNow.Add(3*day), "1 Main St", nil, "current", nil, nil, nil, fixedNow, "Dana Donor").
			AddRow(2, 1, "B", "rolls", "bread", 2, "bags", fixedNow.Add(2*day), "1 Main St", nil, "donated", 9, nil, nil, fixedNow, "Dana Donor").
			AddRow(1, 1, "A", nil, "milk", 1, "l", fixedNow.Add(day), "1 Main St", fixedNow, "expired", nil, 11, "http://img/a.jpg", fixedNow, "Dana Donor"))

	resp, err := svc.GetDonations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Donations, 3)
	assert.Equal(t, uint(1), resp.DonorID)

	titles := []string{resp.Donations[0].Title, resp.Donations[1].Title, resp.Donations[2].Title}
	assert.Equal(t, []string{"C", "B", "A"}, titles)
	assert.Equal(t, "Dana Donor", resp.Donations[0].DonorName)

	require.NotNil(t, resp.Donations[1].VolunteerID)
	assert.Equal(t, uint(9), *resp.Donations[1].VolunteerID)
	require.NotNil(t, resp.Donations[1].Description)
	assert.Nil(t, resp.Donations[0].Description)
	require.NotNil(t, resp.Donations[2].OrganizationID)
	require.NotNil(t, resp.Donations[2].ImageURL)
	require.NotNil(t, resp.Donations[2].PickupTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDonations_NotADonor(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	expectDonorCheck(mock, 5, 0)

	_, err := svc.GetDonations(context.Background(), 5)
	require.ErrorIs(t, err, utils.ErrDonorNotFound)
	assert.Equal(t, 404, utils.GetHTTPStatusCode(err))
	assert.Equal(t, "Donor not found or invalid role.", utils.PublicMessage(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDonations_DatabaseError(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	mock.ExpectQuery(q("AND r.name = 'donor'")).WillReturnError(errors.New("connection reset"))

	_, err := svc.GetDonations(context.Background(), 1)
	require.ErrorIs(t, err, utils.ErrDatabaseQuery)
	assert.Equal(t, 500, utils.GetHTTPStatusCode(err))
}

func TestGetProfile_Stats(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	mock.ExpectQuery(q("WHERE u.id = ? AND r.name = 'donor'")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "first_name", "last_name", "phone", "name", "created_at"}).
			AddRow(1, "dana", "dana@example.com", "Dana", "Donor", nil, "donor", fixedNow))
	mock.ExpectQuery(q("COALESCE(SUM(CASE WHEN status = 'current' THEN 1 ELSE 0 END), 0)")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"total", "current", "donated", "expired"}).AddRow(3, 1, 1, 1))

	profile, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "dana", profile.Username)
	assert.Equal(t, models.DonationStats{Total: 3, Current: 1, Donated: 1, Expired: 1}, profile.DonationStats)
	assert.Nil(t, profile.Phone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfile_NoDonations(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	mock.ExpectQuery(q("WHERE u.id = ? AND r.name = 'donor'")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "first_name", "last_name", "phone", "name", "created_at"}).
			AddRow(1, "dana", "dana@example.com", "Dana", "Donor", "555", "donor", fixedNow))
	mock.ExpectQuery(q("FROM donations WHERE donor_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "current", "donated", "expired"}).AddRow(0, 0, 0, 0))

	profile, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.DonationStats{}, profile.DonationStats)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	mock.ExpectQuery(q("WHERE u.id = ? AND r.name = 'donor'")).
		WithArgs(2).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetProfile(context.Background(), 2)
	require.ErrorIs(t, err, utils.ErrDonorProfileNotFound)
	assert.Equal(t, "Donor profile not found.", utils.PublicMessage(err))
}

func TestGetConversations(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	expectDonorCheck(mock, 1, 1)
	mock.ExpectQuery(q("WHERE c.participant1_id = ? ORDER BY c.last_message_at DESC")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant2_id", "participant2_type", "participant2_name", "username", "last_message", "last_message_at", "created_at"}).
			AddRow(4, 9, "volunteer", "Val Volunteer", "val", "see you", fixedNow, fixedNow).
			AddRow(5, 11, "organization", "Food Bank", "bank", nil, nil, fixedNow))

	resp, err := svc.GetConversations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Conversations, 2)
	assert.Equal(t, "Val Volunteer", resp.Conversations[0].Participant2Name)
	require.NotNil(t, resp.Conversations[0].LastMessage)
	assert.Nil(t, resp.Conversations[1].LastMessageAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

var conversationCols = []string{"id", "participant1_id", "participant2_id", "participant2_type", "last_message", "last_message_at", "created_at"}

func TestGetMessages_Chronological(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	t1 := fixedNow
	t2 := t1.Add(time.Second)
	t3 := t2.Add(time.Second)

	mock.ExpectQuery(q("FROM conversations WHERE id = ?")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(conversationCols).AddRow(4, 1, 9, "volunteer", "third", t3, t1))
	mock.ExpectQuery(q("ORDER BY m.created_at ASC, m.id ASC")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "sender_id", "sender_name", "username", "message_text", "is_read", "created_at"}).
			AddRow(1, 4, 1, "Dana Donor", "dana", "first", true, t1).
			AddRow(2, 4, 9, "Val Volunteer", "val", "second", false, t2).
			AddRow(3, 4, 1, "Dana Donor", "dana", "third", false, t3))

	resp, err := svc.GetMessages(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "first", resp.Messages[0].MessageText)
	assert.Equal(t, "third", resp.Messages[2].MessageText)
	assert.True(t, resp.Messages[0].CreatedAt.Before(resp.Messages[1].CreatedAt))
	assert.Equal(t, "Val Volunteer", resp.Messages[1].SenderName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMessages_ConversationMissing(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	mock.ExpectQuery(q("FROM conversations WHERE id = ?")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetMessages(context.Background(), 99)
	require.ErrorIs(t, err, utils.ErrConversationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessage_AppendsAndUpdatesCacheAtomically(t *testing.T) {
	svc, mock, pub := newDonorService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id, participant1_id, participant2_id FROM conversations WHERE id = ? FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant1_id", "participant2_id"}).AddRow(4, 1, 9))
	mock.ExpectExec(q("INSERT INTO messages (conversation_id, sender_id, message_text, is_read, created_at)")).
		WithArgs(4, 9, "on my way", fixedNow).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(q("UPDATE conversations SET last_message = ?, last_message_at = ? WHERE id = ?")).
		WithArgs("on my way", fixedNow, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(q("WHERE u.id = ?")).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(9, "val", "val@example.com", "x", "Val", "Volunteer", nil, 2, "volunteer", true, false, nil, fixedNow))

	resp, err := svc.SendMessage(context.Background(), models.SendMessageRequest{ConversationID: 4, SenderID: 9, MessageText: "on my way"})
	require.NoError(t, err)
	assert.Equal(t, uint(42), resp.MessageID)
	assert.Equal(t, uint(4), resp.ConversationID)
	assert.Equal(t, fixedNow, resp.SentAt)
	assert.Equal(t, "Message sent successfully.", resp.Message)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "on my way", *pub.convs[0].LastMessage)
	assert.Equal(t, uint(9), pub.convs[0].Participant2ID)
	assert.Equal(t, "Val Volunteer", pub.msgs[0].SenderName)
	assert.Equal(t, "val", pub.msgs[0].SenderUsername)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessage_SenderLookupFailureStillPublishes(t *testing.T) {
	svc, mock, pub := newDonorService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant1_id", "participant2_id"}).AddRow(4, 1, 9))
	mock.ExpectExec(q("INSERT INTO messages")).
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectExec(q("UPDATE conversations SET last_message = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(q("WHERE u.id = ?")).
		WithArgs(9).
		WillReturnError(errors.New("connection reset"))

	resp, err := svc.SendMessage(context.Background(), models.SendMessageRequest{ConversationID: 4, SenderID: 9, MessageText: "hi"})
	require.NoError(t, err)
	assert.Equal(t, uint(43), resp.MessageID)
	require.Len(t, pub.msgs, 1)
	assert.Empty(t, pub.msgs[0].SenderName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessage_SenderNotParticipant(t *testing.T) {
	svc, mock, pub := newDonorService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant1_id", "participant2_id"}).AddRow(4, 1, 9))
	mock.ExpectRollback()

	_, err := svc.SendMessage(context.Background(), models.SendMessageRequest{ConversationID: 4, SenderID: 77, MessageText: "hi"})
	require.ErrorIs(t, err, utils.ErrInvalidSender)
	assert.Equal(t, 404, utils.GetHTTPStatusCode(err))
	assert.Empty(t, pub.msgs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessage_UnknownConversation(t *testing.T) {
	svc, mock, _ := newDonorService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).WithArgs(99).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.SendMessage(context.Background(), models.SendMessageRequest{ConversationID: 99, SenderID: 1, MessageText: "hi"})
	require.ErrorIs(t, err, utils.ErrInvalidSender)
	assert.Equal(t, "Conversation not found or invalid sender.", utils.PublicMessage(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessage_CacheUpdateFailureRollsBack(t *testing.T) {
	svc, mock, pub := newDonorService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant1_id", "participant2_id"}).AddRow(4, 1, 9))
	mock.ExpectExec(q("INSERT INTO messages")).WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(q("UPDATE conversations SET last_message")).WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	_, err := svc.SendMessage(context.Background(), models.SendMessageRequest{ConversationID: 4, SenderID: 1, MessageText: "hi"})
	require.ErrorIs(t, err, utils.ErrDatabaseUpdate)
	assert.Empty(t, pub.msgs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessage_Validation(t *testing.T) {
	svc, mock, _ := newDonorService(t)

	for _, req := range []models.SendMessageRequest{
		{SenderID: 1, MessageText: "hi"},
		{ConversationID: 4, MessageText: "hi"},
		{ConversationID: 4, SenderID: 1, MessageText: "   "},
	} {
		_, err := svc.SendMessage(context.Background(), req)
		assert.ErrorIs(t, err, utils.ErrMissingParameter)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStartConversation(t *testing.T) {
	counterpart := func(mock sqlmock.Sqlmock, role string) {
		mock.ExpectQuery(q("WHERE u.id = ?")).
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(9, "val", "val@example.com", "x", "Val", "Volunteer", nil, 2, role, true, false, nil, fixedNow))
	}

	t.Run("returns existing", func(t *testing.T) {
		svc, mock, _ := newDonorService(t)
		expectDonorCheck(mock, 1, 1)
		counterpart(mock, "volunteer")
		mock.ExpectQuery(q("WHERE (participant1_id = ? AND participant2_id = ?) OR (participant1_id = ? AND participant2_id = ?)")).
			WithArgs(1, 9, 9, 1).
			WillReturnRows(sqlmock.NewRows(conversationCols).AddRow(4, 9, 1, "donor", nil, nil, fixedNow))

		conv, created, err := svc.StartConversation(context.Background(), 1, models.StartConversationRequest{Participant2ID: 9, Participant2Type: "volunteer"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, uint(4), conv.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates new", func(t *testing.T) {
		svc, mock, _ := newDonorService(t)
		expectDonorCheck(mock, 1, 1)
		counterpart(mock, "volunteer")
		mock.ExpectQuery(q("WHERE (participant1_id = ? AND participant2_id = ?)")).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(q("INSERT INTO conversations (participant1_id, participant2_id, participant2_type, created_at)")).
			WithArgs(1, 9, "volunteer", fixedNow).
			WillReturnResult(sqlmock.NewResult(12, 1))

		conv, created, err := svc.StartConversation(context.Background(), 1, models.StartConversationRequest{Participant2ID: 9, Participant2Type: "volunteer"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, uint(12), conv.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("type mismatch", func(t *testing.T) {
		svc, mock, _ := newDonorService(t)
		expectDonorCheck(mock, 1, 1)
		counterpart(mock, "organization")

		_, _, err := svc.StartConversation(context.Background(), 1, models.StartConversationRequest{Participant2ID: 9, Participant2Type: "volunteer"})
		assert.ErrorIs(t, err, utils.ErrParticipantMismatch)
	})

	t.Run("self", func(t *testing.T) {
		svc, _, _ := newDonorService(t)
		_, _, err := svc.StartConversation(context.Background(), 1, models.StartConversationRequest{Participant2ID: 1, Participant2Type: "donor"})
		assert.ErrorIs(t, err, utils.ErrSelfConversation)
	})

	t.Run("caller not donor", func(t *testing.T) {
		svc, mock, _ := newDonorService(t)
		expectDonorCheck(mock, 1, 0)
		_, _, err := svc.StartConversation(context.Background(), 1, models.StartConversationRequest{Participant2ID: 9, Participant2Type: "volunteer"})
		assert.ErrorIs(t, err, utils.ErrInsufficientRole)
	})
}

func expectSessionUser(mock sqlmock.Sqlmock, id uint, role string, active bool) {
	mock.ExpectQuery(q("WHERE u.id = ?")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(id, "dana", "dana@example.com", "x", "Dana", "Donor", nil, 1, role, active, false, nil, fixedNow))
}

func donationRequest() models.CreateDonationRequest {
	imageURL := "http://localhost:9000/foodshare/donations/1/a.jpg"
	return models.CreateDonationRequest{
		Title:         "Sourdough loaves",
		FoodType:      "bread",
		Quantity:      6,
		Unit:          "loaves",
		ExpiryDate:    fixedNow.Add(48*time.Hour + 250*time.Millisecond),
		PickupAddress: "1 Main St",
		ImageURL:      &imageURL,
	}
}

func TestCreateDonation_StoresImageURL(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	svc.now = func() time.Time { return fixedNow.Add(400 * time.Millisecond) }
	expectSessionUser(mock, 1, "donor", true)
	mock.ExpectExec(q("INSERT INTO donations (donor_id, title, description, food_type, quantity, unit, expiry_date,")).
		WithArgs(1, "Sourdough loaves", nil, "bread", 6, "loaves", fixedNow.Add(48*time.Hour), "1 Main St", nil,
			"current", "http://localhost:9000/foodshare/donations/1/a.jpg", fixedNow).
		WillReturnResult(sqlmock.NewResult(31, 1))

	d, err := svc.CreateDonation(context.Background(), 1, donationRequest())
	require.NoError(t, err)
	assert.Equal(t, uint(31), d.ID)
	assert.Equal(t, models.DonationStatusCurrent, d.Status)
	assert.Equal(t, "Dana Donor", d.DonorName)
	require.NotNil(t, d.ImageURL)
	assert.Equal(t, "http://localhost:9000/foodshare/donations/1/a.jpg", *d.ImageURL)
	assert.Equal(t, fixedNow, d.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDonation_Rejections(t *testing.T) {
	t.Run("missing title", func(t *testing.T) {
		svc, mock, _ := newDonorService(t)
		req := donationRequest()
		req.Title = "  "
		_, err := svc.CreateDonation(context.Background(), 1, req)
		assert.ErrorIs(t, err, utils.ErrMissingParameter)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no expiry", func(t *testing.T) {
		svc, _, _ := newDonorService(t)
		req := donationRequest()
		req.ExpiryDate = time.Time{}
		_, err := svc.CreateDonation(context.Background(), 1, req)
		assert.ErrorIs(t, err, utils.ErrMissingParameter)
	})

	t.Run("zero quantity", func(t *testing.T) {
		svc, _, _ := newDonorService(t)
		req := donationRequest()
		req.Quantity = 0
		_, err := svc.CreateDonation(context.Background(), 1, req)
		assert.ErrorIs(t, err, utils.ErrMissingParameter)
	})

	t.Run("bad image url", func(t *testing.T) {
		svc, _, _ := newDonorService(t)
		req := donationRequest()
		bad := "not a url"
		req.ImageURL = &bad
		_, err := svc.CreateDonation(context.Background(), 1, req)
		assert.ErrorIs(t, err, utils.ErrInvalidParameter)
	})

	t.Run("volunteer", func(t *testing.T) {
		svc, mock, _ := newDonorService(t)
		expectSessionUser(mock, 1, "volunteer", true)
		_, err := svc.CreateDonation(context.Background(), 1, donationRequest())
		assert.ErrorIs(t, err, utils.ErrInsufficientRole)
		assert.Equal(t, 403, utils.GetHTTPStatusCode(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkConversationRead(t *testing.T) {
	t.Run("marks counterpart messages", func(t *testing.T) {
		svc, mock, _ := newDonorService(t)
		mock.ExpectQuery(q("FROM conversations WHERE id = ?")).
			WithArgs(4).
			WillReturnRows(sqlmock.NewRows(conversationCols).AddRow(4, 1, 9, "volunteer", "hi", fixedNow, fixedNow))
		mock.ExpectExec(q("UPDATE messages SET is_read = TRUE WHERE conversation_id = ? AND sender_id <> ? AND is_read = FALSE")).
			WithArgs(4, 1).
			WillReturnResult(sqlmock.NewResult(0, 3))

		resp, err := svc.MarkConversationRead(context.Background(), 4, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(4), resp.ConversationID)
		assert.Equal(t, int64(3), resp.MarkedRead)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("outsider", func(t *testing.T) {
		svc, mock, _ := newDonorService(t)
		mock.ExpectQuery(q("FROM conversations WHERE id = ?")).
			WithArgs(4).
			WillReturnRows(sqlmock.NewRows(conversationCols).AddRow(4, 1, 9, "volunteer", nil, nil, fixedNow))

		_, err := svc.MarkConversationRead(context.Background(), 4, 77)
		assert.ErrorIs(t, err, utils.ErrConversationNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUnreadCount(t *testing.T) {
	svc, mock, _ := newDonorService(t)
	mock.ExpectQuery(q("WHERE (c.participant1_id = ? OR c.participant2_id = ?) AND m.sender_id <> ? AND m.is_read = FALSE")).
		WithArgs(9, 9, 9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	resp, err := svc.GetUnreadCount(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.UnreadCount)
	require.NoError(t, mock.ExpectationsWereMet())
}
