package services

import (
	"context"
	"errors"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/utils"
)

// DonorService donor-scoped reads and messaging
type DonorService struct {
	userRepo         UserRepositoryInterface
	donationRepo     DonationRepositoryInterface
	conversationRepo ConversationRepositoryInterface
	publisher        MessagePublisher
	now              func() time.Time
	logger           utils.Logger
}

// NewDonorService creates a DonorService; publisher may be nil
func NewDonorService(userRepo UserRepositoryInterface, donationRepo DonationRepositoryInterface, conversationRepo ConversationRepositoryInterface, publisher MessagePublisher) *DonorService {
	return &DonorService{
		userRepo:         userRepo,
		donationRepo:     donationRepo,
		conversationRepo: conversationRepo,
		publisher:        publisher,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           utils.GetLogger(),
	}
}

func (s *DonorService) requireDonor(ctx context.Context, donorID uint) error {
	ok, err := s.userRepo.IsActiveDonor(ctx, donorID)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrDonorNotFound
	}
	return nil
}

// GetDonations lists an active donor's donations
func (s *DonorService) GetDonations(ctx context.Context, donorID uint) (*models.DonorDonationsResponse, error) {
	if err := s.requireDonor(ctx, donorID); err != nil {
		return nil, err
	}
	donations, err := s.donationRepo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	return &models.DonorDonationsResponse{Donations: donations, DonorID: donorID}, nil
}

// GetProfile donor fields plus donation counts per status
func (s *DonorService) GetProfile(ctx context.Context, donorID uint) (*models.DonorProfile, error) {
	profile, err := s.donationRepo.GetDonorProfile(ctx, donorID)
	if err != nil {
		return nil, err
	}
	stats, err := s.donationRepo.GetStats(ctx, donorID)
	if err != nil {
		return nil, err
	}
	profile.DonationStats = stats
	return profile, nil
}

// GetConversations lists conversations the donor initiated
func (s *DonorService) GetConversations(ctx context.Context, donorID uint) (*models.DonorConversationsResponse, error) {
	if err := s.requireDonor(ctx, donorID); err != nil {
		return nil, err
	}
	conversations, err := s.conversationRepo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	return &models.DonorConversationsResponse{Conversations: conversations, DonorID: donorID}, nil
}

// GetMessages lists a conversation's messages oldest first
func (s *DonorService) GetMessages(ctx context.Context, conversationID uint) (*models.ConversationMessagesResponse, error) {
	if _, err := s.conversationRepo.GetByID(ctx, conversationID); err != nil {
		return nil, err
	}
	messages, err := s.conversationRepo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return &models.ConversationMessagesResponse{Messages: messages, ConversationID: conversationID}, nil
}

// SendMessage appends a message from one of the conversation's participants
func (s *DonorService) SendMessage(ctx context.Context, req models.SendMessageRequest) (*models.SendMessageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, utils.ErrMissingParameter
	}

	// DATETIME(6) keeps microseconds
	at := s.now().Truncate(time.Microsecond)
	msg, conv, err := s.conversationRepo.SendMessage(ctx, req.ConversationID, req.SenderID, req.MessageText, at)
	if err != nil {
		return nil, err
	}

	sender, err := s.userRepo.GetByID(ctx, req.SenderID)
	if err != nil {
		s.logger.Warn("load sender for message event failed", "messageID", msg.ID, "senderID", req.SenderID, "error", err.Error())
	} else {
		msg.SenderName = sender.DisplayName()
		msg.SenderUsername = sender.Username
	}

	if s.publisher != nil {
		s.publisher.PublishMessage(conv, msg)
	}

	return &models.SendMessageResponse{
		Message:        "Message sent successfully.",
		ConversationID: req.ConversationID,
		MessageID:      msg.ID,
		SentAt:         msg.CreatedAt,
	}, nil
}

// StartConversation returns the conversation between the donor and the
// counterpart, creating it when none exists. created reports a new row.
func (s *DonorService) StartConversation(ctx context.Context, donorID uint, req models.StartConversationRequest) (*models.Conversation, bool, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, false, err
	}
	if req.Participant2ID == donorID {
		return nil, false, utils.ErrSelfConversation
	}

	ok, err := s.userRepo.IsActiveDonor(ctx, donorID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, utils.ErrInsufficientRole
	}

	counterpart, err := s.userRepo.GetByID(ctx, req.Participant2ID)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			return nil, false, utils.ErrParticipantNotFound
		}
		return nil, false, err
	}
	if !counterpart.IsActive {
		return nil, false, utils.ErrParticipantNotFound
	}
	if counterpart.RoleName != req.Participant2Type {
		return nil, false, utils.ErrParticipantMismatch
	}

	existing, err := s.conversationRepo.FindBetween(ctx, donorID, req.Participant2ID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	conv := &models.Conversation{
		Participant1ID:   donorID,
		Participant2ID:   req.Participant2ID,
		Participant2Type: req.Participant2Type,
		CreatedAt:        s.now(),
	}
	if err := s.conversationRepo.Create(ctx, conv); err != nil {
		return nil, false, err
	}

	s.logger.Info("conversation started", "conversationID", conv.ID, "donorID", donorID, "participant2", req.Participant2ID)
	return conv, true, nil
}

// CreateDonation lists a new current donation for the session donor
func (s *DonorService) CreateDonation(ctx context.Context, donorID uint, req models.CreateDonationRequest) (*models.Donation, error) {
	req.Title = utils.SanitizeString(req.Title)
	req.FoodType = utils.SanitizeString(req.FoodType)
	req.Unit = utils.SanitizeString(req.Unit)
	req.PickupAddress = utils.SanitizeString(req.PickupAddress)

	if err := utils.ValidateStruct(req); err != nil || req.ExpiryDate.IsZero() {
		return nil, utils.ErrMissingParameter
	}
	if req.ImageURL != nil {
		if err := utils.Validator().Var(*req.ImageURL, "url,max=500"); err != nil {
			return nil, utils.ErrInvalidParameter
		}
	}

	donor, err := s.userRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if !donor.IsActive || donor.RoleName != models.RoleDonor {
		return nil, utils.ErrInsufficientRole
	}

	// DATETIME columns keep whole seconds
	d := &models.Donation{
		DonorID:       donorID,
		Title:         req.Title,
		Description:   req.Description,
		FoodType:      req.FoodType,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		ExpiryDate:    req.ExpiryDate.UTC().Truncate(time.Second),
		PickupAddress: req.PickupAddress,
		Status:        models.DonationStatusCurrent,
		ImageURL:      req.ImageURL,
		CreatedAt:     s.now().Truncate(time.Second),
		DonorName:     donor.DisplayName(),
	}
	if req.PickupTime != nil {
		t := req.PickupTime.UTC().Truncate(time.Second)
		d.PickupTime = &t
	}

	if err := s.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("donation created", "donationID", d.ID, "donorID", donorID, "hasImage", d.ImageURL != nil)
	return d, nil
}

// MarkConversationRead flags every message userID received in the conversation
// as read; non-participants see the conversation as missing
func (s *DonorService) MarkConversationRead(ctx context.Context, conversationID, userID uint) (*models.MarkReadResponse, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, utils.ErrConversationNotFound
	}

	n, err := s.conversationRepo.MarkRead(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	return &models.MarkReadResponse{ConversationID: conversationID, MarkedRead: n}, nil
}

// GetUnreadCount unread messages addressed to userID
func (s *DonorService) GetUnreadCount(ctx context.Context, userID uint) (*models.UnreadCountResponse, error) {
	n, err := s.conversationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UnreadCountResponse{UnreadCount: n}, nil
}
