package handlers

import (
	"net/http"

	"foodshare/internal/middleware"
	"foodshare/internal/models"
	"foodshare/internal/services"
	"foodshare/internal/utils"

	"github.com/gin-gonic/gin"
)

// DonorHandler donor donations, profile and messaging endpoints
type DonorHandler struct {
	donorService services.DonorServiceInterface
	logger       utils.Logger
}

// NewDonorHandler creates a DonorHandler
func NewDonorHandler(donorService services.DonorServiceInterface) *DonorHandler {
	return &DonorHandler{
		donorService: donorService,
		logger:       utils.GetLogger(),
	}
}

// GetDonations handles GET /api/donor/donations/:donorId
func (h *DonorHandler) GetDonations(c *gin.Context) {
	donorID, ok := parseIDParam(c, "donorId")
	if !ok {
		return
	}

	resp, err := h.donorService.GetDonations(c.Request.Context(), donorID)
	if err != nil {
		respondServiceError(c, err, h.logger, "GetDonations", "donorID", donorID)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Donations retrieved successfully.", resp)
}

// GetConversations handles GET /api/donor/conversations/:donorId
func (h *DonorHandler) GetConversations(c *gin.Context) {
	donorID, ok := parseIDParam(c, "donorId")
	if !ok {
		return
	}

	resp, err := h.donorService.GetConversations(c.Request.Context(), donorID)
	if err != nil {
		respondServiceError(c, err, h.logger, "GetConversations", "donorID", donorID)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Conversations retrieved successfully.", resp)
}

// GetMessages handles GET /api/donor/messages/:conversationId
func (h *DonorHandler) GetMessages(c *gin.Context) {
	conversationID, ok := parseIDParam(c, "conversationId")
	if !ok {
		return
	}

	resp, err := h.donorService.GetMessages(c.Request.Context(), conversationID)
	if err != nil {
		respondServiceError(c, err, h.logger, "GetMessages", "conversationID", conversationID)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Messages retrieved successfully.", resp)
}

// SendMessage handles POST /api/donor/messages/send
func (h *DonorHandler) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if !bindJSONOrFail(c, &req, h.logger, "SendMessage") {
		return
	}

	resp, err := h.donorService.SendMessage(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, h.logger, "SendMessage",
			"conversationID", req.ConversationID,
			"senderID", req.SenderID)
		return
	}

	middleware.RecordMessageSent()
	h.logger.Info("message sent",
		"conversationID", resp.ConversationID,
		"messageID", resp.MessageID,
		"senderID", req.SenderID,
		"preview", utils.TruncateText(req.MessageText, 32))

	utils.SuccessResponse(c, http.StatusOK, resp.Message, resp)
}

// GetProfile handles GET /api/donor/profile/:donorId
func (h *DonorHandler) GetProfile(c *gin.Context) {
	donorID, ok := parseIDParam(c, "donorId")
	if !ok {
		return
	}

	profile, err := h.donorService.GetProfile(c.Request.Context(), donorID)
	if err != nil {
		respondServiceError(c, err, h.logger, "GetProfile", "donorID", donorID)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully.", profile)
}

// StartConversation handles POST /api/donor/conversations. The session user is
// the initiating donor; an existing conversation is returned with 200.
func (h *DonorHandler) StartConversation(c *gin.Context) {
	userID, ok := getUserIDOrFail(c)
	if !ok {
		return
	}

	var req models.StartConversationRequest
	if !bindJSONOrFail(c, &req, h.logger, "StartConversation") {
		return
	}

	conv, created, err := h.donorService.StartConversation(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, h.logger, "StartConversation",
			"donorID", userID,
			"participant2", req.Participant2ID)
		return
	}

	if created {
		utils.SuccessResponse(c, http.StatusCreated, "Conversation created successfully.", conv)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Conversation retrieved successfully.", conv)
}

// CreateDonation handles POST /api/donor/donations. imageUrl usually comes from
// a prior POST /api/donor/uploads/image.
func (h *DonorHandler) CreateDonation(c *gin.Context) {
	userID, ok := getUserIDOrFail(c)
	if !ok {
		return
	}

	var req models.CreateDonationRequest
	if !bindJSONOrFail(c, &req, h.logger, "CreateDonation") {
		return
	}

	donation, err := h.donorService.CreateDonation(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, h.logger, "CreateDonation", "donorID", userID)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Donation created successfully.", donation)
}

// MarkConversationRead handles POST /api/donor/conversations/:conversationId/read
func (h *DonorHandler) MarkConversationRead(c *gin.Context) {
	userID, ok := getUserIDOrFail(c)
	if !ok {
		return
	}
	conversationID, ok := parseIDParam(c, "conversationId")
	if !ok {
		return
	}

	resp, err := h.donorService.MarkConversationRead(c.Request.Context(), conversationID, userID)
	if err != nil {
		respondServiceError(c, err, h.logger, "MarkConversationRead",
			"conversationID", conversationID,
			"userID", userID)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Messages marked as read.", resp)
}

// GetUnreadCount handles GET /api/donor/unread-count
func (h *DonorHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := getUserIDOrFail(c)
	if !ok {
		return
	}

	resp, err := h.donorService.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, h.logger, "GetUnreadCount", "userID", userID)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Unread count retrieved successfully.", resp)
}
