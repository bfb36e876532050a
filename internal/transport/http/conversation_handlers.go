package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ankitsinghrawat-1/ALUMNI-CONNECT-sub000/internal/store"
)

const defaultMessagePageSize = 50

// ConversationHandlers provides HTTP handlers for direct conversations.
type ConversationHandlers struct {
	store store.Store
	log   *zerolog.Logger
}

// NewConversationHandlers creates a new conversation handlers instance.
func NewConversationHandlers(st store.Store, logger *zerolog.Logger) *ConversationHandlers {
	return &ConversationHandlers{
		store: st,
		log:   logger,
	}
}

// CreateConversationRequest represents the conversation create request body.
type CreateConversationRequest struct {
	RecipientID int64 `json:"recipient_id" binding:"required"`
}

// ConversationResponse represents a conversation in API responses.
type ConversationResponse struct {
	ID        int64     `json:"id"`
	User1ID   int64     `json:"user1_id"`
	User2ID   int64     `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessageRequest represents the message post request body.
type SendMessageRequest struct {
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"message_type"`
}

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	MessageType    string    `json:"message_type"`
	CreatedAt      time.Time `json:"created_at"`
}

// directKey builds the canonical dedup key for a user pair.
func directKey(user1ID, user2ID int64) string {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}
	return fmt.Sprintf("dm:%d:%d", user1ID, user2ID)
}

// CreateConversation finds or creates a direct conversation with the recipient.
// POST /api/conversations
func (h *ConversationHandlers) CreateConversation(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.RecipientID == uid {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot start a conversation with yourself"})
		return
	}

	if _, err := h.store.GetUserByID(c.Request.Context(), req.RecipientID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "recipient not found"})
		return
	}

	conv, err := h.store.CreateDirectConversation(c.Request.Context(), directKey(uid, req.RecipientID), uid, req.RecipientID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", uid).Int64("recipient_id", req.RecipientID).Msg("failed to create conversation")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ConversationResponse{
		ID:        conv.ID,
		User1ID:   conv.User1ID,
		User2ID:   conv.User2ID,
		CreatedAt: conv.CreatedAt,
	})
}

// ListConversations lists the caller's conversations.
// GET /api/conversations
func (h *ConversationHandlers) ListConversations(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	convs, err := h.store.ListConversations(c.Request.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", uid).Msg("failed to list conversations")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]ConversationResponse, 0, len(convs))
	for _, conv := range convs {
		response = append(response, ConversationResponse{
			ID:        conv.ID,
			User1ID:   conv.User1ID,
			User2ID:   conv.User2ID,
			CreatedAt: conv.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// conversationForCaller loads a conversation and checks the caller participates.
func (h *ConversationHandlers) conversationForCaller(c *gin.Context) (*store.Conversation, int64, bool) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil, 0, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid conversation id"})
		return nil, 0, false
	}

	conv, err := h.store.GetConversationByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "conversation not found"})
		return nil, 0, false
	}
	if conv.User1ID != uid && conv.User2ID != uid {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not a participant"})
		return nil, 0, false
	}

	return conv, uid, true
}

// SendMessage persists a message in a conversation. Realtime delivery is the
// client's socket emit; this endpoint only writes the durable copy.
// POST /api/conversations/:id/messages
func (h *ConversationHandlers) SendMessage(c *gin.Context) {
	conv, uid, ok := h.conversationForCaller(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msgType := store.MessageType(req.MessageType)
	if msgType == "" {
		msgType = store.MessageTypeText
	}

	msg := &store.Message{
		ConversationID: conv.ID,
		SenderID:       uid,
		Content:        req.Content,
		MessageType:    msgType,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.store.SaveMessage(c.Request.Context(), msg); err != nil {
		h.log.Error().Err(err).Int64("conversation_id", conv.ID).Msg("failed to save message")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		MessageType:    string(msg.MessageType),
		CreatedAt:      msg.CreatedAt,
	})
}

// ListMessages lists messages in a conversation with keyset pagination.
// GET /api/conversations/:id/messages?limit=50&before_id=123
func (h *ConversationHandlers) ListMessages(c *gin.Context) {
	conv, _, ok := h.conversationForCaller(c)
	if !ok {
		return
	}

	limit := defaultMessagePageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	var beforeID *int64
	if raw := c.Query("before_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid before_id"})
			return
		}
		beforeID = &parsed
	}

	messages, err := h.store.ListMessages(c.Request.Context(), conv.ID, limit, beforeID)
	if err != nil {
		h.log.Error().Err(err).Int64("conversation_id", conv.ID).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, MessageResponse{
			ID:             msg.ID,
			ConversationID: msg.ConversationID,
			SenderID:       msg.SenderID,
			Content:        msg.Content,
			MessageType:    string(msg.MessageType),
			CreatedAt:      msg.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
