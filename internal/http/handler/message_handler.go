package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkyden/Roomivo/internal/service"
)

// MessageHandler serves the inquiry message endpoints.
type MessageHandler struct {
	Messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{Messages: messages}
}

// Send stores a message and fans it out to the conversation room.
func (h *MessageHandler) Send(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req struct {
		TenantID   string `json:"tenantId"`
		LandlordID string `json:"landlordId"`
		PropertyID string `json:"propertyId"`
		Message    string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message"})
		return
	}

	tenantID, err := primitive.ObjectIDFromHex(req.TenantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenantId"})
		return
	}
	landlordID, err := primitive.ObjectIDFromHex(req.LandlordID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid landlordId"})
		return
	}
	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid propertyId"})
		return
	}

	message, err := h.Messages.Send(c.Request.Context(), identity.UserID, identity.Role, tenantID, landlordID, propertyID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

// Conversation lists both directions of one exchange, oldest first.
func (h *MessageHandler) Conversation(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	propertyID, ok := objectIDParam(c, "propertyId", "Property not found")
	if !ok {
		return
	}
	otherUserID, ok := objectIDParam(c, "otherUserId", "User not found")
	if !ok {
		return
	}

	messages, err := h.Messages.Conversation(c.Request.Context(), identity.UserID, propertyID, otherUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Conversations summarizes the caller's exchanges, one entry per
// (property, counterpart) pair.
func (h *MessageHandler) Conversations(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	conversations, err := h.Messages.Conversations(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversations)
}
