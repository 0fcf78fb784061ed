package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/http/middleware"
	"github.com/venkyden/Roomivo/internal/jwt"
	"github.com/venkyden/Roomivo/internal/repository"
	"github.com/venkyden/Roomivo/internal/service"
)

const (
	subscriptionBuffer = 64
	writeTimeout       = 5 * time.Second
)

// clientEnvelope is the frame clients send. Type selects the action,
// the remaining fields apply as that action requires.
type clientEnvelope struct {
	Type          string `json:"type"`
	PropertyID    string `json:"propertyId,omitempty"`
	OtherUserID   string `json:"otherUserId,omitempty"`
	ApplicationID string `json:"applicationId,omitempty"`
	TenantID      string `json:"tenantId,omitempty"`
	LandlordID    string `json:"landlordId,omitempty"`
	Message       string `json:"message,omitempty"`
}

// serverEnvelope is the frame the server sends back.
type serverEnvelope struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Handler upgrades authenticated clients and relays conversation
// messages through the hub. Room membership is derived from the
// verified token subject, never from client-supplied identity.
type Handler struct {
	hub          *Hub
	messages     *service.MessageService
	generator    *jwt.Generator
	applications repository.ApplicationRepository
	properties   repository.PropertyRepository
	origins      []string
	logger       *zap.Logger
}

func NewHandler(
	hub *Hub,
	messages *service.MessageService,
	generator *jwt.Generator,
	applications repository.ApplicationRepository,
	properties repository.PropertyRepository,
	origins []string,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		hub:          hub,
		messages:     messages,
		generator:    generator,
		applications: applications,
		properties:   properties,
		origins:      origins,
		logger:       logger,
	}
}

// Serve handles one websocket session.
func (h *Handler) Serve(c *gin.Context) {
	raw := c.Query("token")
	if raw == "" {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			raw = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}
	identity, err := middleware.IdentityFromToken(h.generator, raw)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
		return
	}

	opts := &websocket.AcceptOptions{}
	if len(h.origins) > 0 && h.origins[0] != "*" {
		opts.OriginPatterns = h.origins
	} else {
		opts.InsecureSkipVerify = true
	}
	conn, err := websocket.Accept(c.Writer, c.Request, opts)
	if err != nil {
		h.logger.Debug("websocket accept failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.hub.Subscribe(subscriptionBuffer)
	defer h.hub.Unsubscribe(sub)

	go h.writeLoop(ctx, conn, sub)
	h.readLoop(ctx, conn, sub, identity)

	_ = conn.Close(websocket.StatusNormalClosure, "closed")
}

func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, sub *Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case message, ok := <-sub.Messages():
			if !ok {
				return
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, serverEnvelope{Type: "receive-message", Message: &message})
			cancelWrite()
			if err != nil {
				_ = conn.Close(websocket.StatusNormalClosure, "write_failed")
				return
			}
		}
	}
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, sub *Subscription, identity middleware.Identity) {
	for {
		var env clientEnvelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			return
		}
		switch env.Type {
		case "join-room":
			h.joinRoom(sub, identity, env)
		case "join-application":
			h.joinApplication(ctx, conn, sub, identity, env)
		case "send-message":
			h.sendMessage(ctx, conn, identity, env)
		default:
			h.writeError(ctx, conn, "Unknown message type")
		}
	}
}

// joinRoom subscribes the caller to the conversation between itself
// and otherUserId about one property. The caller is always one of the
// two participants, so the key cannot be forged onto someone else's
// room.
func (h *Handler) joinRoom(sub *Subscription, identity middleware.Identity, env clientEnvelope) {
	propertyID, err := primitive.ObjectIDFromHex(env.PropertyID)
	if err != nil {
		return
	}
	otherUserID, err := primitive.ObjectIDFromHex(env.OtherUserID)
	if err != nil {
		return
	}
	h.hub.Join(sub, ConversationRoom(propertyID, identity.UserID, otherUserID))
}

// joinApplication resolves an application to its conversation room and
// joins it, provided the caller is the applicant or the property's
// landlord.
func (h *Handler) joinApplication(ctx context.Context, conn *websocket.Conn, sub *Subscription, identity middleware.Identity, env clientEnvelope) {
	applicationID, err := primitive.ObjectIDFromHex(env.ApplicationID)
	if err != nil {
		h.writeError(ctx, conn, "Application not found")
		return
	}
	application, err := h.applications.GetByID(ctx, applicationID)
	if err != nil {
		h.writeError(ctx, conn, "Application not found")
		return
	}
	property, err := h.properties.GetByID(ctx, application.PropertyID)
	if err != nil {
		h.writeError(ctx, conn, "Property not found")
		return
	}
	if identity.UserID != application.TenantID && identity.UserID != property.LandlordID {
		h.writeError(ctx, conn, "Unauthorized")
		return
	}
	h.hub.Join(sub, ConversationRoom(application.PropertyID, application.TenantID, property.LandlordID))
}

// sendMessage stores a message through the service, which fans it back
// out to the room via the hub.
func (h *Handler) sendMessage(ctx context.Context, conn *websocket.Conn, identity middleware.Identity, env clientEnvelope) {
	tenantID, err := primitive.ObjectIDFromHex(env.TenantID)
	if err != nil {
		h.writeError(ctx, conn, "Invalid tenantId")
		return
	}
	landlordID, err := primitive.ObjectIDFromHex(env.LandlordID)
	if err != nil {
		h.writeError(ctx, conn, "Invalid landlordId")
		return
	}
	propertyID, err := primitive.ObjectIDFromHex(env.PropertyID)
	if err != nil {
		h.writeError(ctx, conn, "Invalid propertyId")
		return
	}
	if _, err := h.messages.Send(ctx, identity.UserID, identity.Role, tenantID, landlordID, propertyID, env.Message); err != nil {
		h.writeError(ctx, conn, err.Error())
	}
}

func (h *Handler) writeError(ctx context.Context, conn *websocket.Conn, message string) {
	writeCtx, cancelWrite := context.WithTimeout(ctx, writeTimeout)
	defer cancelWrite()
	_ = wsjson.Write(writeCtx, conn, serverEnvelope{Type: "error", Error: message})
}
