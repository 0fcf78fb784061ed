package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/repository"
)

// Broadcaster fans a stored message out to any subscribed conversation
// room. Implemented by the websocket hub.
type Broadcaster interface {
	BroadcastMessage(message domain.Message)
}

// MessageService persists inquiry messages and derives conversation
// summaries.
type MessageService struct {
	messages    repository.MessageRepository
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewMessageService creates the service. broadcaster may be nil when
// no realtime fan-out is wanted.
func NewMessageService(messages repository.MessageRepository, broadcaster Broadcaster, logger *zap.Logger) *MessageService {
	return &MessageService{messages: messages, broadcaster: broadcaster, logger: logger}
}

// Send stores a message from the caller, who must be one of the two
// participants, and rebroadcasts it to the conversation room.
func (s *MessageService) Send(ctx context.Context, callerID primitive.ObjectID, callerRole string, tenantID, landlordID, propertyID primitive.ObjectID, text string) (domain.Message, error) {
	ctx, span := startSpan(ctx, "MessageService.Send")
	defer span.End()

	if callerID != tenantID && callerID != landlordID {
		return domain.Message{}, errForbidden()
	}
	if text == "" {
		return domain.Message{}, errMissingFields("Message text required")
	}

	created, err := s.messages.Create(ctx, domain.Message{
		TenantID:   tenantID,
		LandlordID: landlordID,
		PropertyID: propertyID,
		Message:    text,
		SenderRole: callerRole,
	})
	if err != nil {
		span.RecordError(err)
		return domain.Message{}, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(created)
	}

	if s.logger != nil {
		s.logger.Info("message.sent",
			zap.String("message_id", created.ID.Hex()),
			zap.String("property_id", propertyID.Hex()),
			zap.String("sender_role", callerRole),
		)
	}
	return created, nil
}

// Conversation returns both directions of the caller's exchange with
// another user about a property, oldest first.
func (s *MessageService) Conversation(ctx context.Context, callerID, propertyID, otherUserID primitive.ObjectID) ([]domain.Message, error) {
	ctx, span := startSpan(ctx, "MessageService.Conversation")
	defer span.End()

	messages, err := s.messages.ListConversation(ctx, propertyID, callerID, otherUserID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// Conversations derives one summary per distinct (property,
// counterpart) pair for the caller.
func (s *MessageService) Conversations(ctx context.Context, callerID primitive.ObjectID) ([]domain.Conversation, error) {
	ctx, span := startSpan(ctx, "MessageService.Conversations")
	defer span.End()

	messages, err := s.messages.ListForUser(ctx, callerID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return AggregateConversations(callerID, messages), nil
}

// AggregateConversations reduces a newest-first message log to one
// entry per (property, counterpart) pair, keeping the first message
// seen for each pair. Single pass, O(n) memory for the group map.
func AggregateConversations(userID primitive.ObjectID, newestFirst []domain.Message) []domain.Conversation {
	type key struct {
		property primitive.ObjectID
		other    primitive.ObjectID
	}

	seen := make(map[key]struct{}, len(newestFirst))
	conversations := []domain.Conversation{}
	for _, message := range newestFirst {
		other := message.TenantID
		if message.TenantID == userID {
			other = message.LandlordID
		}
		k := key{property: message.PropertyID, other: other}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		conversations = append(conversations, domain.Conversation{
			PropertyID:      message.PropertyID,
			OtherUserID:     other,
			LastMessage:     message.Message,
			LastMessageTime: message.CreatedAt,
			SenderRole:      message.SenderRole,
		})
	}
	return conversations
}
