package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one inquiry message between a tenant and a landlord about
// a property. Messages are never mutated or deleted.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID   primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	LandlordID primitive.ObjectID `bson:"landlordId" json:"landlordId"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	Message    string             `bson:"message" json:"message"`
	SenderRole string             `bson:"senderRole" json:"senderRole"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Conversation summarizes the newest message exchanged with one
// counterpart about one property.
type Conversation struct {
	PropertyID      primitive.ObjectID `json:"propertyId"`
	OtherUserID     primitive.ObjectID `json:"otherUserId"`
	LastMessage     string             `json:"lastMessage"`
	LastMessageTime time.Time          `json:"lastMessageTime"`
	SenderRole      string             `json:"senderRole"`
}
