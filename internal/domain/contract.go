package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contract is a generated rental agreement with independent signature
// tracking per party. Re-signing refreshes that party's timestamp.
type Contract struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ApplicationID    primitive.ObjectID `bson:"applicationId" json:"applicationId"`
	TenantID         primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	LandlordID       primitive.ObjectID `bson:"landlordId" json:"landlordId"`
	ContractText     string             `bson:"contractText" json:"contractText"`
	ComplianceScore  int                `bson:"complianceScore" json:"complianceScore"`
	SignedByTenant   bool               `bson:"signedByTenant" json:"signedByTenant"`
	SignedByLandlord bool               `bson:"signedByLandlord" json:"signedByLandlord"`
	TenantSignedAt   *time.Time         `bson:"tenantSignedAt,omitempty" json:"tenantSignedAt,omitempty"`
	LandlordSignedAt *time.Time         `bson:"landlordSignedAt,omitempty" json:"landlordSignedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
