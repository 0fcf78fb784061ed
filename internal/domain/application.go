package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application lifecycle states. Pending is the only non-terminal state.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// ApplicationData is the tenant's submission payload.
type ApplicationData struct {
	MoveInDate       string  `bson:"moveInDate" json:"moveInDate"`
	EmploymentStatus string  `bson:"employmentStatus" json:"employmentStatus"`
	AnnualIncome     float64 `bson:"annualIncome" json:"annualIncome"`
	References       string  `bson:"references" json:"references"`
	PetFriendly      bool    `bson:"petFriendly" json:"petFriendly"`
	Notes            string  `bson:"notes" json:"notes"`
}

// Application records a tenant's interest in a property and its review
// outcome.
type Application struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID        primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	PropertyID      primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	Status          string             `bson:"status" json:"status"`
	ApplicationData ApplicationData    `bson:"applicationData" json:"applicationData"`
	SubmittedAt     time.Time          `bson:"submittedAt" json:"submittedAt"`
	ReviewedAt      *time.Time         `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
}
