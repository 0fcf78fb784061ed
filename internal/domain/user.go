package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can register with. The role is fixed at creation.
const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
)

// TenantProfile holds the matching preferences a tenant maintains for
// the match scorer.
type TenantProfile struct {
	BudgetMin          float64  `bson:"budgetmin" json:"budgetmin"`
	BudgetMax          float64  `bson:"budgetmax" json:"budgetmax"`
	PreferredLocations []string `bson:"preferredlocations" json:"preferredlocations"`
	AmenitiesRequired  []string `bson:"amenitiesrequired" json:"amenitiesrequired"`
}

// User represents a registered account. The password hash never leaves
// the server.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Verified     bool               `bson:"verified" json:"verified"`
	Profile      TenantProfile      `bson:"profile" json:"profile"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
