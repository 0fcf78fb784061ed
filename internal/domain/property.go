package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultComplianceScore is assigned to every listing at creation.
const DefaultComplianceScore = 95

// PropertyImage references an uploaded image blob.
type PropertyImage struct {
	URL        string    `bson:"url" json:"url"`
	PublicID   string    `bson:"publicId" json:"publicId"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Property is a rental listing owned by a landlord. LandlordID is
// immutable after creation.
type Property struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LandlordID           primitive.ObjectID `bson:"landlordId" json:"landlordId"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Address              string             `bson:"address" json:"address"`
	City                 string             `bson:"city" json:"city"`
	Country              string             `bson:"country" json:"country"`
	Lat                  float64            `bson:"lat" json:"lat"`
	Lng                  float64            `bson:"lng" json:"lng"`
	PropertyType         string             `bson:"propertyType" json:"propertyType"`
	Rooms                int                `bson:"rooms" json:"rooms"`
	Bathrooms            int                `bson:"bathrooms" json:"bathrooms"`
	Price                float64            `bson:"price" json:"price"`
	Amenities            []string           `bson:"amenities" json:"amenities"`
	Images               []PropertyImage    `bson:"images" json:"images"`
	Verified             bool               `bson:"verified" json:"verified"`
	LegalComplianceScore int                `bson:"legalComplianceScore" json:"legalComplianceScore"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}

// PropertyFilter describes the optional search predicates. A nil bound
// leaves that side of the range open.
type PropertyFilter struct {
	City     string
	MinPrice *float64
	MaxPrice *float64
	Rooms    *int
}

// PropertyUpdate carries the mutable listing fields for a partial
// update. Nil fields are left unchanged.
type PropertyUpdate struct {
	Title        *string
	Description  *string
	Address      *string
	City         *string
	Country      *string
	Lat          *float64
	Lng          *float64
	PropertyType *string
	Rooms        *int
	Bathrooms    *int
	Price        *float64
	Amenities    []string
	Images       []PropertyImage
}
