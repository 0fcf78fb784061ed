// Package repository defines persistence interfaces for the marketplace
// entities and their MongoDB implementations.
package repository

import (
	"context"
	"errors"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkyden/Roomivo/internal/domain"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when creating a user whose email is
// already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository stores identity records.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.TenantProfile) (domain.User, error)
}

// PropertyRepository stores listings.
type PropertyRepository interface {
	Create(ctx context.Context, property domain.Property) (domain.Property, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (domain.Property, error)
	Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	ListByLandlord(ctx context.Context, landlordID primitive.ObjectID) ([]domain.Property, error)
	ListVerified(ctx context.Context) ([]domain.Property, error)
	Update(ctx context.Context, id primitive.ObjectID, update domain.PropertyUpdate) (domain.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ApplicationRepository stores rental applications.
type ApplicationRepository interface {
	Create(ctx context.Context, application domain.Application) (domain.Application, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (domain.Application, error)
	ListByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]domain.Application, error)
	ListByProperties(ctx context.Context, propertyIDs []primitive.ObjectID) ([]domain.Application, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string, reviewedAt time.Time) (domain.Application, error)
}

// ContractRepository stores rental agreements.
type ContractRepository interface {
	Create(ctx context.Context, contract domain.Contract) (domain.Contract, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (domain.Contract, error)
	GetByApplication(ctx context.Context, applicationID primitive.ObjectID) (domain.Contract, error)
	SetSignature(ctx context.Context, id primitive.ObjectID, role string, signedAt time.Time) (domain.Contract, error)
}

// MessageRepository stores inquiry messages.
type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) (domain.Message, error)
	ListConversation(ctx context.Context, propertyID, userA, userB primitive.ObjectID) ([]domain.Message, error)
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Message, error)
}

// StoredImage is an uploaded blob with its content type preserved.
type StoredImage struct {
	PublicID    string
	Filename    string
	ContentType string
	Data        []byte
}

// ImageStore persists uploaded listing images.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Get(ctx context.Context, publicID string) (StoredImage, error)
	Delete(ctx context.Context, publicID string) error
}
