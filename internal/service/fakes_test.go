package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/repository"
)

type memoryUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (m *memoryUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return domain.User{}, repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (m *memoryUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.TenantProfile) (domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	user.Profile = profile
	m.users[id] = user
	return user, nil
}

type memoryPropertyRepo struct {
	properties []domain.Property
}

func (m *memoryPropertyRepo) Create(ctx context.Context, property domain.Property) (domain.Property, error) {
	property.ID = primitive.NewObjectID()
	property.CreatedAt = time.Now().UTC()
	m.properties = append(m.properties, property)
	return property, nil
}

func (m *memoryPropertyRepo) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Property, error) {
	for _, property := range m.properties {
		if property.ID == id {
			return property, nil
		}
	}
	return domain.Property{}, repository.ErrNotFound
}

func (m *memoryPropertyRepo) Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	var out []domain.Property
	for _, property := range m.properties {
		if filter.City != "" && !strings.Contains(strings.ToLower(property.City), strings.ToLower(filter.City)) {
			continue
		}
		if filter.MinPrice != nil && property.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && property.Price > *filter.MaxPrice {
			continue
		}
		if filter.Rooms != nil && property.Rooms != *filter.Rooms {
			continue
		}
		out = append(out, property)
		if len(out) == 50 {
			break
		}
	}
	return out, nil
}

func (m *memoryPropertyRepo) ListByLandlord(ctx context.Context, landlordID primitive.ObjectID) ([]domain.Property, error) {
	var out []domain.Property
	for _, property := range m.properties {
		if property.LandlordID == landlordID {
			out = append(out, property)
		}
	}
	return out, nil
}

func (m *memoryPropertyRepo) ListVerified(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	for _, property := range m.properties {
		if property.Verified {
			out = append(out, property)
		}
	}
	return out, nil
}

func (m *memoryPropertyRepo) Update(ctx context.Context, id primitive.ObjectID, update domain.PropertyUpdate) (domain.Property, error) {
	for i, property := range m.properties {
		if property.ID != id {
			continue
		}
		if update.Title != nil {
			property.Title = *update.Title
		}
		if update.City != nil {
			property.City = *update.City
		}
		if update.Lat != nil {
			property.Lat = *update.Lat
		}
		if update.Lng != nil {
			property.Lng = *update.Lng
		}
		if update.Price != nil {
			property.Price = *update.Price
		}
		if update.Rooms != nil {
			property.Rooms = *update.Rooms
		}
		if update.Amenities != nil {
			property.Amenities = update.Amenities
		}
		m.properties[i] = property
		return property, nil
	}
	return domain.Property{}, repository.ErrNotFound
}

func (m *memoryPropertyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i, property := range m.properties {
		if property.ID == id {
			m.properties = append(m.properties[:i], m.properties[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memoryApplicationRepo struct {
	applications []domain.Application
}

func (m *memoryApplicationRepo) Create(ctx context.Context, application domain.Application) (domain.Application, error) {
	application.ID = primitive.NewObjectID()
	application.SubmittedAt = time.Now().UTC()
	m.applications = append(m.applications, application)
	return application, nil
}

func (m *memoryApplicationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Application, error) {
	for _, application := range m.applications {
		if application.ID == id {
			return application, nil
		}
	}
	return domain.Application{}, repository.ErrNotFound
}

func (m *memoryApplicationRepo) ListByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]domain.Application, error) {
	var out []domain.Application
	for _, application := range m.applications {
		if application.TenantID == tenantID {
			out = append(out, application)
		}
	}
	return out, nil
}

func (m *memoryApplicationRepo) ListByProperties(ctx context.Context, propertyIDs []primitive.ObjectID) ([]domain.Application, error) {
	ids := make(map[primitive.ObjectID]struct{}, len(propertyIDs))
	for _, id := range propertyIDs {
		ids[id] = struct{}{}
	}
	var out []domain.Application
	for _, application := range m.applications {
		if _, ok := ids[application.PropertyID]; ok {
			out = append(out, application)
		}
	}
	return out, nil
}

func (m *memoryApplicationRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status string, reviewedAt time.Time) (domain.Application, error) {
	for i, application := range m.applications {
		if application.ID == id {
			application.Status = status
			application.ReviewedAt = &reviewedAt
			m.applications[i] = application
			return application, nil
		}
	}
	return domain.Application{}, repository.ErrNotFound
}

type memoryContractRepo struct {
	contracts []domain.Contract
}

func (m *memoryContractRepo) Create(ctx context.Context, contract domain.Contract) (domain.Contract, error) {
	contract.ID = primitive.NewObjectID()
	contract.CreatedAt = time.Now().UTC()
	m.contracts = append(m.contracts, contract)
	return contract, nil
}

func (m *memoryContractRepo) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Contract, error) {
	for _, contract := range m.contracts {
		if contract.ID == id {
			return contract, nil
		}
	}
	return domain.Contract{}, repository.ErrNotFound
}

func (m *memoryContractRepo) GetByApplication(ctx context.Context, applicationID primitive.ObjectID) (domain.Contract, error) {
	for _, contract := range m.contracts {
		if contract.ApplicationID == applicationID {
			return contract, nil
		}
	}
	return domain.Contract{}, repository.ErrNotFound
}

func (m *memoryContractRepo) SetSignature(ctx context.Context, id primitive.ObjectID, role string, signedAt time.Time) (domain.Contract, error) {
	for i, contract := range m.contracts {
		if contract.ID != id {
			continue
		}
		if role == domain.RoleTenant {
			contract.SignedByTenant = true
			contract.TenantSignedAt = &signedAt
		} else {
			contract.SignedByLandlord = true
			contract.LandlordSignedAt = &signedAt
		}
		m.contracts[i] = contract
		return contract, nil
	}
	return domain.Contract{}, repository.ErrNotFound
}

type memoryMessageRepo struct {
	messages []domain.Message
}

func (m *memoryMessageRepo) Create(ctx context.Context, message domain.Message) (domain.Message, error) {
	message.ID = primitive.NewObjectID()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	m.messages = append(m.messages, message)
	return message, nil
}

func (m *memoryMessageRepo) ListConversation(ctx context.Context, propertyID, userA, userB primitive.ObjectID) ([]domain.Message, error) {
	var out []domain.Message
	for _, message := range m.messages {
		if message.PropertyID != propertyID {
			continue
		}
		pair := (message.TenantID == userA && message.LandlordID == userB) ||
			(message.TenantID == userB && message.LandlordID == userA)
		if pair {
			out = append(out, message)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryMessageRepo) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Message, error) {
	var out []domain.Message
	for _, message := range m.messages {
		if message.TenantID == userID || message.LandlordID == userID {
			out = append(out, message)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
