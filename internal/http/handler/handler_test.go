package handler_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/domain"
	httphandler "github.com/venkyden/Roomivo/internal/http/handler"
	httpmiddleware "github.com/venkyden/Roomivo/internal/http/middleware"
	"github.com/venkyden/Roomivo/internal/jwt"
	"github.com/venkyden/Roomivo/internal/repository"
	"github.com/venkyden/Roomivo/internal/service"
)

// testRig wires the auth and property stack against in-memory
// repositories, with routes mounted the same way the real router
// mounts them.
type testRig struct {
	engine    *gin.Engine
	users     *memUserRepo
	props     *memPropertyRepo
	auth      *service.AuthService
	generator *jwt.Generator
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUserRepo{}
	props := &memPropertyRepo{}
	generator := jwt.NewGenerator([]byte("handler-test-secret-0123456789ab"), time.Minute)
	logger := zap.NewNop()

	authSvc := service.NewAuthService(users, generator, logger)
	propSvc := service.NewPropertyService(props, logger)
	matchSvc := service.NewMatchService(users, props)

	authHandler := httphandler.NewAuthHandler(authSvc)
	propertyHandler := httphandler.NewPropertyHandler(propSvc, matchSvc)
	authMW := &httpmiddleware.Auth{Generator: generator}

	r := gin.New()
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/api/auth/me", authMW.ValidateJWT, authHandler.Me)
	r.PUT("/api/auth/profile", authMW.ValidateJWT, authHandler.UpdateProfile)
	r.GET("/api/properties", propertyHandler.Search)
	r.GET("/api/properties/:id", propertyHandler.Get)
	r.POST("/api/properties", authMW.ValidateJWT, propertyHandler.Create)
	r.PUT("/api/properties/:id", authMW.ValidateJWT, propertyHandler.Update)
	r.DELETE("/api/properties/:id", authMW.ValidateJWT, propertyHandler.Delete)
	r.GET("/api/my-properties", authMW.ValidateJWT, propertyHandler.Mine)
	r.GET("/api/matches", authMW.ValidateJWT, propertyHandler.Matched)

	return &testRig{engine: r, users: users, props: props, auth: authSvc, generator: generator}
}

// memUserRepo is a map-backed repository.UserRepository.
type memUserRepo struct {
	users []domain.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func (m *memUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users = append(m.users, user)
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (m *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (m *memUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, profile domain.TenantProfile) (domain.User, error) {
	for i, u := range m.users {
		if u.ID == id {
			m.users[i].Profile = profile
			return m.users[i], nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

// memPropertyRepo is a slice-backed repository.PropertyRepository with
// the same filter semantics as the Mongo query.
type memPropertyRepo struct {
	properties []domain.Property
}

var _ repository.PropertyRepository = (*memPropertyRepo)(nil)

func (m *memPropertyRepo) Create(_ context.Context, property domain.Property) (domain.Property, error) {
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	m.properties = append(m.properties, property)
	return property, nil
}

func (m *memPropertyRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.Property, error) {
	for _, p := range m.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Property{}, repository.ErrNotFound
}

func (m *memPropertyRepo) Search(_ context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range m.properties {
		if filter.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(filter.City)) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.Rooms != nil && p.Rooms != *filter.Rooms {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memPropertyRepo) ListByLandlord(_ context.Context, landlordID primitive.ObjectID) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range m.properties {
		if p.LandlordID == landlordID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPropertyRepo) ListVerified(_ context.Context) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range m.properties {
		if p.Verified {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPropertyRepo) Update(_ context.Context, id primitive.ObjectID, update domain.PropertyUpdate) (domain.Property, error) {
	for i, p := range m.properties {
		if p.ID != id {
			continue
		}
		if update.Title != nil {
			p.Title = *update.Title
		}
		if update.City != nil {
			p.City = *update.City
		}
		if update.Lat != nil {
			p.Lat = *update.Lat
		}
		if update.Lng != nil {
			p.Lng = *update.Lng
		}
		if update.Price != nil {
			p.Price = *update.Price
		}
		if update.Rooms != nil {
			p.Rooms = *update.Rooms
		}
		m.properties[i] = p
		return p, nil
	}
	return domain.Property{}, repository.ErrNotFound
}

func (m *memPropertyRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, p := range m.properties {
		if p.ID == id {
			m.properties = append(m.properties[:i], m.properties[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
