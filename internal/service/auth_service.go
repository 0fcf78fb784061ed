package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/jwt"
	"github.com/venkyden/Roomivo/internal/repository"
)

// UserView is the public projection of a user returned with tokens.
type UserView struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// AuthTokens is the response payload for register and login.
type AuthTokens struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// AuthService handles registration, login and profile management.
type AuthService struct {
	users     repository.UserRepository
	generator *jwt.Generator
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepository, generator *jwt.Generator, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, generator: generator, logger: logger}
}

func (s *AuthService) audit(event string, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.Info(event, fields...)
	}
}

// Register creates an account and issues its first token. The role is
// fixed at creation and defaults to tenant.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password, role string) (AuthTokens, error) {
	ctx, span := startSpan(ctx, "AuthService.Register")
	defer span.End()

	normalized := normalizeEmail(email)
	if normalized == "" || password == "" {
		return AuthTokens{}, errMissingFields("Email and password required")
	}

	switch role {
	case "":
		role = domain.RoleTenant
	case domain.RoleTenant, domain.RoleLandlord, domain.RoleAdmin:
	default:
		return AuthTokens{}, errInvalidRequest("Unknown role")
	}

	if _, err := s.users.GetByEmail(ctx, normalized); err == nil {
		return AuthTokens{}, errInvalidRequest("Email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		span.RecordError(err)
		return AuthTokens{}, fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return AuthTokens{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, domain.User{
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        normalized,
		PasswordHash: string(hashed),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return AuthTokens{}, errInvalidRequest("Email already registered")
		}
		span.RecordError(err)
		return AuthTokens{}, fmt.Errorf("create user: %w", err)
	}

	tokens, err := s.issueTokens(created)
	if err != nil {
		span.RecordError(err)
		return AuthTokens{}, err
	}

	s.audit("auth.register.success", zap.String("user_id", created.ID.Hex()), zap.String("role", created.Role))
	return tokens, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthTokens, error) {
	ctx, span := startSpan(ctx, "AuthService.Login")
	defer span.End()

	normalized := normalizeEmail(email)
	if normalized == "" || password == "" {
		return AuthTokens{}, errMissingFields("Email and password required")
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AuthTokens{}, errNotFound("User not found")
		}
		span.RecordError(err)
		return AuthTokens{}, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.audit("auth.login.failed", zap.String("user_id", user.ID.Hex()))
		return AuthTokens{}, errInvalidCredentials("Invalid password")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		span.RecordError(err)
		return AuthTokens{}, err
	}

	s.audit("auth.login.success", zap.String("user_id", user.ID.Hex()))
	return tokens, nil
}

// CurrentUser loads the full user document for the token subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (domain.User, error) {
	ctx, span := startSpan(ctx, "AuthService.CurrentUser")
	defer span.End()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, errNotFound("User not found")
		}
		span.RecordError(err)
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// UpdateProfile replaces the caller's matching preferences.
func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile domain.TenantProfile) (domain.User, error) {
	ctx, span := startSpan(ctx, "AuthService.UpdateProfile")
	defer span.End()

	user, err := s.users.UpdateProfile(ctx, userID, profile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, errNotFound("User not found")
		}
		span.RecordError(err)
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}

	s.audit("auth.profile.updated", zap.String("user_id", userID.Hex()))
	return user, nil
}

func (s *AuthService) issueTokens(user domain.User) (AuthTokens, error) {
	token, err := s.generator.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthTokens{
		Token: token,
		User: UserView{
			ID:        user.ID.Hex(),
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Role:      user.Role,
		},
	}, nil
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
