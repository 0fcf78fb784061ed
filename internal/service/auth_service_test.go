package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/jwt"
	"github.com/venkyden/Roomivo/internal/service"
)

func newAuthService(users *memoryUserRepo) (*service.AuthService, *jwt.Generator) {
	generator := jwt.NewGenerator([]byte("0123456789abcdef0123456789abcdef"), 24*time.Hour)
	return service.NewAuthService(users, generator, zap.NewNop()), generator
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	authService, generator := newAuthService(users)

	tokens, err := authService.Register(ctx, "Ada", "Lovelace", "Ada@Example.com", "secret", domain.RoleTenant)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Token)
	require.Equal(t, "ada@example.com", tokens.User.Email)
	require.Equal(t, domain.RoleTenant, tokens.User.Role)

	std, custom, err := generator.Validate(tokens.Token)
	require.NoError(t, err)
	require.Equal(t, tokens.User.ID, std.Subject)
	require.Equal(t, "ada@example.com", custom.Email)

	login, err := authService.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, tokens.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	authService, _ := newAuthService(newMemoryUserRepo())

	_, err := authService.Register(ctx, "Ada", "Lovelace", "ada@example.com", "secret", "")
	require.NoError(t, err)

	_, err = authService.Register(ctx, "Ada", "Again", "ada@example.com", "other", "")
	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestRegisterMissingCredentials(t *testing.T) {
	ctx := context.Background()
	authService, _ := newAuthService(newMemoryUserRepo())

	_, err := authService.Register(ctx, "Ada", "Lovelace", "", "secret", "")
	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, err = authService.Register(ctx, "Ada", "Lovelace", "ada@example.com", "", "")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	authService, _ := newAuthService(newMemoryUserRepo())

	_, err := authService.Register(ctx, "Ada", "Lovelace", "ada@example.com", "secret", "")
	require.NoError(t, err)

	_, err = authService.Login(ctx, "ada@example.com", "wrong")
	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestLoginUnknownUser(t *testing.T) {
	ctx := context.Background()
	authService, _ := newAuthService(newMemoryUserRepo())

	_, err := authService.Login(ctx, "nobody@example.com", "secret")
	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	authService, _ := newAuthService(users)

	tokens, err := authService.Register(ctx, "Ada", "Lovelace", "ada@example.com", "secret", "")
	require.NoError(t, err)

	user, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	profile := domain.TenantProfile{
		BudgetMin:          300,
		BudgetMax:          600,
		PreferredLocations: []string{"Nantes"},
		AmenitiesRequired:  []string{"WiFi"},
	}
	updated, err := authService.UpdateProfile(ctx, user.ID, profile)
	require.NoError(t, err)
	require.Equal(t, profile, updated.Profile)
	require.Equal(t, tokens.User.ID, updated.ID.Hex())
}
