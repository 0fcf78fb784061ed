package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/service"
)

func TestScoreWorkedExample(t *testing.T) {
	profile := domain.TenantProfile{
		BudgetMin:          300,
		BudgetMax:          600,
		PreferredLocations: []string{"Nantes"},
		AmenitiesRequired:  []string{"WiFi", "Parking"},
	}
	property := domain.Property{
		Price:                500,
		City:                 "Nantes",
		Amenities:            []string{"WiFi"},
		LegalComplianceScore: 95,
	}

	// 30 budget + 25 city + 12 amenity share + 20 compliance.
	require.Equal(t, 87, service.Score(profile, property))
}

func TestScoreBudgetBands(t *testing.T) {
	profile := domain.TenantProfile{BudgetMin: 300, BudgetMax: 600}

	require.Equal(t, 30, service.Score(profile, domain.Property{Price: 600}))
	require.Equal(t, 15, service.Score(profile, domain.Property{Price: 650}))
	require.Equal(t, 15, service.Score(profile, domain.Property{Price: 100}))
	require.Equal(t, 0, service.Score(profile, domain.Property{Price: 700}))

	// No budget set means no budget contribution either way.
	require.Equal(t, 0, service.Score(domain.TenantProfile{}, domain.Property{Price: 500}))
}

func TestScoreCompliance(t *testing.T) {
	require.Equal(t, 20, service.Score(domain.TenantProfile{}, domain.Property{LegalComplianceScore: 90}))
	require.Equal(t, 10, service.Score(domain.TenantProfile{}, domain.Property{LegalComplianceScore: 85}))
	require.Equal(t, 0, service.Score(domain.TenantProfile{}, domain.Property{LegalComplianceScore: 70}))
}

func TestScoreBoundsAndAmenityMonotonicity(t *testing.T) {
	profile := domain.TenantProfile{
		BudgetMin:          300,
		BudgetMax:          600,
		PreferredLocations: []string{"Nantes"},
		AmenitiesRequired:  []string{"WiFi", "Parking", "Balcony", "Garden"},
	}

	amenities := []string{"WiFi", "Parking", "Balcony", "Garden"}
	previous := -1
	for overlap := 0; overlap <= len(amenities); overlap++ {
		property := domain.Property{
			Price:                500,
			City:                 "Nantes",
			Amenities:            amenities[:overlap],
			LegalComplianceScore: 95,
		}
		score := service.Score(profile, property)
		require.GreaterOrEqual(t, score, 0)
		require.LessOrEqual(t, score, 100)
		require.GreaterOrEqual(t, score, previous, "score must not decrease as overlap grows")
		previous = score
	}
	require.Equal(t, 100, previous)
}

func TestMatchesReturnsTopFiveDescending(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	properties := &memoryPropertyRepo{}

	tenant, err := users.Create(ctx, domain.User{
		Email: "tenant@example.com",
		Role:  domain.RoleTenant,
		Profile: domain.TenantProfile{
			BudgetMin:          300,
			BudgetMax:          600,
			PreferredLocations: []string{"Nantes"},
		},
	})
	require.NoError(t, err)

	landlord := primitive.NewObjectID()
	prices := []float64{500, 900, 550, 650, 2000, 400, 580}
	for i, price := range prices {
		_, err := properties.Create(ctx, domain.Property{
			LandlordID:           landlord,
			Title:                fmt.Sprintf("listing-%d", i),
			City:                 "Nantes",
			Price:                price,
			Verified:             true,
			LegalComplianceScore: 95,
		})
		require.NoError(t, err)
	}

	matches, err := service.NewMatchService(users, properties).Matches(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, matches, 5)
	for i := 1; i < len(matches); i++ {
		require.GreaterOrEqual(t, matches[i-1].MatchScore, matches[i].MatchScore)
	}
	// In-budget listings outrank the out-of-budget ones.
	require.Equal(t, "listing-0", matches[0].Title)
}

func TestMatchesSkipsUnverified(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	properties := &memoryPropertyRepo{}

	tenant, err := users.Create(ctx, domain.User{Email: "tenant@example.com", Role: domain.RoleTenant})
	require.NoError(t, err)

	_, err = properties.Create(ctx, domain.Property{Title: "hidden", Verified: false})
	require.NoError(t, err)

	matches, err := service.NewMatchService(users, properties).Matches(ctx, tenant.ID)
	require.NoError(t, err)
	require.Empty(t, matches)
}
