package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/service"
)

func TestCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	svc := service.NewPropertyService(&memoryPropertyRepo{}, zap.NewNop())

	landlord := primitive.NewObjectID()
	created, err := svc.Create(ctx, landlord, domain.Property{Title: "Loft", City: "Nantes", Price: 500})
	require.NoError(t, err)
	require.Equal(t, landlord, created.LandlordID)
	require.True(t, created.Verified)
	require.Equal(t, domain.DefaultComplianceScore, created.LegalComplianceScore)
	require.NotNil(t, created.Amenities)
	require.NotNil(t, created.Images)
}

func TestSearchPriceRange(t *testing.T) {
	ctx := context.Background()
	repo := &memoryPropertyRepo{}
	svc := service.NewPropertyService(repo, zap.NewNop())

	landlord := primitive.NewObjectID()
	for _, price := range []float64{100, 300, 450, 600, 900} {
		_, err := svc.Create(ctx, landlord, domain.Property{Title: "p", City: "Nantes", Price: price})
		require.NoError(t, err)
	}

	lo, hi := 300.0, 600.0
	results, err := svc.Search(ctx, domain.PropertyFilter{MinPrice: &lo, MaxPrice: &hi})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, property := range results {
		require.GreaterOrEqual(t, property.Price, lo)
		require.LessOrEqual(t, property.Price, hi)
	}
}

func TestSearchCapsAtFiftyResults(t *testing.T) {
	ctx := context.Background()
	repo := &memoryPropertyRepo{}
	svc := service.NewPropertyService(repo, zap.NewNop())

	landlord := primitive.NewObjectID()
	for i := 0; i < 55; i++ {
		_, err := svc.Create(ctx, landlord, domain.Property{Title: "p", City: "Nantes", Price: 500})
		require.NoError(t, err)
	}

	results, err := svc.Search(ctx, domain.PropertyFilter{City: "Nantes"})
	require.NoError(t, err)
	require.Len(t, results, 50)
}

func TestSearchCitySubstringCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := service.NewPropertyService(&memoryPropertyRepo{}, zap.NewNop())

	landlord := primitive.NewObjectID()
	_, err := svc.Create(ctx, landlord, domain.Property{Title: "a", City: "Nantes"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, landlord, domain.Property{Title: "b", City: "Paris"})
	require.NoError(t, err)

	results, err := svc.Search(ctx, domain.PropertyFilter{City: "nant"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Nantes", results[0].City)
}

func TestUpdateCorrectsCoordinates(t *testing.T) {
	ctx := context.Background()
	svc := service.NewPropertyService(&memoryPropertyRepo{}, zap.NewNop())

	owner := primitive.NewObjectID()
	created, err := svc.Create(ctx, owner, domain.Property{Title: "Loft", Lat: 47.2, Lng: -1.55})
	require.NoError(t, err)

	lat, lng := 47.218, -1.5536
	updated, err := svc.Update(ctx, owner, created.ID, domain.PropertyUpdate{Lat: &lat, Lng: &lng})
	require.NoError(t, err)
	require.Equal(t, lat, updated.Lat)
	require.Equal(t, lng, updated.Lng)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	ctx := context.Background()
	svc := service.NewPropertyService(&memoryPropertyRepo{}, zap.NewNop())

	owner := primitive.NewObjectID()
	created, err := svc.Create(ctx, owner, domain.Property{Title: "Loft", Price: 500})
	require.NoError(t, err)

	title := "Stolen"
	_, err = svc.Update(ctx, primitive.NewObjectID(), created.ID, domain.PropertyUpdate{Title: &title})
	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.Status)

	// Unchanged for the owner.
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Loft", got.Title)
}

func TestDeleteRejectsNonOwnerAndKeepsListing(t *testing.T) {
	ctx := context.Background()
	svc := service.NewPropertyService(&memoryPropertyRepo{}, zap.NewNop())

	owner := primitive.NewObjectID()
	created, err := svc.Create(ctx, owner, domain.Property{Title: "Loft"})
	require.NoError(t, err)

	err = svc.Delete(ctx, primitive.NewObjectID(), created.ID)
	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.Status)

	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
}
