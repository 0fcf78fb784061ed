package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/repository"
)

// PropertyService manages the listing catalog.
type PropertyService struct {
	properties repository.PropertyRepository
	logger     *zap.Logger
}

func NewPropertyService(properties repository.PropertyRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{properties: properties, logger: logger}
}

// Search returns up to 50 listings matching the optional filters.
func (s *PropertyService) Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	ctx, span := startSpan(ctx, "PropertyService.Search")
	defer span.End()

	properties, err := s.properties.Search(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if properties == nil {
		properties = []domain.Property{}
	}
	return properties, nil
}

// Get fetches a single listing.
func (s *PropertyService) Get(ctx context.Context, id primitive.ObjectID) (domain.Property, error) {
	ctx, span := startSpan(ctx, "PropertyService.Get")
	defer span.End()

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Property{}, errNotFound("Property not found")
		}
		span.RecordError(err)
		return domain.Property{}, fmt.Errorf("load property: %w", err)
	}
	return property, nil
}

// ListByOwner returns the caller's listings.
func (s *PropertyService) ListByOwner(ctx context.Context, landlordID primitive.ObjectID) ([]domain.Property, error) {
	ctx, span := startSpan(ctx, "PropertyService.ListByOwner")
	defer span.End()

	properties, err := s.properties.ListByLandlord(ctx, landlordID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if properties == nil {
		properties = []domain.Property{}
	}
	return properties, nil
}

// Create adds a listing owned by the caller. New listings are verified
// with the default compliance score.
func (s *PropertyService) Create(ctx context.Context, landlordID primitive.ObjectID, property domain.Property) (domain.Property, error) {
	ctx, span := startSpan(ctx, "PropertyService.Create")
	defer span.End()

	property.LandlordID = landlordID
	property.Verified = true
	property.LegalComplianceScore = domain.DefaultComplianceScore
	if property.Amenities == nil {
		property.Amenities = []string{}
	}
	if property.Images == nil {
		property.Images = []domain.PropertyImage{}
	}

	created, err := s.properties.Create(ctx, property)
	if err != nil {
		span.RecordError(err)
		return domain.Property{}, err
	}

	if s.logger != nil {
		s.logger.Info("property.created",
			zap.String("property_id", created.ID.Hex()),
			zap.String("landlord_id", landlordID.Hex()),
		)
	}
	return created, nil
}

// Update applies a partial update. Only the owning landlord may mutate
// a listing; the owner id itself is immutable.
func (s *PropertyService) Update(ctx context.Context, callerID, id primitive.ObjectID, update domain.PropertyUpdate) (domain.Property, error) {
	ctx, span := startSpan(ctx, "PropertyService.Update")
	defer span.End()

	if err := s.authorizeOwner(ctx, callerID, id); err != nil {
		return domain.Property{}, err
	}

	updated, err := s.properties.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Property{}, errNotFound("Property not found")
		}
		span.RecordError(err)
		return domain.Property{}, fmt.Errorf("update property: %w", err)
	}
	return updated, nil
}

// Delete removes a listing. Owner only; applications and messages that
// reference it are left in place.
func (s *PropertyService) Delete(ctx context.Context, callerID, id primitive.ObjectID) error {
	ctx, span := startSpan(ctx, "PropertyService.Delete")
	defer span.End()

	if err := s.authorizeOwner(ctx, callerID, id); err != nil {
		return err
	}

	if err := s.properties.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNotFound("Property not found")
		}
		span.RecordError(err)
		return fmt.Errorf("delete property: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("property.deleted",
			zap.String("property_id", id.Hex()),
			zap.String("landlord_id", callerID.Hex()),
		)
	}
	return nil
}

func (s *PropertyService) authorizeOwner(ctx context.Context, callerID, id primitive.ObjectID) error {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNotFound("Property not found")
		}
		return fmt.Errorf("load property: %w", err)
	}
	if property.LandlordID != callerID {
		return errForbidden()
	}
	return nil
}
