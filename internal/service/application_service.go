package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/repository"
)

// ApplicationService records rental applications and their review
// lifecycle.
type ApplicationService struct {
	applications repository.ApplicationRepository
	properties   repository.PropertyRepository
	users        repository.UserRepository
	logger       *zap.Logger
}

func NewApplicationService(
	applications repository.ApplicationRepository,
	properties repository.PropertyRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		properties:   properties,
		users:        users,
		logger:       logger,
	}
}

// Submit files a pending application from the caller for a property.
func (s *ApplicationService) Submit(ctx context.Context, tenantID, propertyID primitive.ObjectID, data domain.ApplicationData) (domain.Application, error) {
	ctx, span := startSpan(ctx, "ApplicationService.Submit")
	defer span.End()

	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Application{}, errNotFound("Property not found")
		}
		span.RecordError(err)
		return domain.Application{}, fmt.Errorf("load property: %w", err)
	}

	created, err := s.applications.Create(ctx, domain.Application{
		TenantID:        tenantID,
		PropertyID:      propertyID,
		Status:          domain.ApplicationPending,
		ApplicationData: data,
	})
	if err != nil {
		span.RecordError(err)
		return domain.Application{}, err
	}

	if s.logger != nil {
		s.logger.Info("application.submitted",
			zap.String("application_id", created.ID.Hex()),
			zap.String("tenant_id", tenantID.Hex()),
			zap.String("property_id", propertyID.Hex()),
		)
	}
	return created, nil
}

// List returns the caller's applications: a tenant sees their own, a
// landlord sees applications against their listings.
func (s *ApplicationService) List(ctx context.Context, callerID primitive.ObjectID) ([]domain.Application, error) {
	ctx, span := startSpan(ctx, "ApplicationService.List")
	defer span.End()

	user, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNotFound("User not found")
		}
		span.RecordError(err)
		return nil, fmt.Errorf("load user: %w", err)
	}

	var applications []domain.Application
	switch user.Role {
	case domain.RoleLandlord:
		properties, err := s.properties.ListByLandlord(ctx, callerID)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("list properties: %w", err)
		}
		ids := make([]primitive.ObjectID, 0, len(properties))
		for _, property := range properties {
			ids = append(ids, property.ID)
		}
		applications, err = s.applications.ListByProperties(ctx, ids)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	default:
		applications, err = s.applications.ListByTenant(ctx, callerID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	if applications == nil {
		applications = []domain.Application{}
	}
	return applications, nil
}

// Review moves a pending application to accepted or rejected. Only the
// landlord owning the applied-to property may review, and terminal
// states cannot change again.
func (s *ApplicationService) Review(ctx context.Context, callerID, id primitive.ObjectID, status string) (domain.Application, error) {
	ctx, span := startSpan(ctx, "ApplicationService.Review")
	defer span.End()

	if status != domain.ApplicationAccepted && status != domain.ApplicationRejected {
		return domain.Application{}, errInvalidRequest("Status must be accepted or rejected")
	}

	application, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Application{}, errNotFound("Application not found")
		}
		span.RecordError(err)
		return domain.Application{}, fmt.Errorf("load application: %w", err)
	}

	property, err := s.properties.GetByID(ctx, application.PropertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Application{}, errNotFound("Property not found")
		}
		span.RecordError(err)
		return domain.Application{}, fmt.Errorf("load property: %w", err)
	}
	if property.LandlordID != callerID {
		return domain.Application{}, errForbidden()
	}

	if application.Status != domain.ApplicationPending {
		return domain.Application{}, errInvalidRequest("Application already reviewed")
	}

	updated, err := s.applications.SetStatus(ctx, id, status, time.Now().UTC())
	if err != nil {
		span.RecordError(err)
		return domain.Application{}, fmt.Errorf("set status: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("application.reviewed",
			zap.String("application_id", id.Hex()),
			zap.String("status", status),
			zap.String("landlord_id", callerID.Hex()),
		)
	}
	return updated, nil
}
