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

// ContractService stores agreements and tracks both parties'
// signatures independently.
type ContractService struct {
	contracts repository.ContractRepository
	logger    *zap.Logger
}

func NewContractService(contracts repository.ContractRepository, logger *zap.Logger) *ContractService {
	return &ContractService{contracts: contracts, logger: logger}
}

// Create records an agreement between a tenant and a landlord. The
// caller must be one of the named parties.
func (s *ContractService) Create(ctx context.Context, callerID, applicationID, tenantID, landlordID primitive.ObjectID, text string) (domain.Contract, error) {
	ctx, span := startSpan(ctx, "ContractService.Create")
	defer span.End()

	if callerID != tenantID && callerID != landlordID {
		return domain.Contract{}, errForbidden()
	}

	created, err := s.contracts.Create(ctx, domain.Contract{
		ApplicationID:   applicationID,
		TenantID:        tenantID,
		LandlordID:      landlordID,
		ContractText:    text,
		ComplianceScore: domain.DefaultComplianceScore,
	})
	if err != nil {
		span.RecordError(err)
		return domain.Contract{}, err
	}

	if s.logger != nil {
		s.logger.Info("contract.created",
			zap.String("contract_id", created.ID.Hex()),
			zap.String("application_id", applicationID.Hex()),
		)
	}
	return created, nil
}

// GetByApplication fetches the contract for an application. Party only.
func (s *ContractService) GetByApplication(ctx context.Context, callerID, applicationID primitive.ObjectID) (domain.Contract, error) {
	ctx, span := startSpan(ctx, "ContractService.GetByApplication")
	defer span.End()

	contract, err := s.contracts.GetByApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Contract{}, errNotFound("Contract not found")
		}
		span.RecordError(err)
		return domain.Contract{}, fmt.Errorf("load contract: %w", err)
	}

	if callerID != contract.TenantID && callerID != contract.LandlordID {
		return domain.Contract{}, errForbidden()
	}
	return contract, nil
}

// Sign records the caller's signature. The side signed is derived from
// the caller's identity on the contract; re-signing refreshes the
// timestamp.
func (s *ContractService) Sign(ctx context.Context, callerID, id primitive.ObjectID) (domain.Contract, error) {
	ctx, span := startSpan(ctx, "ContractService.Sign")
	defer span.End()

	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Contract{}, errNotFound("Contract not found")
		}
		span.RecordError(err)
		return domain.Contract{}, fmt.Errorf("load contract: %w", err)
	}

	var role string
	switch callerID {
	case contract.TenantID:
		role = domain.RoleTenant
	case contract.LandlordID:
		role = domain.RoleLandlord
	default:
		return domain.Contract{}, errForbidden()
	}

	signed, err := s.contracts.SetSignature(ctx, id, role, time.Now().UTC())
	if err != nil {
		span.RecordError(err)
		return domain.Contract{}, fmt.Errorf("sign contract: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("contract.signed",
			zap.String("contract_id", id.Hex()),
			zap.String("signer_id", callerID.Hex()),
			zap.String("side", role),
		)
	}
	return signed, nil
}
