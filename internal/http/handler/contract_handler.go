package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkyden/Roomivo/internal/service"
)

// ContractHandler serves the agreement endpoints.
type ContractHandler struct {
	Contracts *service.ContractService
}

func NewContractHandler(contracts *service.ContractService) *ContractHandler {
	return &ContractHandler{Contracts: contracts}
}

// Create records an agreement between a tenant and a landlord.
func (h *ContractHandler) Create(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req struct {
		ApplicationID string `json:"applicationId"`
		TenantID      string `json:"tenantId"`
		LandlordID    string `json:"landlordId"`
		ContractText  string `json:"contractText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract"})
		return
	}

	applicationID, err := primitive.ObjectIDFromHex(req.ApplicationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	tenantID, err := primitive.ObjectIDFromHex(req.TenantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenantId"})
		return
	}
	landlordID, err := primitive.ObjectIDFromHex(req.LandlordID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid landlordId"})
		return
	}

	contract, err := h.Contracts.Create(c.Request.Context(), identity.UserID, applicationID, tenantID, landlordID, req.ContractText)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// GetByApplication fetches the contract for an application.
func (h *ContractHandler) GetByApplication(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	applicationID, ok := objectIDParam(c, "applicationId", "Contract not found")
	if !ok {
		return
	}

	contract, err := h.Contracts.GetByApplication(c.Request.Context(), identity.UserID, applicationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// Sign records the caller's signature on a contract.
func (h *ContractHandler) Sign(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Contract not found")
	if !ok {
		return
	}

	contract, err := h.Contracts.Sign(c.Request.Context(), identity.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}
