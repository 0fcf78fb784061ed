package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/service"
)

// ApplicationHandler serves the rental application endpoints.
type ApplicationHandler struct {
	Applications *service.ApplicationService
}

func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications}
}

// Submit files an application from the caller.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req struct {
		PropertyID      string                 `json:"propertyId"`
		ApplicationData domain.ApplicationData `json:"applicationData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application"})
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	application, err := h.Applications.Submit(c.Request.Context(), identity.UserID, propertyID, req.ApplicationData)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

// List returns the caller's applications.
func (h *ApplicationHandler) List(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	applications, err := h.Applications.List(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// Review accepts or rejects a pending application.
func (h *ApplicationHandler) Review(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Application not found")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	application, err := h.Applications.Review(c.Request.Context(), identity.UserID, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
