// Package handler contains the gin HTTP handlers for the API surface.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkyden/Roomivo/internal/http/middleware"
	"github.com/venkyden/Roomivo/internal/service"
)

// respondError maps service failures to JSON error bodies. Unexpected
// errors surface their message with a 500, matching the API contract.
func respondError(c *gin.Context, err error) {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// callerIdentity extracts the verified caller or aborts with 401.
func callerIdentity(c *gin.Context) (middleware.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
	}
	return identity, ok
}

// objectIDParam parses a path parameter as an ObjectID, answering 404
// with the given message for malformed values.
func objectIDParam(c *gin.Context, name, notFound string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return primitive.NilObjectID, false
	}
	return id, true
}
