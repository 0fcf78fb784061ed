package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/service"
)

// PropertyHandler serves the listing catalog endpoints.
type PropertyHandler struct {
	Properties *service.PropertyService
	Matches    *service.MatchService
}

func NewPropertyHandler(properties *service.PropertyService, matches *service.MatchService) *PropertyHandler {
	return &PropertyHandler{Properties: properties, Matches: matches}
}

// Search returns up to 50 listings matching the optional query
// filters.
func (h *PropertyHandler) Search(c *gin.Context) {
	var filter domain.PropertyFilter
	filter.City = c.Query("city")
	if v := c.Query("minPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minPrice"})
			return
		}
		filter.MinPrice = &price
	}
	if v := c.Query("maxPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxPrice"})
			return
		}
		filter.MaxPrice = &price
	}
	if v := c.Query("rooms"); v != "" {
		rooms, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rooms"})
			return
		}
		filter.Rooms = &rooms
	}

	properties, err := h.Properties.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// Get fetches a single listing.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "Property not found")
	if !ok {
		return
	}

	property, err := h.Properties.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// Mine lists the caller's own listings.
func (h *PropertyHandler) Mine(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	properties, err := h.Properties.ListByOwner(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

type propertyRequest struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Address      string                 `json:"address"`
	City         string                 `json:"city"`
	Country      string                 `json:"country"`
	Lat          float64                `json:"lat"`
	Lng          float64                `json:"lng"`
	PropertyType string                 `json:"propertyType"`
	Rooms        int                    `json:"rooms"`
	Bathrooms    int                    `json:"bathrooms"`
	Price        float64                `json:"price"`
	Amenities    []string               `json:"amenities"`
	Images       []domain.PropertyImage `json:"images"`
}

// Create adds a listing owned by the caller.
func (h *PropertyHandler) Create(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property"})
		return
	}

	created, err := h.Properties.Create(c.Request.Context(), identity.UserID, domain.Property{
		Title:        req.Title,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		Lat:          req.Lat,
		Lng:          req.Lng,
		PropertyType: req.PropertyType,
		Rooms:        req.Rooms,
		Bathrooms:    req.Bathrooms,
		Price:        req.Price,
		Amenities:    req.Amenities,
		Images:       req.Images,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type propertyUpdateRequest struct {
	Title        *string                `json:"title"`
	Description  *string                `json:"description"`
	Address      *string                `json:"address"`
	City         *string                `json:"city"`
	Country      *string                `json:"country"`
	Lat          *float64               `json:"lat"`
	Lng          *float64               `json:"lng"`
	PropertyType *string                `json:"propertyType"`
	Rooms        *int                   `json:"rooms"`
	Bathrooms    *int                   `json:"bathrooms"`
	Price        *float64               `json:"price"`
	Amenities    []string               `json:"amenities"`
	Images       []domain.PropertyImage `json:"images"`
}

// Update applies a partial update. Owner only.
func (h *PropertyHandler) Update(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Property not found")
	if !ok {
		return
	}

	var req propertyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property"})
		return
	}

	updated, err := h.Properties.Update(c.Request.Context(), identity.UserID, id, domain.PropertyUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		Lat:          req.Lat,
		Lng:          req.Lng,
		PropertyType: req.PropertyType,
		Rooms:        req.Rooms,
		Bathrooms:    req.Bathrooms,
		Price:        req.Price,
		Amenities:    req.Amenities,
		Images:       req.Images,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a listing. Owner only.
func (h *PropertyHandler) Delete(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", "Property not found")
	if !ok {
		return
	}

	if err := h.Properties.Delete(c.Request.Context(), identity.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// Matched returns the caller's top scored listings.
func (h *PropertyHandler) Matched(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	matches, err := h.Matches.Matches(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}
