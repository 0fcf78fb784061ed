package service

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkyden/Roomivo/internal/domain"
	"github.com/venkyden/Roomivo/internal/repository"
)

// matchLimit is the number of top-scored listings returned.
const matchLimit = 5

// Match is one scored listing for a tenant.
type Match struct {
	PropertyID primitive.ObjectID `json:"propertyId"`
	Title      string             `json:"title"`
	Price      float64            `json:"price"`
	City       string             `json:"city"`
	Amenities  []string           `json:"amenities"`
	MatchScore int                `json:"matchScore"`
}

// Score rates how well a listing fits a tenant profile, 0 to 100.
//
// Weights: 30 for a strict budget fit (15 within a 10% stretch of the
// upper bound), 25 for a preferred city, up to 25 proportional to the
// required-amenity overlap, and 20/10 for a compliance score of at
// least 90/80. The amenity share uses integer division, so a half
// overlap contributes 12.
func Score(profile domain.TenantProfile, property domain.Property) int {
	score := 0

	if profile.BudgetMin > 0 && profile.BudgetMax > 0 {
		switch {
		case property.Price >= profile.BudgetMin && property.Price <= profile.BudgetMax:
			score += 30
		case property.Price <= profile.BudgetMax*1.1:
			score += 15
		}
	}

	if len(profile.PreferredLocations) > 0 && slices.Contains(profile.PreferredLocations, property.City) {
		score += 25
	}

	if required := len(profile.AmenitiesRequired); required > 0 {
		matched := 0
		for _, amenity := range profile.AmenitiesRequired {
			if slices.Contains(property.Amenities, amenity) {
				matched++
			}
		}
		score += matched * 25 / required
	}

	switch {
	case property.LegalComplianceScore >= 90:
		score += 20
	case property.LegalComplianceScore >= 80:
		score += 10
	}

	return score
}

// MatchService ranks verified listings for a tenant.
type MatchService struct {
	users      repository.UserRepository
	properties repository.PropertyRepository
}

func NewMatchService(users repository.UserRepository, properties repository.PropertyRepository) *MatchService {
	return &MatchService{users: users, properties: properties}
}

// Matches returns the caller's top five listings by descending score.
// Ties keep catalog order.
func (s *MatchService) Matches(ctx context.Context, userID primitive.ObjectID) ([]Match, error) {
	ctx, span := startSpan(ctx, "MatchService.Matches")
	defer span.End()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load user: %w", err)
	}

	properties, err := s.properties.ListVerified(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list properties: %w", err)
	}

	matches := make([]Match, 0, len(properties))
	for _, property := range properties {
		matches = append(matches, Match{
			PropertyID: property.ID,
			Title:      property.Title,
			Price:      property.Price,
			City:       property.City,
			Amenities:  property.Amenities,
			MatchScore: Score(user.Profile, property),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > matchLimit {
		matches = matches[:matchLimit]
	}
	return matches, nil
}
