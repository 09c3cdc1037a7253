package outing

import (
	"context"

	"github.com/bricker/vivial-sub000/database/repository"
	"github.com/bricker/vivial-sub000/models"

	"go.uber.org/zap"
)

// OutingService plans and re-rolls proposed itineraries.
type OutingService interface {
	Plan(ctx context.Context, accountID, visitorID string, survey models.OutingSurvey) (*models.Outing, error)
	Reroll(ctx context.Context, accountID, visitorID, outingID string) (*models.Outing, error)
	GetByID(ctx context.Context, outingID string) (*models.Outing, error)
}

// RerollLimiter caps how often an unauthenticated visitor may reroll.
type RerollLimiter interface {
	Allow(ctx context.Context, visitorID string) (bool, error)
}

// DefaultOutingService implements OutingService.
type DefaultOutingService struct {
	Outings repository.OutingRepository
	Venues  repository.VenueRepository
	Limiter RerollLimiter
	Logger  *zap.Logger
}
