package account

import (
	"context"

	"github.com/bricker/vivial-sub000/database/repository"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AuthResponse is returned after a successful signup or signin.
type AuthResponse struct {
	Account models.Account `json:"account"`
	Token   string         `json:"token"`
}

// AccountService manages accounts and their auth sessions. Verify and
// Revoke also satisfy the checkout service's session verifier.
type AccountService interface {
	SignUp(ctx context.Context, email, password, deviceID, deviceName string) (*AuthResponse, error)
	SignIn(ctx context.Context, email, password, deviceID, deviceName string) (*AuthResponse, error)
	SignOut(ctx context.Context, auth utils.AuthContext) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Verify(ctx context.Context, auth utils.AuthContext) error
	Revoke(ctx context.Context, auth utils.AuthContext) error
}

// DefaultAccountService implements AccountService.
type DefaultAccountService struct {
	Repo      repository.AccountRepository
	AuthCache *redis.Client
	Logger    *zap.Logger
}
