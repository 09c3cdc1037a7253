package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	accountRepo "github.com/bricker/vivial-sub000/database/repository/account"
	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const tokenDuration = 24 * time.Hour

// SignUp registers a new account and signs its first device in.
func (s *DefaultAccountService) SignUp(ctx context.Context, email, password, deviceID, deviceName string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, utils.NewValidationError("email")
	}
	if err := utils.ValidatePasswordStrength(password); err != nil {
		return nil, utils.NewValidationError("password")
	}
	if deviceID == "" {
		return nil, utils.NewValidationError("deviceId")
	}

	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil {
		return nil, utils.NewDomainError("emailTaken", "an account with this email already exists")
	} else if err != nil && !errors.Is(err, accountRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	acct := &models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Devices:      []models.Device{{DeviceID: deviceID, DeviceName: deviceName}},
	}
	if err := s.Repo.Create(acct); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.issueToken(ctx, acct, deviceID)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("account created", zap.String("accountId", acct.ID))
	return &AuthResponse{Account: *acct, Token: token}, nil
}

// SignIn authenticates an account and issues a fresh token for the device.
func (s *DefaultAccountService) SignIn(ctx context.Context, email, password, deviceID, deviceName string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	acct, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, accountRepo.ErrNotFound) {
			return nil, utils.NewDomainError("invalidCredentials", "invalid email or password")
		}
		s.Logger.Error("SignIn: failed to fetch account", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if !utils.CheckPassword(acct.PasswordHash, password) {
		return nil, utils.NewDomainError("invalidCredentials", "invalid email or password")
	}

	// Register the device on first sign-in from it.
	known := false
	for _, d := range acct.Devices {
		if d.DeviceID == deviceID {
			known = true
			break
		}
	}
	if !known {
		acct.Devices = append(acct.Devices, models.Device{DeviceID: deviceID, DeviceName: deviceName})
		if err := s.Repo.Update(acct); err != nil {
			return nil, fmt.Errorf("failed to register device: %w", err)
		}
	}

	token, err := s.issueToken(ctx, acct, deviceID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Account: *acct, Token: token}, nil
}

// issueToken generates a JWT for the device, storing its hash in Mongo and
// the auth cache. Only the hash is retained server-side.
func (s *DefaultAccountService) issueToken(ctx context.Context, acct *models.Account, deviceID string) (string, error) {
	token, err := utils.GenerateToken(acct.ID, acct.Email, deviceID, tokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateDeviceTokenHash(acct.ID, deviceID, tokenHash); err != nil {
		return "", fmt.Errorf("failed to store token hash: %w", err)
	}

	cacheKey := utils.AuthSessionKey(acct.ID, deviceID)
	if err := s.AuthCache.Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache token hash", zap.Error(err))
	}
	return token, nil
}

// SignOut revokes the caller's session.
func (s *DefaultAccountService) SignOut(ctx context.Context, auth utils.AuthContext) error {
	return s.Revoke(ctx, auth)
}

// GetByID returns an account by ID.
func (s *DefaultAccountService) GetByID(ctx context.Context, id string) (*models.Account, error) {
	acct, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, accountRepo.ErrNotFound) {
			return nil, utils.NewDomainError("accountNotFound", "account not found")
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return acct, nil
}

// Verify re-checks that the device session is still live. The auth cache is
// consulted first; a miss falls back to the stored device token hash.
func (s *DefaultAccountService) Verify(ctx context.Context, auth utils.AuthContext) error {
	cacheKey := utils.AuthSessionKey(auth.AccountID, auth.DeviceID)
	_, err := s.AuthCache.Get(ctx, cacheKey).Result()
	if err == nil {
		// Session is live; refresh the TTL.
		_ = s.AuthCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
		return nil
	}
	if !errors.Is(err, redis.Nil) {
		s.Logger.Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
	}

	acct, err := s.Repo.GetByID(auth.AccountID)
	if err != nil {
		return utils.NewUnauthenticatedError("account not found")
	}
	for _, d := range acct.Devices {
		if d.DeviceID == auth.DeviceID && d.TokenHash != "" {
			return nil
		}
	}
	return utils.NewUnauthenticatedError("session revoked")
}

// Revoke tears the device session down: the cached hash is dropped and the
// stored device token hash is cleared.
func (s *DefaultAccountService) Revoke(ctx context.Context, auth utils.AuthContext) error {
	cacheKey := utils.AuthSessionKey(auth.AccountID, auth.DeviceID)
	if err := s.AuthCache.Del(ctx, cacheKey).Err(); err != nil {
		s.Logger.Warn("failed to drop cached session", zap.Error(err))
	}
	if err := s.Repo.UpdateDeviceTokenHash(auth.AccountID, auth.DeviceID, ""); err != nil {
		if errors.Is(err, accountRepo.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to clear device token: %w", err)
	}
	return nil
}
