package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bricker/vivial-sub000/models"
	"github.com/bricker/vivial-sub000/utils"

	"github.com/go-redis/redis/v8"
)

// submitLockTTL bounds how long a submit lock can be held if a crash
// prevents the release.
const submitLockTTL = 2 * time.Minute

// CheckoutSessionStore caches checkout sessions between initiation and
// confirmation and guards each booking against concurrent submits.
type CheckoutSessionStore interface {
	Save(ctx context.Context, session models.CheckoutSession) error
	Get(ctx context.Context, bookingID string) (*models.CheckoutSession, error)
	Delete(ctx context.Context, bookingID string) error
	AcquireSubmitLock(ctx context.Context, bookingID string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, bookingID string) error
}

// RedisCheckoutSessionStore implements CheckoutSessionStore on Redis.
type RedisCheckoutSessionStore struct {
	Client *redis.Client
}

// NewRedisCheckoutSessionStore creates a session store backed by the
// checkout cache client.
func NewRedisCheckoutSessionStore() *RedisCheckoutSessionStore {
	return &RedisCheckoutSessionStore{Client: utils.GetCheckoutCacheClient()}
}

func sessionKey(bookingID string) string {
	return utils.CheckoutSessionPrefix + bookingID
}

func submitLockKey(bookingID string) string {
	return utils.CheckoutSessionPrefix + "submit:" + bookingID
}

// Save caches the session with the standard checkout TTL.
func (s *RedisCheckoutSessionStore) Save(ctx context.Context, session models.CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKey(session.BookingID), data, utils.CheckoutSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store checkout session: %w", err)
	}
	return nil
}

// Get retrieves the cached session for a booking.
func (s *RedisCheckoutSessionStore) Get(ctx context.Context, bookingID string) (*models.CheckoutSession, error) {
	data, err := s.Client.Get(ctx, sessionKey(bookingID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to fetch checkout session: %w", err)
	}
	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	return &session, nil
}

// Delete removes the cached session.
func (s *RedisCheckoutSessionStore) Delete(ctx context.Context, bookingID string) error {
	return s.Client.Del(ctx, sessionKey(bookingID)).Err()
}

// AcquireSubmitLock takes the per-booking submit lock. It returns false when
// another submit already holds it.
func (s *RedisCheckoutSessionStore) AcquireSubmitLock(ctx context.Context, bookingID string) (bool, error) {
	ok, err := s.Client.SetNX(ctx, submitLockKey(bookingID), "1", submitLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

// ReleaseSubmitLock frees the per-booking submit lock.
func (s *RedisCheckoutSessionStore) ReleaseSubmitLock(ctx context.Context, bookingID string) error {
	return s.Client.Del(ctx, submitLockKey(bookingID)).Err()
}
