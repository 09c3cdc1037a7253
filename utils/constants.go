package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// CheckoutSessionPrefix is the prefix for cached checkout sessions.
const CheckoutSessionPrefix = "checkout:"

// CheckoutSessionTTL is how long an initiated checkout stays resumable.
const CheckoutSessionTTL = 30 * time.Minute

// RerollCountPrefix is the prefix for unauthenticated reroll counters.
const RerollCountPrefix = "reroll:"
