package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	accountRepo "github.com/bricker/vivial-sub000/database/repository/account"
	"github.com/bricker/vivial-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// AuthContextKey is the gin context key the account auth context is stored
// under once RequireAccount has run.
const AuthContextKey = "authContext"

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    "Insufficient authorization",
		"redirect": "/logout",
	})
}

// RequireAccount authenticates the request's bearer token against the auth
// cache, falling back to the account store on a cache miss, and stores the
// resulting auth context on the gin context.
func RequireAccount(accounts accountRepo.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		auth, err := utils.ExtractAuthFromToken(tokenString)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthSessionKey(auth.AccountID, auth.DeviceID)

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil
		if !cacheEnabled {
			log.Printf("WARNING: Auth cache client not available. Falling back to DB lookup.")
		}

		if cacheEnabled {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					abortUnauthorized(c)
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set(AuthContextKey, auth)
				c.Next()
				return
			} else if err != redis.Nil {
				log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to DB lookup.", err)
			}
		}

		// Cache miss: check the stored device token hash.
		acct, err := accounts.GetByID(auth.AccountID)
		if err != nil || acct == nil {
			abortUnauthorized(c)
			return
		}

		var deviceTokenHash string
		for _, d := range acct.Devices {
			if d.DeviceID == auth.DeviceID {
				deviceTokenHash = d.TokenHash
				break
			}
		}
		if deviceTokenHash == "" || deviceTokenHash != computedHash {
			abortUnauthorized(c)
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}

		c.Set(AuthContextKey, auth)
		c.Next()
	}
}

// OptionalAccount behaves like RequireAccount but lets unauthenticated
// requests through with no auth context set.
func OptionalAccount(accounts accountRepo.AccountRepository) gin.HandlerFunc {
	required := RequireAccount(accounts)
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
			c.Next()
			return
		}
		required(c)
	}
}

// GetAuthContext returns the auth context set by RequireAccount.
func GetAuthContext(c *gin.Context) (utils.AuthContext, bool) {
	val, exists := c.Get(AuthContextKey)
	if !exists {
		return utils.AuthContext{}, false
	}
	auth, ok := val.(utils.AuthContext)
	return auth, ok
}
