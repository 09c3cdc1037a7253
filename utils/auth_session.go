// File: utils/auth_session.go
package utils

// AuthContext identifies the authenticated caller of a request. It is
// resolved once by the auth middleware and threaded through every service
// operation that must re-check session liveness.
type AuthContext struct {
	AccountID string
	DeviceID  string
	Email     string
}

// AuthSessionKey builds the composite Redis key for an account's device session.
func AuthSessionKey(accountID, deviceID string) string {
	return AuthCachePrefix + accountID + ":" + deviceID
}
