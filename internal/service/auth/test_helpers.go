package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable clock.
// Intended for tests that need deterministic issued-at claims.
func NewTestJWTService(secret string, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey: []byte(secret),
		timeFunc:   timeFunc,
	}
}
