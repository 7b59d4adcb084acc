package entity

import "time"

// Token represents an opaque bearer token issued on login.
// The token value itself is the ID (64-character hex string); clients
// present it verbatim in the Authorization header.
type Token struct {
	ID        string     // Token value (64-character hex string)
	UserID    uint       // Associated user ID
	UserAgent string     // Client's User-Agent header
	IPAddress string     // Client's IP address
	CreatedAt time.Time  // Token creation time
	ExpiresAt time.Time  // Token expiration time
	RevokedAt *time.Time // Revocation time (nil if active)
}

// IsExpired returns true if the token has passed its expiration time.
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsRevoked returns true if the token has been revoked.
func (t *Token) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsValid returns true if the token is neither expired nor revoked.
func (t *Token) IsValid() bool {
	return !t.IsExpired() && !t.IsRevoked()
}
