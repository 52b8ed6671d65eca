package model

import "time"

// ScopeAuthentication is the only token scope issued today. The column exists
// so new token kinds can be added without a schema change.
const ScopeAuthentication = "authentication"

// Token is the persisted form of an issued token. Only the SHA-256 hash of
// the plaintext is stored; the plaintext leaves the server exactly once.
type Token struct {
	Hash   []byte
	UserID int64
	Expiry time.Time
	Scope  string
}

type CreateTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthTokenResponse struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}
