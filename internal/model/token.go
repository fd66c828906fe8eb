package model

import "time"

// AccessToken represents an issued bearer token in the database.
// Only the SHA-256 digest of the token secret is stored; the plaintext
// form "<id>|<secret>" is returned to the client exactly once, at
// creation.
type AccessToken struct {
	ID        int64
	UserID    int64
	Name      string
	TokenHash string
	CreatedAt time.Time
}
