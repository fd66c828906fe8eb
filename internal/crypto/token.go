package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const tokenChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// TokenSecretLength is the length of the random secret part of a token.
const TokenSecretLength = 40

var ErrMalformedToken = errors.New("malformed token")

// NewTokenSecret generates a cryptographically random alphanumeric
// token secret.
func NewTokenSecret() (string, error) {
	secret := make([]byte, TokenSecretLength)
	for i := range secret {
		ch, err := randChar(tokenChars)
		if err != nil {
			return "", err
		}
		secret[i] = ch
	}
	return string(secret), nil
}

// DigestToken returns the hex SHA-256 digest of a token secret. Only
// the digest is ever persisted.
func DigestToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// MatchToken reports whether the secret digests to the stored digest,
// using a constant-time comparison.
func MatchToken(secret, storedDigest string) bool {
	return subtle.ConstantTimeCompare([]byte(DigestToken(secret)), []byte(storedDigest)) == 1
}

// ComposeToken builds the plaintext bearer token "<id>|<secret>"
// handed to the client at issuance.
func ComposeToken(id int64, secret string) string {
	return fmt.Sprintf("%d|%s", id, secret)
}

// SplitToken parses a plaintext bearer token into its record ID and
// secret parts.
func SplitToken(plain string) (int64, string, error) {
	idPart, secret, found := strings.Cut(plain, "|")
	if !found || secret == "" {
		return 0, "", ErrMalformedToken
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id < 1 {
		return 0, "", ErrMalformedToken
	}

	return id, secret, nil
}

// randChar picks a random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}
