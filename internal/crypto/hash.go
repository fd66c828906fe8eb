package crypto

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt cost parameter used for new hashes.
const hashCost = 12

// dummyHash is computed once at startup. Login compares against it when
// no user matches the email, so a lookup miss costs the same hash work
// as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("authgate dummy verification subject"), hashCost)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the
// stored bcrypt hash. bcrypt's comparison is constant-time.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DummyVerify burns one bcrypt comparison. It never authenticates.
func DummyVerify(password string) bool {
	bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}
