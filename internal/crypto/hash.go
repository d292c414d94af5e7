package crypto

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor used for new password hashes.
const hashCost = 12

// HashPassword hashes a password with bcrypt. The salt is embedded in the
// returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether a password matches the given bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
