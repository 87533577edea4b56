package auth

import "golang.org/x/crypto/bcrypt"

// hashCost matches the work factor the store was seeded with.
const hashCost = 10

func HashPassword(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), hashCost)
	return string(b), err
}

// VerifyPassword returns nil when plain matches hash. bcrypt's comparison
// is constant-time with respect to the hash contents.
func VerifyPassword(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
