package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches what production accounts were hashed with; raising it
// only affects new hashes.
const bcryptCost = 12

// HashPassword hashes the plain text password using bcrypt. Each call salts
// independently, so two hashes of the same input never compare equal.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
// A malformed hash simply fails the comparison.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// DecoyCompare burns the same bcrypt work as a real verification. Login calls
// this for unknown emails so response timing does not reveal whether an
// account exists.
func DecoyCompare(plain string) {
	_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(plain))
}

// A fixed cost-12 hash of an unguessable value, used only to equalize timing.
var decoyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")
