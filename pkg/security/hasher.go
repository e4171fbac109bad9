package security

import (
	"crypto/subtle"

	"github.com/paoquentinho/storefront/pkg/config"
)

// PasswordHasher turns a submitted password into its stored form and checks
// submissions against stored values.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// NewPasswordHasher returns the hasher for the configured mode. Plain mode
// stores passwords as given; argon2id mode stores encoded hashes. Both
// verify either form so records written under one mode still match.
func NewPasswordHasher(cfg config.PasswordConfig) PasswordHasher {
	if cfg.Hashed() {
		return argonHasher{cfg: cfg}
	}
	return plainHasher{}
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (plainHasher) Verify(password, stored string) bool {
	return verifyAny(password, stored)
}

type argonHasher struct {
	cfg config.PasswordConfig
}

func (h argonHasher) Hash(password string) (string, error) {
	return HashPassword(password, h.cfg)
}

func (argonHasher) Verify(password, stored string) bool {
	return verifyAny(password, stored)
}

func verifyAny(password, stored string) bool {
	if IsArgonHash(stored) {
		ok, err := VerifyPassword(password, stored)
		return err == nil && ok
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}
