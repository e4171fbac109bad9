package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/paoquentinho/storefront/pkg/config"
	"golang.org/x/crypto/argon2"
)

const (
	argonPrefix  = "$argon2id$"
	argonVersion = argon2.Version
)

// ErrInvalidHash signals a malformed Argon2id hash string.
var ErrInvalidHash = errors.New("invalid argon2id hash")

var b64 = base64.RawStdEncoding

// argonCost is the cost section written into every encoded hash.
type argonCost struct {
	memoryKB uint32
	passes   uint32
	threads  uint8
}

func (c argonCost) key(password string, salt []byte, keyLen uint32) []byte {
	return argon2.IDKey([]byte(password), salt, c.passes, c.memoryKB, c.threads, keyLen)
}

// costFromConfig clamps operator-supplied values into ranges argon2 accepts
// and that keep a login under a second on small hosts.
func costFromConfig(cfg config.PasswordConfig) (argonCost, uint32, uint32) {
	cost := argonCost{
		memoryKB: uint32(clamp(cfg.ArgonMemoryKB, 8, 512*1024)),
		passes:   uint32(clamp(cfg.ArgonTime, 1, 10)),
		threads:  uint8(clamp(cfg.ArgonParallelism, 1, 255)),
	}
	return cost, uint32(clamp(cfg.ArgonSaltLen, 8, 64)), uint32(clamp(cfg.ArgonKeyLen, 16, 64))
}

// HashPassword encodes password as
// $argon2id$v=19$m=<kb>,t=<passes>,p=<threads>$<salt>$<key>.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	cost, saltLen, keyLen := costFromConfig(cfg)

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	var b strings.Builder
	b.WriteString(argonPrefix)
	fmt.Fprintf(&b, "v=%d$m=%d,t=%d,p=%d$", argonVersion, cost.memoryKB, cost.passes, cost.threads)
	b.WriteString(b64.EncodeToString(salt))
	b.WriteByte('$')
	b.WriteString(b64.EncodeToString(cost.key(password, salt, keyLen)))
	return b.String(), nil
}

// IsArgonHash reports whether stored looks like an encoded Argon2id hash.
func IsArgonHash(stored string) bool {
	return strings.HasPrefix(stored, argonPrefix)
}

// VerifyPassword recomputes the key with the cost and salt embedded in
// encoded and compares in constant time.
func VerifyPassword(password, encoded string) (bool, error) {
	cost, salt, want, err := parseArgonHash(encoded)
	if err != nil {
		return false, err
	}
	got := cost.key(password, salt, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

func parseArgonHash(encoded string) (argonCost, []byte, []byte, error) {
	if !IsArgonHash(encoded) {
		return argonCost{}, nil, nil, ErrInvalidHash
	}
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 {
		return argonCost{}, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argonVersion {
		return argonCost{}, nil, nil, ErrInvalidHash
	}

	var cost argonCost
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &cost.memoryKB, &cost.passes, &cost.threads); err != nil {
		return argonCost{}, nil, nil, ErrInvalidHash
	}
	if cost.passes == 0 || cost.threads == 0 {
		return argonCost{}, nil, nil, ErrInvalidHash
	}

	salt, err := b64.DecodeString(fields[4])
	if err != nil || len(salt) == 0 {
		return argonCost{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(fields[5])
	if err != nil || len(key) == 0 {
		return argonCost{}, nil, nil, ErrInvalidHash
	}
	return cost, salt, key, nil
}

func clamp(value, lo, hi int) int {
	switch {
	case value < lo:
		return lo
	case value > hi:
		return hi
	}
	return value
}
