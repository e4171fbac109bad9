package security_test

import (
	"strings"
	"testing"

	"github.com/paoquentinho/storefront/pkg/config"
	"github.com/paoquentinho/storefront/pkg/security"
)

var fastArgon = config.PasswordConfig{
	Mode:             config.PasswordModeArgon2id,
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("very-secure-password", fastArgon)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !security.IsArgonHash(hash) {
		t.Fatalf("expected argon2id encoding, got %q", hash)
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if _, err := security.VerifyPassword("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if _, err := security.HashPassword("", fastArgon); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestPlainHasherStoresAsGiven(t *testing.T) {
	h := security.NewPasswordHasher(config.PasswordConfig{Mode: config.PasswordModePlain})

	stored, err := h.Hash("123456")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if stored != "123456" {
		t.Fatalf("plain mode should store the password verbatim, got %q", stored)
	}
	if !h.Verify("123456", stored) {
		t.Fatal("expected plain password to verify")
	}
	if h.Verify("1234567", stored) {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestArgonHasherAcceptsBothForms(t *testing.T) {
	h := security.NewPasswordHasher(fastArgon)

	stored, err := h.Hash("segredo")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(stored, "$argon2id$v=19$") {
		t.Fatalf("unexpected encoding %q", stored)
	}
	if !h.Verify("segredo", stored) {
		t.Fatal("expected hashed password to verify")
	}
	if !h.Verify("123456", "123456") {
		t.Fatal("expected plain seed passwords to keep verifying in argon mode")
	}
	if h.Verify("segred0", stored) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestVerifyPasswordRejectsForeignEncodings(t *testing.T) {
	hash, err := security.HashPassword("pao-de-queijo", fastArgon)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	cases := map[string]string{
		"version":    strings.Replace(hash, "v=19", "v=16", 1),
		"cost":       strings.Replace(hash, ",t=1,", ",t=x,", 1),
		"zeroPasses": strings.Replace(hash, ",t=1,", ",t=0,", 1),
		"truncated":  hash[:strings.LastIndex(hash, "$")],
	}
	for name, encoded := range cases {
		if _, err := security.VerifyPassword("pao-de-queijo", encoded); err != security.ErrInvalidHash {
			t.Fatalf("%s: expected ErrInvalidHash, got %v", name, err)
		}
	}
}
