package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLen = 16
	keyLen  = 32

	// scrypt cost parameters
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// HashPassword derives a salted scrypt hash of the plaintext. Each call
// draws a fresh salt, so identical passwords never share an encoding.
// The result is "hex(salt):hex(key)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("deriving key: %w", err)
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the key with the salt embedded in stored and
// compares in constant time. Malformed stored hashes verify as false
// rather than erroring.
func VerifyPassword(password, stored string) bool {
	salt, expected, ok := decodeStoredHash(stored)
	if !ok {
		return false
	}

	actual, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, len(expected))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(expected, actual) == 1
}

func decodeStoredHash(stored string) (salt, key []byte, ok bool) {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return nil, nil, false
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil || len(salt) == 0 {
		return nil, nil, false
	}
	key, err = hex.DecodeString(parts[1])
	if err != nil || len(key) == 0 {
		return nil, nil, false
	}

	return salt, key, true
}
