package utils

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost bcrypt work factor
var PasswordCost = 12

// sessionTokenBytes random bytes per session token; hex doubles the length
const sessionTokenBytes = 32

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	// bcrypt ignores everything past 72 bytes
	if len(password) > 72 {
		return "", ErrInvalidParameter
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	if len(password) > 72 || len(hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateSessionToken returns a 64-char hex opaque token
func GenerateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", WrapError(err, "generate session token")
	}
	return hex.EncodeToString(buf), nil
}

// DummyPasswordHash hash at PasswordCost that no password matches; unknown
// logins are checked against it so both login failures cost one bcrypt compare
func DummyPasswordHash() string {
	dummyHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("foodshare:no-such-account"), PasswordCost)
		if err == nil {
			dummyHash = string(hash)
		}
	})
	return dummyHash
}

var (
	dummyHash     string
	dummyHashOnce sync.Once
)
