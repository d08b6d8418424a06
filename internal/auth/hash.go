package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken считает hex-представление SHA-256 от токена. В базе хранится
// только хэш, сырой refresh-токен никогда не сохраняется.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareTokenHash сверяет сохраненный хэш с токеном в константное время.
func CompareTokenHash(hash, token string) bool {
	computed := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(computed)) == 1
}
