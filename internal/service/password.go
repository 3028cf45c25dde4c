package service

import (
	"crypto/sha1" //nolint:gosec // legacy digest, see note below
	"encoding/hex"
)

// hashPassword maps the plaintext to its hex SHA-1 digest: deterministic,
// fixed length, no per-account salt. This matches the digests of accounts
// created by the legacy system; adding a salt would orphan every stored hash,
// so the scheme stays until a migration is decided. The plaintext is never
// logged or persisted.
func hashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
