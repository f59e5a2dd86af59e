// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides credential hashing and session token handling
// for the single-admin login flow.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters (OWASP recommended second choice: m=19456, t=2, p=1)
const (
	Argon2Time    = 2
	Argon2Memory  = 19 * 1024
	Argon2Threads = 1
	Argon2KeyLen  = 32
	Argon2SaltLen = 16
)

// legacyHashLen is the length of a hex-encoded SHA-256 digest. Deployments
// migrated from the original worker store the admin password as a bare
// unsalted digest of exactly this length.
const legacyHashLen = 64

// HashPassword creates an Argon2id hash of the password.
// Returns an encoded hash in format: $argon2id$v=19$m=19456,t=2,p=1$salt$hash
func HashPassword(password string) (string, error) {
	salt := make([]byte, Argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, Argon2Memory, Argon2Time, Argon2Threads, b64Salt, b64Hash), nil
}

// CheckPassword verifies a password against a stored hash. Both the current
// Argon2id format and the legacy unsalted SHA-256 hex format are accepted,
// so credential records written by the original worker keep working.
func CheckPassword(password, encodedHash string) (bool, error) {
	if strings.HasPrefix(encodedHash, "$argon2id$") {
		return verifyArgon2(password, encodedHash)
	}
	if IsLegacyHash(encodedHash) {
		return verifyLegacy(password, encodedHash), nil
	}
	return false, fmt.Errorf("unrecognized hash format")
}

// IsLegacyHash reports whether a stored hash uses the legacy unsalted
// SHA-256 scheme.
func IsLegacyHash(encodedHash string) bool {
	if len(encodedHash) != legacyHashLen {
		return false
	}
	_, err := hex.DecodeString(encodedHash)
	return err == nil
}

// LegacyHash returns the unsalted SHA-256 hex digest of the password.
// Only used for compatibility testing against stores written by the
// original worker; new credentials always use HashPassword.
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// verifyLegacy recomputes the unsalted digest and compares in constant time.
func verifyLegacy(password, digestHex string) bool {
	computed := LegacyHash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digestHex)) == 1
}

// verifyArgon2 verifies a password against an Argon2id hash.
// Uses constant-time comparison to prevent timing attacks.
func verifyArgon2(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return false, fmt.Errorf("unsupported hash type: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parsing version: %w", err)
	}

	var memory, timeCost uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return false, fmt.Errorf("parsing parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decoding hash: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, timeCost, memory, threads, uint32(len(expectedHash)))
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1, nil
}
