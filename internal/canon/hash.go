package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainDigest is the domain prefix for digest content identity.
// Version suffix enables future algorithm migration.
const DomainDigest = "astrodigest/digest/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DigestID computes the content-addressed identity of a digest payload.
// The ID is stable across processes and implementations given the same
// input, because it hashes the canonical serialization.
func DigestID(payload Object) (string, error) {
	data, err := Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("DigestID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDigest, data), nil
}

// DigestIDBytes computes the content address of already-serialized
// canonical payload bytes. The caller is responsible for the bytes being a
// canonical serialization; non-canonical input produces a different id than
// DigestID would for the same logical payload.
func DigestIDBytes(data []byte) string {
	return hashWithDomain(DomainDigest, data)
}

// MustDigestID is like DigestID but panics on error.
// Use only in tests or when the payload is known to be valid.
func MustDigestID(payload Object) string {
	id, err := DigestID(payload)
	if err != nil {
		panic(err)
	}
	return id
}
