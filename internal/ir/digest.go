package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainFixture prefixes fixture digests. The version suffix leaves room
// for a different canonical form later.
const DomainFixture = "mockingbird/fixture/v1"

// hashWithDomain computes SHA-256 over domain + 0x00 + data.
// The null byte keeps domain and data from running into each other.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// FixtureDigest returns the content digest of a generated fixture.
// Two fixtures have the same digest exactly when their canonical JSON
// forms are equal, so map ordering and int/float spelling do not matter.
func FixtureDigest(fixture any) (string, error) {
	canonical, err := MarshalCanonical(fixture)
	if err != nil {
		return "", fmt.Errorf("FixtureDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainFixture, canonical), nil
}

// MustFixtureDigest is like FixtureDigest but panics on error.
// Use only in tests or when the fixture is known to be valid.
func MustFixtureDigest(fixture any) string {
	d, err := FixtureDigest(fixture)
	if err != nil {
		panic(err)
	}
	return d
}
