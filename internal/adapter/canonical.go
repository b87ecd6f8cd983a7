package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Canonicalizer produces the RFC 8785 (JCS) form of JSON documents
//
//go:generate mockgen -source=canonical.go -destination=../mocks/canonical.go -package=mocks -mock_names=Canonicalizer=MockCanonicalizer
type Canonicalizer interface {
	// Transform canonicalizes raw JSON bytes
	Transform(data []byte) ([]byte, error)
	// Hash returns the hex sha256 of the canonical form of v
	Hash(v any) (string, error)
}

// RealCanonicalizer implements Canonicalizer using gowebpki/jcs
type RealCanonicalizer struct{}

// NewCanonicalizer creates a new canonicalizer
func NewCanonicalizer() Canonicalizer {
	return &RealCanonicalizer{}
}

func (c *RealCanonicalizer) Transform(data []byte) ([]byte, error) {
	return jcs.Transform(data)
}

// Hash marshals v, canonicalizes it and hashes the result.
// Raw JSON ([]byte or json.RawMessage) is canonicalized as-is.
func (c *RealCanonicalizer) Hash(v any) (string, error) {
	var raw []byte
	switch value := v.(type) {
	case []byte:
		raw = value
	case json.RawMessage:
		raw = value
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal: %w", err)
		}
		raw = b
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
