package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid token")
)

// BearerPrefix is the Authorization scheme the API accepts
const BearerPrefix = "Bearer "

// Service checks requests against the single configured admin token.
// It keeps no per-request state.
type Service struct {
	expected [blake2b.Size256]byte
}

// New creates an auth service for the given token
func New(token string) *Service {
	return &Service{
		expected: blake2b.Sum256([]byte(BearerPrefix + token)),
	}
}

// ValidateHeader accepts only an Authorization header exactly equal to
// "Bearer <token>". Both sides are digested first so the comparison time
// does not depend on the header length.
func (s *Service) ValidateHeader(header string) error {
	if header == "" {
		return ErrInvalidToken
	}

	got := blake2b.Sum256([]byte(header))
	if subtle.ConstantTimeCompare(got[:], s.expected[:]) != 1 {
		return ErrInvalidToken
	}
	return nil
}
