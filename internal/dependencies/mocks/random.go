package mocks

import (
	"github.com/mcoot/restadmin/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	// Err, when set, is returned by every call
	Err error
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// String returns the next queued result, or empty string if none remaining
func (r *MockRandom) String(length int, alphabet string) (string, error) {
	if r.Err != nil {
		return "", r.Err
	}
	if r.stringIndex >= len(r.StringResults) {
		return "", nil
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result, nil
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}
