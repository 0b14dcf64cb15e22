package utils

import (
	"github.com/google/uuid"
)

// GenerateUUIDv7 returns a time-ordered UUID. Offers and submissions use v7
// ids so index order follows insertion order.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// v4 fallback, only reachable if the entropy source fails
		return uuid.New()
	}
	return id
}
