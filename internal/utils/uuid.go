package utils

import (
	"github.com/google/uuid"

	"github.com/andrinek/notesync/models"
)

// UUIDGenerator produces ids for notes created while disconnected. V7 uuids
// are time-ordered, which keeps the outbox roughly in creation order even if
// two notes are queued within the same millisecond.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a fresh uuid string.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// GenerateOffline returns a fresh uuid carrying the offline provenance
// prefix, suitable as a placeholder note id until the server assigns one.
func (g *UUIDGenerator) GenerateOffline() string {
	return models.OfflineIDPrefix + g.Generate()
}
