package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is an owner identity. Email is stored lower-cased.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
