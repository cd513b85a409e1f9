package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a clerk or kitchen worker who signs in at a register by scanning an
// NFC badge or typing its code.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	BadgeCode string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
