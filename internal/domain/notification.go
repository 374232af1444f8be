package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a short stored alert message, most of which are
// emitted automatically when an item drops to or below its threshold.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	CreatedBy string    `json:"created_by" db:"created_by"`
}
