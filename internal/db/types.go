package db

import (
	"time"

	"github.com/google/uuid"
)

// Search is a persisted search run
type Search struct {
	ID           uuid.UUID         `json:"id"`
	Query        string            `json:"query"`
	RoleCategory string            `json:"role_category"`
	RoleTitle    string            `json:"role_title"`
	Requirements map[string]string `json:"requirements"`
	Status       string            `json:"status"`
	FinalReport  string            `json:"final_report"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}
