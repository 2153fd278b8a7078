package models

import (
	"time"

	"udyam/pkg/domain"
)

// Startup is the registered entity applications belong to. Provisioning of
// the record itself happens in the account flow outside this service; the
// workflow core only reads ownership and contact fields.
type Startup struct {
	ID          domain.StartupID `json:"id"`
	OwnerID     domain.UserID    `json:"owner_id"`
	Name        string           `json:"name"`
	FounderName string           `json:"founder_name"`
	Email       string           `json:"email"`
	PhoneNumber string           `json:"phone_number"`
	CreatedAt   time.Time        `json:"created_at"`
}
