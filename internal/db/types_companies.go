package db

import (
	"time"

	"github.com/google/uuid"
)

// Company represents an employer organization owned by a company account
type Company struct {
	ID                 uuid.UUID `json:"id"`
	OwnerID            uuid.UUID `json:"owner_id"`
	NameKo             string    `json:"name_ko"`
	NameEn             string    `json:"name_en,omitempty"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	Industry           string    `json:"industry,omitempty"`
	Size               string    `json:"size,omitempty"`
	Website            string    `json:"website,omitempty"`
	Description        string    `json:"description,omitempty"`
	ContactName        string    `json:"contact_name,omitempty"`
	ContactPhone       string    `json:"contact_phone,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Name returns the display name, preferring the Korean name
func (c *Company) Name() string {
	if c.NameKo != "" {
		return c.NameKo
	}
	return c.NameEn
}
