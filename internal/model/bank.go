package model

import (
	"time"

	"github.com/google/uuid"
)

// Bank is an onboarded institution that owns FD plans.
type Bank struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Code          string    `db:"code" json:"code"`
	Description   string    `db:"description" json:"description,omitempty"`
	ContactPerson string    `db:"contact_person" json:"contactPerson,omitempty"`
	Email         string    `db:"email" json:"email,omitempty"`
	Phone         string    `db:"phone" json:"phone,omitempty"`
	Address       string    `db:"address" json:"address,omitempty"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// BankWithPlanCount is returned by bank listings.
type BankWithPlanCount struct {
	Bank
	PlanCount int `db:"plan_count" json:"planCount"`
}

// BankFilter narrows bank listings. Zero values are ignored.
type BankFilter struct {
	Search   string
	IsActive *bool
	Limit    int
	Offset   int
}
