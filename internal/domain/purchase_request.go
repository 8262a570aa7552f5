package domain

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRequest is a buyer's intent to buy a book or bundle. It is created
// once by the buyer and afterwards mutated exclusively by admin transitions;
// finalized rows are kept for audit and analytics, never deleted.
type PurchaseRequest struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	ItemType ItemType  `json:"item_type" db:"item_type"`
	ItemID   uuid.UUID `json:"item_id" db:"item_id"`

	// ItemTitle and Amount are snapshots taken at creation time. The catalog
	// may change later; the request never recomputes them.
	ItemTitle string  `json:"item_title" db:"item_title"`
	Amount    float64 `json:"amount" db:"amount"`

	Status RequestStatus `json:"status" db:"status"`

	PreferredContactMethod *ContactChannel `json:"preferred_contact_method,omitempty" db:"preferred_contact_method"`
	ContactDetail          *string         `json:"contact_detail,omitempty" db:"contact_detail"`
	UserMessage            *string         `json:"user_message,omitempty" db:"user_message"`
	AdminNotes             *string         `json:"admin_notes,omitempty" db:"admin_notes"`

	ContactedAt *time.Time `json:"contacted_at,omitempty" db:"contacted_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty" db:"responded_at"`

	// Version is the optimistic concurrency token, incremented on every
	// successful transition. A write with a stale version is rejected.
	Version   int64     `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Priority is derived from age on every read, never stored.
	Priority Priority `json:"priority,omitempty" db:"-"`
}

type ItemType string

const (
	ItemBook   ItemType = "book"
	ItemBundle ItemType = "bundle"
)

func (t ItemType) Valid() bool {
	return t == ItemBook || t == ItemBundle
}

type ContactChannel string

const (
	ChannelEmail    ContactChannel = "email"
	ChannelTelegram ContactChannel = "telegram"
	ChannelWhatsApp ContactChannel = "whatsapp"
)

func (c ContactChannel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelTelegram, ChannelWhatsApp:
		return true
	}
	return false
}

type CreatePurchaseRequestInput struct {
	UserID                 uuid.UUID       `json:"user_id"`
	ItemType               ItemType        `json:"item_type"`
	ItemID                 uuid.UUID       `json:"item_id"`
	ItemTitle              string          `json:"item_title"`
	Amount                 float64         `json:"amount"`
	PreferredContactMethod *ContactChannel `json:"preferred_contact_method,omitempty"`
	ContactDetail          *string         `json:"contact_detail,omitempty"`
	UserMessage            *string         `json:"user_message,omitempty"`
}

type TransitionInput struct {
	Status          RequestStatus `json:"status"`
	AdminNotes      *string       `json:"admin_notes,omitempty"`
	ExpectedVersion int64         `json:"expected_version"`
}
