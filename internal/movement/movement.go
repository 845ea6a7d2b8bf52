package movement

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the direction of a movement (income or expense).
type Type string

const (
	TypeEntrata Type = "entrata"
	TypeUscita  Type = "uscita"
)

// Sector is the operational unit a movement is attributed to.
type Sector string

const (
	SectorBar           Sector = "bar"
	SectorLibreria      Sector = "libreria"
	SectorDecimaOfferta Sector = "decima_offerta"
)

// PaymentMethod is the channel the money moved through.
type PaymentMethod string

const (
	PaymentSumup    PaymentMethod = "sumup"
	PaymentContanti PaymentMethod = "contanti"
	PaymentPaypal   PaymentMethod = "paypal"
)

// Category is the reporting classification of a movement.
type Category string

const (
	CategoryDonazioni    Category = "donazioni"
	CategoryAffitto      Category = "affitto"
	CategoryUtenze       Category = "utenze"
	CategoryStipendi     Category = "stipendi"
	CategoryForniture    Category = "forniture"
	CategoryManutenzione Category = "manutenzione"
	CategoryEventi       Category = "eventi"
	CategoryAltro        Category = "altro"
)

// Movement is a single ledger entry. It is immutable once persisted.
type Movement struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Type          Type
	Sector        Sector
	PaymentMethod PaymentMethod
	Category      Category
	Description   string
	Amount        int64     // Amount in cents, always positive
	Date          time.Time // Date only, UTC midnight
	CreatedAt     time.Time
}

// IsIncome reports whether the movement is an entrata.
func (m *Movement) IsIncome() bool {
	return m.Type == TypeEntrata
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
