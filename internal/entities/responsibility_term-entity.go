package entities

import "time"

type ResponsibilityTerm struct {
	ID              uint64    `db:"id"`
	EquipmentID     uint64    `db:"equipment_id"`
	Responsible     string    `db:"responsible"`
	Email           *string   `db:"email"`
	Phone           *string   `db:"phone"`
	Department      *string   `db:"department"`
	TermDate        time.Time `db:"term_date"`
	Observations    *string   `db:"observations"`
	PdfURL          *string   `db:"pdf_url"`
	ManualSignature *string   `db:"manual_signature"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
