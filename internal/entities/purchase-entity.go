package entities

import "time"

type Purchase struct {
	ID              uint64     `db:"id"`
	Description     string     `db:"description"`
	Brand           *string    `db:"brand"`
	Model           *string    `db:"model"`
	Specs           *string    `db:"specs"`
	Location        *string    `db:"location"`
	Urgency         string     `db:"urgency"`
	Status          string     `db:"status"`
	RequestedBy     string     `db:"requested_by"`
	RequestDate     time.Time  `db:"request_date"`
	ExpectedDate    *time.Time `db:"expected_date"`
	Supplier        *string    `db:"supplier"`
	Observations    *string    `db:"observations"`
	ApprovedBy      *string    `db:"approved_by"`
	ApprovalDate    *time.Time `db:"approval_date"`
	RejectionReason *string    `db:"rejection_reason"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}
