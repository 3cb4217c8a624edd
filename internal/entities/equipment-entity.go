package entities

import "time"

type Equipment struct {
	ID                     uint64     `db:"id"`
	AssetNumber            string     `db:"asset_number"`
	Description            string     `db:"description"`
	Brand                  *string    `db:"brand"`
	Model                  *string    `db:"model"`
	Specs                  *string    `db:"specs"`
	Status                 string     `db:"status"`
	Location               string     `db:"location"`
	Responsible            string     `db:"responsible"`
	AcquisitionDate        time.Time  `db:"acquisition_date"`
	InvoiceDate            *time.Time `db:"invoice_date"`
	Value                  float64    `db:"value"`
	MaintenanceDescription *string    `db:"maintenance_description"`
	CreatedAt              time.Time  `db:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at"`
}
