package dto

type CreateEquipmentDTO struct {
	AssetNumber     *string `json:"assetNumber,omitempty" validate:"omitempty,asset_number"`
	Description     string  `json:"description" validate:"required"`
	Brand           *string `json:"brand,omitempty"`
	Model           *string `json:"model,omitempty"`
	Specs           *string `json:"specs,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=active maintenance deactivated"`
	Location        string  `json:"location" validate:"required"`
	Responsible     string  `json:"responsible" validate:"required"`
	AcquisitionDate string  `json:"acquisitionDate" validate:"required,datetime=2006-01-02"`
	InvoiceDate     *string `json:"invoiceDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Value           float64 `json:"value" validate:"gte=0"`
}

type UpdateEquipmentDTO struct {
	Description            *string  `json:"description,omitempty"`
	Brand                  *string  `json:"brand,omitempty"`
	Model                  *string  `json:"model,omitempty"`
	Specs                  *string  `json:"specs,omitempty"`
	Status                 *string  `json:"status,omitempty" validate:"omitempty,oneof=active maintenance deactivated"`
	Location               *string  `json:"location,omitempty"`
	Responsible            *string  `json:"responsible,omitempty"`
	AcquisitionDate        *string  `json:"acquisitionDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	InvoiceDate            *string  `json:"invoiceDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Value                  *float64 `json:"value,omitempty" validate:"omitempty,gte=0"`
	MaintenanceDescription *string  `json:"maintenanceDescription,omitempty"`
}

type TransferEquipmentDTO struct {
	Location    *string `json:"location,omitempty"`
	Responsible *string `json:"responsible,omitempty"`
}

type RegisterMaintenanceDTO struct {
	Description string `json:"description" validate:"required"`
}

type EquipmentDTO struct {
	ID                     uint64  `json:"id"`
	AssetNumber            string  `json:"assetNumber"`
	Description            string  `json:"description"`
	Brand                  *string `json:"brand,omitempty"`
	Model                  *string `json:"model,omitempty"`
	Specs                  *string `json:"specs,omitempty"`
	Status                 string  `json:"status"`
	Location               string  `json:"location"`
	Responsible            string  `json:"responsible"`
	AcquisitionDate        string  `json:"acquisitionDate"`
	InvoiceDate            *string `json:"invoiceDate,omitempty"`
	Value                  float64 `json:"value"`
	MaintenanceDescription *string `json:"maintenanceDescription,omitempty"`
	CreatedAt              string  `json:"createdAt"`
	UpdatedAt              string  `json:"updatedAt"`
}

type EquipmentStatsDTO struct {
	Total       uint64  `json:"total"`
	Active      uint64  `json:"active"`
	Maintenance uint64  `json:"maintenance"`
	Deactivated uint64  `json:"deactivated"`
	TotalValue  float64 `json:"totalValue"`
}

type NextAssetNumberDTO struct {
	AssetNumber string `json:"assetNumber"`
}
